package marketplace

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/egoavara/plugin-directory/internal/git"
	"github.com/egoavara/plugin-directory/internal/plugin"
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TimestampFormat is ISO-8601 UTC with millisecond precision
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Progress receives per-submission build events
type Progress interface {
	Begin(file string)
	End(file string, err error)
}

// BuildError records a submission that was left out of the directory
type BuildError struct {
	File string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(e.File), e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Builder assembles the directory from a submissions folder
type Builder struct {
	fetcher        *git.Fetcher
	submissionsDir string
	locale         language.Tag
	now            func() time.Time
	progress       Progress
	logger         zerolog.Logger
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithLocale sets the collation locale used to order entries by name
func WithLocale(tag language.Tag) BuilderOption {
	return func(b *Builder) { b.locale = tag }
}

// WithClock overrides the time source for timestamps
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// WithProgress reports each submission as it is processed
func WithProgress(p Progress) BuilderOption {
	return func(b *Builder) { b.progress = p }
}

// NewBuilder creates a new builder
func NewBuilder(fetcher *git.Fetcher, submissionsDir string, logger zerolog.Logger, opts ...BuilderOption) *Builder {
	b := &Builder{
		fetcher:        fetcher,
		submissionsDir: submissionsDir,
		locale:         language.English,
		now:            time.Now,
		logger:         logger.With().Str("component", "builder").Logger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build fetches the manifest for every submission and returns the sorted directory.
// Submissions that fail are omitted and returned as BuildErrors; only an unreadable
// submissions folder is fatal.
func (b *Builder) Build(ctx context.Context) (*Directory, []*BuildError, error) {
	paths, err := plugin.ListSubmissions(b.submissionsDir)
	if err != nil {
		return nil, nil, err
	}

	b.logger.Info().Str("dir", b.submissionsDir).Int("submissions", len(paths)).Msg("Building directory")

	entries := make([]Entry, 0, len(paths))
	var failures []*BuildError

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, failures, err
		}

		if b.progress != nil {
			b.progress.Begin(path)
		}
		entry, err := b.buildEntry(ctx, path)
		if b.progress != nil {
			b.progress.End(path, err)
		}

		if err != nil {
			b.logger.Warn().Err(err).Str("file", path).Msg("Skipping submission")
			failures = append(failures, &BuildError{File: path, Err: err})
			continue
		}
		entries = append(entries, entry)
	}

	SortEntries(entries, b.locale)

	dir := &Directory{
		Version:     SchemaVersion,
		GeneratedAt: b.timestamp(),
		Plugins:     entries,
	}

	b.logger.Info().Int("plugins", len(entries)).Int("errors", len(failures)).Msg("Directory built")
	return dir, failures, nil
}

func (b *Builder) buildEntry(ctx context.Context, path string) (Entry, error) {
	sub, err := plugin.LoadSubmission(path)
	if err != nil {
		return Entry{}, err
	}

	data, err := b.fetcher.Fetch(ctx, sub.Repo, plugin.ManifestFile, "")
	if err != nil {
		return Entry{}, fmt.Errorf("failed to fetch %s: %w", plugin.ManifestFile, err)
	}

	m, err := plugin.LoadManifest(data)
	if err != nil {
		return Entry{}, err
	}

	return NewEntry(sub, m, b.timestamp()), nil
}

func (b *Builder) timestamp() string {
	return b.now().UTC().Format(TimestampFormat)
}

// SortEntries orders entries by display name using locale-aware collation, then by id
func SortEntries(entries []Entry, locale language.Tag) {
	c := collate.New(locale, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		if n := c.CompareString(entries[i].Name, entries[j].Name); n != 0 {
			return n < 0
		}
		return entries[i].ID < entries[j].ID
	})
}

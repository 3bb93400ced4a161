package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

const (
	// DefaultRawBaseURL serves raw repository files by owner/repo/branch/path
	DefaultRawBaseURL = "https://raw.githubusercontent.com"
	// DefaultBranch is tried first
	DefaultBranch = "main"
	// FallbackBranch is tried once when the default branch fails
	FallbackBranch = "master"

	// DefaultMaxBytes caps a single fetched file
	DefaultMaxBytes = 16 << 20
)

var (
	// ErrUnparseableURL is returned when a repository URL has no owner/name
	ErrUnparseableURL = errors.New("could not parse GitHub repository URL")
	// ErrResponseTooLarge is returned instead of a truncated body
	ErrResponseTooLarge = errors.New("response too large")
)

// Client is the interface for retrieving raw repository files
type Client interface {
	FetchFile(ctx context.Context, repoURL, path, branch string) ([]byte, error)
}

// RawClient fetches files from the raw content host over HTTP
type RawClient struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxBytes   int64
}

// NewClient creates a new raw content client.
// The transport's own defaults apply; no extra timeout is configured.
func NewClient(baseURL string) *RawClient {
	if baseURL == "" {
		baseURL = DefaultRawBaseURL
	}
	return &RawClient{
		BaseURL:    baseURL,
		HTTPClient: http.DefaultClient,
		MaxBytes:   DefaultMaxBytes,
	}
}

// FetchFile retrieves a single file at the given branch, without fallback
func (c *RawClient) FetchFile(ctx context.Context, repoURL, path, branch string) ([]byte, error) {
	ref, ok := ParseRepoURL(repoURL)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnparseableURL, repoURL)
	}

	url := ref.RawURL(c.BaseURL, branch, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Path: path, Branch: branch, Cause: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Path: path, Branch: branch, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Path: path, Branch: branch, StatusCode: resp.StatusCode}
	}

	limit := c.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	// One byte past the limit tells an oversized body from one that fits exactly
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &FetchError{URL: url, Path: path, Branch: branch, Cause: err}
	}
	if int64(len(data)) > limit {
		return nil, &FetchError{URL: url, Path: path, Branch: branch,
			Cause: fmt.Errorf("%w: exceeds %d bytes", ErrResponseTooLarge, limit)}
	}

	return data, nil
}

// FetchWithFallback tries each branch in order and returns the first success.
// When every attempt fails the last error is returned. An unparseable URL or an
// oversized file stops immediately.
func FetchWithFallback(ctx context.Context, client Client, repoURL, path string, branches []string) ([]byte, error) {
	var lastErr error
	for _, branch := range branches {
		data, err := client.FetchFile(ctx, repoURL, path, branch)
		if err == nil {
			return data, nil
		}
		if errors.Is(err, ErrUnparseableURL) || errors.Is(err, ErrResponseTooLarge) {
			return nil, err
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no branch to fetch %s from", path)
	}
	return nil, lastErr
}

// Fetcher applies the fixed two-attempt branch policy on top of a Client
type Fetcher struct {
	client         Client
	defaultBranch  string
	fallbackBranch string
	logger         zerolog.Logger
}

// NewFetcher creates a new fetcher. Empty branch names take the package defaults.
func NewFetcher(client Client, defaultBranch, fallbackBranch string, logger zerolog.Logger) *Fetcher {
	if defaultBranch == "" {
		defaultBranch = DefaultBranch
	}
	if fallbackBranch == "" {
		fallbackBranch = FallbackBranch
	}
	return &Fetcher{
		client:         client,
		defaultBranch:  defaultBranch,
		fallbackBranch: fallbackBranch,
		logger:         logger.With().Str("component", "fetcher").Logger(),
	}
}

// Branches returns the attempt list for a requested branch.
// The default branch ("" included) gets one fallback; any other branch gets none.
func (f *Fetcher) Branches(branch string) []string {
	if branch == "" || branch == f.defaultBranch {
		return []string{f.defaultBranch, f.fallbackBranch}
	}
	return []string{branch}
}

// Fetch retrieves path from the repository, falling back once for the default branch
func (f *Fetcher) Fetch(ctx context.Context, repoURL, path, branch string) ([]byte, error) {
	if _, ok := ParseRepoURL(repoURL); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnparseableURL, repoURL)
	}

	branches := f.Branches(branch)
	f.logger.Debug().
		Str("repo", repoURL).
		Str("path", path).
		Strs("branches", branches).
		Msg("Fetching file")

	data, err := FetchWithFallback(ctx, f.client, repoURL, path, branches)
	if err != nil {
		f.logger.Debug().Err(err).Str("repo", repoURL).Str("path", path).Msg("Fetch failed")
		return nil, err
	}
	return data, nil
}

// FetchError represents a failed retrieval of a repository file
type FetchError struct {
	URL        string
	Path       string
	Branch     string
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to fetch %s (branch %s): %v", e.Path, e.Branch, e.Cause)
	}
	return fmt.Sprintf("failed to fetch %s (branch %s): HTTP %d", e.Path, e.Branch, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

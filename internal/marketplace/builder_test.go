package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/egoavara/plugin-directory/internal/git"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// repoClient serves manifests keyed by "owner/name@branch:path"
type repoClient struct {
	files map[string]string
}

func (c *repoClient) FetchFile(_ context.Context, repoURL, path, branch string) ([]byte, error) {
	ref, ok := git.ParseRepoURL(repoURL)
	if !ok {
		return nil, git.ErrUnparseableURL
	}
	if content, ok := c.files[fmt.Sprintf("%s@%s:%s", ref, branch, path)]; ok {
		return []byte(content), nil
	}
	return nil, &git.FetchError{URL: repoURL, Path: path, Branch: branch, StatusCode: http.StatusNotFound}
}

func manifestJSON(id, name string) string {
	return fmt.Sprintf(`{"id":%q,"name":%q,"version":"1.0.0","minAppVersion":"1.0.0","author":"A",
		"description":"d","main":"main.js","permissions":["read:goals"],"category":"tools"}`, id, name)
}

func writeSubmission(t *testing.T, dir, id, repo string) {
	t.Helper()
	data := fmt.Sprintf(`{"id":%q,"name":"x","description":"d","author":"A","repo":%q}`, id, repo)
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".json"), []byte(data), 0644))
}

func newTestBuilder(dir string, client git.Client, opts ...BuilderOption) *Builder {
	fetcher := git.NewFetcher(client, "", "", zerolog.Nop())
	clock := func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return NewBuilder(fetcher, dir, zerolog.Nop(), append([]BuilderOption{WithClock(clock)}, opts...)...)
}

func TestBuilder_Build(t *testing.T) {
	dir := t.TempDir()
	writeSubmission(t, dir, "com.a.zeta", "https://github.com/a/zeta")
	writeSubmission(t, dir, "com.a.alpha", "https://github.com/a/alpha")
	writeSubmission(t, dir, "com.a.mid", "https://github.com/a/mid")

	client := &repoClient{files: map[string]string{
		"a/zeta@main:manifest.json":    manifestJSON("com.a.zeta", "Zeta"),
		"a/alpha@master:manifest.json": manifestJSON("com.a.alpha", "alpha"),
		"a/mid@main:manifest.json":     manifestJSON("com.a.mid", "Mid"),
	}}

	d, failures, err := newTestBuilder(dir, client).Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, failures)

	assert.Equal(t, SchemaVersion, d.Version)
	assert.Equal(t, "2026-01-02T03:04:05.000Z", d.GeneratedAt)
	require.Len(t, d.Plugins, 3)
	assert.Equal(t, []string{"alpha", "Mid", "Zeta"}, []string{d.Plugins[0].Name, d.Plugins[1].Name, d.Plugins[2].Name})

	for _, e := range d.Plugins {
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.Version)
		assert.NotEmpty(t, e.MinAppVersion)
		assert.NotEmpty(t, e.Repo)
		assert.NotNil(t, e.Permissions)
		assert.Equal(t, d.GeneratedAt, e.UpdatedAt)
	}
	assert.Equal(t, "https://github.com/a/alpha", d.FindPlugin("com.a.alpha").Repo)
}

func TestBuilder_SkipsFailures(t *testing.T) {
	dir := t.TempDir()
	writeSubmission(t, dir, "com.a.good", "https://github.com/a/good")
	writeSubmission(t, dir, "com.a.gone", "https://github.com/a/gone")
	writeSubmission(t, dir, "com.a.bad", "https://github.com/a/bad")
	writeSubmission(t, dir, "com.a.url", "not-a-repo")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{`), 0644))

	client := &repoClient{files: map[string]string{
		"a/good@main:manifest.json": manifestJSON("com.a.good", "Good"),
		"a/bad@main:manifest.json":  `{"id":"com.a.bad"}`,
	}}

	d, failures, err := newTestBuilder(dir, client).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Plugins, 1)
	assert.Equal(t, "com.a.good", d.Plugins[0].ID)

	require.Len(t, failures, 4)
	var files []string
	for _, f := range failures {
		files = append(files, filepath.Base(f.File))
	}
	assert.Equal(t, []string{"broken.json", "com.a.bad.json", "com.a.gone.json", "com.a.url.json"}, files)
	assert.ErrorIs(t, failures[3], git.ErrUnparseableURL)
}

func TestBuilder_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeSubmission(t, dir, "com.a.one", "https://github.com/a/one")
	writeSubmission(t, dir, "com.a.two", "https://github.com/a/two")
	client := &repoClient{files: map[string]string{
		"a/one@main:manifest.json": manifestJSON("com.a.one", "One"),
		"a/two@main:manifest.json": manifestJSON("com.a.two", "Two"),
	}}

	encode := func(now time.Time) []byte {
		b := newTestBuilder(dir, client, WithClock(func() time.Time { return now }))
		d, _, err := b.Build(context.Background())
		require.NoError(t, err)
		for i := range d.Plugins {
			d.Plugins[i].UpdatedAt = ""
		}
		data, err := json.Marshal(d.Plugins)
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, encode(time.Unix(0, 0)), encode(time.Unix(1_000_000, 0)))
}

func TestBuilder_MissingDirectory(t *testing.T) {
	_, _, err := newTestBuilder(filepath.Join(t.TempDir(), "absent"), &repoClient{}).Build(context.Background())
	assert.Error(t, err)
}

type recordingProgress struct {
	events []string
}

func (p *recordingProgress) Begin(file string) { p.events = append(p.events, "begin "+filepath.Base(file)) }
func (p *recordingProgress) End(file string, err error) {
	p.events = append(p.events, fmt.Sprintf("end %s %t", filepath.Base(file), err == nil))
}

func TestBuilder_Progress(t *testing.T) {
	dir := t.TempDir()
	writeSubmission(t, dir, "com.a.one", "https://github.com/a/one")
	writeSubmission(t, dir, "com.a.two", "https://github.com/a/two")
	client := &repoClient{files: map[string]string{"a/one@main:manifest.json": manifestJSON("com.a.one", "One")}}

	progress := &recordingProgress{}
	_, _, err := newTestBuilder(dir, client, WithProgress(progress)).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"begin com.a.one.json", "end com.a.one.json true",
		"begin com.a.two.json", "end com.a.two.json false",
	}, progress.events)
}

func TestSortEntries(t *testing.T) {
	entries := []Entry{
		{ID: "b", Name: "Échec"},
		{ID: "c", Name: "zebra"},
		{ID: "a", Name: "Apple"},
		{ID: "d", Name: "echo"},
		{ID: "e", Name: "Apple"},
	}
	SortEntries(entries, language.English)

	var ids []string
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"a", "e", "b", "d", "c"}, ids)
}

func TestDirectoryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "plugins.json")
	d := &Directory{Version: SchemaVersion, GeneratedAt: "2026-01-02T03:04:05.000Z", Plugins: []Entry{{ID: "com.a.b", Name: "B", Permissions: []string{}}}}

	require.NoError(t, WriteDirectory(path, d))

	loaded, err := LoadDirectory(path)
	require.NoError(t, err)
	assert.Equal(t, d, loaded)

	_, err = LoadDirectory(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

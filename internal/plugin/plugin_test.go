package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"com.a.b", "a.b", "com.acme.my-plugin", "x.0", "io.github.user-1.tool"}
	invalid := []string{"", "single", "com..b", ".com.a", "com.a.", "Com.a", "com.-a", "com.a-", "com.a_b", "com.a b"}

	for _, id := range valid {
		assert.True(t, IsValidIdentifier(id), id)
	}
	for _, id := range invalid {
		assert.False(t, IsValidIdentifier(id), id)
	}
}

func TestIsValidSemver(t *testing.T) {
	valid := []string{"1.0.0", "0.0.1", "10.20.30", "1.0.0-beta.1", "1.0.0+build.5", "1.0.0-rc.1+sha.abc"}
	invalid := []string{"", "1.0", "v1.0.0", "1.0.0.0", "1.0.0-", "1.0.0+", "a.b.c", "1.0.0 "}

	for _, v := range valid {
		assert.True(t, IsValidSemver(v), v)
	}
	for _, v := range invalid {
		assert.False(t, IsValidSemver(v), v)
	}
}

func TestSubmission(t *testing.T) {
	t.Run("parses and reports missing fields", func(t *testing.T) {
		sub, err := ParseSubmission([]byte(`{"id":"com.a.b","name":"B","author":""}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"description", "author", "repo"}, sub.MissingFields())
		assert.Equal(t, "com.a.b.json", sub.ExpectedFilename())
	})

	t.Run("whitespace is not empty", func(t *testing.T) {
		sub, err := ParseSubmission([]byte(`{"id":"com.a.b","name":" ","description":"d","author":"\t","repo":"r"}`))
		require.NoError(t, err)
		assert.Empty(t, sub.MissingFields())
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := ParseSubmission([]byte(`{"id":`))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrMalformedSubmission)
	})

	t.Run("wrong field type is malformed, not invalid JSON", func(t *testing.T) {
		_, err := ParseSubmission([]byte(`{"id":123,"name":"B"}`))
		assert.ErrorIs(t, err, ErrMalformedSubmission)

		_, err = ParseSubmission([]byte(`[1,2]`))
		assert.ErrorIs(t, err, ErrMalformedSubmission)
	})

	t.Run("lists json files in name order", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"b.json", "a.json", "notes.txt"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{}`), 0644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))

		paths, err := ListSubmissions(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, paths)
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		_, err := ListSubmissions(filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})
}

func TestCheckManifestShape(t *testing.T) {
	t.Run("accepts complete manifest", func(t *testing.T) {
		problems, err := CheckManifestShape([]byte(validManifest))
		require.NoError(t, err)
		assert.True(t, problems.OK())
	})

	t.Run("reports missing and empty fields in declaration order", func(t *testing.T) {
		problems, err := CheckManifestShape([]byte(`{"id":"com.a.b","name":"","author":null,"permissions":[]}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "version", "minAppVersion", "author", "description", "main"}, problems.Missing)
		assert.Empty(t, problems.Invalid)
	})

	t.Run("reports wrong types", func(t *testing.T) {
		data := `{"id":"com.a.b","name":"B","version":"1.0.0","minAppVersion":"1.0.0","author":"A",
			"description":"d","main":"main.js","permissions":"network"}`
		problems, err := CheckManifestShape([]byte(data))
		require.NoError(t, err)
		assert.Empty(t, problems.Missing)
		require.Len(t, problems.Invalid, 1)
		assert.Contains(t, problems.Invalid[0], "permissions")
	})
}

func TestLoadManifest(t *testing.T) {
	t.Run("decodes optional fields", func(t *testing.T) {
		m, err := LoadManifest([]byte(validManifest))
		require.NoError(t, err)
		assert.Equal(t, "com.a.b", m.ID)
		assert.Equal(t, []string{"read:goals", "network"}, m.Permissions)
		assert.Equal(t, "https://example.com/help", m.HelpURL)
		require.Len(t, m.SupportLinks, 1)
		assert.Equal(t, "Discord", m.SupportLinks[0].Name)
	})

	t.Run("rejects non-object", func(t *testing.T) {
		_, err := LoadManifest([]byte(`[1,2]`))
		assert.Error(t, err)
		_, err = LoadManifest([]byte(`null`))
		assert.Error(t, err)
	})

	t.Run("rejects missing required field", func(t *testing.T) {
		_, err := LoadManifest([]byte(`{"id":"com.a.b"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required fields")
	})
}

const validManifest = `{
	"id": "com.a.b",
	"name": "B",
	"version": "1.2.3",
	"minAppVersion": "2.0.0",
	"author": "A",
	"description": "d",
	"main": "main.js",
	"permissions": ["read:goals", "network"],
	"helpUrl": "https://example.com/help",
	"supportLinks": [{"name": "Discord", "url": "https://discord.gg/x"}],
	"tags": ["focus"],
	"category": "productivity"
}`

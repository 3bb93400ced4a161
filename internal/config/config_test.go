package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "plugins", cfg.SubmissionsDir)
	assert.Equal(t, "plugins.json", cfg.DirectoryOutput)
	assert.Equal(t, "validation-result.json", cfg.ValidationOutput)
	assert.Equal(t, LocaleAuto, cfg.Locale)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://raw.githubusercontent.com", cfg.Fetch.RawBaseURL)
	assert.Equal(t, "main", cfg.Fetch.DefaultBranch)
	assert.Equal(t, "master", cfg.Fetch.FallbackBranch)
}

func TestLoad(t *testing.T) {
	t.Run("explicit yaml file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "submissions_dir: submissions\nlocale: ko-KR\nfetch:\n  fallback_branch: trunk\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "submissions", cfg.SubmissionsDir)
		assert.Equal(t, "ko-KR", cfg.Locale)
		assert.Equal(t, "trunk", cfg.Fetch.FallbackBranch)
		assert.Equal(t, "main", cfg.Fetch.DefaultBranch)
	})

	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"log_level":"debug"}`), 0644))

		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("no file given ignores the home directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
		stray := filepath.Join(home, ".config", "plugin-directory")
		require.NoError(t, os.MkdirAll(stray, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(stray, "config.yaml"),
			[]byte("submissions_dir: elsewhere\nfetch:\n  raw_base_url: http://mirror.invalid\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("submissions_dir: cwd\n"), 0644))

		cfg, err := Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, NewConfig(), cfg)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
		assert.Error(t, err)
	})

	t.Run("empty required setting is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("submissions_dir: \"\"\n"), 0644))

		_, err := Load(path, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "submissions_dir")
	})
}

func TestLoad_FlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("submissions_dir: from-file\nlog_level: warn\n"), 0644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("submissions-dir", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--log-level", "debug"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from-file", cfg.SubmissionsDir)
	assert.Equal(t, LocaleAuto, cfg.Locale)
}

func TestLocale(t *testing.T) {
	cfg := NewConfig()
	cfg.Locale = "ko-KR"
	assert.Equal(t, "ko-KR", cfg.ResolveLocale())
	assert.Equal(t, language.MustParse("ko-KR"), cfg.LanguageTag())

	cfg.Locale = "not a locale!"
	assert.Equal(t, language.English, cfg.LanguageTag())

	cfg.Locale = LocaleAuto
	assert.NotEmpty(t, cfg.ResolveLocale())
}

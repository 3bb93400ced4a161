package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// LocaleAuto detects the locale from the operating system
const LocaleAuto = "auto"

// Config represents the tool configuration
type Config struct {
	SubmissionsDir   string      `mapstructure:"submissions_dir" json:"submissions_dir"`
	DirectoryOutput  string      `mapstructure:"directory_output" json:"directory_output"`
	ValidationOutput string      `mapstructure:"validation_output" json:"validation_output"`
	Locale           string      `mapstructure:"locale" json:"locale"` // "auto" or BCP 47 (e.g., "ko-KR", "en-US")
	LogLevel         string      `mapstructure:"log_level" json:"log_level"`
	Fetch            FetchConfig `mapstructure:"fetch" json:"fetch"`
}

// FetchConfig contains remote retrieval settings
type FetchConfig struct {
	RawBaseURL     string `mapstructure:"raw_base_url" json:"raw_base_url"`
	DefaultBranch  string `mapstructure:"default_branch" json:"default_branch"`
	FallbackBranch string `mapstructure:"fallback_branch" json:"fallback_branch"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("submissions_dir", "plugins")
	v.SetDefault("directory_output", "plugins.json")
	v.SetDefault("validation_output", "validation-result.json")
	v.SetDefault("locale", LocaleAuto)
	v.SetDefault("log_level", "info")
	v.SetDefault("fetch.raw_base_url", "https://raw.githubusercontent.com")
	v.SetDefault("fetch.default_branch", "main")
	v.SetDefault("fetch.fallback_branch", "master")
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// FlagBindings maps config keys to the command-line flags that override them
var FlagBindings = map[string]string{
	"submissions_dir": "submissions-dir",
	"log_level":       "log-level",
	"locale":          "locale",
}

// Load reads the configuration. Only an explicit configFile is read, and it must
// exist; with none, built-in defaults apply.
// Flags in FlagBindings that were set on the command line take precedence.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if flags != nil {
		for key, name := range FlagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path := configFile; path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required settings are present
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.SubmissionsDir) == "" {
		missing = append(missing, "submissions_dir")
	}
	if strings.TrimSpace(c.Fetch.RawBaseURL) == "" {
		missing = append(missing, "fetch.raw_base_url")
	}
	if strings.TrimSpace(c.Fetch.DefaultBranch) == "" {
		missing = append(missing, "fetch.default_branch")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: empty settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ResolveLocale returns the configured locale, detecting the system locale for "auto"
func (c *Config) ResolveLocale() string {
	if c.Locale != "" && c.Locale != LocaleAuto {
		return c.Locale
	}

	userLocale, err := locale.GetLocale()
	if err != nil || userLocale == "" {
		return "en-US"
	}
	return userLocale
}

// LanguageTag returns the resolved locale as a language tag, falling back to English
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.ResolveLocale())
	if err != nil {
		return language.English
	}
	return tag
}

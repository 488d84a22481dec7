// internal/config/config.go
//
// This package handles the kanikani settings file and the state directory
// next to it. Settings live in <user config dir>/kanikani/config.yaml; the
// environment and command-line flags can override them for one run.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// AppDir is the directory created under the user config dir.
	AppDir   = "kanikani"
	FileName = "config.yaml"

	DisplayPlain = "plain"
	DisplayTUI   = "tui"

	DefaultBaseURL  = "https://api.wanikani.com/v2"
	defaultLogLevel = "info"

	// EnvPrefix namespaces environment overrides, e.g. KANIKANI_DISPLAY.
	EnvPrefix = "KANIKANI"
	// LegacyTokenEnv is honored when KANIKANI_API_TOKEN is unset.
	LegacyTokenEnv = "WANIKANI_API_TOKEN"
)

// Keys shared by the settings file, viper, and the CLI flags.
const (
	KeyAPIToken = "api_token"
	KeyDisplay  = "display"
	KeyLogLevel = "log_level"
	KeyBaseURL  = "base_url"
)

// ErrNoToken means no API token is configured anywhere.
var ErrNoToken = errors.New("no API token configured; run `kanikani login`")

// Settings models config.yaml.
type Settings struct {
	Version  int    `yaml:"version" validate:"gte=1"`
	APIToken string `yaml:"api_token,omitempty" validate:"omitempty,printascii,excludesall= "`
	Display  string `yaml:"display" validate:"oneof=plain tui"`
	LogLevel string `yaml:"log_level" validate:"oneof=trace debug info warn warning error"`
	BaseURL  string `yaml:"base_url" validate:"url"`
}

// Config holds the runtime configuration for kanikani.
type Config struct {
	// Dir holds config.yaml and the state directory.
	Dir      string
	Settings Settings
}

// DefaultDir returns <user config dir>/kanikani.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate user config dir: %w", err)
	}
	return filepath.Join(base, AppDir), nil
}

// Load reads config.yaml from dir. A missing file yields defaults.
func Load(dir string) (*Config, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	cfg := &Config{Dir: filepath.Clean(dir), Settings: defaultSettings()}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the on-disk location of config.yaml.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, FileName)
}

// StateDir returns the directory for logs and the journal.
func (c *Config) StateDir() string {
	return filepath.Join(c.Dir, "state")
}

// Token returns the configured API token or ErrNoToken.
func (c *Config) Token() (string, error) {
	token := strings.TrimSpace(c.Settings.APIToken)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// UseTUI reports whether the full-screen display is selected.
func (c *Config) UseTUI() bool {
	return c.Settings.Display == DisplayTUI
}

// SetToken stores token and persists the settings file.
func (c *Config) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("config: token is required")
	}
	c.Settings.APIToken = token
	return c.Save()
}

// NewViper prepares environment lookups for every settings key. The caller
// may bind CLI flags to the same keys before ApplyOverrides.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyAPIToken, EnvPrefix+"_API_TOKEN", LegacyTokenEnv)
	_ = v.BindEnv(KeyDisplay)
	_ = v.BindEnv(KeyLogLevel)
	_ = v.BindEnv(KeyBaseURL)
	return v
}

// ApplyOverrides layers values set in v (changed flags, then environment)
// over the file settings. Overrides are not written back to disk.
func (c *Config) ApplyOverrides(v *viper.Viper) error {
	if v == nil {
		return nil
	}
	override := func(key string, target *string) {
		if v.IsSet(key) {
			if value := strings.TrimSpace(v.GetString(key)); value != "" {
				*target = value
			}
		}
	}
	override(KeyAPIToken, &c.Settings.APIToken)
	override(KeyDisplay, &c.Settings.Display)
	override(KeyLogLevel, &c.Settings.LogLevel)
	override(KeyBaseURL, &c.Settings.BaseURL)
	c.Settings.normalize()
	if err := c.Settings.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) load() error {
	path := c.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed Settings
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Settings = parsed
	return nil
}

// Save writes config.yaml. The file holds a token, so it is private to the
// user.
func (c *Config) Save() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Settings.applyDefaults()
	c.Settings.normalize()
	if err := c.Settings.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.Dir, 0o700); err != nil {
		return fmt.Errorf("config: ensure config dir: %w", err)
	}
	data, err := yaml.Marshal(c.Settings)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.Path(), data, 0o600); err != nil {
		return fmt.Errorf("config: write config: %w", err)
	}
	return nil
}

func defaultSettings() Settings {
	return Settings{
		Version:  1,
		Display:  DisplayPlain,
		LogLevel: defaultLogLevel,
		BaseURL:  DefaultBaseURL,
	}
}

func (s *Settings) applyDefaults() {
	defaults := defaultSettings()
	if s.Version == 0 {
		s.Version = defaults.Version
	}
	if strings.TrimSpace(s.Display) == "" {
		s.Display = defaults.Display
	}
	if strings.TrimSpace(s.LogLevel) == "" {
		s.LogLevel = defaults.LogLevel
	}
	if strings.TrimSpace(s.BaseURL) == "" {
		s.BaseURL = defaults.BaseURL
	}
}

func (s *Settings) normalize() {
	s.APIToken = strings.TrimSpace(s.APIToken)
	s.Display = strings.ToLower(strings.TrimSpace(s.Display))
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s Settings) validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "gte":
		return fmt.Errorf("%s must be >= %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Errorf("%s must be an absolute URL, got %q", fe.Field(), fe.Value())
	case "printascii", "excludesall":
		return fmt.Errorf("%s contains invalid characters", fe.Field())
	}
	return fmt.Errorf("%s is invalid (%s)", fe.Field(), fe.Tag())
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/handiism/paper-renamer/internal/apperr"
	"github.com/handiism/paper-renamer/internal/extract"
	"github.com/handiism/paper-renamer/internal/filename"
	"github.com/handiism/paper-renamer/internal/ollama"
	"github.com/handiism/paper-renamer/internal/pdftext"
	"github.com/handiism/paper-renamer/internal/rename"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PAPER_RENAMER"

// Keys shared by flags, environment variables and Settings.
const (
	KeyModel       = "model"
	KeyOllamaURL   = "ollama_url"
	KeyTimeout     = "timeout"
	KeyRetries     = "retries"
	KeyMaxPages    = "max_pages"
	KeyMaxChars    = "max_chars"
	KeyMaxStem     = "max_stem"
	KeyTemperature = "temperature"
	KeyDryRun      = "dry_run"
	KeyBackup      = "backup"
	KeyVerbose     = "verbose"
)

// Settings holds all configuration options.
type Settings struct {
	// Backend
	OllamaURL      string
	Model          string
	BackendTimeout time.Duration
	Temperature    float64

	// Extraction
	MaxRetries int
	MaxPages   int
	MaxChars   int
	MaxStem    int

	// Behaviour
	DryRun  bool
	Backup  bool
	Verbose bool
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OllamaURL:      ollama.DefaultBaseURL,
		BackendTimeout: 60 * time.Second,
		Temperature:    0,

		MaxRetries: 2,
		MaxPages:   pdftext.DefaultMaxPages,
		MaxChars:   pdftext.DefaultMaxChars,
		MaxStem:    filename.DefaultMaxStem,
	}
}

// flagKeys maps long flag names to settings keys.
var flagKeys = map[string]string{
	"model":       KeyModel,
	"ollama-url":  KeyOllamaURL,
	"timeout":     KeyTimeout,
	"retries":     KeyRetries,
	"max-pages":   KeyMaxPages,
	"max-chars":   KeyMaxChars,
	"max-stem":    KeyMaxStem,
	"temperature": KeyTemperature,
	"dry-run":     KeyDryRun,
	"backup":      KeyBackup,
	"verbose":     KeyVerbose,
}

// Bind registers defaults and environment variables on v and binds any of
// fs's flags that correspond to settings. fs may be nil.
func Bind(v *viper.Viper, fs *pflag.FlagSet) error {
	d := DefaultSettings()
	v.SetDefault(KeyModel, d.Model)
	v.SetDefault(KeyOllamaURL, d.OllamaURL)
	v.SetDefault(KeyTimeout, d.BackendTimeout)
	v.SetDefault(KeyRetries, d.MaxRetries)
	v.SetDefault(KeyMaxPages, d.MaxPages)
	v.SetDefault(KeyMaxChars, d.MaxChars)
	v.SetDefault(KeyMaxStem, d.MaxStem)
	v.SetDefault(KeyTemperature, d.Temperature)
	v.SetDefault(KeyDryRun, d.DryRun)
	v.SetDefault(KeyBackup, d.Backup)
	v.SetDefault(KeyVerbose, d.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyOllamaURL, EnvPrefix+"_OLLAMA_URL", "OLLAMA_HOST"); err != nil {
		return fmt.Errorf("bind env: %w", err)
	}

	if fs == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads settings from v and validates them.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		OllamaURL:      ollama.NormalizeBaseURL(v.GetString(KeyOllamaURL)),
		Model:          strings.TrimSpace(v.GetString(KeyModel)),
		BackendTimeout: v.GetDuration(KeyTimeout),
		Temperature:    v.GetFloat64(KeyTemperature),
		MaxRetries:     v.GetInt(KeyRetries),
		MaxPages:       v.GetInt(KeyMaxPages),
		MaxChars:       v.GetInt(KeyMaxChars),
		MaxStem:        v.GetInt(KeyMaxStem),
		DryRun:         v.GetBool(KeyDryRun),
		Backup:         v.GetBool(KeyBackup),
		Verbose:        v.GetBool(KeyVerbose),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects settings no run could succeed with.
func (s *Settings) Validate() error {
	switch {
	case s.BackendTimeout <= 0:
		return apperr.Newf(apperr.KindInvalidInput, "timeout must be positive, got %s", s.BackendTimeout)
	case s.MaxRetries < 0:
		return apperr.Newf(apperr.KindInvalidInput, "retries must not be negative, got %d", s.MaxRetries)
	case s.MaxPages < 1:
		return apperr.Newf(apperr.KindInvalidInput, "max-pages must be at least 1, got %d", s.MaxPages)
	case s.MaxChars < 1:
		return apperr.Newf(apperr.KindInvalidInput, "max-chars must be at least 1, got %d", s.MaxChars)
	case s.MaxStem < 20 || s.MaxStem > filename.MaxNameBytes-len(filename.Ext):
		return apperr.Newf(apperr.KindInvalidInput, "max-stem must be between 20 and %d, got %d",
			filename.MaxNameBytes-len(filename.Ext), s.MaxStem)
	case s.Temperature < 0 || s.Temperature > 2:
		return apperr.Newf(apperr.KindInvalidInput, "temperature must be between 0 and 2, got %g", s.Temperature)
	}
	return nil
}

// ToOllamaConfig converts settings to the backend client configuration.
func (s *Settings) ToOllamaConfig() ollama.Config {
	return ollama.Config{
		BaseURL:     s.OllamaURL,
		Timeout:     s.BackendTimeout,
		Temperature: float32(s.Temperature),
	}
}

// ToExtractOptions converts settings to orchestrator options.
func (s *Settings) ToExtractOptions() extract.Options {
	return extract.Options{
		MaxRetries:     s.MaxRetries,
		BackendTimeout: s.BackendTimeout,
		MaxStem:        s.MaxStem,
	}
}

// ToRenameOptions converts settings to executor options.
func (s *Settings) ToRenameOptions() rename.Options {
	return rename.Options{Backup: s.Backup}
}

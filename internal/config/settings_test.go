package config

import (
	"testing"
	"time"

	"github.com/handiism/paper-renamer/internal/apperr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, fs *pflag.FlagSet) (*Settings, error) {
	t.Helper()
	v := viper.New()
	require.NoError(t, Bind(v, fs))
	return Load(v)
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("model", "m", "", "")
	fs.String("ollama-url", "", "")
	fs.Duration("timeout", 0, "")
	fs.Int("retries", 0, "")
	fs.Bool("backup", false, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")

	got, err := load(t, nil)

	require.NoError(t, err)
	want := DefaultSettings()
	assert.Equal(t, want, got)
	assert.Equal(t, 2, got.MaxRetries)
	assert.Equal(t, 60*time.Second, got.BackendTimeout)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PAPER_RENAMER_MODEL", "mistral")
	t.Setenv("PAPER_RENAMER_TIMEOUT", "90s")
	t.Setenv("PAPER_RENAMER_RETRIES", "4")
	t.Setenv("PAPER_RENAMER_BACKUP", "true")
	t.Setenv("OLLAMA_HOST", "gpu-box:11434")

	got, err := load(t, nil)

	require.NoError(t, err)
	assert.Equal(t, "mistral", got.Model)
	assert.Equal(t, 90*time.Second, got.BackendTimeout)
	assert.Equal(t, 4, got.MaxRetries)
	assert.True(t, got.Backup)
	assert.Equal(t, "http://gpu-box:11434", got.OllamaURL)
}

func TestLoad_PrefixedURLBeatsOllamaHost(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "a:1")
	t.Setenv("PAPER_RENAMER_OLLAMA_URL", "http://b:2")

	got, err := load(t, nil)

	require.NoError(t, err)
	assert.Equal(t, "http://b:2", got.OllamaURL)
}

func TestLoad_FlagsBeatEnv(t *testing.T) {
	t.Setenv("PAPER_RENAMER_MODEL", "mistral")
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"-m", "llama3.2", "--retries", "0", "--timeout", "5s"}))

	got, err := load(t, fs)

	require.NoError(t, err)
	assert.Equal(t, "llama3.2", got.Model)
	assert.Equal(t, 0, got.MaxRetries)
	assert.Equal(t, 5*time.Second, got.BackendTimeout)
}

func TestLoad_UnsetFlagsKeepDefaults(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	got, err := load(t, fs)

	require.NoError(t, err)
	assert.Equal(t, 2, got.MaxRetries)
	assert.Equal(t, 60*time.Second, got.BackendTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero timeout", func(s *Settings) { s.BackendTimeout = 0 }},
		{"negative retries", func(s *Settings) { s.MaxRetries = -1 }},
		{"no pages", func(s *Settings) { s.MaxPages = 0 }},
		{"no chars", func(s *Settings) { s.MaxChars = 0 }},
		{"stem too long", func(s *Settings) { s.MaxStem = 300 }},
		{"stem too short", func(s *Settings) { s.MaxStem = 5 }},
		{"temperature", func(s *Settings) { s.Temperature = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			assert.ErrorIs(t, s.Validate(), apperr.ErrInvalidInput)
		})
	}
}

func TestConversions(t *testing.T) {
	s := DefaultSettings()
	s.Backup = true
	s.MaxRetries = 5

	assert.Equal(t, s.OllamaURL, s.ToOllamaConfig().BaseURL)
	assert.Equal(t, 5, s.ToExtractOptions().MaxRetries)
	assert.True(t, s.ToRenameOptions().Backup)
}

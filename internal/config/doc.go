// Package config provides configuration management for paper-renamer.
//
// Settings come from three layers, later ones winning:
//   - built-in defaults (DefaultSettings)
//   - environment variables (PAPER_RENAMER_*, plus OLLAMA_HOST)
//   - command-line flags bound to the same viper instance
//
// There is deliberately no configuration file.
//
// # Loading
//
//	v := viper.New()
//	config.Bind(v, cmd.Flags())
//	settings, err := config.Load(v)
//
// # Environment
//
//	PAPER_RENAMER_MODEL          model to use instead of auto-selection
//	PAPER_RENAMER_OLLAMA_URL     server address (falls back to OLLAMA_HOST)
//	PAPER_RENAMER_TIMEOUT        per-call model timeout, e.g. 90s
//	PAPER_RENAMER_RETRIES        extra attempts after a rejected response
//	PAPER_RENAMER_MAX_PAGES      pages of text sent to the model
//	PAPER_RENAMER_BACKUP         keep <file>.bak before renaming
package config

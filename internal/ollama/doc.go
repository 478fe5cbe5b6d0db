// Package ollama talks to a local Ollama server.
//
// Two surfaces are used:
//   - the native API (/api/ps, /api/tags) to discover models
//   - the OpenAI-compatible endpoint (/v1) to generate completions
//
// # Basic Usage
//
//	client := ollama.NewClient(ollama.DefaultConfig(), logger)
//
//	installed, err := client.ListInstalled(ctx)
//
//	raw, err := client.Generate(ctx, "llama3.2", prompt)
//
// Every failure to reach the server, a non-2xx status and a timeout are
// reported as apperr.KindBackendUnreachable. A cancelled context is
// returned unchanged.
package ollama

package app

import (
	"io"
	"os"

	"github.com/handiism/paper-renamer/internal/config"
	"github.com/handiism/paper-renamer/internal/extract"
	"github.com/handiism/paper-renamer/internal/ollama"
	"github.com/handiism/paper-renamer/internal/pdftext"
	"github.com/handiism/paper-renamer/internal/rename"
	"github.com/handiism/paper-renamer/internal/tui"
	"go.uber.org/zap"
)

// New wires a Runner against a real Ollama server, the filesystem and the
// terminal on stdin/stdout.
func New(settings *config.Settings, log *zap.Logger, stdin *os.File, stdout io.Writer, onProgress func(extract.ProgressEvent)) *Runner {
	client := ollama.NewClient(settings.ToOllamaConfig(), log.Named("ollama"))
	pdf := pdftext.NewExtractor(settings.MaxPages, settings.MaxChars, log.Named("pdftext"))
	orch := extract.NewOrchestrator(pdf, client, settings.ToExtractOptions(), log.Named("extract"), onProgress)

	return NewRunner(Deps{
		Models:    client,
		Proposals: orch,
		Renamer:   rename.NewExecutor(settings.ToRenameOptions(), log.Named("rename")),
		Drive:     tui.Pick(stdin),
		In:        stdin,
		Out:       stdout,
		Log:       log,
	}, Options{
		Model:  settings.Model,
		DryRun: settings.DryRun,
	})
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/paper-renamer/internal/app"
	"github.com/handiism/paper-renamer/internal/apperr"
	"github.com/handiism/paper-renamer/internal/config"
	"github.com/handiism/paper-renamer/internal/extract"
	"github.com/handiism/paper-renamer/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdin *os.File, stdout, stderr io.Writer) int {
	v := viper.New()
	cmd := newRootCommand(v, stdin, stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return apperr.ExitOK
	}

	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, "\nInterrupted, file left unchanged.")
		return apperr.ExitInterrupted
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if remedy := apperr.RemedyOf(err); remedy != "" {
		fmt.Fprintf(stderr, "Hint: %s\n", remedy)
	}
	return apperr.ExitCode(err)
}

func newRootCommand(v *viper.Viper, stdin *os.File, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paper-renamer [flags] FILE.pdf",
		Short: "Rename an academic paper PDF to author-year-title.pdf",
		Long: `paper-renamer reads the first pages of a paper, asks a local Ollama model
for the first author, year and title, and proposes a name such as

  vaswani-2017-attention-is-all-you-need.pdf

Nothing is renamed until you accept the proposal. Existing files are never
overwritten.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return apperr.Wrap(apperr.KindInvalidInput, "usage: "+cmd.UseLine(), err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Bind(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(v)
			if err != nil {
				return err
			}

			log := logging.New(settings.Verbose, stderr)
			defer log.Sync()

			runner := app.New(settings, log, stdin, stdout, progressPrinter(stdout, settings.Verbose))
			_, err = runner.Run(cmd.Context(), args[0])
			return err
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperr.Wrap(apperr.KindInvalidInput, "usage: "+cmd.UseLine(), err)
	})

	flags := cmd.Flags()
	flags.StringP("model", "m", "", "Ollama model to use (default: first running, else first installed)")
	flags.String("ollama-url", "", "Ollama server address (default $OLLAMA_HOST or http://localhost:11434)")
	flags.Duration("timeout", 0, "per-call model timeout (default 60s)")
	flags.Int("retries", 0, "extra attempts after a rejected model response (default 2)")
	flags.Int("max-pages", 0, "number of leading pages sent to the model (default 3)")
	flags.Bool("dry-run", false, "show the proposed name without renaming")
	flags.Bool("backup", false, "keep a copy of the original as FILE.pdf.bak")
	flags.BoolP("verbose", "v", false, "show verbose output and debug logs")
	return cmd
}

func progressPrinter(w io.Writer, verbose bool) func(extract.ProgressEvent) {
	return func(event extract.ProgressEvent) {
		if event.Level == extract.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case extract.LevelError:
			prefix = "✗ "
		case extract.LevelWarning:
			prefix = "! "
		case extract.LevelSuccess:
			prefix = "✓ "
		case extract.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		fmt.Fprintln(w, prefix+event.Message)
	}
}

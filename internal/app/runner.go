package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/paper-renamer/internal/apperr"
	"github.com/handiism/paper-renamer/internal/confirm"
	"github.com/handiism/paper-renamer/internal/filename"
	"github.com/handiism/paper-renamer/internal/model"
	"github.com/handiism/paper-renamer/internal/selector"
	"github.com/handiism/paper-renamer/internal/tui"
	"go.uber.org/zap"
)

// ProposalSource produces a filename proposal for a PDF.
type ProposalSource interface {
	Extract(ctx context.Context, pdfPath string, choice model.ModelChoice) (model.FilenameProposal, error)
}

// Renamer moves a file to a new name in its directory.
type Renamer interface {
	Rename(sourcePath, targetName string) (string, error)
}

// Deps are the collaborators of a Runner.
type Deps struct {
	Models    selector.Lister
	Proposals ProposalSource
	Renamer   Renamer
	Drive     tui.Driver

	In  io.Reader
	Out io.Writer
	Log *zap.Logger
}

// Options tunes a Runner.
type Options struct {
	// Model, when set, skips model discovery.
	Model  string
	DryRun bool
}

// Outcome describes how a run ended.
type Outcome struct {
	State    confirm.State
	Proposal model.FilenameProposal
	Model    model.ModelChoice
	NewPath  string
	DryRun   bool
}

// Runner executes the rename pipeline.
type Runner struct {
	deps Deps
	opts Options
}

// NewRunner creates a Runner from explicit dependencies.
func NewRunner(deps Deps, opts Options) *Runner {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.Drive == nil {
		deps.Drive = tui.RunPlain
	}
	return &Runner{deps: deps, opts: opts}
}

// Run renames the PDF at pdfPath. A cancelled confirmation returns a nil
// error with Outcome.State set to confirm.Cancelled.
func (r *Runner) Run(ctx context.Context, pdfPath string) (Outcome, error) {
	if err := checkInput(pdfPath); err != nil {
		return Outcome{}, err
	}

	choice, err := selector.Select(ctx, r.opts.Model, r.deps.Models, r.deps.Log)
	if err != nil {
		return Outcome{}, err
	}
	fmt.Fprintf(r.deps.Out, "Model: %s (%s)\n", choice.Name, choice.Origin)
	out := Outcome{Model: choice}

	var session confirm.Session
	var extractErr error
	proposal, err := r.deps.Proposals.Extract(ctx, pdfPath, choice)
	switch {
	case err == nil:
		r.printMetadata(proposal.Raw)
		session = confirm.New(proposal)
	case apperr.KindOf(err) == apperr.KindMetadataExtractionFailed && !r.opts.DryRun:
		extractErr = err
		fmt.Fprintf(r.deps.Out, "Could not extract metadata: %v\n", err)
		fmt.Fprintln(r.deps.Out, "Type the new name by hand, or cancel to leave the file as it is.")
		session = confirm.NewManual(pdfPath, err)
	default:
		return out, err
	}

	if r.opts.DryRun {
		fmt.Fprintf(r.deps.Out, "Proposed: %s\n", proposal.Formatted)
		fmt.Fprintf(r.deps.Out, "Would rename to: %s\n", proposal.TargetPath())
		fmt.Fprintln(r.deps.Out, "[Dry run - not renaming]")
		out.State = confirm.Proposed
		out.Proposal = proposal
		out.DryRun = true
		return out, nil
	}

	final, err := r.deps.Drive(ctx, session, r.deps.In, r.deps.Out)
	out.State = final.State
	out.Proposal = final.Proposal
	if err != nil {
		return out, err
	}

	name, ok := final.Target()
	if !ok {
		r.deps.Log.Debug("app.cancelled", zap.String("path", pdfPath))
		if extractErr != nil {
			return out, extractErr
		}
		return out, nil
	}

	// Past this point the rename runs to completion even if the user
	// interrupts; it only starts while the context is live.
	if err := ctx.Err(); err != nil {
		return out, err
	}
	newPath, err := r.deps.Renamer.Rename(final.Proposal.SourcePath, name)
	if err != nil {
		return out, err
	}
	out.NewPath = newPath
	fmt.Fprintf(r.deps.Out, "Renamed: %s -> %s\n", filepath.Base(pdfPath), filepath.Base(newPath))
	return out, nil
}

func (r *Runner) printMetadata(m model.PaperMetadata) {
	fmt.Fprintln(r.deps.Out, "Extracted metadata:")
	fmt.Fprintf(r.deps.Out, "  Author: %s\n", m.Author)
	fmt.Fprintf(r.deps.Out, "  Year:   %d\n", m.Year)
	fmt.Fprintf(r.deps.Out, "  Title:  %s\n", m.Title)
}

func checkInput(pdfPath string) error {
	if strings.TrimSpace(pdfPath) == "" {
		return apperr.New(apperr.KindInvalidInput, "no file given")
	}
	if !strings.EqualFold(filepath.Ext(pdfPath), filename.Ext) {
		return apperr.Newf(apperr.KindInvalidInput, "%s is not a .pdf file", pdfPath)
	}
	info, err := os.Stat(pdfPath)
	if errors.Is(err, fs.ErrNotExist) {
		return apperr.Newf(apperr.KindInvalidInput, "%s does not exist", pdfPath)
	}
	if err != nil {
		return apperr.Wrap(apperr.KindInvalidInput, "cannot read "+pdfPath, err)
	}
	if !info.Mode().IsRegular() {
		return apperr.Newf(apperr.KindInvalidInput, "%s is not a regular file", pdfPath)
	}
	return nil
}

package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/handiism/paper-renamer/internal/apperr"
	"github.com/handiism/paper-renamer/internal/filename"
	"github.com/handiism/paper-renamer/internal/metadata"
	"github.com/handiism/paper-renamer/internal/model"
	"github.com/handiism/paper-renamer/internal/pdftext"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent is a user-facing status update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// TextExtractor reads the leading text of a PDF.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (pdftext.Document, error)
}

// Generator runs a prompt against a model.
type Generator interface {
	Generate(ctx context.Context, modelName, prompt string) (string, error)
}

// Options tunes an Orchestrator.
type Options struct {
	// MaxRetries is how many extra attempts follow a rejected response.
	MaxRetries int
	// BackendTimeout bounds each model call.
	BackendTimeout time.Duration
	// MaxStem bounds the formatted filename stem.
	MaxStem int
}

// DefaultOptions returns the stock retry and timeout settings.
func DefaultOptions() Options {
	return Options{
		MaxRetries:     2,
		BackendTimeout: 60 * time.Second,
		MaxStem:        filename.DefaultMaxStem,
	}
}

// Orchestrator coordinates text extraction, the model call and validation.
type Orchestrator struct {
	pdf  TextExtractor
	llm  Generator
	opts Options
	log  *zap.Logger
	now  func() time.Time

	onProgress func(ProgressEvent)
}

// NewOrchestrator creates an Orchestrator. onProgress may be nil.
func NewOrchestrator(pdf TextExtractor, llm Generator, opts Options, log *zap.Logger, onProgress func(ProgressEvent)) *Orchestrator {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BackendTimeout <= 0 {
		opts.BackendTimeout = DefaultOptions().BackendTimeout
	}
	if opts.MaxStem <= 0 {
		opts.MaxStem = filename.DefaultMaxStem
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		pdf:        pdf,
		llm:        llm,
		opts:       opts,
		log:        log,
		now:        time.Now,
		onProgress: onProgress,
	}
}

// Extract produces a filename proposal for the PDF at pdfPath using choice.
func (o *Orchestrator) Extract(ctx context.Context, pdfPath string, choice model.ModelChoice) (model.FilenameProposal, error) {
	o.progress(ProgressEvent{Message: fmt.Sprintf("Reading %s", pdfPath), Level: LevelVerbose})
	doc, err := o.pdf.Extract(ctx, pdfPath)
	if err != nil {
		return model.FilenameProposal{}, err
	}
	o.progress(ProgressEvent{Message: fmt.Sprintf("Read %d page(s), %d characters", doc.Pages, len([]rune(doc.Text))), Level: LevelVerbose})

	prompt := BuildPrompt(doc)
	meta, err := o.query(ctx, prompt, choice)
	if err != nil {
		return model.FilenameProposal{}, err
	}

	proposal := model.FilenameProposal{
		Raw:        meta,
		Formatted:  filename.Format(meta, o.opts.MaxStem),
		SourcePath: pdfPath,
	}
	o.progress(ProgressEvent{Message: fmt.Sprintf("Proposed name: %s", proposal.Formatted), Level: LevelSuccess})
	return proposal, nil
}

// query asks the model until a response validates or the attempts run out.
func (o *Orchestrator) query(ctx context.Context, prompt string, choice model.ModelChoice) (model.PaperMetadata, error) {
	attempts := o.opts.MaxRetries + 1
	var reasons error
	var lastErr error

	for tries := 0; tries < attempts; tries++ {
		o.progress(ProgressEvent{
			Message: fmt.Sprintf("Asking %s (attempt %d/%d)", choice.Name, tries+1, attempts),
			Level:   LevelInfo,
		})

		raw, err := o.generate(ctx, prompt, choice.Name)
		if err != nil {
			return model.PaperMetadata{}, err
		}

		meta, err := metadata.Validate(raw, o.now())
		if err == nil {
			return meta, nil
		}

		lastErr = err
		reasons = multierr.Append(reasons, fmt.Errorf("attempt %d: %w", tries+1, err))
		o.log.Debug("extract.rejected",
			zap.Int("attempt", tries+1),
			zap.String("kind", apperr.KindOf(err).String()),
			zap.Error(err),
			zap.String("response", raw),
		)
		if tries+1 < attempts {
			o.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d/%d: %v", tries+1, o.opts.MaxRetries, err), Level: LevelWarning})
		}
	}

	o.log.Warn("extract.exhausted", zap.Int("attempts", attempts), zap.Errors("reasons", multierr.Errors(reasons)))
	o.progress(ProgressEvent{Message: fmt.Sprintf("Giving up after %d attempt(s)", attempts), Level: LevelError})
	return model.PaperMetadata{}, apperr.Wrap(apperr.KindMetadataExtractionFailed,
		fmt.Sprintf("no valid metadata after %d attempt(s)", attempts), lastErr).
		WithRemedy("enter the filename manually, or retry with another model via --model")
}

func (o *Orchestrator) generate(ctx context.Context, prompt, modelName string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.opts.BackendTimeout)
	defer cancel()

	raw, err := o.llm.Generate(callCtx, modelName, prompt)
	if err == nil {
		return raw, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if apperr.KindOf(err) == apperr.KindBackendUnreachable {
		return "", err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "", apperr.Wrap(apperr.KindBackendUnreachable,
			fmt.Sprintf("model did not answer within %s", o.opts.BackendTimeout), err)
	}
	return "", apperr.Wrap(apperr.KindBackendUnreachable, "generate", err)
}

func (o *Orchestrator) progress(event ProgressEvent) {
	if o.onProgress != nil {
		o.onProgress(event)
	}
}

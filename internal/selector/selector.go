package selector

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/handiism/paper-renamer/internal/apperr"
	"github.com/handiism/paper-renamer/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	remedyPull  = "install a model first, e.g.: ollama pull llama3.2"
	remedyServe = "start the Ollama backend with: ollama serve"
)

// Lister reports the models known to the backend.
type Lister interface {
	ListRunning(ctx context.Context) ([]string, error)
	ListInstalled(ctx context.Context) ([]string, error)
}

// Choose applies the selection policy. It performs no I/O.
func Choose(requested string, running, installed []string) (model.ModelChoice, error) {
	if name := strings.TrimSpace(requested); name != "" {
		return model.ModelChoice{Name: name, Origin: model.OriginRequested}, nil
	}
	if name, ok := first(running); ok {
		return model.ModelChoice{Name: name, Origin: model.OriginRunning}, nil
	}
	if name, ok := first(installed); ok {
		return model.ModelChoice{Name: name, Origin: model.OriginInstalled}, nil
	}
	return model.ModelChoice{}, apperr.New(apperr.KindNoModelAvailable, "no running or installed model found").
		WithRemedy(remedyPull)
}

// Select queries l when no model was requested and applies Choose.
//
// The installed list is only needed when nothing is running. It is
// prefetched alongside the running list and abandoned, errors included, as
// soon as a running model turns up. Failing to list running models only
// loses the preference for a warm model; failing to list installed models
// with nothing running means the backend is not there.
func Select(ctx context.Context, requested string, l Lister, log *zap.Logger) (model.ModelChoice, error) {
	if strings.TrimSpace(requested) != "" {
		return Choose(requested, nil, nil)
	}
	if log == nil {
		log = zap.NewNop()
	}

	var running, installed []string
	var installedErr error
	g, gctx := errgroup.WithContext(ctx)
	installedCtx, cancelInstalled := context.WithCancel(gctx)
	defer cancelInstalled()

	g.Go(func() error {
		names, err := l.ListRunning(gctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("selector.running_unavailable", zap.Error(err))
			return nil
		}
		running = names
		if _, ok := first(names); ok {
			cancelInstalled()
		}
		return nil
	})
	g.Go(func() error {
		installed, installedErr = l.ListInstalled(installedCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.ModelChoice{}, err
	}
	if ctx.Err() != nil {
		return model.ModelChoice{}, ctx.Err()
	}

	if _, ok := first(running); ok {
		installed, installedErr = nil, nil
	}
	if installedErr != nil {
		if apperr.KindOf(installedErr) == apperr.KindBackendUnreachable {
			return model.ModelChoice{}, withServeRemedy(installedErr)
		}
		return model.ModelChoice{}, apperr.Wrap(apperr.KindBackendUnreachable, "list installed models", installedErr).
			WithRemedy(remedyServe)
	}

	choice, err := Choose("", running, installed)
	if err == nil {
		log.Debug("selector.chosen", zap.String("model", choice.Name), zap.Stringer("origin", choice.Origin))
	}
	return choice, err
}

func withServeRemedy(err error) error {
	var e *apperr.Error
	if errors.As(err, &e) && e.Remedy == "" {
		return e.WithRemedy(remedyServe)
	}
	return err
}

func first(names []string) (string, bool) {
	var clean []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	if len(clean) == 0 {
		return "", false
	}
	return slices.Min(clean), true
}

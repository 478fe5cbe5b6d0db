package selector

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/handiism/paper-renamer/internal/apperr"
	"github.com/handiism/paper-renamer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	running      []string
	installed    []string
	runningErr   error
	installedErr error
	calls        atomic.Int32
}

func (f *fakeLister) ListRunning(ctx context.Context) ([]string, error) {
	f.calls.Add(1)
	return f.running, f.runningErr
}

func (f *fakeLister) ListInstalled(ctx context.Context) ([]string, error) {
	f.calls.Add(1)
	return f.installed, f.installedErr
}

func TestChoose(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		running   []string
		installed []string
		want      model.ModelChoice
	}{
		{
			name:      "requested wins",
			requested: "mistral",
			running:   []string{"llama3"},
			installed: []string{"gemma"},
			want:      model.ModelChoice{Name: "mistral", Origin: model.OriginRequested},
		},
		{
			name:      "requested is trimmed",
			requested: "  mistral:7b ",
			want:      model.ModelChoice{Name: "mistral:7b", Origin: model.OriginRequested},
		},
		{
			name:      "running beats installed",
			running:   []string{"qwen2", "llama3"},
			installed: []string{"aya"},
			want:      model.ModelChoice{Name: "llama3", Origin: model.OriginRunning},
		},
		{
			name:      "first installed",
			installed: []string{"phi3", "gemma2", "llama3"},
			want:      model.ModelChoice{Name: "gemma2", Origin: model.OriginInstalled},
		},
		{
			name:      "blank running names ignored",
			running:   []string{" "},
			installed: []string{"llama3"},
			want:      model.ModelChoice{Name: "llama3", Origin: model.OriginInstalled},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Choose(tt.requested, tt.running, tt.installed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChoose_IsOrderIndependent(t *testing.T) {
	a, err := Choose("", []string{"b", "a", "c"}, nil)
	require.NoError(t, err)
	b, err := Choose("", []string{"c", "b", "a"}, nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestChoose_NoModel(t *testing.T) {
	_, err := Choose("", nil, nil)

	assert.ErrorIs(t, err, apperr.ErrNoModelAvailable)
	assert.Contains(t, apperr.RemedyOf(err), "ollama pull")
}

func TestSelect_RequestedSkipsBackend(t *testing.T) {
	l := &fakeLister{installedErr: errors.New("should not be called")}

	got, err := Select(context.Background(), "llama3", l, nil)

	require.NoError(t, err)
	assert.Equal(t, model.OriginRequested, got.Origin)
	assert.Zero(t, l.calls.Load())
}

func TestSelect_PrefersRunning(t *testing.T) {
	l := &fakeLister{running: []string{"mistral"}, installed: []string{"gemma", "mistral"}}

	got, err := Select(context.Background(), "", l, nil)

	require.NoError(t, err)
	assert.Equal(t, model.ModelChoice{Name: "mistral", Origin: model.OriginRunning}, got)
}

func TestSelect_ToleratesRunningFailure(t *testing.T) {
	l := &fakeLister{runningErr: errors.New("404"), installed: []string{"llama3"}}

	got, err := Select(context.Background(), "", l, nil)

	require.NoError(t, err)
	assert.Equal(t, model.ModelChoice{Name: "llama3", Origin: model.OriginInstalled}, got)
}

func TestSelect_BackendDown(t *testing.T) {
	l := &fakeLister{installedErr: errors.New("connection refused")}

	_, err := Select(context.Background(), "", l, nil)

	assert.ErrorIs(t, err, apperr.ErrBackendUnreachable)
	assert.Contains(t, apperr.RemedyOf(err), "ollama serve")
}

func TestSelect_NothingInstalled(t *testing.T) {
	l := &fakeLister{}

	_, err := Select(context.Background(), "", l, nil)

	assert.ErrorIs(t, err, apperr.ErrNoModelAvailable)
}

func TestSelect_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := &fakeLister{installedErr: context.Canceled}

	_, err := Select(ctx, "", l, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelect_RunningWinsWhenInstalledFails(t *testing.T) {
	l := &fakeLister{running: []string{"llama3.2"}, installedErr: errors.New("HTTP 500")}

	got, err := Select(context.Background(), "", l, nil)

	require.NoError(t, err)
	assert.Equal(t, model.ModelChoice{Name: "llama3.2", Origin: model.OriginRunning}, got)
}

type slowInstalledLister struct {
	running []string
}

func (s slowInstalledLister) ListRunning(ctx context.Context) ([]string, error) {
	return s.running, nil
}

func (s slowInstalledLister) ListInstalled(ctx context.Context) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestSelect_RunningModelAbandonsInstalledListing(t *testing.T) {
	got, err := Select(context.Background(), "", slowInstalledLister{running: []string{"mistral"}}, nil)

	require.NoError(t, err)
	assert.Equal(t, model.ModelChoice{Name: "mistral", Origin: model.OriginRunning}, got)
}

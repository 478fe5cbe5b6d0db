package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/handiism/paper-renamer/internal/apperr"
	"github.com/handiism/paper-renamer/internal/extract"
	"github.com/stretchr/testify/assert"
)

func TestExecute_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no file", nil, apperr.ExitUsage},
		{"two files", []string{"a.pdf", "b.pdf"}, apperr.ExitUsage},
		{"unknown flag", []string{"--nope", "a.pdf"}, apperr.ExitUsage},
		{"not a pdf", []string{"notes.txt"}, apperr.ExitUsage},
		{"bad retries", []string{"--retries", "-1", "a.pdf"}, apperr.ExitUsage},
		{"help", []string{"-h"}, apperr.ExitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			got := execute(context.Background(), tt.args, nil, &stdout, &stderr)
			assert.Equal(t, tt.want, got, stderr.String())
		})
	}
}

func TestExecute_HelpListsFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer

	execute(context.Background(), []string{"--help"}, nil, &stdout, &stderr)

	for _, flag := range []string{"--model", "--ollama-url", "--timeout", "--retries", "--dry-run", "--backup", "--verbose"} {
		assert.Contains(t, stdout.String(), flag)
	}
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	quiet := progressPrinter(&buf, false)

	quiet(extract.ProgressEvent{Message: "reading", Level: extract.LevelVerbose})
	quiet(extract.ProgressEvent{Message: "asking", Level: extract.LevelInfo})
	quiet(extract.ProgressEvent{Message: "done", Level: extract.LevelSuccess})

	assert.NotContains(t, buf.String(), "reading")
	assert.Contains(t, buf.String(), "› asking")
	assert.Contains(t, buf.String(), "✓ done")
}

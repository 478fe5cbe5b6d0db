package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilenameProposal_TargetPath(t *testing.T) {
	p := FilenameProposal{
		Formatted:  "vaswani-2017-attention-is-all-you-need.pdf",
		SourcePath: filepath.Join("papers", "1706.03762.pdf"),
	}

	assert.Equal(t, filepath.Join("papers", "vaswani-2017-attention-is-all-you-need.pdf"), p.TargetPath())
	assert.Equal(t, "1706.03762.pdf", p.SourceName())
}

func TestFilenameProposal_WithName(t *testing.T) {
	meta := PaperMetadata{Author: "Vaswani", Year: 2017, Title: "Attention Is All You Need"}
	p := FilenameProposal{Raw: meta, Formatted: "vaswani-2017-attention.pdf", SourcePath: "a.pdf"}

	edited := p.WithName("vaswani-2017-transformer.pdf")

	assert.Equal(t, "vaswani-2017-transformer.pdf", edited.Formatted)
	assert.True(t, edited.Edited)
	assert.Equal(t, meta, edited.Raw)
	assert.False(t, p.Edited, "original proposal must not change")
}

func TestOrigin_String(t *testing.T) {
	tests := []struct {
		origin Origin
		want   string
	}{
		{OriginRequested, "requested"},
		{OriginRunning, "running"},
		{OriginInstalled, "installed"},
		{Origin(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.origin.String())
		})
	}
}

func TestPaperMetadata_IsZero(t *testing.T) {
	assert.True(t, PaperMetadata{}.IsZero())
	assert.False(t, PaperMetadata{Author: "Knuth"}.IsZero())
}

package confirm

import (
	"testing"

	"github.com/handiism/paper-renamer/internal/filename"
	"github.com/handiism/paper-renamer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var proposal = model.FilenameProposal{
	Raw:        model.PaperMetadata{Author: "Vaswani", Year: 2017, Title: "Attention Is All You Need"},
	Formatted:  "vaswani-2017-attention-is-all-you-need.pdf",
	SourcePath: "/papers/1706.03762.pdf",
}

func TestStep_Transitions(t *testing.T) {
	tests := []struct {
		name  string
		from  Session
		steps []Decision
		want  State
	}{
		{"accept", New(proposal), []Decision{Accept()}, Accepted},
		{"cancel", New(proposal), []Decision{Cancel()}, Cancelled},
		{"enter edit", New(proposal), []Decision{Edit("")}, Editing},
		{"edit then cancel", New(proposal), []Decision{Edit(""), Cancel()}, Cancelled},
		{"edit valid back to proposed", New(proposal), []Decision{Edit(""), Edit("doe-2020-x.pdf")}, Proposed},
		{"edit invalid stays editing", New(proposal), []Decision{Edit(""), Edit("Bad Name.pdf")}, Editing},
		{"edit valid then accept", New(proposal), []Decision{Edit(""), Edit("doe-2020-x.pdf"), Accept()}, Accepted},
		{"accepted is terminal", New(proposal), []Decision{Accept(), Cancel(), Edit("")}, Accepted},
		{"cancelled is terminal", New(proposal), []Decision{Cancel(), Accept()}, Cancelled},
		{"manual starts editing", NewManual("/p/a.pdf", nil), nil, Editing},
		{"manual cancel", NewManual("/p/a.pdf", nil), []Decision{Cancel()}, Cancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.from
			for _, d := range tt.steps {
				s = s.Step(d)
			}
			assert.Equal(t, tt.want, s.State)
		})
	}
}

func TestStep_EditIsNeverAutoAccepted(t *testing.T) {
	s := New(proposal).Step(Edit("")).Step(Edit("smith-1999-a-study.pdf"))

	assert.Equal(t, Proposed, s.State)
	assert.Equal(t, "smith-1999-a-study.pdf", s.Proposal.Formatted)
	assert.True(t, s.Proposal.Edited)
	assert.Equal(t, proposal.SourcePath, s.Proposal.SourcePath)
	_, ok := s.Target()
	assert.False(t, ok)
}

func TestStep_EditWithNameFromProposed(t *testing.T) {
	s := New(proposal).Step(Edit("smith-1999-a-study.pdf"))

	assert.Equal(t, Proposed, s.State)
	assert.Equal(t, "smith-1999-a-study.pdf", s.Proposal.Formatted)
}

func TestStep_InvalidEditIsNotCorrected(t *testing.T) {
	for _, name := range []string{"Smith-1999-A.pdf", "smith-99-a.pdf", "smith-1999-a", "smith--1999-a.pdf", ""} {
		t.Run(name, func(t *testing.T) {
			s := New(proposal).Step(Edit("")).Step(Edit(name))

			assert.Equal(t, Editing, s.State)
			assert.Equal(t, proposal.Formatted, s.Proposal.Formatted)
			assert.ErrorIs(t, s.Problem, filename.ErrGrammar)
		})
	}
}

func TestStep_AcceptWhileEditing(t *testing.T) {
	s := New(proposal).Step(Edit("")).Step(Accept())

	assert.Equal(t, Editing, s.State)
	assert.ErrorIs(t, s.Problem, ErrNotAllowed)
}

func TestStep_ProblemClearedOnValidEdit(t *testing.T) {
	s := New(proposal).Step(Edit("")).Step(Edit("nope")).Step(Edit("doe-2020-x.pdf"))

	assert.NoError(t, s.Problem)
}

func TestStep_IsPure(t *testing.T) {
	s := New(proposal)
	_ = s.Step(Accept())

	assert.Equal(t, Proposed, s.State)
}

func TestTarget(t *testing.T) {
	name, ok := New(proposal).Step(Accept()).Target()

	require.True(t, ok)
	assert.Equal(t, proposal.Formatted, name)
}

func TestNewManual(t *testing.T) {
	s := NewManual("/p/scan.pdf", assert.AnError)

	assert.Equal(t, Editing, s.State)
	assert.Equal(t, "/p/scan.pdf", s.Proposal.SourcePath)
	assert.Equal(t, assert.AnError, s.Problem)
	assert.False(t, s.Terminal())
}

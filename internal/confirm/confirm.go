// Package confirm holds the accept/edit/cancel state machine that sits
// between a filename proposal and the rename.
//
// The machine is a pure value: Step returns the next Session and never
// touches the terminal or the filesystem. Drivers in package tui feed it
// key presses; the pipeline reads the terminal state.
//
//	Proposed --Accept--> Accepted
//	Proposed --Cancel--> Cancelled
//	Proposed --Edit----> Editing
//	Editing  --Edit(valid name)--> Proposed
//	Editing  --Edit(bad name)----> Editing (Problem set)
//	Editing  --Cancel--> Cancelled
package confirm

import (
	"errors"

	"github.com/handiism/paper-renamer/internal/filename"
	"github.com/handiism/paper-renamer/internal/model"
)

// State is the position of a Session in the machine.
type State int

const (
	Proposed State = iota
	Editing
	Accepted
	Cancelled
)

func (s State) String() string {
	switch s {
	case Proposed:
		return "proposed"
	case Editing:
		return "editing"
	case Accepted:
		return "accepted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ErrNotAllowed is recorded when a decision makes no sense in the current
// state, such as accepting while a name is being typed.
var ErrNotAllowed = errors.New("not allowed right now")

type action int

const (
	actAccept action = iota
	actCancel
	actEdit
)

// Decision is one user input to the machine.
type Decision struct {
	act  action
	name string
}

// Accept confirms the current proposal.
func Accept() Decision { return Decision{act: actAccept} }

// Cancel abandons the rename.
func Cancel() Decision { return Decision{act: actCancel} }

// Edit enters edit mode with an empty name, or submits name while editing.
func Edit(name string) Decision { return Decision{act: actEdit, name: name} }

// Session is a snapshot of the confirmation dialogue.
type Session struct {
	State    State
	Proposal model.FilenameProposal

	// Problem explains why the last decision was not applied.
	Problem error
}

// New starts a session for p.
func New(p model.FilenameProposal) Session {
	return Session{State: Proposed, Proposal: p}
}

// NewManual starts a session with no usable proposal, straight in Editing.
// cause is shown as the reason a name has to be typed by hand.
func NewManual(sourcePath string, cause error) Session {
	return Session{
		State:    Editing,
		Proposal: model.FilenameProposal{SourcePath: sourcePath},
		Problem:  cause,
	}
}

// Terminal reports whether no further decision can change s.
func (s Session) Terminal() bool {
	return s.State == Accepted || s.State == Cancelled
}

// Target returns the name to rename to once s is Accepted.
func (s Session) Target() (string, bool) {
	if s.State != Accepted {
		return "", false
	}
	return s.Proposal.Formatted, true
}

// Step applies d and returns the resulting session.
func (s Session) Step(d Decision) Session {
	switch s.State {
	case Proposed:
		s.Problem = nil
		switch d.act {
		case actAccept:
			s.State = Accepted
		case actCancel:
			s.State = Cancelled
		case actEdit:
			s.State = Editing
			if d.name != "" {
				return s.Step(d)
			}
		}
	case Editing:
		switch d.act {
		case actAccept:
			s.Problem = ErrNotAllowed
		case actCancel:
			s.State = Cancelled
			s.Problem = nil
		case actEdit:
			if err := filename.Check(d.name); err != nil {
				s.Problem = err
				return s
			}
			s.Proposal = s.Proposal.WithName(d.name)
			s.State = Proposed
			s.Problem = nil
		}
	}
	return s
}

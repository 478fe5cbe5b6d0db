package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/paper-renamer/internal/confirm"
	"github.com/handiism/paper-renamer/internal/filename"
	"github.com/mattn/go-isatty"
)

// Driver runs a confirmation session to a terminal state.
type Driver func(ctx context.Context, s confirm.Session, in io.Reader, out io.Writer) (confirm.Session, error)

// Pick returns Run when in is a terminal and RunPlain otherwise.
func Pick(in *os.File) Driver {
	if Interactive(in) {
		return Run
	}
	return RunPlain
}

// Interactive reports whether f is attached to a terminal.
func Interactive(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Model is the Bubble Tea model wrapping a confirmation session.
type Model struct {
	session     confirm.Session
	textInput   textinput.Model
	interrupted bool
}

// NewModel creates a model for s. A session that starts in Editing gets
// the input line focused straight away.
func NewModel(s confirm.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "author-yyyy-title-words.pdf"
	ti.CharLimit = filename.MaxNameBytes
	ti.Width = 60

	m := Model{session: s, textInput: ti}
	if s.State == confirm.Editing {
		m.startEditing()
	}
	return m
}

// Session returns the current session.
func (m Model) Session() confirm.Session {
	return m.session
}

// Interrupted reports whether the user pressed ctrl+c.
func (m Model) Interrupted() bool {
	return m.interrupted
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.session.State == confirm.Editing {
		return textinput.Blink
	}
	return nil
}

// Update handles key presses and feeds them to the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.session.State == confirm.Editing {
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if key.String() == "ctrl+c" {
		m.interrupted = true
		return m, tea.Quit
	}

	switch m.session.State {
	case confirm.Proposed:
		switch key.String() {
		case "y", "Y", "enter":
			m.session = m.session.Step(confirm.Accept())
		case "n", "N", "esc", "q":
			m.session = m.session.Step(confirm.Cancel())
		case "e", "E":
			m.session = m.session.Step(confirm.Edit(""))
			m.startEditing()
			return m, textinput.Blink
		}

	case confirm.Editing:
		switch key.String() {
		case "enter":
			m.session = m.session.Step(confirm.Edit(m.textInput.Value()))
			if m.session.State != confirm.Editing {
				m.textInput.Blur()
			}
		case "esc":
			m.session = m.session.Step(confirm.Cancel())
		default:
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
	}

	if m.session.Terminal() {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) startEditing() {
	m.textInput.SetValue(m.session.Proposal.Formatted)
	m.textInput.CursorEnd()
	m.textInput.Focus()
}

// View renders the dialogue.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Rename paper"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("File: " + m.session.Proposal.SourceName()))
	b.WriteString("\n")
	if raw := m.session.Proposal.Raw; !raw.IsZero() {
		b.WriteString(dimStyle.Render(fmt.Sprintf("From: %s, %d, %q", raw.Author, raw.Year, raw.Title)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.session.State {
	case confirm.Proposed:
		b.WriteString(subtitleStyle.Render("Proposed name:"))
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(nameStyle.Render(m.session.Proposal.Formatted)))
		b.WriteString("\n")
	case confirm.Editing:
		b.WriteString(subtitleStyle.Render("New name:"))
		b.WriteString("\n\n")
		b.WriteString(m.textInput.View())
		b.WriteString("\n")
	case confirm.Accepted:
		b.WriteString(nameStyle.Render("Accepted: " + m.session.Proposal.Formatted))
		b.WriteString("\n")
	case confirm.Cancelled:
		b.WriteString(warningStyle.Render("Cancelled, file left unchanged."))
		b.WriteString("\n")
	}

	if m.session.Problem != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.session.Problem.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(helpText(m.session.State)))
	b.WriteString("\n")
	return b.String()
}

func helpText(s confirm.State) string {
	switch s {
	case confirm.Proposed:
		return "y/enter: accept • e: edit • n/esc: cancel"
	case confirm.Editing:
		return "enter: submit • esc: cancel"
	}
	return ""
}

// Run shows the dialogue until the session is accepted or cancelled.
func Run(ctx context.Context, s confirm.Session, in io.Reader, out io.Writer) (confirm.Session, error) {
	p := tea.NewProgram(NewModel(s),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if ctx.Err() != nil {
		return s, ctx.Err()
	}
	if err != nil {
		return s, fmt.Errorf("terminal: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return s, errors.New("terminal: unexpected model type")
	}
	if m.Interrupted() {
		return m.Session(), context.Canceled
	}
	return m.Session(), nil
}

// internal/tui/run.go
//
// Program wiring: builds the Surface, Controller, and Model, hooks the
// surface's change notifications into the running program, and blocks
// until the user quits or ctx ends.

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yanizio/apoconsult/internal/contact"
)

// Options configures Run.
type Options struct {
	Transport contact.Transport
	Workflow  contact.Options
	Subjects  []Subject
	// Open starts with the contact box shown instead of the page.
	Open bool
	// ProgramOptions are appended to the defaults (alt screen, mouse).
	ProgramOptions []tea.ProgramOption
}

// Run starts the terminal UI.
func Run(ctx context.Context, opts Options) error {
	label := opts.Workflow.SubmitLabel
	if label == "" {
		label = contact.DefaultSubmitLabel
	}
	s := NewSurface(label)
	ctrl := contact.New(s, opts.Transport, opts.Workflow)
	defer ctrl.Close()

	if opts.Open {
		ctrl.Modal().Show()
	}

	popts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}, opts.ProgramOptions...)
	p := tea.NewProgram(New(ctrl, s, opts.Subjects), popts...)

	// Send blocks until the program reads the message, and the workflow may
	// call in while holding its own locks, so always hand off.
	s.OnChange(func() { go p.Send(refreshMsg{}) })

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

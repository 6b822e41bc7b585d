// internal/tui/model.go
//
// Terminal contact form.
//
// Context
//   A bubbletea Model that hosts the contact workflow in a terminal.  The
//   background "page" invites the user to open the contact box; the box is a
//   centred modal with the same five inputs as the web form.
//
// Keys
//   •  c / enter (page)     – open the contact box.
//   •  tab / shift+tab      – cycle focus: fields, Send, Close.
//   •  left / right         – cycle subjects while Subject is focused.
//   •  enter                – next field; activates Send or Close.
//   •  ctrl+s               – send from anywhere in the box.
//   •  ctrl+x               – cancel an in-flight send.
//   •  esc, Close, or a mouse click outside the box – dismiss.
//   •  ctrl+d               – dismiss the notification banner early.
//   •  q (page) / ctrl+c    – quit.
//
//------------------------------------------------------------------------------

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yanizio/apoconsult/internal/contact"
)

// Subject is one choice of the subject selector.
type Subject struct {
	Value string
	Label string
}

// Focus targets, in tab order.
const (
	focusName = iota
	focusEmail
	focusPhone
	focusSubject
	focusMessage
	focusSend
	focusClose
	focusCount
)

// refreshMsg tells the Model that the Surface changed.
type refreshMsg struct{}

// submitDoneMsg carries the result of one Submit.
type submitDoneMsg struct{ err error }

// Model is the bubbletea model.  It is a value type; the pointers it holds
// are shared with the workflow.
type Model struct {
	ctrl     *contact.Controller
	surface  *Surface
	subjects []Subject

	name    textinput.Model
	email   textinput.Model
	phone   textinput.Model
	message textarea.Model
	subject int // index into subjects, -1 means none selected

	focus    int
	clearSeq int
	state    view
	lastErr  error

	width, height int
}

// New builds a Model around ctrl and s.  ctrl must have been created with s
// as its surface.
func New(ctrl *contact.Controller, s *Surface, subjects []Subject) Model {
	newInput := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Width = 40
		ti.Prompt = ""
		return ti
	}

	ta := textarea.New()
	ta.Placeholder = "How can we help?"
	ta.CharLimit = 5000
	ta.ShowLineNumbers = false
	ta.SetWidth(44)
	ta.SetHeight(4)

	m := Model{
		ctrl:     ctrl,
		surface:  s,
		subjects: subjects,
		name:     newInput("Your name", 200),
		email:    newInput("you@example.com", 254),
		phone:    newInput("optional", 40),
		message:  ta,
		subject:  -1,
		state:    s.snapshot(),
	}
	m.name.Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case refreshMsg:
		m.sync()
		return m, nil

	case submitDoneMsg:
		m.lastErr = msg.err
		m.sync()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+d":
			return m.dismissBanner()
		}
		if !m.state.modalShown {
			return m.updatePage(msg)
		}
		return m.updateModal(msg)
	}

	if m.state.modalShown {
		return m.updateFocused(msg)
	}
	return m, nil
}

// sync copies surface state into the Model, resetting the widgets after the
// workflow cleared the form.
func (m *Model) sync() {
	m.state = m.surface.snapshot()
	if m.state.clearSeq != m.clearSeq {
		m.clearSeq = m.state.clearSeq
		m.name.Reset()
		m.email.Reset()
		m.phone.Reset()
		m.message.Reset()
		m.subject = -1
		m.setFocus(focusName)
	}
}

func (m Model) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "c", "enter":
		m.ctrl.Modal().Show()
		m.sync()
		cmd := m.setFocus(focusName)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.dismiss(contact.DismissEscape)
	case "ctrl+x":
		m.ctrl.Cancel()
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "tab":
		cmd := m.setFocus((m.focus + 1) % focusCount)
		return m, cmd
	case "shift+tab":
		cmd := m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, cmd
	case "enter":
		switch m.focus {
		case focusSend:
			return m.submit()
		case focusClose:
			return m.dismiss(contact.DismissClose)
		case focusMessage:
			// newline, handled by the textarea
		default:
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		}
	case "left", "right":
		if m.focus == focusSubject && len(m.subjects) > 0 {
			m.cycleSubject(msg.String() == "right")
			return m, nil
		}
	}
	return m.updateFocused(msg)
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.state.modalShown || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.width == 0 || m.height == 0 {
		return m, nil
	}
	left, top, w, h := m.boxRect()
	if msg.X < left || msg.X >= left+w || msg.Y < top || msg.Y >= top+h {
		return m.dismiss(contact.DismissOutside)
	}
	return m, nil
}

// updateFocused forwards msg to the focused widget.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
	case focusPhone:
		m.phone, cmd = m.phone.Update(msg)
	case focusMessage:
		m.message, cmd = m.message.Update(msg)
	}
	return m, cmd
}

func (m Model) dismiss(trigger contact.DismissTrigger) (tea.Model, tea.Cmd) {
	m.ctrl.Modal().Dismiss(trigger)
	m.sync()
	return m, nil
}

// dismissBanner removes the current notification before its timer fires.
func (m Model) dismissBanner() (tea.Model, tea.Cmd) {
	n := m.ctrl.Notifier()
	if cur, ok := n.Current(); ok {
		n.Dismiss(cur.ID)
	}
	m.sync()
	return m, nil
}

// submit snapshots the widgets and runs the workflow off the UI goroutine.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state.pending {
		return m, nil
	}
	m.surface.setValues(m.values())
	ctrl, vals := m.ctrl, contact.Collect(m.surface)
	return m, func() tea.Msg {
		return submitDoneMsg{err: ctrl.Submit(context.Background(), vals)}
	}
}

// values reads the raw widget contents.
func (m Model) values() contact.Values {
	v := contact.Values{
		contact.InputName:    m.name.Value(),
		contact.InputEmail:   m.email.Value(),
		contact.InputPhone:   m.phone.Value(),
		contact.InputMessage: m.message.Value(),
	}
	if m.subject >= 0 {
		v[contact.InputSubject] = m.subjects[m.subject].Value
	} else {
		v[contact.InputSubject] = ""
	}
	return v
}

func (m *Model) cycleSubject(forward bool) {
	n := len(m.subjects)
	if forward {
		m.subject = (m.subject + 1) % n
		return
	}
	if m.subject <= 0 {
		m.subject = n - 1
		return
	}
	m.subject--
}

// setFocus moves focus to f and updates widget focus state.
func (m *Model) setFocus(f int) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.email.Blur()
	m.phone.Blur()
	m.message.Blur()

	switch f {
	case focusName:
		return m.name.Focus()
	case focusEmail:
		return m.email.Focus()
	case focusPhone:
		return m.phone.Focus()
	case focusMessage:
		return m.message.Focus()
	}
	return nil
}

// boxRect returns the modal's position and size for the current window.
// Row 0 holds the banner, so the box is centred in the rows below it.
func (m Model) boxRect() (left, top, w, h int) {
	box := m.renderBox()
	w, h = lipgloss.Width(box), lipgloss.Height(box)
	return max(0, (m.width-w)/2), 1 + max(0, (m.height-1-h)/2), w, h
}

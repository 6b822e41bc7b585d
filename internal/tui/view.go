// internal/tui/view.go
//
// Rendering.  Line 0 is reserved for the notification banner; the rest of
// the window shows either the page or the centred contact box.

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yanizio/apoconsult/internal/contact"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2).
			Width(52)

	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusedLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	buttonStyle        = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("238"))
	focusedButtonStyle = buttonStyle.Background(lipgloss.Color("63")).Bold(true)
	disabledButton     = buttonStyle.Foreground(lipgloss.Color("243"))

	bannerStyles = map[contact.Severity]lipgloss.Style{
		contact.SeverityInfo:    lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("24")),
		contact.SeveritySuccess: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("28")),
		contact.SeverityError:   lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("124")),
	}
)

// View implements tea.Model.
func (m Model) View() string {
	banner := ""
	if n := m.state.note; n != nil {
		banner = bannerStyles[n.Severity].Render(n.Message)
	}

	var body string
	if m.state.modalShown {
		body = m.renderBox()
	} else {
		body = m.renderPage()
	}

	if m.width > 0 && m.height > 1 {
		body = lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	}
	return banner + "\n" + body
}

func (m Model) renderPage() string {
	hint := "c  contact us    q  quit"
	if m.state.note != nil {
		hint += "    ctrl+d  dismiss"
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("ApoConsult"),
		"Independent consulting for regulated industries.",
		"",
		labelStyle.Render(hint),
	)
}

func (m Model) renderBox() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Get in Touch"))
	b.WriteString("\n")

	m.writeField(&b, focusName, "Name", m.name.View(), contact.FieldName)
	m.writeField(&b, focusEmail, "Email", m.email.View(), contact.FieldEmail)
	m.writeField(&b, focusPhone, "Phone (optional)", m.phone.View(), "")
	m.writeField(&b, focusSubject, "Subject", m.subjectView(), contact.FieldSubject)
	m.writeField(&b, focusMessage, "Message", m.message.View(), contact.FieldMessage)

	send := buttonStyle
	switch {
	case m.state.pending:
		send = disabledButton
	case m.focus == focusSend:
		send = focusedButtonStyle
	}
	closeBtn := buttonStyle
	if m.focus == focusClose {
		closeBtn = focusedButtonStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		send.Render(m.state.label), "  ", closeBtn.Render("Close")))

	hint := "tab next · ctrl+s send · esc close"
	if m.state.pending {
		hint = "sending · ctrl+x cancel"
	}
	b.WriteString("\n\n" + labelStyle.Render(hint))

	return boxStyle.Render(b.String())
}

func (m Model) writeField(b *strings.Builder, f int, label, control string, id contact.FieldID) {
	ls := labelStyle
	if m.focus == f {
		ls = focusedLabel
	}
	b.WriteString(ls.Render(label) + "\n")
	b.WriteString(control + "\n")
	if msg := m.state.errors[id]; id != "" && msg != "" {
		b.WriteString(errorStyle.Render(msg) + "\n")
	}
	b.WriteString("\n")
}

func (m Model) subjectView() string {
	if m.subject < 0 || m.subject >= len(m.subjects) {
		return "‹ Select a subject ›"
	}
	return "‹ " + m.subjects[m.subject].Label + " ›"
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/http-boundary/httpvalue"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type inspectorModel struct {
	viewport viewport.Model
	title    string
	ready    bool
}

func runInteractive(method httpvalue.Method, url string, resp httpvalue.Response) error {
	m := &inspectorModel{
		title: fmt.Sprintf("%s %s -> %d", method, url, resp.Status),
	}
	m.viewport = viewport.New(80, 24)
	m.viewport.SetContent(renderInspector(resp))

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *inspectorModel) Init() tea.Cmd {
	return nil
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		// Reserve one line for title, one for help
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2
		m.ready = true
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *inspectorModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("up/down: scroll • q: quit"))
	return b.String()
}

func renderInspector(r httpvalue.Response) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Headers (%d)", len(r.Headers))))
	b.WriteString("\n")
	for _, h := range r.Headers {
		b.WriteString("  ")
		b.WriteString(headerNameStyle.Render(h.Name))
		b.WriteString(": ")
		b.WriteString(hexPreview(h.Value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Body (%d bytes)", len(r.Body))))
	b.WriteString("\n")
	for _, row := range hexRows(r.Body) {
		b.WriteString(row)
		b.WriteString("\n")
	}

	return b.String()
}

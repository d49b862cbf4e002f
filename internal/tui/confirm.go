package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Submit key.Binding
	Quit   key.Binding
}

func (k confirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No, k.Toggle, k.Submit}
}

func (k confirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

var defaultConfirmKeys = confirmKeys{
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
	Toggle: key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab"), key.WithHelp("←/→", "switch")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	Quit:   key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// confirmModel asks a yes/no question. Cancelling answers no.
type confirmModel struct {
	question string
	yes      bool // highlighted choice
	answer   bool
	done     bool

	keys  confirmKeys
	help  help.Model
	theme Theme
}

func newConfirmModel(question string, theme Theme) confirmModel {
	return confirmModel{
		question: question,
		yes:      true,
		keys:     defaultConfirmKeys,
		help:     help.New(),
		theme:    theme,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		return m.finish(true)
	case key.Matches(keyMsg, m.keys.No), key.Matches(keyMsg, m.keys.Quit):
		return m.finish(false)
	case key.Matches(keyMsg, m.keys.Toggle):
		m.yes = !m.yes
	case key.Matches(keyMsg, m.keys.Submit):
		return m.finish(m.yes)
	}
	return m, nil
}

func (m confirmModel) finish(answer bool) (tea.Model, tea.Cmd) {
	m.answer = answer
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	yes, no := m.theme.Dim.Render("Yes"), m.theme.Dim.Render("No")
	if m.yes {
		yes = m.theme.Selected.Render("Yes")
	} else {
		no = m.theme.Selected.Render("No")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Prompt.Render(m.question),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, yes, " ", no),
		"",
		m.help.View(m.keys),
	) + "\n"
}

package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	introPlay = iota
	introDemo
)

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected int // 0: Play, 1: Watch Demo
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: introPlay, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			if m.selected == introPlay {
				m.selected = introDemo
			} else {
				m.selected = introPlay
			}
		case "enter":
			selected := m.selected
			return m, func() tea.Msg { return IntroSubmitMsg(selected) }
		}
	}
	return m, nil
}

var sshtrisAscii = `
 ██████  ██████  ██   ██ ████████ ██████  ██  ██████
██      ██       ██   ██    ██    ██   ██ ██ ██
 █████   █████   ███████    ██    ██████  ██  █████
     ██      ██  ██   ██    ██    ██   ██ ██      ██
██████  ██████   ██   ██    ██    ██   ██ ██ ██████
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("51")).
					Foreground(lipgloss.Color("0"))

	introHintStyle = lipgloss.NewStyle().Faint(true)
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(sshtrisAscii))
	sb.WriteString("\n")

	play := introButtonStyle.Render("Play")
	demo := introButtonStyle.Render("Watch Demo")

	if m.selected == introPlay {
		play = introSelectedButtonStyle.Render("Play")
	} else {
		demo = introSelectedButtonStyle.Render("Watch Demo")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, play, demo)
	hint := introHintStyle.Render("←/→ to choose, enter to start, q to quit")

	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), buttons, hint)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

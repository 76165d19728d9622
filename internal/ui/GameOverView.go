package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	playAgainButton = iota
	menuButton
)

// GameOverState holds the local state of the game over menu.
type GameOverState struct {
	SelectedButton int
	Demo           bool
	ScreenWidth    int
	ScreenHeight   int
}

var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	gameOverTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("9")).
				Padding(1, 5).
				Align(lipgloss.Center)
)

func (g *GameOverState) SelectPrevious() {
	g.SelectedButton = max(playAgainButton, g.SelectedButton-1)
}

func (g *GameOverState) SelectNext() {
	g.SelectedButton = min(menuButton, g.SelectedButton+1)
}

// RenderGameOverScreen draws the final board next to the menu buttons.
func (g *GameOverState) RenderGameOverScreen(finalBoard string) string {
	title := gameOverTitleStyle.Render("G A M E   O V E R")

	subtitle := "The stack reached the top."
	if g.Demo {
		subtitle = "The autopilot topped out."
	}

	playAgain := gameOverButtonStyle.Render("PLAY AGAIN")
	menu := gameOverButtonStyle.Render("MENU")
	if g.SelectedButton == playAgainButton {
		playAgain = selectedButtonStyle.Render("PLAY AGAIN")
	} else {
		menu = selectedButtonStyle.Render("MENU")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, playAgain, menu)
	panel := lipgloss.JoinVertical(lipgloss.Center, title, subtitle, buttons)

	content := lipgloss.JoinHorizontal(lipgloss.Center,
		boardViewStyle.Render(finalBoard),
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Margin(0, 2).Render(panel),
	)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

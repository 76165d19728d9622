package ui

import (
	"strings"
	"time"

	"github.com/Mshel/sshtris/internal/game"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// --- Internal Game States for GameViewModel ---

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
)

// autopilotInterval paces the autopilot so a demo is watchable.
const autopilotInterval = 120 * time.Millisecond

var (
	boardViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2).
				MarginLeft(1)

	panelHeaderStyle = lipgloss.NewStyle().Bold(true)
	demoBadgeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("87")).Padding(0, 1)
)

// frameMsg carries the wall-clock time of a frame. Generation tells apart
// frame loops started before a restart.
type frameMsg struct {
	at         time.Time
	generation int
}

// QuitGameMsg asks the controller to return to the intro screen.
type QuitGameMsg struct{}

func frameTick(generation int) tea.Cmd {
	return tea.Tick(game.FrameDuration, func(t time.Time) tea.Msg {
		return frameMsg{at: t, generation: generation}
	})
}

// GameViewModel is the input and render stage around one GameManager. Frame
// messages drive gravity with the real time elapsed between frames.
type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int

	gameManager   *game.GameManager
	autopilot     *game.Autopilot
	boardRenderer BoardRenderer
	keys          KeyMap
	help          help.Model
	logger        *log.Logger

	lastFrame     time.Time
	frameGen      int
	pilotTimer    time.Duration
	gameState     GameState
	gameOverState GameOverState
}

// NewGameModel wraps a game that already has its first piece spawned. A nil
// autopilot means the player drives the game.
func NewGameModel(gm *game.GameManager, autopilot *game.Autopilot, boardRenderer BoardRenderer, logger *log.Logger, screenWidth int, screenHeight int) GameViewModel {
	helpModel := help.New()
	helpModel.ShowAll = true

	gameState := StatePlaying
	if gm.IsGameOver() {
		gameState = StateGameOver
	}

	return GameViewModel{
		ScreenWidth:   screenWidth,
		ScreenHeight:  screenHeight,
		gameManager:   gm,
		autopilot:     autopilot,
		boardRenderer: boardRenderer,
		keys:          DefaultKeyMap(),
		help:          helpModel,
		logger:        logger,
		gameState:     gameState,
		gameOverState: GameOverState{
			Demo:         autopilot != nil,
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
	}
}

func (m GameViewModel) Init() tea.Cmd {
	return frameTick(m.frameGen)
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.gameOverState.ScreenWidth, m.gameOverState.ScreenHeight = msg.Width, msg.Height
		return m, nil

	case frameMsg:
		if m.gameState != StatePlaying || msg.generation != m.frameGen {
			return m, nil
		}
		return m.advanceFrame(msg.at)

	case tea.KeyMsg:
		if m.gameState == StateGameOver {
			return m.updateGameOverMenu(msg)
		}

		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg { return QuitGameMsg{} }
		}

		// The autopilot owns the piece during a demo.
		if m.autopilot != nil {
			return m, nil
		}

		if intent := m.keys.IntentFor(msg); intent != game.IntentNone {
			m.gameManager.Apply(intent)
			return m.checkGameOver(), nil
		}
	}

	return m, nil
}

func (m GameViewModel) advanceFrame(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastFrame.IsZero() {
		elapsed := now.Sub(m.lastFrame)
		m.gameManager.Tick(elapsed)

		if m.autopilot != nil {
			m.pilotTimer += elapsed
			if m.pilotTimer >= autopilotInterval {
				m.pilotTimer = 0
				m.applyAutopilot()
			}
		}
	}
	m.lastFrame = now

	m = m.checkGameOver()
	if m.gameState != StatePlaying {
		return m, nil
	}
	return m, frameTick(m.frameGen)
}

func (m GameViewModel) applyAutopilot() {
	intent, err := m.autopilot.NextIntent(m.gameManager)
	if err != nil {
		m.logger.Warn("Autopilot failed, skipping move", "error", err)
		return
	}
	m.gameManager.Apply(intent)
}

func (m GameViewModel) checkGameOver() GameViewModel {
	if m.gameState == StatePlaying && m.gameManager.IsGameOver() {
		m.logger.Info("Game over", "demo", m.autopilot != nil)
		m.gameState = StateGameOver
		m.gameOverState.SelectedButton = playAgainButton
	}
	return m
}

func (m GameViewModel) updateGameOverMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.gameOverState.SelectPrevious()
	case "right", "l":
		m.gameOverState.SelectNext()
	case "esc":
		return m, func() tea.Msg { return QuitGameMsg{} }
	case "enter":
		if m.gameOverState.SelectedButton == menuButton {
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
		m.gameManager.Restart()
		m.gameState = StatePlaying
		m.lastFrame = time.Time{}
		m.frameGen++
		m.pilotTimer = 0
		m = m.checkGameOver()
		return m, frameTick(m.frameGen)
	}
	return m, nil
}

// Close releases the autopilot, if any.
func (m GameViewModel) Close() {
	if m.autopilot != nil {
		m.autopilot.Close()
	}
}

func (m GameViewModel) View() string {
	piece, hasPiece := m.gameManager.ActivePiece()
	board := m.boardRenderer.Render(m.gameManager.BoardSnapshot(), piece, hasPiece)

	if m.gameState == StateGameOver {
		return m.gameOverState.RenderGameOverScreen(board)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		boardViewStyle.Render(board),
		statusPanelStyle.Render(m.renderStatusPanel()),
	)
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

// renderStatusPanel draws the next piece preview and the controls.
func (m GameViewModel) renderStatusPanel() string {
	var statusContent strings.Builder

	statusContent.WriteString(panelHeaderStyle.Render("--- Next ---") + "\n")
	if next, ok := m.gameManager.NextPiece(); ok {
		statusContent.WriteString(lipgloss.NewStyle().Height(4).Render(m.boardRenderer.RenderPreview(next)))
	}
	statusContent.WriteString("\n\n")

	if m.autopilot != nil {
		statusContent.WriteString(demoBadgeStyle.Render("DEMO") + "\n\n")
	}

	statusContent.WriteString(panelHeaderStyle.Render("--- Controls ---") + "\n")
	statusContent.WriteString(m.help.View(m.keys))

	return statusContent.String()
}

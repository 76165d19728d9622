package ui

import (
	"github.com/Mshel/sshtris/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	GameScreen
)

// IntroSubmitMsg carries the selected intro button: 0 to play, 1 for a demo.
type IntroSubmitMsg int

// Settings configures a controller. Renderer may be nil to use the default
// lipgloss renderer; SSH sessions pass one bound to the session's terminal.
type Settings struct {
	Game            game.Config
	AutopilotScript string
	Logger          *log.Logger
	Renderer        *lipgloss.Renderer
	ScreenWidth     int
	ScreenHeight    int
}

type ControllerModel struct {
	CurrentScreen Screen
	settings      Settings
	boardRenderer BoardRenderer

	IntroModel tea.Model
	GameModel  *GameViewModel

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(settings Settings) ControllerModel {
	if settings.Logger == nil {
		settings.Logger = log.Default()
	}

	return ControllerModel{
		CurrentScreen: IntroScreen,
		settings:      settings,
		boardRenderer: NewBoardRenderer(settings.Renderer),
		IntroModel:    NewIntroModel(settings.ScreenWidth, settings.ScreenHeight),
		ScreenWidth:   settings.ScreenWidth,
		ScreenHeight:  settings.ScreenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// --- 1. Global Key Check ---
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.closeGame()
			return m, tea.Quit
		}
	}

	// --- 2. State Transition Message Handling ---
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		if m.GameModel != nil {
			updated, _ := m.GameModel.Update(msg)
			gameModel := updated.(GameViewModel)
			m.GameModel = &gameModel
		}
		return m, nil

	case IntroSubmitMsg:
		gameModel, err := m.newGame(msg == introDemo)
		if err != nil {
			m.settings.Logger.Error("Could not start game", "error", err)
			return m, nil
		}
		m.closeGame()
		m.GameModel = &gameModel
		m.CurrentScreen = GameScreen
		return m, m.GameModel.Init()

	case QuitGameMsg:
		m.closeGame()
		m.GameModel = nil
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()
	}

	// --- 3. Message Delegation ---
	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case GameScreen:
		if m.GameModel != nil {
			var updated tea.Model
			updated, cmd = m.GameModel.Update(msg)
			gameModel := updated.(GameViewModel)
			m.GameModel = &gameModel
		}
	}

	return m, cmd
}

// newGame builds a fresh engine and spawns its first piece. Demo games are
// driven by the configured autopilot script, or the built-in one.
func (m ControllerModel) newGame(demo bool) (GameViewModel, error) {
	var autopilot *game.Autopilot
	if demo {
		var err error
		autopilot, err = m.loadAutopilot()
		if err != nil {
			return GameViewModel{}, err
		}
	}

	gameManager := game.NewGameManager(m.settings.Game, game.WithLogger(m.settings.Logger))
	gameManager.SpawnNext()

	return NewGameModel(gameManager, autopilot, m.boardRenderer, m.settings.Logger, m.ScreenWidth, m.ScreenHeight), nil
}

func (m ControllerModel) loadAutopilot() (*game.Autopilot, error) {
	if m.settings.AutopilotScript == "" {
		return game.NewAutopilot(game.DefaultAutopilotScript)
	}

	autopilot, err := game.LoadAutopilot(m.settings.AutopilotScript)
	if err != nil {
		m.settings.Logger.Warn("Falling back to built-in autopilot", "script", m.settings.AutopilotScript, "error", err)
		return game.NewAutopilot(game.DefaultAutopilotScript)
	}
	return autopilot, nil
}

func (m ControllerModel) closeGame() {
	if m.GameModel != nil {
		m.GameModel.Close()
	}
}

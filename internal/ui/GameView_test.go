package ui

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Mshel/sshtris/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = log.New(io.Discard)

func newTestGameModel(t *testing.T, cfg game.Config, autopilot *game.Autopilot) GameViewModel {
	t.Helper()
	gm := game.NewGameManager(cfg, game.WithLogger(quietLogger))
	gm.SpawnNext()
	return NewGameModel(gm, autopilot, NewBoardRenderer(nil), quietLogger, 80, 30)
}

func update(t *testing.T, m GameViewModel, msg tea.Msg) (GameViewModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(GameViewModel)
	require.True(t, ok)
	return model, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapIntents(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want game.Intent
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, game.IntentMoveLeft},
		{runeKey('a'), game.IntentMoveLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, game.IntentMoveRight},
		{runeKey('d'), game.IntentMoveRight},
		{tea.KeyMsg{Type: tea.KeyDown}, game.IntentSoftDrop},
		{runeKey('s'), game.IntentSoftDrop},
		{tea.KeyMsg{Type: tea.KeyUp}, game.IntentRotate},
		{runeKey('x'), game.IntentRotate},
		{runeKey('p'), game.IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, keys.IntentFor(tt.msg))
		})
	}
}

func TestRenderEmptyBoard(t *testing.T) {
	br := NewBoardRenderer(nil)
	board := game.NewBoard(10, 20).Snapshot()

	rendered := br.Render(board, game.PieceState{}, false)

	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		assert.Equal(t, 10*game.CellWidth, lipgloss.Width(line))
	}
	assert.NotContains(t, rendered, blockGlyph)
}

func TestRenderOverlaysActivePiece(t *testing.T) {
	br := NewBoardRenderer(nil)
	board := game.NewBoard(10, 20)
	board.LockCells([]game.Point{{X: 0, Y: 19}}, 21)
	piece := game.NewPiece(game.PieceO).MovedTo(game.Point{X: 4, Y: 0}).State()

	rendered := br.Render(board.Snapshot(), piece, true)

	assert.Equal(t, 5, strings.Count(rendered, blockGlyph))
	lines := strings.Split(rendered, "\n")
	assert.Contains(t, lines[0], blockGlyph)
	assert.Contains(t, lines[1], blockGlyph)
	assert.NotContains(t, lines[2], blockGlyph)
}

func TestRenderSkipsCellsAboveBoard(t *testing.T) {
	br := NewBoardRenderer(nil)
	piece := game.NewPiece(game.PieceI).MovedTo(game.Point{X: 3, Y: -2}).State()

	rendered := br.Render(game.NewBoard(10, 20).Snapshot(), piece, true)

	assert.NotContains(t, rendered, blockGlyph)
}

func TestFramesDriveGravity(t *testing.T) {
	m := newTestGameModel(t, game.DefaultConfig(), nil)
	start := time.Now()

	m, cmd := update(t, m, frameMsg{at: start})
	assert.NotNil(t, cmd)
	m, _ = update(t, m, frameMsg{at: start.Add(300 * time.Millisecond)})
	piece, _ := m.gameManager.ActivePiece()
	assert.Equal(t, 0, piece.Origin.Y)

	m, _ = update(t, m, frameMsg{at: start.Add(500 * time.Millisecond)})
	piece, _ = m.gameManager.ActivePiece()
	assert.Equal(t, 1, piece.Origin.Y)
}

func TestStaleFramesAreIgnored(t *testing.T) {
	m := newTestGameModel(t, game.DefaultConfig(), nil)
	m.frameGen = 1
	start := time.Now()

	m, _ = update(t, m, frameMsg{at: start, generation: 0})
	m, cmd := update(t, m, frameMsg{at: start.Add(time.Second), generation: 0})

	assert.Nil(t, cmd)
	piece, _ := m.gameManager.ActivePiece()
	assert.Equal(t, 0, piece.Origin.Y)
}

func TestKeysMoveThePiece(t *testing.T) {
	m := newTestGameModel(t, game.DefaultConfig(), nil)
	before, _ := m.gameManager.ActivePiece()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	after, _ := m.gameManager.ActivePiece()
	assert.Equal(t, before.Origin.X-1, after.Origin.X)
	assert.Equal(t, before.Origin.Y+1, after.Origin.Y)
}

func TestDemoIgnoresPlayerKeys(t *testing.T) {
	autopilot, err := game.NewAutopilot(`function next_intent(view) return "none" end`)
	require.NoError(t, err)
	m := newTestGameModel(t, game.DefaultConfig(), autopilot)
	defer m.Close()
	before, _ := m.gameManager.ActivePiece()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	after, _ := m.gameManager.ActivePiece()
	assert.Equal(t, before.Origin, after.Origin)
}

func TestDemoAppliesAutopilotIntents(t *testing.T) {
	autopilot, err := game.NewAutopilot(`function next_intent(view) return "left" end`)
	require.NoError(t, err)
	m := newTestGameModel(t, game.DefaultConfig(), autopilot)
	defer m.Close()
	before, _ := m.gameManager.ActivePiece()
	start := time.Now()

	m, _ = update(t, m, frameMsg{at: start})
	m, _ = update(t, m, frameMsg{at: start.Add(autopilotInterval)})

	after, _ := m.gameManager.ActivePiece()
	assert.Equal(t, before.Origin.X-1, after.Origin.X)
}

func TestGameOverMenu(t *testing.T) {
	// A one-row board cannot fit any spawned piece.
	m := newTestGameModel(t, game.Config{BoardCols: 4, BoardRows: 1}, nil)
	require.Equal(t, StateGameOver, m.gameState)
	assert.Contains(t, m.View(), "G A M E   O V E R")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateGameOver, m.gameState)
	assert.NotNil(t, cmd)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, menuButton, m.gameOverState.SelectedButton)
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, QuitGameMsg{}, cmd())
}

func TestControllerScreens(t *testing.T) {
	controller := NewControllerModel(Settings{Game: game.DefaultConfig(), Logger: quietLogger, ScreenWidth: 80, ScreenHeight: 30})

	updated, cmd := controller.Update(IntroSubmitMsg(introPlay))
	controller = updated.(ControllerModel)
	assert.Equal(t, GameScreen, controller.CurrentScreen)
	require.NotNil(t, controller.GameModel)
	assert.Nil(t, controller.GameModel.autopilot)
	assert.NotNil(t, cmd)

	updated, _ = controller.Update(QuitGameMsg{})
	controller = updated.(ControllerModel)
	assert.Equal(t, IntroScreen, controller.CurrentScreen)
	assert.Nil(t, controller.GameModel)

	updated, _ = controller.Update(IntroSubmitMsg(introDemo))
	controller = updated.(ControllerModel)
	require.NotNil(t, controller.GameModel)
	assert.NotNil(t, controller.GameModel.autopilot)

	_, cmd = controller.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestControllerFallsBackToBuiltInAutopilot(t *testing.T) {
	controller := NewControllerModel(Settings{
		Game:            game.DefaultConfig(),
		AutopilotScript: "does-not-exist.lua",
		Logger:          quietLogger,
	})

	updated, _ := controller.Update(IntroSubmitMsg(introDemo))
	controller = updated.(ControllerModel)

	require.NotNil(t, controller.GameModel)
	assert.NotNil(t, controller.GameModel.autopilot)
	controller.closeGame()
}

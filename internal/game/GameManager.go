package game

import (
	"time"

	"github.com/charmbracelet/log"
)

// Intent is a discrete player command produced by the input stage.
type Intent int

const (
	IntentNone Intent = iota
	IntentMoveLeft
	IntentMoveRight
	IntentSoftDrop
	IntentRotate
)

func (i Intent) String() string {
	switch i {
	case IntentMoveLeft:
		return "left"
	case IntentMoveRight:
		return "right"
	case IntentSoftDrop:
		return "down"
	case IntentRotate:
		return "rotate"
	default:
		return "none"
	}
}

// GameManager owns the state of one game: the board, the falling piece, the
// held next piece and the gravity timer. It is not safe for concurrent use;
// a single frame loop drives it.
type GameManager struct {
	config  Config
	board   *Board
	current *Piece
	next    *Piece

	dropTimer time.Duration
	gameOver  bool

	source PieceSource
	logger *log.Logger
}

type Option func(*GameManager)

func WithPieceSource(source PieceSource) Option {
	return func(gm *GameManager) {
		gm.source = source
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(gm *GameManager) {
		gm.logger = logger
	}
}

// NewGameManager returns an initialized game with an empty board. Call
// SpawnNext to put the first piece in play.
func NewGameManager(config Config, opts ...Option) *GameManager {
	gm := &GameManager{config: config.withDefaults()}
	for _, opt := range opts {
		opt(gm)
	}
	if gm.source == nil {
		gm.source = NewRandomSource(time.Now().UnixNano())
	}
	if gm.logger == nil {
		gm.logger = log.Default()
	}

	gm.Initialize()
	return gm
}

// Initialize resets the game to an empty board with no pieces.
func (gm *GameManager) Initialize() {
	gm.board = NewBoard(gm.config.BoardCols, gm.config.BoardRows)
	gm.current = nil
	gm.next = nil
	gm.dropTimer = 0
	gm.gameOver = false
}

// Restart starts a fresh game and spawns its first piece.
func (gm *GameManager) Restart() bool {
	gm.Initialize()
	return gm.SpawnNext()
}

// SpawnNext promotes the held piece, draws a new one and centers the active
// piece on the top row. A blocked spawn ends the game and returns false.
func (gm *GameManager) SpawnNext() bool {
	if gm.gameOver {
		return false
	}

	var piece Piece
	if gm.next != nil {
		piece = *gm.next
	} else {
		piece = NewPiece(gm.source.NextPieceType())
	}
	next := NewPiece(gm.source.NextPieceType())
	gm.next = &next

	piece.Origin = Point{X: (gm.board.Cols() - piece.Shape.Width()) / 2, Y: 0}
	gm.current = &piece

	if Collides(piece, piece.Origin, gm.board) {
		gm.gameOver = true
		gm.logger.Info("Game over: spawn position blocked", "piece", piece.Type, "x", piece.Origin.X)
		return false
	}

	gm.logger.Debug("Piece spawned", "piece", piece.Type, "next", next.Type, "x", piece.Origin.X)
	return true
}

// AttemptMove shifts the active piece by (dx, dy). It returns true when the
// piece moved. A blocked downward move locks the piece, clears full rows and
// spawns the next piece; any other blocked move is rejected.
func (gm *GameManager) AttemptMove(dx, dy int) bool {
	if gm.gameOver || gm.current == nil {
		return false
	}

	candidate := Point{X: gm.current.Origin.X + dx, Y: gm.current.Origin.Y + dy}
	if !Collides(*gm.current, candidate, gm.board) {
		gm.current.Origin = candidate
		return true
	}

	if dy > 0 {
		gm.lockCurrent()
		gm.SpawnNext()
	}
	return false
}

// Rotate turns the active piece clockwise. When the turned piece collides it
// tries one column to the left, then one to the right, and otherwise keeps
// the original orientation. Rotation never locks the piece.
func (gm *GameManager) Rotate() bool {
	if gm.gameOver || gm.current == nil {
		return false
	}

	rotated := gm.current.Rotated()
	origin := rotated.Origin
	for _, kick := range []int{0, -1, 1} {
		candidate := Point{X: origin.X + kick, Y: origin.Y}
		if !Collides(rotated, candidate, gm.board) {
			rotated.Origin = candidate
			gm.current = &rotated
			return true
		}
	}
	return false
}

// Tick advances the gravity timer by the wall-clock time elapsed since the
// previous frame and drops the piece one row once the drop interval is
// reached.
func (gm *GameManager) Tick(elapsed time.Duration) {
	if gm.gameOver {
		return
	}

	gm.dropTimer += elapsed
	if gm.dropTimer >= gm.config.DropInterval {
		gm.AttemptMove(0, 1)
		gm.dropTimer = 0
	}
}

// SoftDrop moves the piece down one row and restarts the gravity timer.
func (gm *GameManager) SoftDrop() bool {
	if gm.gameOver {
		return false
	}

	moved := gm.AttemptMove(0, 1)
	gm.dropTimer = 0
	return moved
}

// Apply executes a player intent and reports whether the piece moved.
func (gm *GameManager) Apply(intent Intent) bool {
	switch intent {
	case IntentMoveLeft:
		return gm.AttemptMove(-1, 0)
	case IntentMoveRight:
		return gm.AttemptMove(1, 0)
	case IntentSoftDrop:
		return gm.SoftDrop()
	case IntentRotate:
		return gm.Rotate()
	default:
		return false
	}
}

func (gm *GameManager) lockCurrent() {
	piece := *gm.current
	written := gm.board.LockCells(piece.Cells(), piece.Color)
	cleared := gm.board.ClearCompletedRows()
	gm.current = nil

	gm.logger.Debug("Piece locked", "piece", piece.Type, "x", piece.Origin.X, "y", piece.Origin.Y,
		"cells", written, "rows_cleared", cleared)
}

func (gm *GameManager) IsGameOver() bool { return gm.gameOver }

func (gm *GameManager) Cols() int { return gm.board.Cols() }
func (gm *GameManager) Rows() int { return gm.board.Rows() }

func (gm *GameManager) DropTimer() time.Duration { return gm.dropTimer }

// BoardSnapshot returns a copy of the locked cells, indexed [row][col].
func (gm *GameManager) BoardSnapshot() [][]Color {
	return gm.board.Snapshot()
}

// ColumnHeights reports the stack height of each column.
func (gm *GameManager) ColumnHeights() []int {
	return gm.board.ColumnHeights()
}

// ActivePiece returns a copy of the falling piece, if any.
func (gm *GameManager) ActivePiece() (PieceState, bool) {
	if gm.current == nil {
		return PieceState{}, false
	}
	return gm.current.State(), true
}

// NextPiece returns a copy of the piece that spawns after the active one.
func (gm *GameManager) NextPiece() (PieceState, bool) {
	if gm.next == nil {
		return PieceState{}, false
	}
	return gm.next.State(), true
}

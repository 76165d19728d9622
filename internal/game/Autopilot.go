package game

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

const intentFunctionName = "next_intent"

var (
	ErrNoIntentFunction = errors.New("autopilot script does not define " + intentFunctionName)
	ErrUnknownIntent    = errors.New("autopilot returned an unknown intent")
)

// DefaultAutopilotScript steers each piece above the lowest column and
// soft-drops it there.
const DefaultAutopilotScript = `
function next_intent(view)
	local piece = view.piece
	if piece == nil then
		return "none"
	end

	local target, lowest = 1, math.huge
	for col = 1, view.cols do
		if view.heights[col] < lowest then
			target, lowest = col, view.heights[col]
		end
	end

	local left = view.cols
	for _, cell in ipairs(piece.cells) do
		if cell.x + 1 < left then
			left = cell.x + 1
		end
	end

	if left > target then
		return "left"
	elseif left < target then
		return "right"
	end
	return "down"
end
`

// Autopilot asks a Lua script which intent to play next. It only produces
// intents; the caller applies them to the game.
type Autopilot struct {
	luaState *lua.LState
	decide   lua.LValue
}

func NewAutopilot(script string) (*Autopilot, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(script); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse autopilot script: %w", err)
	}
	return newAutopilot(luaState)
}

func LoadAutopilot(path string) (*Autopilot, error) {
	luaState := lua.NewState()
	if err := luaState.DoFile(path); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not load autopilot script %s: %w", path, err)
	}
	return newAutopilot(luaState)
}

func newAutopilot(luaState *lua.LState) (*Autopilot, error) {
	decide := luaState.GetGlobal(intentFunctionName)
	if decide.Type() != lua.LTFunction {
		luaState.Close()
		return nil, ErrNoIntentFunction
	}
	return &Autopilot{luaState: luaState, decide: decide}, nil
}

// NextIntent runs the script against the current state of the game.
func (a *Autopilot) NextIntent(gm *GameManager) (Intent, error) {
	view := a.buildView(gm)
	err := a.luaState.CallByParam(lua.P{
		Fn:      a.decide,
		NRet:    1,
		Protect: true,
	}, view)
	if err != nil {
		return IntentNone, fmt.Errorf("could not execute autopilot script: %w", err)
	}

	ret := a.luaState.Get(-1)
	a.luaState.Pop(1)

	name, ok := ret.(lua.LString)
	if !ok {
		return IntentNone, fmt.Errorf("%w: got %s, expected string", ErrUnknownIntent, ret.Type().String())
	}
	return ParseIntent(string(name))
}

func (a *Autopilot) Close() {
	a.luaState.Close()
}

// buildView exposes the game to the script with 1-based heights and 0-based
// board coordinates for cells.
func (a *Autopilot) buildView(gm *GameManager) *lua.LTable {
	view := a.luaState.NewTable()
	view.RawSetString("cols", lua.LNumber(gm.Cols()))
	view.RawSetString("rows", lua.LNumber(gm.Rows()))

	heights := a.luaState.NewTable()
	for _, height := range gm.ColumnHeights() {
		heights.Append(lua.LNumber(height))
	}
	view.RawSetString("heights", heights)

	piece, ok := gm.ActivePiece()
	if !ok {
		return view
	}

	pieceTable := a.luaState.NewTable()
	pieceTable.RawSetString("type", lua.LString(piece.Type))
	pieceTable.RawSetString("x", lua.LNumber(piece.Origin.X))
	pieceTable.RawSetString("y", lua.LNumber(piece.Origin.Y))

	cells := a.luaState.NewTable()
	for _, cell := range piece.Shape.Cells() {
		cellTable := a.luaState.NewTable()
		cellTable.RawSetString("x", lua.LNumber(piece.Origin.X+cell.X))
		cellTable.RawSetString("y", lua.LNumber(piece.Origin.Y+cell.Y))
		cells.Append(cellTable)
	}
	pieceTable.RawSetString("cells", cells)
	view.RawSetString("piece", pieceTable)

	return view
}

func ParseIntent(name string) (Intent, error) {
	switch name {
	case "left":
		return IntentMoveLeft, nil
	case "right":
		return IntentMoveRight, nil
	case "down":
		return IntentSoftDrop, nil
	case "rotate":
		return IntentRotate, nil
	case "none", "":
		return IntentNone, nil
	default:
		return IntentNone, fmt.Errorf("%w: %q", ErrUnknownIntent, name)
	}
}

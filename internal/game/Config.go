package game

import "time"

const (
	DefaultBoardCols    = 10
	DefaultBoardRows    = 20
	DefaultDropInterval = 500 * time.Millisecond
	// FrameDuration is the target frame period of the shell driving Tick.
	FrameDuration = time.Second / 60
	// CellWidth is the number of terminal columns one board cell occupies.
	CellWidth = 2
)

// Config holds the tunables of a single game.
type Config struct {
	BoardCols    int
	BoardRows    int
	DropInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		BoardCols:    DefaultBoardCols,
		BoardRows:    DefaultBoardRows,
		DropInterval: DefaultDropInterval,
	}
}

// withDefaults fills zero fields so a partially set Config is still playable.
func (c Config) withDefaults() Config {
	if c.BoardCols <= 0 {
		c.BoardCols = DefaultBoardCols
	}
	if c.BoardRows <= 0 {
		c.BoardRows = DefaultBoardRows
	}
	if c.DropInterval <= 0 {
		c.DropInterval = DefaultDropInterval
	}
	return c
}

package game

import (
	"time"

	"wargame/meta"
)

// Options holds the game configuration. A state and all its clones share one Options.
type Options struct {
	Dim            int
	MaxDepth       int
	MinDepth       int
	MaxTime        time.Duration // 0 disables the search time budget
	GameType       GameType
	AlphaBeta      bool
	MaxTurns       int // 0 disables the turn limit
	RandomizeMoves bool
	Broker         string // broker URL, empty when playing locally
	Heuristic      string
	Goroutines     int
}

func DefaultOptions() *Options {
	return &Options{
		Dim:            meta.BOARD_DIM,
		MaxDepth:       meta.MAX_DEPTH,
		MinDepth:       meta.MIN_DEPTH,
		MaxTime:        meta.MAX_TIME,
		GameType:       AttackerVsDefender,
		AlphaBeta:      true,
		MaxTurns:       meta.MAX_TURNS,
		RandomizeMoves: true,
		Heuristic:      "e0",
		Goroutines:     1,
	}
}

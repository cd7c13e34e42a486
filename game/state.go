package game

import (
	"wargame/experiments/metrics"
)

// UnitAt pairs a unit with the cell it occupies.
type UnitAt struct {
	Coord Coord
	Unit  *Unit
}

// GameState is the full game position. Board cells hold nil when empty.
type GameState struct {
	Board       [][]*Unit
	NextPlayer  Player
	TurnsPlayed int
	Options     *Options       // shared by all clones
	Stats       *metrics.Stats // shared by all clones
	hasAI       [2]bool        // commander alive, indexed by Player
}

// NewGameState returns a game in its starting layout. A nil opts uses DefaultOptions.
func NewGameState(opts *Options) *GameState {
	gs := NewEmptyGameState(opts)

	md := gs.Options.Dim - 1
	gs.Set(Coord{0, 0}, NewUnit(Attacker, AI))
	gs.Set(Coord{1, 0}, NewUnit(Attacker, Virus))
	gs.Set(Coord{0, 1}, NewUnit(Attacker, Virus))
	gs.Set(Coord{2, 0}, NewUnit(Attacker, Program))
	gs.Set(Coord{0, 2}, NewUnit(Attacker, Program))
	gs.Set(Coord{1, 1}, NewUnit(Attacker, Firewall))

	gs.Set(Coord{md, md}, NewUnit(Defender, AI))
	gs.Set(Coord{md - 1, md}, NewUnit(Defender, Tech))
	gs.Set(Coord{md, md - 1}, NewUnit(Defender, Tech))
	gs.Set(Coord{md - 2, md}, NewUnit(Defender, Firewall))
	gs.Set(Coord{md, md - 2}, NewUnit(Defender, Firewall))
	gs.Set(Coord{md - 1, md - 1}, NewUnit(Defender, Program))

	return gs
}

// NewEmptyGameState returns a board with no units. Both commanders count as alive until an
// AI unit is removed from the board.
func NewEmptyGameState(opts *Options) *GameState {
	if opts == nil {
		opts = DefaultOptions()
	}
	board := make([][]*Unit, opts.Dim)
	for row := range board {
		board[row] = make([]*Unit, opts.Dim)
	}
	return &GameState{
		Board:      board,
		NextPlayer: Attacker,
		Options:    opts,
		Stats:      metrics.NewStats(),
		hasAI:      [2]bool{true, true},
	}
}

// Clone copies the board and its units. Options and Stats stay shared.
func (gs *GameState) Clone() *GameState {
	board := make([][]*Unit, len(gs.Board))
	for row := range gs.Board {
		board[row] = make([]*Unit, len(gs.Board[row]))
		for col, unit := range gs.Board[row] {
			if unit != nil {
				board[row][col] = unit.clone()
			}
		}
	}
	return &GameState{
		Board:       board,
		NextPlayer:  gs.NextPlayer,
		TurnsPlayed: gs.TurnsPlayed,
		Options:     gs.Options,
		Stats:       gs.Stats,
		hasAI:       gs.hasAI,
	}
}

func (gs *GameState) Dim() int {
	return len(gs.Board)
}

func (gs *GameState) IsValidCoord(c Coord) bool {
	dim := gs.Dim()
	return c.Row >= 0 && c.Row < dim && c.Col >= 0 && c.Col < dim
}

// Get returns the unit at c, or nil if c is empty or off the board.
func (gs *GameState) Get(c Coord) *Unit {
	if !gs.IsValidCoord(c) {
		return nil
	}
	return gs.Board[c.Row][c.Col]
}

// Set places unit at c. Placing outside the board is a no-op.
func (gs *GameState) Set(c Coord, unit *Unit) {
	if gs.IsValidCoord(c) {
		gs.Board[c.Row][c.Col] = unit
	}
}

func (gs *GameState) IsEmpty(c Coord) bool {
	return gs.Get(c) == nil
}

// HasAI reports whether p's commander is still on the board.
func (gs *GameState) HasAI(p Player) bool {
	return gs.hasAI[p]
}

// removeDead clears c if its unit has no health left.
func (gs *GameState) removeDead(c Coord) {
	unit := gs.Get(c)
	if unit == nil || unit.IsAlive() {
		return
	}
	gs.Set(c, nil)
	if unit.Kind == AI {
		gs.hasAI[unit.Player] = false
	}
}

func (gs *GameState) modHealth(c Coord, delta int) {
	unit := gs.Get(c)
	if unit == nil {
		return
	}
	unit.ModHealth(delta)
	gs.removeDead(c)
}

// PlayerUnits lists p's units in row-major order.
func (gs *GameState) PlayerUnits(p Player) []UnitAt {
	var units []UnitAt
	for _, c := range PairFromDim(gs.Dim()).Rectangle() {
		if unit := gs.Get(c); unit != nil && unit.Player == p {
			units = append(units, UnitAt{Coord: c, Unit: unit})
		}
	}
	return units
}

// NextTurn hands play to the other side.
func (gs *GameState) NextTurn() {
	gs.NextPlayer = gs.NextPlayer.Next()
	gs.TurnsPlayed++
}

// Winner returns the winning side, if any. The defender wins when the turn limit is reached
// or the attacker's commander is lost.
func (gs *GameState) Winner() (Player, bool) {
	if gs.Options.MaxTurns > 0 && gs.TurnsPlayed >= gs.Options.MaxTurns {
		return Defender, true
	}
	if !gs.hasAI[Attacker] {
		return Defender, true
	}
	if !gs.hasAI[Defender] {
		return Attacker, true
	}
	return 0, false
}

func (gs *GameState) IsFinished() bool {
	_, ok := gs.Winner()
	return ok
}

package communication

import (
	"context"

	"wargame/game"
)

// MoveMessage is a move as exchanged through the broker. Turn is the number of turns played
// once the move has been performed.
type MoveMessage struct {
	From game.Coord `json:"from"`
	To   game.Coord `json:"to"`
	Turn int        `json:"turn"`
}

func NewMoveMessage(move game.CoordPair, turn int) MoveMessage {
	return MoveMessage{From: move.Src, To: move.Dst, Turn: turn}
}

func (m MoveMessage) Pair() game.CoordPair {
	return game.CoordPair{Src: m.From, Dst: m.To}
}

// Envelope wraps every broker response.
type Envelope struct {
	Success bool         `json:"success"`
	Data    *MoveMessage `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Communicator abstracts the broker as seen by one game instance.
type Communicator interface {
	// PostMove publishes a move played locally.
	PostMove(ctx context.Context, move game.CoordPair, turn int) error
	// PollMove returns the opponent's move for turn, if the broker has it yet.
	PollMove(ctx context.Context, turn int) (game.CoordPair, bool, error)
}

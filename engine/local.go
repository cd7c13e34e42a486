package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"wargame/experiments/metrics"
	"wargame/game"
	"wargame/searcher"
)

// Agent chooses moves for one side.
type Agent interface {
	// Name labels the agent in console output and traces.
	Name() string
	// FindMove proposes a move for the player to move. The state must not be modified.
	FindMove(ctx context.Context, state *game.GameState) (game.CoordPair, *metrics.SearchMetric, error)
	// Retries reports whether the agent should be asked again after an illegal move.
	Retries() bool
}

// HumanAgent reads moves typed on a console.
type HumanAgent struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHumanAgent(in io.Reader, out io.Writer) *HumanAgent {
	return &HumanAgent{in: bufio.NewScanner(in), out: out}
}

func (h *HumanAgent) Name() string  { return "Player" }
func (h *HumanAgent) Retries() bool { return true }

func (h *HumanAgent) FindMove(ctx context.Context, state *game.GameState) (game.CoordPair, *metrics.SearchMetric, error) {
	for {
		if err := ctx.Err(); err != nil {
			return game.CoordPair{}, nil, err
		}
		fmt.Fprintf(h.out, "Player %s, enter your move: ", state.NextPlayer)
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return game.CoordPair{}, nil, fmt.Errorf("read move: %w", err)
			}
			return game.CoordPair{}, nil, io.EOF
		}
		move, err := game.ParseCoordPair(strings.TrimSpace(h.in.Text()))
		if err == nil && state.IsValidCoord(move.Src) && state.IsValidCoord(move.Dst) {
			return move, nil, nil
		}
		fmt.Fprintln(h.out, "Invalid coordinates! Try again.")
	}
}

// ComputerAgent plays the move found by a searcher.
type ComputerAgent struct {
	searcher *searcher.Minimax
}

func NewComputerAgent(s *searcher.Minimax) *ComputerAgent {
	return &ComputerAgent{searcher: s}
}

func (c *ComputerAgent) Name() string  { return "Computer" }
func (c *ComputerAgent) Retries() bool { return false }

func (c *ComputerAgent) FindMove(ctx context.Context, state *game.GameState) (game.CoordPair, *metrics.SearchMetric, error) {
	result, err := c.searcher.Search(ctx, state)
	if err != nil {
		return game.CoordPair{}, nil, err
	}
	return result.Move, &result.Metric, nil
}

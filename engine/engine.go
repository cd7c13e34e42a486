package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"wargame/communication"
	"wargame/experiments/metrics"
	"wargame/game"
	"wargame/searcher"

	"github.com/rs/zerolog/log"
)

// Tracer records the progress of a game, e.g. to a trace file.
type Tracer interface {
	GameStart(state *game.GameState) error
	TurnStart(turn, maxTurns int, player game.Player) error
	Move(agent string, player game.Player, outcome string) error
	Board(state *game.GameState) error
	Winner(player game.Player, turns int) error
	Forfeit() error
}

// Renderer draws the board after every turn.
type Renderer interface {
	Draw(state *game.GameState)
}

type Result struct {
	Winner  game.Player
	Forfeit bool // the loser had no move left
	Turns   int
	Game    metrics.GameMetric
	Moves   []metrics.MoveMetric
}

type Engine struct {
	State    *game.GameState
	Agents   map[game.Player]Agent
	Broker   communication.Communicator // receives the computer's moves, may be nil
	Tracer   Tracer                     // may be nil
	Renderer Renderer                   // may be nil
	Out      io.Writer                  // console output, may be nil
}

// LocalEngine sets up a game between the given agents on a fresh board.
func LocalEngine(opts *game.Options, agents map[game.Player]Agent) *Engine {
	for _, p := range game.Players() {
		if agents[p] == nil {
			panic(fmt.Sprintf("no agent for %s", p))
		}
	}
	return &Engine{
		State:  game.NewGameState(opts),
		Agents: agents,
		Out:    io.Discard,
	}
}

// Run plays until a side wins, a side has no move or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	if e.Out == nil {
		e.Out = io.Discard
	}
	tracer := e.Tracer
	if tracer == nil {
		tracer = nopTracer{}
	}

	state := e.State
	result := Result{Game: metrics.GameMetric{
		StartingPlayer: state.NextPlayer.String(),
		StartTime:      time.Now(),
	}}
	finish := func() Result {
		result.Turns = state.TurnsPlayed
		result.Game.EndTime = time.Now()
		result.Game.Duration = result.Game.EndTime.Sub(result.Game.StartTime)
		result.Game.TotalMoves = state.TurnsPlayed
		result.Game.Winner = result.Winner.String()
		result.Game.Forfeit = result.Forfeit
		return result
	}

	log.Info().Msgf("%s is starting", state.NextPlayer)
	if err := tracer.GameStart(state); err != nil {
		return result, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		e.show()

		if winner, ok := state.Winner(); ok {
			result.Winner = winner
			fmt.Fprintf(e.Out, "%s won in %d turns!\n", winner, state.TurnsPlayed)
			log.Info().Msgf("%s won in %d turns", winner, state.TurnsPlayed)
			return finish(), tracer.Winner(winner, state.TurnsPlayed)
		}

		player := state.NextPlayer
		if err := tracer.TurnStart(state.TurnsPlayed+1, state.Options.MaxTurns, player); err != nil {
			return result, err
		}

		agent := e.Agents[player]
		move, outcome, metric, err := e.playTurn(ctx, agent)
		if errors.Is(err, searcher.ErrNoMove) {
			fmt.Fprintln(e.Out, "Computer doesn't know what to do!!!")
			fmt.Fprintln(e.Out, "Game over")
			log.Warn().Msgf("%s has no move and forfeits", player)
			result.Winner = player.Next()
			result.Forfeit = true
			return finish(), tracer.Forfeit()
		}
		if err != nil {
			return result, fmt.Errorf("turn %d: %w", state.TurnsPlayed+1, err)
		}

		fmt.Fprintf(e.Out, "%s %s: %s\n", agent.Name(), player, outcome)
		if _, ok := agent.(*ComputerAgent); ok && e.Broker != nil {
			if err := e.Broker.PostMove(ctx, move, state.TurnsPlayed+1); err != nil {
				log.Warn().Err(err).Msg("failed to send move to broker")
			}
		}
		if metric != nil {
			result.Moves = append(result.Moves, metrics.MoveMetric{
				Turn:         state.TurnsPlayed + 1,
				Player:       player.String(),
				Move:         move.String(),
				SearchMetric: *metric,
			})
		}

		state.NextTurn()
		if err := tracer.Move(agent.Name(), player, outcome); err != nil {
			return result, err
		}
		if err := tracer.Board(state); err != nil {
			return result, err
		}
	}
}

// playTurn asks the agent for moves until one is legal, then performs it.
func (e *Engine) playTurn(ctx context.Context, agent Agent) (game.CoordPair, string, *metrics.SearchMetric, error) {
	for {
		move, metric, err := agent.FindMove(ctx, e.State)
		if err != nil {
			return move, "", nil, err
		}
		ok, outcome := e.State.PerformMove(move)
		if ok {
			return move, outcome, metric, nil
		}
		if !agent.Retries() {
			return move, "", nil, fmt.Errorf("%s played an illegal move %s: %s", agent.Name(), move, outcome)
		}
		fmt.Fprintf(e.Out, "The move is not valid! Try again. (%s)\n", outcome)
	}
}

func (e *Engine) show() {
	fmt.Fprintln(e.Out)
	fmt.Fprint(e.Out, e.State)
	if e.Renderer != nil {
		e.Renderer.Draw(e.State)
	}
}

type nopTracer struct{}

func (nopTracer) GameStart(*game.GameState) error        { return nil }
func (nopTracer) TurnStart(int, int, game.Player) error  { return nil }
func (nopTracer) Move(string, game.Player, string) error { return nil }
func (nopTracer) Board(*game.GameState) error            { return nil }
func (nopTracer) Winner(game.Player, int) error          { return nil }
func (nopTracer) Forfeit() error                         { return nil }

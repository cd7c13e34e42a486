package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"wargame/communication"
	"wargame/experiments/metrics"
	"wargame/game"
	"wargame/meta"
	"wargame/searcher"

	"github.com/rs/zerolog/log"
)

// BrokerAgent waits for the opponent's move to show up on the broker.
type BrokerAgent struct {
	broker   communication.Communicator
	interval time.Duration

	// last move handed to the engine; seeing it again for the same turn means it was rejected
	offered     game.CoordPair
	offeredTurn int
}

func NewBrokerAgent(broker communication.Communicator, interval time.Duration) *BrokerAgent {
	if interval <= 0 {
		interval = meta.POLL_INTERVAL
	}
	return &BrokerAgent{broker: broker, interval: interval}
}

func (b *BrokerAgent) Name() string  { return "Broker" }
func (b *BrokerAgent) Retries() bool { return true }

// FindMove polls until the broker holds a new move for the coming turn. A move the engine
// already rejected for that turn is skipped until the broker replaces it.
func (b *BrokerAgent) FindMove(ctx context.Context, state *game.GameState) (game.CoordPair, *metrics.SearchMetric, error) {
	turn := state.TurnsPlayed + 1
	log.Info().Msgf("waiting for move %d from the broker", turn)
	for {
		if err := ctx.Err(); err != nil {
			return game.CoordPair{}, nil, err
		}
		move, ok, err := b.broker.PollMove(ctx, turn)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("broker poll failed")
		case ok && turn == b.offeredTurn && move == b.offered:
			log.Debug().Msgf("broker still holds rejected move %s", move)
		case ok:
			log.Info().Msgf("got move from broker: %s", move)
			b.offered, b.offeredTurn = move, turn
			return move, nil, nil
		}
		if err := sleepWithContext(ctx, b.interval); err != nil {
			return game.CoordPair{}, nil, err
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NewAgents builds one agent per side for the configured game type. Sides not played by the
// computer read moves from the console, or from the broker when one is given.
func NewAgents(opts *game.Options, broker communication.Communicator, in io.Reader, out io.Writer) (map[game.Player]Agent, error) {
	agents := make(map[game.Player]Agent, 2)
	var console *HumanAgent
	for _, p := range game.Players() {
		switch {
		case opts.GameType.IsComputer(p):
			s, err := searcher.FromOptions(opts)
			if err != nil {
				return nil, fmt.Errorf("agent for %s: %w", p, err)
			}
			agents[p] = NewComputerAgent(s)
		case broker != nil:
			agents[p] = NewBrokerAgent(broker, meta.POLL_INTERVAL)
		default:
			if console == nil {
				console = NewHumanAgent(in, out)
			}
			agents[p] = console
		}
	}
	return agents, nil
}

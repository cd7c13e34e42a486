package searcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"wargame/experiments/metrics"
	"wargame/game"
	"wargame/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var (
	ErrNoMove   = errors.New("no move available")
	ErrGameOver = errors.New("game is already over")
)

type Option func(m *Minimax)

// Minimax is a depth-limited minimax searcher with optional alpha-beta pruning.
type Minimax struct {
	maxDepth   int
	minDepth   int
	duration   time.Duration
	alphaBeta  bool
	randomize  bool
	goroutines int
	evaluate   game.Evaluate
	rng        *rand.Rand
	logger     zerolog.Logger
}

// Result is the outcome of a search. Score is from the point of view of the player to move.
type Result struct {
	Move   game.CoordPair
	Score  int
	Depth  int
	Metric metrics.SearchMetric
}

func WithMaxDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.maxDepth = depth
		}
	}
}

func WithMinDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.minDepth = depth
		}
	}
}

// WithDuration bounds the wall time of a search. The budget is checked between siblings, so
// a search may overrun it by the cost of one subtree.
func WithDuration(duration time.Duration) Option {
	return func(m *Minimax) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithAlphaBeta(enabled bool) Option {
	return func(m *Minimax) {
		m.alphaBeta = enabled
	}
}

// WithRandomize shuffles the root moves so that equal-scoring moves vary between games.
func WithRandomize(seed uint64) Option {
	return func(m *Minimax) {
		m.randomize = true
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithGoroutines searches the root moves concurrently, each on its own copy of the state.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Minimax) {
		m.logger = logger
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		maxDepth:   meta.MAX_DEPTH,
		minDepth:   meta.MIN_DEPTH,
		alphaBeta:  true,
		goroutines: 1,
		evaluate:   game.EvaluateMaterial,
		logger:     log.Logger,
	}
	for _, option := range options {
		option(m)
	}
	if m.minDepth > m.maxDepth {
		m.minDepth = m.maxDepth
	}
	return m
}

// FromOptions builds a searcher from the game configuration.
func FromOptions(opts *game.Options) (*Minimax, error) {
	evaluate, err := game.HeuristicByName(opts.Heuristic)
	if err != nil {
		return nil, fmt.Errorf("failed to create searcher: %w", err)
	}
	options := []Option{
		WithMaxDepth(opts.MaxDepth),
		WithMinDepth(opts.MinDepth),
		WithDuration(opts.MaxTime),
		WithAlphaBeta(opts.AlphaBeta),
		WithEvaluationFn(evaluate),
		WithGoroutines(opts.Goroutines),
	}
	if opts.RandomizeMoves {
		options = append(options, WithRandomize(uint64(time.Now().UnixNano())))
	}
	return NewMinimax(options...), nil
}

// SelectDepth picks the search depth from the position: the full depth when the player to
// move is ahead, the shallow depth when behind and their midpoint when level.
func (m *Minimax) SelectDepth(state *game.GameState) int {
	h := orient(m.evaluate(state), state.NextPlayer)
	depth := (m.maxDepth + m.minDepth) / 2
	if h > 0 {
		depth = m.maxDepth
	} else if h < 0 {
		depth = m.minDepth
	}
	return max(depth, 1)
}

// Search finds the best move for the player to move. The given state is not modified.
func (m *Minimax) Search(ctx context.Context, state *game.GameState) (Result, error) {
	if state.IsFinished() {
		return Result{}, ErrGameOver
	}
	moves := state.MoveCandidates()
	if len(moves) == 0 {
		return Result{}, ErrNoMove
	}
	if m.randomize {
		m.rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
	}

	depth := m.SelectDepth(state)
	collector := metrics.NewCollector(state.Stats)
	collector.Start(depth)

	s := &search{
		ctx:       ctx,
		root:      state.NextPlayer,
		alphaBeta: m.alphaBeta,
		evaluate:  m.evaluate,
		collector: collector,
	}
	if m.duration > 0 {
		s.deadline = time.Now().Add(m.duration)
	}

	collector.AddEvaluation(0)
	var best int
	var bestMove game.CoordPair
	if m.goroutines > 1 {
		best, bestMove = s.parallelRoot(state, moves, depth, m.goroutines)
	} else {
		best, bestMove = s.sequentialRoot(state, moves, depth)
	}

	metric := collector.Complete(best)
	m.report(state, metric)
	return Result{Move: bestMove, Score: best, Depth: depth, Metric: metric}, nil
}

func (m *Minimax) report(state *game.GameState, metric metrics.SearchMetric) {
	event := m.logger.Info().
		Str("player", state.NextPlayer.String()).
		Int("score", metric.Score).
		Int("depth", metric.Depth).
		Str("avg_depth", fmt.Sprintf("%0.1f", metric.AverageDepth)).
		Str("evals_per_depth", state.Stats.String()).
		Dur("elapsed", metric.Duration).
		Bool("timed_out", metric.TimedOut)
	if eps := state.Stats.EvalsPerSecond(); eps > 0 {
		event = event.Str("eval_perf", fmt.Sprintf("%0.1fk/s", eps/1000))
	}
	event.Msg("search complete")
}

// search holds the per-call state of one Search.
type search struct {
	ctx       context.Context
	root      game.Player
	alphaBeta bool
	evaluate  game.Evaluate
	collector metrics.Collector
	deadline  time.Time
}

func (s *search) sequentialRoot(state *game.GameState, moves []game.CoordPair, depth int) (int, game.CoordPair) {
	best, bestMove := math.MinInt, moves[0]
	alpha, beta := math.MinInt, math.MaxInt
	for i, move := range moves {
		if i > 0 && s.expired() {
			break
		}
		v := s.minimax(s.play(state, move), depth-1, 1, alpha, beta)
		if v > best {
			best, bestMove = v, move
		}
		alpha = max(alpha, best)
	}
	return best, bestMove
}

// parallelRoot scores the root moves on a pool of goroutines, each with a full window, so the
// result matches the sequential search.
func (s *search) parallelRoot(state *game.GameState, moves []game.CoordPair, depth, goroutines int) (int, game.CoordPair) {
	type outcome struct {
		value int
		done  bool
	}
	outcomes := make([]outcome, len(moves))

	task := make(chan int, len(moves))
	for i := range moves {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				if i > 0 && s.expired() {
					continue
				}
				v := s.minimax(s.play(state, moves[i]), depth-1, 1, math.MinInt, math.MaxInt)
				outcomes[i] = outcome{value: v, done: true}
			}
		}()
	}
	wg.Wait()

	best, bestMove := math.MinInt, moves[0]
	for i, o := range outcomes {
		if o.done && o.value > best {
			best, bestMove = o.value, moves[i]
		}
	}
	return best, bestMove
}

func (s *search) minimax(state *game.GameState, depth, ply, alpha, beta int) int {
	s.collector.AddEvaluation(ply)
	if depth == 0 || state.IsFinished() {
		return s.score(state)
	}
	moves := state.MoveCandidates()
	if len(moves) == 0 {
		return s.score(state)
	}

	maximizing := state.NextPlayer == s.root
	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}
	for i, move := range moves {
		if i > 0 && s.expired() {
			break
		}
		v := s.minimax(s.play(state, move), depth-1, ply+1, alpha, beta)
		if maximizing {
			best = max(best, v)
			alpha = max(alpha, best)
		} else {
			best = min(best, v)
			beta = min(beta, best)
		}
		if s.alphaBeta && beta <= alpha {
			break
		}
	}
	return best
}

// play applies move to a fresh copy of state and hands the turn over.
func (s *search) play(state *game.GameState, move game.CoordPair) *game.GameState {
	child := state.Clone()
	child.PerformMove(move)
	child.NextTurn()
	return child
}

// score is the leaf value from the root player's point of view.
func (s *search) score(state *game.GameState) int {
	if winner, ok := state.Winner(); ok {
		if winner == s.root {
			return game.MaxHeuristicScore
		}
		return game.MinHeuristicScore
	}
	return orient(s.evaluate(state), s.root)
}

func (s *search) expired() bool {
	if s.ctx.Err() != nil {
		s.collector.SetTimedOut()
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.collector.SetTimedOut()
		return true
	}
	return false
}

func orient(score int, p game.Player) int {
	if p == game.Defender {
		return -score
	}
	return score
}

package metrics

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slices"
)

// SearchMetric summarizes a single move search.
type SearchMetric struct {
	Depth               int // depth the search was run with
	Score               int
	Duration            time.Duration
	Evaluations         int
	EvaluationsPerDepth map[int]int
	AverageDepth        float64 // mean ply of the evaluated nodes
	TimedOut            bool
}

// EvalsPerSecond is the evaluation throughput of the search.
func (m SearchMetric) EvalsPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Evaluations) / m.Duration.Seconds()
}

type MoveMetric struct {
	Turn   int
	Player string
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string
	Forfeit        bool
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(depth int)
	AddEvaluation(ply int)
	SetTimedOut()
	Complete(score int) SearchMetric
}

// collector counts evaluations per ply for one search. Counters are atomic so that
// parallel branches can share it.
type collector struct {
	depth     int
	startTime time.Time
	evals     []atomic.Int64
	timedOut  atomic.Bool
	stats     *Stats
}

// NewCollector returns a collector that also folds its results into stats when complete.
// stats may be nil.
func NewCollector(stats *Stats) Collector {
	return &collector{stats: stats}
}

func (m *collector) Start(depth int) {
	m.depth = depth
	m.startTime = time.Now()
	m.evals = make([]atomic.Int64, depth+1)
	m.timedOut.Store(false)
}

func (m *collector) AddEvaluation(ply int) {
	if ply < 0 || ply >= len(m.evals) {
		return
	}
	m.evals[ply].Add(1)
}

func (m *collector) SetTimedOut() {
	m.timedOut.Store(true)
}

func (m *collector) Complete(score int) SearchMetric {
	metric := SearchMetric{
		Depth:               m.depth,
		Score:               score,
		Duration:            time.Since(m.startTime),
		EvaluationsPerDepth: make(map[int]int, len(m.evals)),
		TimedOut:            m.timedOut.Load(),
	}
	weighted := 0
	for ply := range m.evals {
		n := int(m.evals[ply].Load())
		if n == 0 {
			continue
		}
		metric.EvaluationsPerDepth[ply] = n
		metric.Evaluations += n
		weighted += n * ply
	}
	if metric.Evaluations > 0 {
		metric.AverageDepth = float64(weighted) / float64(metric.Evaluations)
	}
	if m.stats != nil {
		m.stats.Add(metric)
	}
	return metric
}

// Stats accumulates search statistics over a whole game. It is shared by every clone of a
// game state.
type Stats struct {
	mu                  sync.Mutex
	evaluationsPerDepth map[int]int
	totalDuration       time.Duration
}

func NewStats() *Stats {
	return &Stats{evaluationsPerDepth: make(map[int]int)}
}

// Add folds the results of one search into the running totals.
func (s *Stats) Add(metric SearchMetric) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ply, n := range metric.EvaluationsPerDepth {
		s.evaluationsPerDepth[ply] += n
	}
	s.totalDuration += metric.Duration
}

// EvaluationsPerDepth returns a copy of the per-ply evaluation counts.
func (s *Stats) EvaluationsPerDepth() map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int]int, len(s.evaluationsPerDepth))
	for ply, n := range s.evaluationsPerDepth {
		out[ply] = n
	}
	return out
}

func (s *Stats) TotalEvaluations() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, n := range s.evaluationsPerDepth {
		total += n
	}
	return total
}

func (s *Stats) TotalDuration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.totalDuration
}

// EvalsPerSecond is the cumulative evaluation throughput.
func (s *Stats) EvalsPerSecond() float64 {
	d := s.TotalDuration()
	if d <= 0 {
		return 0
	}
	return float64(s.TotalEvaluations()) / d.Seconds()
}

// String lists the evaluation counts by ply, e.g. "0:1 1:12 2:130".
func (s *Stats) String() string {
	return FormatPerDepth(s.EvaluationsPerDepth())
}

func FormatPerDepth(perDepth map[int]int) string {
	depths := make([]int, 0, len(perDepth))
	for ply := range perDepth {
		depths = append(depths, ply)
	}
	slices.Sort(depths)

	parts := make([]string, 0, len(depths))
	for _, ply := range depths {
		parts = append(parts, fmt.Sprintf("%d:%d", ply, perDepth[ply]))
	}
	return strings.Join(parts, " ")
}

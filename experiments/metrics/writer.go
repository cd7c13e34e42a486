package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one computer player taking part in an experiment.
type AgentConfig struct {
	ID         int
	MaxDepth   int
	MinDepth   int
	AlphaBeta  bool
	Duration   time.Duration
	Heuristic  string
	Goroutines int
}

type GameRecord struct {
	ID       int
	Attacker int // AgentConfig.ID
	Defender int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> and writes every table there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "max_depth", "min_depth", "alpha_beta", "duration", "heuristic", "goroutines"}
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			strconv.Itoa(c.MaxDepth),
			strconv.Itoa(c.MinDepth),
			strconv.FormatBool(c.AlphaBeta),
			c.Duration.String(),
			c.Heuristic,
			strconv.Itoa(c.Goroutines),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "attacker", "defender", "winner", "forfeit", "turns", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Attacker),
			strconv.Itoa(r.Defender),
			r.Winner,
			strconv.FormatBool(r.Forfeit),
			strconv.Itoa(r.TotalMoves),
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "turn", "player", "move", "depth", "score", "evaluations", "avg_depth", "duration", "timed_out"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Turn),
			r.Player,
			r.Move,
			strconv.Itoa(r.Depth),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Evaluations),
			strconv.FormatFloat(r.AverageDepth, 'f', 2, 64),
			r.SearchMetric.Duration.String(),
			strconv.FormatBool(r.TimedOut),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, file))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

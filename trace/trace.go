package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"wargame/game"

	"github.com/google/uuid"
)

const (
	headerRule = "----------------"
	turnRule   = "----------------------"
)

// Writer appends a human readable record of one game to a trace file.
type Writer struct {
	w       io.WriteCloser
	path    string
	session uuid.UUID
}

// FileName is the trace file name for a configuration, e.g. gameTrace-true-5-100.txt.
func FileName(opts *game.Options) string {
	maxTime := strconv.FormatFloat(opts.MaxTime.Seconds(), 'f', -1, 64)
	return fmt.Sprintf("gameTrace-%t-%s-%d.txt", opts.AlphaBeta, maxTime, opts.MaxTurns)
}

// Create truncates the trace file for opts in dir and writes the parameter header.
func Create(dir string, opts *game.Options) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}
	path := filepath.Join(dir, FileName(opts))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}
	t := &Writer{w: f, path: path, session: uuid.New()}
	if err := t.header(opts); err != nil {
		_ = f.Close()
		return nil, err
	}
	return t, nil
}

func (t *Writer) Path() string {
	return t.path
}

// Session identifies this game in the trace and in logs.
func (t *Writer) Session() uuid.UUID {
	return t.session
}

func (t *Writer) Close() error {
	return t.w.Close()
}

func (t *Writer) header(opts *game.Options) error {
	lines := []string{
		headerRule,
		"GAME PARAMETERS: ",
		"Session: " + t.session.String(),
		fmt.Sprintf("Turn timeout: %s seconds", strconv.FormatFloat(opts.MaxTime.Seconds(), 'f', -1, 64)),
		fmt.Sprintf("Max turns: %d", opts.MaxTurns),
		"Play mode: " + opts.GameType.PlayMode(),
	}
	if opts.GameType != game.AttackerVsDefender {
		alphaBeta := "off"
		if opts.AlphaBeta {
			alphaBeta = "on"
		}
		lines = append(lines, "Alpha-beta: "+alphaBeta, "Heuristic: "+opts.Heuristic)
	}
	lines = append(lines, headerRule)
	return t.write(lines...)
}

func (t *Writer) GameStart(state *game.GameState) error {
	return t.write("\nGAME START\n", state.String(), turnRule)
}

func (t *Writer) TurnStart(turn, maxTurns int, player game.Player) error {
	return t.write(fmt.Sprintf("Turn # %d/%d", turn, maxTurns), fmt.Sprintf("Player: %s\n", player))
}

func (t *Writer) Move(agent string, player game.Player, outcome string) error {
	return t.write(fmt.Sprintf("%s %s: %s", agent, player, outcome))
}

func (t *Writer) Board(state *game.GameState) error {
	return t.write(state.BoardString(), turnRule)
}

func (t *Writer) Winner(player game.Player, turns int) error {
	return t.write(fmt.Sprintf("%s won in %d turns!", player, turns))
}

func (t *Writer) Forfeit() error {
	return t.write("Computer doesn't know what to do!!!", "Game over")
}

// write appends each entry followed by a newline.
func (t *Writer) write(entries ...string) error {
	for _, e := range entries {
		if _, err := io.WriteString(t.w, e+"\n"); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
	}
	return nil
}

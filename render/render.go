package render

import (
	"fmt"
	"sync"

	"wargame/game"

	"github.com/gdamore/tcell/v2"
)

const (
	labelWidth = 3 // "A: "
	cellWidth  = 4
)

// Theme holds the colours used to draw the board.
type Theme struct {
	Board    tcell.Color
	BoardAlt tcell.Color
	Attacker tcell.Color
	Defender tcell.Color
	Label    tcell.Color
}

var DefaultTheme = Theme{
	Board:    tcell.ColorSaddleBrown,
	BoardAlt: tcell.ColorSandyBrown,
	Attacker: tcell.ColorRed,
	Defender: tcell.ColorBlue,
	Label:    tcell.ColorWhite,
}

// CellOrigin is the screen position of the first character of the cell at c.
func CellOrigin(c game.Coord) (x, y int) {
	return labelWidth + c.Col*cellWidth, 1 + c.Row
}

// Board draws the grid with the default theme.
func Board(screen tcell.Screen, state *game.GameState) {
	DefaultTheme.DrawBoard(screen, state)
}

// DrawBoard draws the column labels, one line per row with alternating cell backgrounds, and a
// status line below the grid.
func (t Theme) DrawBoard(screen tcell.Screen, state *game.GameState) {
	label := tcell.StyleDefault.Foreground(t.Label)
	dim := state.Dim()

	for col := 0; col < dim; col++ {
		x, _ := CellOrigin(game.Coord{Col: col})
		drawText(screen, x, 0, label, fmt.Sprintf(" %-3s", game.Coord{Col: col}.ColString()))
	}
	for row := 0; row < dim; row++ {
		drawText(screen, 0, 1+row, label, game.Coord{Row: row}.RowString()+": ")
		for col := 0; col < dim; col++ {
			c := game.Coord{Row: row, Col: col}
			bg := t.Board
			if (row+col)%2 == 1 {
				bg = t.BoardAlt
			}
			style := tcell.StyleDefault.Background(bg).Foreground(t.Label)
			text := " .  "
			if unit := state.Get(c); unit != nil {
				style = style.Foreground(t.playerColor(unit.Player)).Bold(true)
				text = " " + unit.String()
			}
			x, y := CellOrigin(c)
			drawText(screen, x, y, style, text)
		}
	}

	status := fmt.Sprintf("Next player: %s  Turns played: %d", state.NextPlayer, state.TurnsPlayed)
	if winner, ok := state.Winner(); ok {
		status = fmt.Sprintf("%s won in %d turns!", winner, state.TurnsPlayed)
	}
	drawText(screen, 0, dim+2, label, status)
}

func (t Theme) playerColor(p game.Player) tcell.Color {
	if p == game.Attacker {
		return t.Attacker
	}
	return t.Defender
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// Renderer redraws the whole screen on every call to Draw.
type Renderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	theme  Theme
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, theme: DefaultTheme}
}

// NewTerminalRenderer takes over the terminal. Call Close to restore it.
func NewTerminalRenderer() (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialise screen: %w", err)
	}
	return NewRenderer(screen), nil
}

func (r *Renderer) Draw(state *game.GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screen.Clear()
	r.theme.DrawBoard(r.screen, state)
	r.screen.Show()
}

func (r *Renderer) Close() {
	r.screen.Fini()
}

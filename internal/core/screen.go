package core

import (
	"strings"
)

// Color is a palette index for a screen cell. The platform maps each index
// to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightBlue
	ColorOrange
	ColorGray
)

// Cell is one character position of a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a fixed-size grid of colored runes. The simulation draws the
// field into it and the terminal layer turns it into styled text.
type Screen struct {
	w, h  int
	cells []Cell // row-major, len w*h
}

// NewScreen returns a blank screen of w×h cells.
func NewScreen(w, h int) *Screen {
	s := &Screen{}
	s.Resize(w, h)
	return s
}

func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

// Resize reallocates the grid. Every frame is redrawn from the simulation,
// so old content is dropped.
func (s *Screen) Resize(w, h int) {
	if s.cells != nil && w == s.w && h == s.h {
		return
	}
	s.w, s.h = max(w, 0), max(h, 0)
	s.cells = make([]Cell, s.w*s.h)
	s.Clear()
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return 0, false
	}
	return y*s.w + x, true
}

// Set writes r in the default color. Positions off the grid are ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetWithColor(x, y, r, ColorDefault)
}

// SetWithColor writes a colored rune. Positions off the grid are ignored.
func (s *Screen) SetWithColor(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space off the grid.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blank
}

// DrawText writes text left to right from (x, y), clipped to the grid.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetWithColor(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text centered on row y.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawText((s.w-len([]rune(text)))/2, y, text)
}

// DrawBox outlines r with box-drawing runes and blanks the inside.
func (s *Screen) DrawBox(r Rect) {
	left, top := r.X, r.Y
	right, bottom := r.Right()-1, r.Bottom()-1
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			ch := ' '
			switch {
			case y == top && x == left:
				ch = '┌'
			case y == top && x == right:
				ch = '┐'
			case y == bottom && x == left:
				ch = '└'
			case y == bottom && x == right:
				ch = '┘'
			case y == top || y == bottom:
				ch = '─'
			case x == left || x == right:
				ch = '│'
			}
			s.Set(x, y, ch)
		}
	}
}

// Row returns row y as plain text. Rows off the grid are all spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return strings.Repeat(" ", s.w)
	}
	line := s.cells[y*s.w : (y+1)*s.w]
	runes := make([]rune, len(line))
	for i, c := range line {
		runes[i] = c.Rune
	}
	return string(runes)
}

// String joins all rows with newlines.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}

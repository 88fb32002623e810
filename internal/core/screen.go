package core

import (
	"strings"
)

// Color represents a foreground color for a screen cell.
// The platform maps these to terminal styles.
type Color uint8

// Palette used by the level views.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorPink
)

// Cell is one character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D character buffer for rendering level views.
// It decouples level rendering from the terminal: levels draw text and
// bars while the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions. Content is discarded; views redraw
// every frame.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// DrawText writes an uncolored string horizontally starting at (x, y).
func (s *Screen) DrawText(x, y int, text string) int {
	return s.DrawColored(x, y, text, ColorDefault)
}

// DrawColored writes a string in one color and returns the column after it.
// Characters beyond the screen are clipped.
func (s *Screen) DrawColored(x, y int, text string, c Color) int {
	col := x
	for _, r := range text {
		s.Set(col, y, r, c)
		col++
	}
	return col
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawColored(x, y, text, c)
}

// DrawWrapped word-wraps text into lines of at most width runes starting at
// (x, y) and returns the number of lines drawn.
func (s *Screen) DrawWrapped(x, y, width int, text string, c Color) int {
	lines := Wrap(text, width)
	for i, line := range lines {
		s.DrawColored(x, y+i, line, c)
	}
	return len(lines)
}

// Wrap splits text on spaces into lines of at most width runes.
// Words longer than width get a line of their own.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || width <= 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

// DrawBar draws a horizontal gauge of the given width filled to ratio.
func (s *Screen) DrawBar(x, y, width int, ratio float64, c Color) {
	filled := int(ClampF(ratio, 0, 1)*float64(width) + 0.5)
	for i := 0; i < width; i++ {
		if i < filled {
			s.Set(x+i, y, '█', c)
		} else {
			s.Set(x+i, y, '░', ColorGray)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(x, y, w, h int, c Color) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1
	s.Set(x, y, '┌', c)
	s.Set(right, y, '┐', c)
	s.Set(x, bottom, '└', c)
	s.Set(right, bottom, '┘', c)
	for i := x + 1; i < right; i++ {
		s.Set(i, y, '─', c)
		s.Set(i, bottom, '─', c)
	}
	for j := y + 1; j < bottom; j++ {
		s.Set(x, j, '│', c)
		s.Set(right, j, '│', c)
	}
}

// String converts the screen buffer to plain text, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

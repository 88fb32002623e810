package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X', ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected X in red", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A', ColorDefault)
	s.Set(100, 0, 'A', ColorDefault)
	s.Set(0, -1, 'A', ColorDefault)
	s.Set(0, 100, 'A', ColorDefault)

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawTextUnicode(t *testing.T) {
	s := NewScreen(20, 2)
	end := s.DrawColored(2, 0, "Bien-être", ColorGreen)

	if end != 11 {
		t.Errorf("DrawColored() returned column %d, expected 11", end)
	}
	if s.Get(8, 0) != 't' || s.Get(9, 0) != 'r' {
		t.Errorf("Row 0 = %q, accented text misaligned", s.Row(0))
	}

	// Clipped at the right boundary
	s.DrawText(18, 1, "Hello")
	if s.Get(18, 1) != 'H' || s.Get(19, 1) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawBar(t *testing.T) {
	tests := []struct {
		name   string
		ratio  float64
		filled int
	}{
		{"empty", 0, 0},
		{"half", 0.5, 5},
		{"full", 1, 10},
		{"over", 1.7, 10},
		{"under", -0.3, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(12, 1)
			s.DrawBar(1, 0, 10, tc.ratio, ColorPink)
			got := strings.Count(s.Row(0), "█")
			if got != tc.filled {
				t.Errorf("DrawBar(%v) filled %d cells, expected %d", tc.ratio, got, tc.filled)
			}
		})
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(1, 1, 5, 4, ColorCyan)

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if s.Row(0) != "        " {
		t.Errorf("Resize should clear content, row 0 = %q", s.Row(0))
	}
	if s.Row(-1) != "        " {
		t.Errorf("Out of bounds row should be spaces, got %q", s.Row(-1))
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		text     string
		width    int
		expected []string
	}{
		{"one two three", 7, []string{"one two", "three"}},
		{"one two three", 20, []string{"one two three"}},
		{"  spaced   out  ", 6, []string{"spaced", "out"}},
		{"supercalifragilistic is long", 5, []string{"supercalifragilistic", "is", "long"}},
		{"", 10, nil},
	}

	for _, tc := range tests {
		got := Wrap(tc.text, tc.width)
		if strings.Join(got, "|") != strings.Join(tc.expected, "|") {
			t.Errorf("Wrap(%q, %d) = %q, expected %q", tc.text, tc.width, got, tc.expected)
		}
	}

	s := NewScreen(10, 5)
	if n := s.DrawWrapped(0, 1, 7, "one two three", ColorDefault); n != 2 {
		t.Errorf("DrawWrapped() = %d lines, expected 2", n)
	}
	if s.Row(2) != "three     " {
		t.Errorf("Row(2) = %q", s.Row(2))
	}
}

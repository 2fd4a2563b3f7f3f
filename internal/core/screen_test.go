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

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("negative size should clamp to 0x0, got %dx%d", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("empty screen String() = %q", s.String())
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	s.SetColored(1, 1, '●', ColorRed)
	if c := s.GetCell(1, 1); c.Rune != '●' || c.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClearRect(t *testing.T) {
	s := NewScreen(6, 6)
	for y := 0; y < 6; y++ {
		s.DrawText(0, y, "XXXXXX")
	}

	s.ClearRect(NewRect(1, 1, 3, 2))

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			inside := x >= 1 && x < 4 && y >= 1 && y < 3
			got := s.Get(x, y)
			if inside && got != ' ' {
				t.Errorf("expected blank at (%d, %d), got %q", x, y, got)
			}
			if !inside && got != 'X' {
				t.Errorf("expected 'X' at (%d, %d), got %q", x, y, got)
			}
		}
	}

	// Partially off-screen rectangles are clipped, not a panic.
	s.ClearRect(NewRect(4, 4, 10, 10))
	if s.Get(5, 5) != ' ' {
		t.Error("ClearRect should clip to the screen")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	for i, ch := range "Hello" {
		if s.Get(2+i, 1) != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.Get(2+i, 1))
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}

	// Multi-byte runes occupy one cell each
	s.DrawText(0, 3, "✈●|")
	if s.Get(0, 3) != '✈' || s.Get(1, 3) != '●' || s.Get(2, 3) != '|' {
		t.Errorf("multi-byte text misplaced: %q", s.Row(3))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

	corners := map[[2]int]rune{
		{1, 1}: '┏',
		{5, 1}: '┓',
		{1, 4}: '┗',
		{5, 4}: '┛',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}

	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '━' || s.Get(x, 4) != '━' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '┃' || s.Get(5, y) != '┃' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
	if s.GetCell(1, 1).Color != ColorGray {
		t.Error("box should use the requested color")
	}
	if s.Get(3, 2) != ' ' {
		t.Error("box interior should stay blank")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	expected := "AAAAA\nBBBBB\nCCCCC"
	if result := s.String(); result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	s.Resize(15, 8)
	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") {
		t.Errorf("Row(2) should start with 'Test', got %q", row)
	}
	if len(row) != 10 {
		t.Errorf("Row length should be 10, got %d", len(row))
	}

	if outOfBounds := s.Row(-1); outOfBounds != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", outOfBounds)
	}
}

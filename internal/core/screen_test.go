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
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetUsesPen(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(1, 1, 'a')
	s.SetPen(ColorCyan)
	s.Set(2, 1, 'b')

	if c := s.GetCell(1, 1); c.Color != ColorDefault || c.Rune != 'a' {
		t.Errorf("GetCell(1, 1) = %+v, expected default 'a'", c)
	}
	if c := s.GetCell(2, 1); c.Color != ColorCyan || c.Rune != 'b' {
		t.Errorf("GetCell(2, 1) = %+v, expected cyan 'b'", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClearResetsPen(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetPen(ColorRed)
	s.DrawRect(NewRect(0, 0, 4, 4), 'X')

	s.Clear()
	s.Set(0, 0, 'Y')

	if s.Get(3, 3) != ' ' {
		t.Errorf("After Clear, expected space, got %q", s.Get(3, 3))
	}
	if c := s.GetCell(0, 0); c.Color != ColorDefault {
		t.Errorf("Clear should reset pen, got color %d", c.Color)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	if got := s.Row(1)[2:7]; got != "Hello" {
		t.Errorf("DrawText wrote %q, expected %q", got, "Hello")
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCenteredMultibyte(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "▲▲")

	x := (20 - 2) / 2
	if s.Get(x, 2) != '▲' || s.Get(x+1, 2) != '▲' {
		t.Errorf("DrawTextCentered should count runes, row = %q", s.Row(2))
	}
}

func TestScreenDrawRectAndBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("DrawRect: expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}

	s.Clear()
	s.DrawBox(NewRect(1, 1, 5, 4))
	corners := map[[2]int]rune{{1, 1}: '┌', {5, 1}: '┐', {1, 4}: '└', {5, 4}: '┘'}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("DrawBox edges not drawn")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawHLine(0, 2, 5, 'C')

	expected := "AAAAA\nBBBBB\nCCCCC"
	if result := s.String(); result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetPen(ColorYellow)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}
	if c := s.GetCell(0, 0); c.Color != ColorYellow {
		t.Errorf("Resize should keep colors, got %d", c.Color)
	}

	s.Resize(15, 8)
	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
	if out := s.Row(-1); out != strings.Repeat(" ", 15) {
		t.Errorf("Out of bounds row should be spaces, got %q", out)
	}
}

package promptcore

import "testing"

func TestScreenGetDefaultsWithoutGrowing(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	c := s.Get(5, 5)
	if c.Character() != " " {
		t.Fatalf("expected default char, got %q", c.Character())
	}
	if s.Width() != 0 || s.Height() != 0 {
		t.Fatalf("Get must not grow dimensions, got %dx%d", s.Width(), s.Height())
	}
}

func TestScreenSetGrowsDimensions(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	s.Set(3, 7, NewChar("x", ""))
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("got %dx%d, want 8x4", s.Width(), s.Height())
	}
	got := s.Get(3, 7)
	if got.Character() != "x" {
		t.Fatalf("got %q, want x", got.Character())
	}
}

func TestScreenClearPreservesDefaultCharAndShowCursor(t *testing.T) {
	s := NewScreen(NewChar(".", ""), false, 10, 10)
	s.Set(1, 1, NewChar("x", ""))
	s.Clear()
	if s.ShowCursor() != false {
		t.Fatalf("show_cursor not preserved across Clear")
	}
	if got := s.Get(1, 1); got.Character() != "." {
		t.Fatalf("grid not cleared: got %q", got.Character())
	}
	if s.Width() != 10 || s.Height() != 10 {
		t.Fatalf("dimensions not reset to construction values: got %dx%d", s.Width(), s.Height())
	}
}

func TestScreenMenuPositionFallsBackToCursorThenOrigin(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	w := NewWindowID()

	x, y := s.GetMenuPosition(w)
	if x != 0 || y != 0 {
		t.Fatalf("expected origin fallback, got (%d,%d)", x, y)
	}

	s.SetCursorPosition(w, 3, 4)
	x, y = s.GetMenuPosition(w)
	if x != 3 || y != 4 {
		t.Fatalf("expected cursor fallback (3,4), got (%d,%d)", x, y)
	}

	s.SetMenuPosition(w, 9, 9)
	x, y = s.GetMenuPosition(w)
	if x != 9 || y != 9 {
		t.Fatalf("expected explicit menu position (9,9), got (%d,%d)", x, y)
	}
}

func TestScreenZeroWidthEscapesConcatenate(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	s.AddZeroWidthEscape(0, 0, "\x1b]8;;http://a\x1b\\")
	s.AddZeroWidthEscape(0, 0, "\x1b]8;;\x1b\\")
	got := s.GetZeroWidthEscapes(0, 0)
	want := "\x1b]8;;http://a\x1b\\\x1b]8;;\x1b\\"
	if got != want {
		t.Fatalf("escapes did not concatenate: got %q", got)
	}
}

func TestScreenZeroWidthEscapeEmptyIsNoop(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	s.AddZeroWidthEscape(0, 0, "x")
	s.AddZeroWidthEscape(0, 0, "")
	if got := s.GetZeroWidthEscapes(0, 0); got != "x" {
		t.Fatalf("empty append should be a no-op, got %q", got)
	}
}

func TestScreenDrawAllFloatsOrdersByZThenFIFO(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	var order []string
	s.DrawWithZIndex(2, func(*Screen) { order = append(order, "z2-a") })
	s.DrawWithZIndex(1, func(*Screen) { order = append(order, "z1-a") })
	s.DrawWithZIndex(1, func(*Screen) { order = append(order, "z1-b") })
	s.DrawWithZIndex(2, func(*Screen) { order = append(order, "z2-b") })

	s.DrawAllFloats()

	want := []string{"z1-a", "z1-b", "z2-a", "z2-b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestScreenDrawAllFloatsDrainsFloatsEnqueuedDuringDraining(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	var ran []string
	s.DrawWithZIndex(0, func(sc *Screen) {
		ran = append(ran, "first")
		sc.DrawWithZIndex(0, func(*Screen) { ran = append(ran, "nested") })
	})
	s.DrawAllFloats()
	if len(ran) != 2 || ran[0] != "first" || ran[1] != "nested" {
		t.Fatalf("ran = %v, want [first nested]", ran)
	}
}

func TestScreenFillAreaComposesStyle(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	s.Set(0, 0, NewChar("x", "bold"))
	s.FillArea(WritePosition{X: 0, Y: 0, Width: 1, Height: 1}, "fg:red", false)
	got := s.Get(0, 0)
	if got.Style() != "fg:red bold" {
		t.Fatalf("style = %q, want %q", got.Style(), "fg:red bold")
	}
}

func TestScreenFillAreaEmptyStyleNoop(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	s.Set(0, 0, NewChar("x", "bold"))
	s.FillArea(WritePosition{X: 0, Y: 0, Width: 1, Height: 1}, "", false)
	if got := s.Get(0, 0).Style(); got != "bold" {
		t.Fatalf("style changed on empty fill: %q", got)
	}
}

func TestScreenAppendStyleToContent(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	s.Set(0, 0, NewChar("a", "bold"))
	s.Set(1, 1, NewChar("b", ""))
	s.AppendStyleToContent("class:dim")
	if got := s.Get(0, 0).Style(); got != "bold class:dim" {
		t.Fatalf("got %q", got)
	}
	if got := s.Get(1, 1).Style(); got != "class:dim" {
		t.Fatalf("got %q", got)
	}
}

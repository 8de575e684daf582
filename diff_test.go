package promptcore

import (
	"fmt"
	"testing"
)

// recordingOutput is a minimal Output test double that records every call
// as a short opcode string, in order, so tests can assert on the emitted
// sequence without depending on any particular Output backend.
type recordingOutput struct {
	ops []string
}

func newRecordingOutput() *recordingOutput { return &recordingOutput{} }

func (o *recordingOutput) Write(data string)    { o.ops = append(o.ops, "W:"+data) }
func (o *recordingOutput) WriteRaw(data string) { o.ops = append(o.ops, "R:"+data) }
func (o *recordingOutput) Flush() error         { o.ops = append(o.ops, "FLUSH"); return nil }

func (o *recordingOutput) EnterAlternateScreen() { o.ops = append(o.ops, "ALT+") }
func (o *recordingOutput) QuitAlternateScreen()  { o.ops = append(o.ops, "ALT-") }
func (o *recordingOutput) EnableMouseSupport()   { o.ops = append(o.ops, "MOUSE+") }
func (o *recordingOutput) DisableMouseSupport()  { o.ops = append(o.ops, "MOUSE-") }

func (o *recordingOutput) EraseScreen()    { o.ops = append(o.ops, "ERASE_SCREEN") }
func (o *recordingOutput) EraseDown()      { o.ops = append(o.ops, "ERASE_DOWN") }
func (o *recordingOutput) EraseEndOfLine() { o.ops = append(o.ops, "ERASE_EOL") }

func (o *recordingOutput) CursorGoto(row, col int) {
	o.ops = append(o.ops, fmt.Sprintf("GOTO(%d,%d)", row, col))
}
func (o *recordingOutput) CursorUp(n int)       { o.ops = append(o.ops, fmt.Sprintf("UP(%d)", n)) }
func (o *recordingOutput) CursorDown(n int)     { o.ops = append(o.ops, fmt.Sprintf("DOWN(%d)", n)) }
func (o *recordingOutput) CursorForward(n int)  { o.ops = append(o.ops, fmt.Sprintf("FWD(%d)", n)) }
func (o *recordingOutput) CursorBackward(n int) { o.ops = append(o.ops, fmt.Sprintf("BACK(%d)", n)) }

func (o *recordingOutput) HideCursor() { o.ops = append(o.ops, "HIDE") }
func (o *recordingOutput) ShowCursor() { o.ops = append(o.ops, "SHOW") }

func (o *recordingOutput) SetCursorShape(CursorShape) {}
func (o *recordingOutput) ResetCursorShape()          {}

func (o *recordingOutput) EnableAutowrap()  { o.ops = append(o.ops, "WRAP+") }
func (o *recordingOutput) DisableAutowrap() { o.ops = append(o.ops, "WRAP-") }

func (o *recordingOutput) SetAttributes(s Style) { o.ops = append(o.ops, "STYLE") }
func (o *recordingOutput) ResetAttributes()      { o.ops = append(o.ops, "RESET") }

func (o *recordingOutput) EnableSyncOutput()  { o.ops = append(o.ops, "SYNC+") }
func (o *recordingOutput) DisableSyncOutput() { o.ops = append(o.ops, "SYNC-") }

func (o *recordingOutput) AskForCPR() { o.ops = append(o.ops, "CPR") }
func (o *recordingOutput) BellSound() { o.ops = append(o.ops, "BELL") }

func (o *recordingOutput) GetSize() (rows, cols int, err error) { return 24, 80, nil }
func (o *recordingOutput) SupportsSyncOutput() bool             { return true }

func TestPlanMovePrefersCHAOverCUPOnSameRow(t *testing.T) {
	m, delta := planMove(0, 0, 0, 5)
	if m != moveCHA {
		t.Fatalf("move = %v, want moveCHA", m)
	}
	if delta != 5 {
		t.Fatalf("delta = %d, want 5", delta)
	}
}

func TestPlanMoveNoneWhenAlreadyThere(t *testing.T) {
	m, _ := planMove(3, 4, 3, 4)
	if m != moveNone {
		t.Fatalf("move = %v, want moveNone", m)
	}
}

func TestPlanMovePrefersRelativeForShortHops(t *testing.T) {
	m, delta := planMove(2, 2, 2, 3)
	if m != moveCUF {
		t.Fatalf("move = %v, want moveCUF", m)
	}
	if delta != 1 {
		t.Fatalf("delta = %d, want 1", delta)
	}
}

func TestRenderScreenDiffFullRedrawWritesEveryCell(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	s.Set(0, 0, NewChar("a", ""))
	s.Set(0, 1, NewChar("b", ""))

	out := newRecordingOutput()
	RenderScreenDiff(out, nil, s, 0, 0, true)

	foundA, foundB := false, false
	for _, op := range out.ops {
		if op == "W:a" {
			foundA = true
		}
		if op == "W:b" {
			foundB = true
		}
	}
	if !foundA || !foundB {
		t.Fatalf("expected both cells written, got ops: %v", out.ops)
	}
}

func TestRenderScreenDiffIncrementalSkipsUnchangedCells(t *testing.T) {
	prev := NewScreen(NewChar(" ", ""), true, 0, 0)
	prev.Set(0, 0, NewChar("a", ""))
	prev.Set(0, 1, NewChar("b", ""))

	cur := NewScreen(NewChar(" ", ""), true, 0, 0)
	cur.Set(0, 0, NewChar("a", ""))
	cur.Set(0, 1, NewChar("c", ""))

	out := newRecordingOutput()
	RenderScreenDiff(out, prev, cur, 0, 0, false)

	for _, op := range out.ops {
		if op == "W:a" {
			t.Fatalf("unchanged cell 'a' should not have been rewritten, ops: %v", out.ops)
		}
	}
	foundC := false
	for _, op := range out.ops {
		if op == "W:c" {
			foundC = true
		}
	}
	if !foundC {
		t.Fatalf("changed cell 'c' not written, ops: %v", out.ops)
	}
}

func TestRenderScreenDiffSkipsWideCharShadowCell(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	s.Set(0, 0, NewChar("中", ""))
	s.Set(0, 2, NewChar("y", "")) // forces width=3, leaving col 1 as an implicit shadow cell

	out := newRecordingOutput()
	RenderScreenDiff(out, nil, s, 0, 0, true)

	for _, op := range out.ops {
		if op == "GOTO(0,1)" {
			t.Fatalf("shadow column at (0,1) should never be targeted directly, ops: %v", out.ops)
		}
	}
}

func TestRenderScreenDiffEmitsZeroWidthEscapeAfterChar(t *testing.T) {
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	s.Set(0, 0, NewChar("a", ""))
	s.AddZeroWidthEscape(0, 0, "\x1b]8;;x\x1b\\")

	out := newRecordingOutput()
	RenderScreenDiff(out, nil, s, 0, 0, true)

	idxW, idxR := -1, -1
	for i, op := range out.ops {
		if op == "W:a" {
			idxW = i
		}
		if op == "R:\x1b]8;;x\x1b\\" {
			idxR = i
		}
	}
	if idxW == -1 || idxR == -1 || idxR != idxW+1 {
		t.Fatalf("expected zero-width escape emitted immediately after char, ops: %v", out.ops)
	}
}

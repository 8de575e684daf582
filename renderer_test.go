package promptcore

import "testing"

func TestRendererFirstRenderForcesFullRedraw(t *testing.T) {
	out := newRecordingOutput()
	r := NewRenderer(out)
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	s.Set(0, 0, NewChar("x", ""))

	if err := r.Render(s, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	foundErase := false
	for _, op := range out.ops {
		if op == "ERASE_SCREEN" {
			foundErase = true
		}
	}
	if !foundErase {
		t.Fatalf("expected first render to erase the screen, ops: %v", out.ops)
	}
}

func TestRendererHeightUnknownUntilCPR(t *testing.T) {
	r := NewRenderer(NewDummyOutput())
	if r.HeightIsKnown() {
		t.Fatalf("expected height unknown before any CPR response")
	}
	if _, err := r.RowsAboveLayout(); err != ErrHeightUnknown {
		t.Fatalf("got %v, want ErrHeightUnknown", err)
	}

	r.HandleCPRResponse(3, 1)
	if !r.HeightIsKnown() {
		t.Fatalf("expected height known after CPR response")
	}
	above, err := r.RowsAboveLayout()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if above != 2 {
		t.Fatalf("rows above layout = %d, want 2", above)
	}
}

func TestRendererResetForResizeForgetsHeight(t *testing.T) {
	r := NewRenderer(NewDummyOutput())
	r.HandleCPRResponse(5, 1)
	r.ResetForResize()
	if r.HeightIsKnown() {
		t.Fatalf("expected height forgotten after resize")
	}
}

func TestRendererEraseEmitsExactlyOneSyncRegion(t *testing.T) {
	out := newRecordingOutput()
	r := NewRenderer(out)
	if err := r.Erase(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertExactlyOneSyncRegion(t, out.ops)
}

func TestRendererClearEmitsExactlyOneSyncRegion(t *testing.T) {
	out := newRecordingOutput()
	r := NewRenderer(out)
	if err := r.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertExactlyOneSyncRegion(t, out.ops)
}

func assertExactlyOneSyncRegion(t *testing.T, ops []string) {
	t.Helper()
	begins, ends := 0, 0
	for _, op := range ops {
		switch op {
		case "SYNC+":
			begins++
		case "SYNC-":
			ends++
		}
	}
	if begins != 1 || ends != 1 {
		t.Fatalf("got %d begins / %d ends, want exactly 1 each; ops: %v", begins, ends, ops)
	}
}

func TestRendererFlushHappensWhileSyncRegionStillOpen(t *testing.T) {
	out := newRecordingOutput()
	r := NewRenderer(out)
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	if err := r.Render(s, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var syncIdx, flushIdx, disableIdx int = -1, -1, -1
	for i, op := range out.ops {
		switch op {
		case "SYNC+":
			if syncIdx == -1 {
				syncIdx = i
			}
		case "FLUSH":
			if flushIdx == -1 {
				flushIdx = i
			}
		case "SYNC-":
			if disableIdx == -1 {
				disableIdx = i
			}
		}
	}
	if !(syncIdx < flushIdx && flushIdx < disableIdx) {
		t.Fatalf("expected order SYNC+ < FLUSH < SYNC-, ops: %v", out.ops)
	}
}

func TestRendererClearForcesNextRenderFull(t *testing.T) {
	out := newRecordingOutput()
	r := NewRenderer(out)
	s := NewScreen(NewChar(" ", ""), true, 0, 0)
	s.Set(0, 0, NewChar("x", ""))
	_ = r.Render(s, 0, false)

	r.Clear()
	out.ops = nil
	_ = r.Render(s, 0, false)

	foundErase := false
	for _, op := range out.ops {
		if op == "ERASE_SCREEN" {
			foundErase = true
		}
	}
	if !foundErase {
		t.Fatalf("expected render after Clear to be a full redraw, ops: %v", out.ops)
	}
}

package promptcore

import "sync"

// Renderer owns the previous/current Screen pair and drives an Output
// through the full render lifecycle: sync-output bracket, diff, cursor
// placement, flush. It also tracks how many terminal rows sit above the
// layout, which is only known once a CPR response arrives (spec §4.3,
// §6).
type Renderer struct {
	mu sync.Mutex

	output Output

	prevScreen *Screen
	lastRow    int
	lastCol    int

	heightIsKnown   bool
	rowsAboveLayout int
	cprRequested    bool

	inFullscreen bool
}

// NewRenderer creates a Renderer writing through output.
func NewRenderer(output Output) *Renderer {
	return &Renderer{output: output}
}

// Render draws screen to the terminal, performing either an incremental
// diff against the last rendered screen or a full redraw, then positions
// the cursor and flushes. fullRedraw should be forced after a resize or
// on the very first render (spec §4.3).
func (r *Renderer) Render(screen *Screen, cursorWindow WindowID, fullRedraw bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	screen.DrawAllFloats()

	// The sync-output region must still be open when Flush runs (Flush is
	// what actually emits the bracket bytes); DisableSyncOutput only needs
	// to close it before the *next* render call, so it is deferred here
	// rather than called ahead of Flush (spec §4.3 steps 2, 9, 10).
	r.output.EnableSyncOutput()
	defer r.output.DisableSyncOutput()

	if fullRedraw || r.prevScreen == nil {
		r.output.EraseScreen()
		r.output.CursorGoto(0, 0)
		r.lastRow, r.lastCol = 0, 0
	}

	endRow, endCol := RenderScreenDiff(r.output, r.prevScreen, screen, r.lastRow, r.lastCol, fullRedraw || r.prevScreen == nil)
	r.lastRow, r.lastCol = endRow, endCol

	if cursorWindow.Valid() && screen.ShowCursor() {
		cx, cy := screen.GetCursorPosition(cursorWindow)
		r.output.CursorGoto(cy, cx)
		r.output.ShowCursor()
		r.lastRow, r.lastCol = cy, cx
	} else {
		r.output.HideCursor()
	}

	r.prevScreen = screen
	return r.output.Flush()
}

// Erase clears the previously rendered content from the terminal by
// moving the cursor to the top of what was last drawn and issuing an
// erase-down, then forgets prevScreen so the next Render is a full redraw
// (used before drawing a completely different view). The whole sequence runs inside one
// sync-output region, and re-enables autowrap afterward since erase-down
// can leave it disabled on some terminals (spec §4.3 "Erase / Clear").
func (r *Renderer) Erase() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.output.EnableSyncOutput()
	defer r.output.DisableSyncOutput()

	r.output.CursorGoto(0, 0)
	r.output.EraseDown()
	r.output.ResetAttributes()
	r.output.EnableAutowrap()

	r.lastRow, r.lastCol = 0, 0
	r.prevScreen = nil
	return r.output.Flush()
}

// Clear performs a full erase-and-redraw-reset: inside a single sync-output
// region it inlines the same erase sequence Erase uses (calling Erase
// directly would open a second, nested sync-output region), then emits a
// full-screen erase and cursor home, flushes, resets renderer state so the
// next Render is forced full, and requests a fresh CPR so rows-above-layout
// gets relearned (spec §4.3 "clear()").
func (r *Renderer) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.output.EnableSyncOutput()
	defer r.output.DisableSyncOutput()

	r.output.CursorGoto(0, 0)
	r.output.EraseDown()
	r.output.ResetAttributes()
	r.output.EnableAutowrap()

	r.output.EraseScreen()
	r.output.CursorGoto(0, 0)
	r.output.AskForCPR()

	r.lastRow, r.lastCol = 0, 0
	r.prevScreen = nil
	r.heightIsKnown = false
	r.rowsAboveLayout = 0
	r.cprRequested = true

	return r.output.Flush()
}

// ResetForResize forgets rows-above-layout knowledge and the previous
// screen; callers re-issue AskForCPR afterward to relearn the terminal's
// geometry (spec §4.3, §5: driven by the resize-watcher goroutine).
func (r *Renderer) ResetForResize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prevScreen = nil
	r.heightIsKnown = false
	r.rowsAboveLayout = 0
	r.cprRequested = false
}

// RequestRowsAboveLayout asks the terminal (via CPR) for the cursor's
// current row, from which rows-above-layout is derived once the response
// arrives through HandleCPRResponse.
func (r *Renderer) RequestRowsAboveLayout() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cprRequested = true
	r.output.AskForCPR()
	r.output.Flush()
}

// HandleCPRResponse records a CPR response (1-based row, col from the
// terminal) and derives rows-above-layout from it, transitioning
// HeightIsKnown from false to true (spec §6, testable property: "CPR
// handling transitioning height_is_known false->true").
func (r *Renderer) HandleCPRResponse(row, col int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rowsAboveLayout = row - 1
	r.heightIsKnown = true
	r.cprRequested = false
}

// RowsAboveLayout returns how many terminal rows sit above wherever the
// layout starts drawing. Until a CPR response has been handled, it
// returns ErrHeightUnknown rather than a guessed value (spec §4.4: the
// VT100 mouse handler is the one caller that must degrade to
// ErrNotHandled when it sees this).
func (r *Renderer) RowsAboveLayout() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.heightIsKnown {
		return 0, ErrHeightUnknown
	}
	return r.rowsAboveLayout, nil
}

// RowsAboveCursor returns how many terminal rows sit above the cursor's
// last rendered position — RowsAboveLayout plus whatever the renderer
// itself has advanced past it this render pass.
func (r *Renderer) RowsAboveCursor() (int, error) {
	above, err := r.RowsAboveLayout()
	if err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return above + r.lastRow, nil
}

// HeightIsKnown reports whether a CPR response has been received since
// construction or the last ResetForResize.
func (r *Renderer) HeightIsKnown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.heightIsKnown
}

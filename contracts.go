package promptcore

import "context"

// Buffer is the external contract a text-editing buffer must satisfy to
// be rendered through this module's fragment-processor pipeline. This
// module never implements Buffer itself — it is supplied by whatever
// editing component sits above the renderer (spec §6).
type Buffer interface {
	// Text returns the buffer's current full text.
	Text() string
	// CursorPosition returns the cursor's character offset into Text().
	CursorPosition() int
	// SelectionRange returns the current selection, if any.
	SelectionRange() (r SelectionRange, ok bool)
}

// Layout is the external contract a window/container tree must satisfy to
// be drawn into a Screen: it is handed a WritePosition and a Screen to
// write into, and is responsible for recursing into its own children
// (spec §6).
type Layout interface {
	// WriteToScreen renders this layout node into the given region of
	// screen. cursorWindow, if valid, is the window that currently holds
	// input focus, so nested layouts know whether to publish a cursor
	// position.
	WriteToScreen(ctx context.Context, screen *Screen, region WritePosition, cursorWindow WindowID)

	// PreferredWidth/PreferredHeight report how much space this node would
	// like, given the available budget (maxAvailable), for layouts that
	// negotiate size top-down before writing.
	PreferredWidth(maxAvailable int) int
	PreferredHeight(width, maxAvailable int) int
}

// MouseHandlers is the external contract for a component that wants to
// register mouse regions against a Screen as it writes itself, mirroring
// MouseHandlerRegistry's per-cell granularity but owned by the layout
// rather than this module (spec §6).
type MouseHandlers interface {
	// SetMouseHandlerForRange registers fn for every cell in
	// [xStart,xEnd) x [yStart,yEnd).
	SetMouseHandlerForRange(xStart, xEnd, yStart, yEnd int, fn MouseHandlerFunc)
}

// KeyProcessor is the external contract for whatever turns decoded key
// presses into application actions — a key-binding router supplied by the
// embedder, deliberately not implemented by this module (spec §6; see
// DESIGN.md for why no such library from the reference corpus could be
// adopted directly).
type KeyProcessor interface {
	// ProcessKey is called once per decoded key event; it returns
	// ErrNotHandled if no binding matched.
	ProcessKey(key string, mods MouseModifiers) error
}

package promptcore

import (
	"sort"
	"sync"
)

// point is a plain (x, y) pair, used for cursor/menu position tables.
type point struct{ X, Y int }

// floatEntry is one deferred draw closure in the float queue, tagged with
// its z-index for stable, FIFO-within-equal-z draining (spec §4.1).
type floatEntry struct {
	z  int
	fn func(*Screen)
}

// Screen is a mutable, sparse styled 2-D character grid with cursor/menu
// tracking, zero-width escape attachment, and a z-indexed deferred draw
// (float) queue. All mutating operations are atomic via a single internal
// lock; compound multi-cell sequences are not atomic across calls — spec
// §4.1 and §5.
type Screen struct {
	mu sync.Mutex

	grid map[int]map[int]Char

	width, height int
	initWidth     int
	initHeight    int

	defaultChar Char
	showCursor  bool

	cursors map[WindowID]point
	menus   map[WindowID]point

	visibleWindows map[WindowID]WritePosition

	zeroWidthEscapes map[int]map[int]string

	floats []floatEntry
}

// NewScreen creates a Screen with the given default cell and initial
// dimensions. The default cell and show_cursor flag are preserved across
// Clear (spec §4.1).
func NewScreen(defaultChar Char, showCursor bool, width, height int) *Screen {
	s := &Screen{
		defaultChar: defaultChar,
		showCursor:  showCursor,
		initWidth:   width,
		initHeight:  height,
	}
	s.resetState()
	return s
}

// resetState reinitialises everything Clear() drops, without touching
// default_char or show_cursor.
func (s *Screen) resetState() {
	s.grid = make(map[int]map[int]Char)
	s.width = s.initWidth
	s.height = s.initHeight
	s.cursors = make(map[WindowID]point)
	s.menus = make(map[WindowID]point)
	s.visibleWindows = make(map[WindowID]WritePosition)
	s.zeroWidthEscapes = make(map[int]map[int]string)
	s.floats = nil
}

// Width returns the current screen width. Reading never grows it.
func (s *Screen) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

// Height returns the current screen height.
func (s *Screen) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

// growTo expands width/height to at least the given bounds. Caller must
// hold s.mu.
func (s *Screen) growTo(col, row int) {
	if col+1 > s.width {
		s.width = col + 1
	}
	if row+1 > s.height {
		s.height = row + 1
	}
}

// Get reads the Char at (row, col). A missing cell reads as default_char —
// reading never grows the screen (spec §4.1).
func (s *Screen) Get(row, col int) Char {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cols, ok := s.grid[row]; ok {
		if c, ok := cols[col]; ok {
			return c
		}
	}
	return s.defaultChar
}

// Set writes a Char at (row, col), creating the row/cell on demand and
// expanding width/height to max(current, col+1 / row+1) (spec §4.1).
func (s *Screen) Set(row, col int, c Char) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cols, ok := s.grid[row]
	if !ok {
		cols = make(map[int]Char)
		s.grid[row] = cols
	}
	cols[col] = c
	s.growTo(col, row)
}

// SetCursorPosition records the cursor position for window w. w must be a
// valid (non-zero) WindowID — passing an invalid id is a caller usage
// error and panics, matching spec §4.1's "non-null precondition".
func (s *Screen) SetCursorPosition(w WindowID, x, y int) {
	if !w.Valid() {
		panic("promptcore: SetCursorPosition requires a valid WindowID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors[w] = point{X: x, Y: y}
}

// GetCursorPosition returns the recorded cursor position for window w, or
// the origin if none was ever set.
func (s *Screen) GetCursorPosition(w WindowID) (x, y int) {
	if !w.Valid() {
		panic("promptcore: GetCursorPosition requires a valid WindowID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.cursors[w]
	return p.X, p.Y
}

// SetMenuPosition records the menu position for window w.
func (s *Screen) SetMenuPosition(w WindowID, x, y int) {
	if !w.Valid() {
		panic("promptcore: SetMenuPosition requires a valid WindowID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus[w] = point{X: x, Y: y}
}

// GetMenuPosition returns the menu position for window w, falling back to
// the cursor position, then the origin (spec §4.1).
func (s *Screen) GetMenuPosition(w WindowID) (x, y int) {
	if !w.Valid() {
		panic("promptcore: GetMenuPosition requires a valid WindowID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.menus[w]; ok {
		return p.X, p.Y
	}
	if p, ok := s.cursors[w]; ok {
		return p.X, p.Y
	}
	return 0, 0
}

// SetVisibleWindowPosition records the write position most recently
// granted to window w.
func (s *Screen) SetVisibleWindowPosition(w WindowID, wp WritePosition) {
	if !w.Valid() {
		panic("promptcore: SetVisibleWindowPosition requires a valid WindowID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visibleWindows[w] = wp
}

// VisibleWindowPosition returns the recorded write position for w and
// whether one was ever set.
func (s *Screen) VisibleWindowPosition(w WindowID) (WritePosition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wp, ok := s.visibleWindows[w]
	return wp, ok
}

// ShowCursor reports the screen's show_cursor flag.
func (s *Screen) ShowCursor() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showCursor
}

// SetShowCursor sets the show_cursor flag.
func (s *Screen) SetShowCursor(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showCursor = v
}

// AddZeroWidthEscape appends s to any existing zero-width escape string
// already attached at (row, col). An empty addition is a no-op (spec
// §4.1).
func (s *Screen) AddZeroWidthEscape(row, col int, escape string) {
	if escape == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cols, ok := s.zeroWidthEscapes[row]
	if !ok {
		cols = make(map[int]string)
		s.zeroWidthEscapes[row] = cols
	}
	cols[col] += escape
}

// GetZeroWidthEscapes returns the zero-width escape string attached at
// (row, col), or "" if unset.
func (s *Screen) GetZeroWidthEscapes(row, col int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cols, ok := s.zeroWidthEscapes[row]; ok {
		return cols[col]
	}
	return ""
}

// DrawWithZIndex enqueues fn to run during the next DrawAllFloats pass, at
// the given z-index. Floats execute FIFO within equal z (spec §4.1).
func (s *Screen) DrawWithZIndex(z int, fn func(*Screen)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats = append(s.floats, floatEntry{z: z, fn: fn})
}

// DrawAllFloats drains the float queue, executing entries in ascending
// z-index order (stable, so FIFO within equal z), iteratively — a float
// may itself enqueue more floats, which are drained in the same pass. If a
// float panics, the queue is cleared first and the panic re-propagated
// (spec §4.1, §7: "on exception, clear the queue and propagate").
func (s *Screen) DrawAllFloats() {
	for {
		s.mu.Lock()
		if len(s.floats) == 0 {
			s.mu.Unlock()
			return
		}
		pending := s.floats
		s.floats = nil
		s.mu.Unlock()

		sort.SliceStable(pending, func(i, j int) bool { return pending[i].z < pending[j].z })

		for _, f := range pending {
			s.runFloatOrClear(f)
		}
	}
}

func (s *Screen) runFloatOrClear(f floatEntry) {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.floats = nil
			s.mu.Unlock()
			panic(r)
		}
	}()
	f.fn(s)
}

// FillArea composes style onto every cell in the region [x, x+w) x [y,
// y+h). When after is false the new style is prepended ("{new}
// {existing}"); when true it's appended. An empty/whitespace style is a
// no-op (spec §4.1).
func (s *Screen) FillArea(region WritePosition, style StyleString, after bool) {
	if style.Empty() || region.Empty() {
		return
	}
	for y := region.Y; y < region.Y+region.Height; y++ {
		for x := region.X; x < region.X+region.Width; x++ {
			existing := s.Get(y, x)
			composed := existing.style.Compose(style, after)
			s.Set(y, x, NewChar(existing.character, composed))
		}
	}
}

// AppendStyleToContent appends s to the style of every currently stored
// cell. A no-op on an empty screen or an empty style (spec §4.1).
func (s *Screen) AppendStyleToContent(style string) {
	if style == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.grid) == 0 {
		return
	}
	for row, cols := range s.grid {
		for col, c := range cols {
			cols[col] = NewChar(c.character, c.style.Append(style))
		}
		s.grid[row] = cols
	}
}

// Clear drops all grid/escape/cursor/menu/float/visible-window state and
// resets width/height to their construction values, while preserving
// default_char and show_cursor (spec §4.1, testable property 2).
func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetState()
}

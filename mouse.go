package promptcore

import (
	"strconv"
	"strings"
)

// MouseEventType distinguishes press, release, drag, and wheel events.
type MouseEventType int

const (
	MouseEventDown MouseEventType = iota
	MouseEventUp
	MouseEventDrag
	MouseEventScrollUp
	MouseEventScrollDown
	MouseEventScrollLeft
	MouseEventScrollRight
	// MouseEventMove is the synthetic event type used for the
	// (UnknownButton, MouseMove, UnknownModifier) fallback URXVT reports on
	// an unrecognised code (spec §4.4, §7).
	MouseEventMove
)

// MouseButton identifies which button a press/release/drag event used.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
	// MouseButtonUnknown is reported when a protocol degrades to a
	// synthetic event rather than declining outright (spec §4.4, §7).
	MouseButtonUnknown
)

// MouseModifiers is a bitmask of modifier keys held during a mouse event.
type MouseModifiers int

const (
	ModShift MouseModifiers = 1 << iota
	ModAlt
	ModControl
)

// MouseEvent is a fully decoded mouse event in screen coordinates (0-based,
// already adjusted for rows-above-layout) — spec §4.4.
type MouseEvent struct {
	Type      MouseEventType
	Button    MouseButton
	Modifiers MouseModifiers
	X, Y      int
}

// decodedButton is the result of unpacking a raw mouse-protocol button
// code into the same (type, button, modifiers) triple regardless of which
// wire protocol (SGR, Typical/X10, URXVT) produced it. All three
// protocols pack button/modifier/motion/wheel bits identically; they only
// differ in how coordinates and the button byte are framed on the wire
// (spec §4.4).
type decodedButton struct {
	typ  MouseEventType
	btn  MouseButton
	mods MouseModifiers
}

// decodeButtonCode unpacks the xterm mouse-protocol button byte shared by
// the SGR, Typical, and URXVT encodings: bits 0-1 select the button (or
// "release" in the non-SGR release-by-value-3 form), bit 2 is shift, bit
// 3 is meta/alt, bit 4 is control, bit 5 is the motion/drag flag, and
// 64/65 (bit 6 set, low bits 0/1) select the wheel. isRelease is supplied
// separately by callers that distinguish release via a trailing byte
// (SGR's 'm') rather than via code 3 (X10/Typical/URXVT).
func decodeButtonCode(code int, isRelease bool) decodedButton {
	mods := MouseModifiers(0)
	if code&4 != 0 {
		mods |= ModShift
	}
	if code&8 != 0 {
		mods |= ModAlt
	}
	if code&16 != 0 {
		mods |= ModControl
	}

	if code&64 != 0 {
		low := code & 3
		switch low {
		case 0:
			return decodedButton{typ: MouseEventScrollUp, mods: mods}
		case 1:
			return decodedButton{typ: MouseEventScrollDown, mods: mods}
		case 2:
			return decodedButton{typ: MouseEventScrollLeft, mods: mods}
		default:
			return decodedButton{typ: MouseEventScrollRight, mods: mods}
		}
	}

	low := code & 3
	drag := code&32 != 0

	if !isRelease && low == 3 {
		return decodedButton{typ: MouseEventUp, mods: mods}
	}

	var btn MouseButton
	switch low {
	case 0:
		btn = MouseButtonLeft
	case 1:
		btn = MouseButtonMiddle
	case 2:
		btn = MouseButtonRight
	default:
		btn = MouseButtonNone
	}

	typ := MouseEventDown
	switch {
	case isRelease:
		typ = MouseEventUp
	case drag:
		typ = MouseEventDrag
	}
	return decodedButton{typ: typ, btn: btn, mods: mods}
}

// sgrLookupTable and typicalLookupTable and urxvtLookupTable memoise
// decodeButtonCode's result for every button-code value each protocol can
// actually carry on the wire, so steady-state dispatch is a slice index
// rather than a branch tree — mirroring the teacher's preference for flat
// lookup arrays over re-deriving state per event (buffer.go's
// borderEdgesArray/edgesToBorderArray use the same trick for a different
// table). SGR's code space is the full 0-127 byte range (carries its own
// release bit out-of-band via 'M'/'m'). Typical/X10 and URXVT carry codes
// 0-65 after their +32 wire offset is removed: 0-3 is down/up, 32-35 is
// drag/move, and 64-65 is the wheel (spec §4.4).
var sgrLookupTable = buildSGRLookupTable()
var typicalLookupTable = buildTypicalLookupTable()
var urxvtLookupTable = buildURXVTLookupTable()

const protocolCodeRange = 66

func buildSGRLookupTable() [128]decodedButton {
	var t [128]decodedButton
	for code := 0; code < 128; code++ {
		t[code] = decodeButtonCode(code, false)
	}
	return t
}

func buildTypicalLookupTable() [protocolCodeRange]decodedButton {
	var t [protocolCodeRange]decodedButton
	for code := 0; code < protocolCodeRange; code++ {
		t[code] = decodeButtonCode(code, false)
	}
	return t
}

func buildURXVTLookupTable() [protocolCodeRange]decodedButton {
	var t [protocolCodeRange]decodedButton
	for code := 0; code < protocolCodeRange; code++ {
		t[code] = decodeButtonCode(code, false)
	}
	return t
}

// ParseSGRMouse decodes an xterm SGR mouse sequence's parameter body (the
// part between "\x1b[<" and the trailing 'M'/'m'), e.g. "0;12;5" with
// final byte 'M'. Coordinates are 1-based on the wire and are returned
// 0-based (spec §4.4).
func ParseSGRMouse(params string, final byte) (MouseEvent, bool) {
	parts := strings.Split(params, ";")
	if len(parts) != 3 {
		return MouseEvent{}, false
	}
	code, err1 := strconv.Atoi(parts[0])
	x, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || code < 0 || code > 127 {
		return MouseEvent{}, false
	}
	d := sgrLookupTable[code]
	if final == 'm' && d.typ != MouseEventScrollUp && d.typ != MouseEventScrollDown &&
		d.typ != MouseEventScrollLeft && d.typ != MouseEventScrollRight {
		d.typ = MouseEventUp
	}
	return MouseEvent{Type: d.typ, Button: d.btn, Modifiers: d.mods, X: x - 1, Y: y - 1}, true
}

// ParseTypicalMouse decodes the legacy X10/"Typical" mouse protocol's
// three raw bytes following "\x1b[M": button code offset by 32, and
// 1-based x/y each offset by 32. Runes >= 0xDC00 (surrogate-escaped
// invalid UTF-8 the terminal driver could not decode) are normalized back
// into the raw 0-255 byte range before the offset is removed (spec §4.4).
// The decoded range covers 0-65 so drag/move (raw 64-67) and scroll (raw
// 96-97) resolve instead of declining.
func ParseTypicalMouse(b1, b2, b3 rune) (MouseEvent, bool) {
	code := normalizeSurrogateByte(b1) - 32
	x := normalizeSurrogateByte(b2) - 32
	y := normalizeSurrogateByte(b3) - 32
	if code < 0 || code >= protocolCodeRange {
		return MouseEvent{}, false
	}
	d := typicalLookupTable[code]
	return MouseEvent{Type: d.typ, Button: d.btn, Modifiers: d.mods, X: x - 1, Y: y - 1}, true
}

// normalizeSurrogateByte undoes Go's surrogate-escape decoding (runes >=
// 0xDC00 represent an original byte that failed UTF-8 decoding) back into
// a plain byte value, per spec §4.4 step 1's "any byte >= 0xDC00" rule.
func normalizeSurrogateByte(r rune) int {
	if r >= 0xDC00 {
		return int(r - 0xDC00)
	}
	return int(r)
}

// ParseURXVTMouse decodes urxvt's mouse protocol parameter body (the same
// "code;x;y" shape as SGR but without a final press/release byte; like
// X10, a release arrives as low button bits 3, wire code 35) — spec §4.4. Unlike
// SGR, urxvt never declines: a code outside the table degrades to a
// synthetic (UnknownButton, MouseMove, UnknownModifier) event rather than
// ErrNotHandled (spec §4.4, §7 "historical compatibility").
func ParseURXVTMouse(params string) (MouseEvent, bool) {
	parts := strings.Split(params, ";")
	if len(parts) != 3 {
		return MouseEvent{}, false
	}
	code, err1 := strconv.Atoi(parts[0])
	x, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return MouseEvent{}, false
	}
	code -= 32
	if code < 0 || code >= protocolCodeRange {
		return MouseEvent{Type: MouseEventMove, Button: MouseButtonUnknown, X: x - 1, Y: y - 1}, true
	}
	d := urxvtLookupTable[code]
	return MouseEvent{Type: d.typ, Button: d.btn, Modifiers: d.mods, X: x - 1, Y: y - 1}, true
}

// MouseHandlerFunc handles one event routed to its registered cell; it may
// return ErrNotHandled to decline it.
type MouseHandlerFunc func(ev MouseEvent) error

// MouseHandlerRegistry dispatches a decoded MouseEvent to the handler
// registered for the (x, y) cell it occurred in, via a sparse 2-D lookup
// — the same shape Screen uses for its cursor/menu tables (spec §4.4).
type MouseHandlerRegistry struct {
	handlers map[int]map[int]MouseHandlerFunc
}

// NewMouseHandlerRegistry returns an empty registry.
func NewMouseHandlerRegistry() *MouseHandlerRegistry {
	return &MouseHandlerRegistry{handlers: make(map[int]map[int]MouseHandlerFunc)}
}

// Register binds fn to handle mouse events at (x, y).
func (r *MouseHandlerRegistry) Register(x, y int, fn MouseHandlerFunc) {
	row, ok := r.handlers[y]
	if !ok {
		row = make(map[int]MouseHandlerFunc)
		r.handlers[y] = row
	}
	row[x] = fn
}

// Dispatch routes ev to whatever handler is registered at its
// coordinates, returning ErrNotHandled if none is (spec §7).
func (r *MouseHandlerRegistry) Dispatch(ev MouseEvent) error {
	row, ok := r.handlers[ev.Y]
	if !ok {
		return ErrNotHandled
	}
	fn, ok := row[ev.X]
	if !ok {
		return ErrNotHandled
	}
	return fn(ev)
}

// Vt100MouseHandler adapts raw VT100/xterm mouse escape sequences into
// MouseEvents in layout-relative coordinates, subtracting rows-above-
// layout as reported by a Renderer. If the renderer does not yet know the
// terminal's height, the event is reported ErrNotHandled rather than
// dispatched with a wrong row (spec §4.4, §7).
type Vt100MouseHandler struct {
	renderer *Renderer
	registry *MouseHandlerRegistry
}

// NewVt100MouseHandler builds a handler that adjusts coordinates using
// renderer and dispatches through registry.
func NewVt100MouseHandler(renderer *Renderer, registry *MouseHandlerRegistry) *Vt100MouseHandler {
	return &Vt100MouseHandler{renderer: renderer, registry: registry}
}

// HandleSGR processes one decoded SGR mouse event.
func (h *Vt100MouseHandler) HandleSGR(params string, final byte) error {
	ev, ok := ParseSGRMouse(params, final)
	if !ok {
		return ErrNotHandled
	}
	return h.dispatch(ev)
}

// HandleTypical processes one decoded Typical/X10 mouse event.
func (h *Vt100MouseHandler) HandleTypical(b1, b2, b3 rune) error {
	ev, ok := ParseTypicalMouse(b1, b2, b3)
	if !ok {
		return ErrNotHandled
	}
	return h.dispatch(ev)
}

// HandleURXVT processes one decoded urxvt mouse event.
func (h *Vt100MouseHandler) HandleURXVT(params string) error {
	ev, ok := ParseURXVTMouse(params)
	if !ok {
		return ErrNotHandled
	}
	return h.dispatch(ev)
}

func (h *Vt100MouseHandler) dispatch(ev MouseEvent) error {
	above, err := h.renderer.RowsAboveLayout()
	if err != nil {
		return ErrNotHandled
	}
	ev.Y -= above
	if ev.Y < 0 {
		return ErrNotHandled
	}
	return h.registry.Dispatch(ev)
}

// WindowsMouseEvent mirrors the relevant fields of a Win32 console
// INPUT_RECORD mouse event, decoupled from any particular binding
// library's struct shape (spec §4.4).
type WindowsMouseEvent struct {
	X, Y        int
	ButtonState uint32
	EventFlags  uint32
}

// WindowsMouseHandler adapts Windows console mouse records into
// MouseEvents and dispatches them through the same registry the VT100
// handler uses (spec §4.4).
type WindowsMouseHandler struct {
	registry *MouseHandlerRegistry
}

// NewWindowsMouseHandler builds a handler dispatching through registry.
func NewWindowsMouseHandler(registry *MouseHandlerRegistry) *WindowsMouseHandler {
	return &WindowsMouseHandler{registry: registry}
}

const (
	winMouseMoved        = 0x0001
	winMouseWheeled      = 0x0004
	winMouseHWheeled     = 0x0008
	winLeftMostButton    = 0x0001
	winRightMostButton   = 0x0002
	winFromLeft2ndButton = 0x0004
)

// Handle decodes ev and dispatches it.
func (h *WindowsMouseHandler) Handle(ev WindowsMouseEvent) error {
	out := MouseEvent{X: ev.X, Y: ev.Y}
	switch {
	case ev.EventFlags&winMouseWheeled != 0:
		if int32(ev.ButtonState) > 0 {
			out.Type = MouseEventScrollUp
		} else {
			out.Type = MouseEventScrollDown
		}
	case ev.EventFlags&winMouseHWheeled != 0:
		if int32(ev.ButtonState) > 0 {
			out.Type = MouseEventScrollRight
		} else {
			out.Type = MouseEventScrollLeft
		}
	case ev.EventFlags&winMouseMoved != 0 && ev.ButtonState != 0:
		out.Type = MouseEventDrag
		out.Button = windowsButton(ev.ButtonState)
	case ev.ButtonState != 0:
		out.Type = MouseEventDown
		out.Button = windowsButton(ev.ButtonState)
	default:
		out.Type = MouseEventUp
	}
	return h.registry.Dispatch(out)
}

func windowsButton(state uint32) MouseButton {
	switch {
	case state&winLeftMostButton != 0:
		return MouseButtonLeft
	case state&winRightMostButton != 0:
		return MouseButtonRight
	case state&winFromLeft2ndButton != 0:
		return MouseButtonMiddle
	default:
		return MouseButtonNone
	}
}

// ScrollFallbackHandler reinterprets a plain scroll-wheel event that
// arrived with no usable position (a terminal that reports wheel input as
// plain key bytes rather than a mouse escape) as an injected key at the
// front of the input queue, so a list/pager widget still scrolls even
// without true mouse-position support (spec §4.4).
type ScrollFallbackHandler struct {
	inject func(key string)
}

// NewScrollFallbackHandler builds a handler that calls inject to push a
// key string to the front of the input queue.
func NewScrollFallbackHandler(inject func(key string)) *ScrollFallbackHandler {
	return &ScrollFallbackHandler{inject: inject}
}

// HandleScrollUp / HandleScrollDown inject the given key in place of a
// position-bearing mouse event.
func (h *ScrollFallbackHandler) HandleScrollUp(key string)   { h.inject(key) }
func (h *ScrollFallbackHandler) HandleScrollDown(key string) { h.inject(key) }

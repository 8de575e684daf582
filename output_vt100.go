package promptcore

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// VT100Output is the primary Output backend: it buffers ANSI/VT100
// escape sequences in memory and writes them to the wrapped writer (the
// controlling terminal's file descriptor) on Flush. Raw-mode entry/exit
// is handled separately by RawModeSession (output_rawmode.go), grounded
// in the teacher's raw-mode enter/defer-exit pattern in its run loop
// (spec §4.5).
type VT100Output struct {
	w   io.Writer
	fd  int
	buf strings.Builder

	lastStyle *Style
	syncDepth int
}

// NewVT100Output wraps w (typically os.Stdout) with fd as its underlying
// file descriptor, used for terminal-size queries.
func NewVT100Output(w io.Writer, fd int) *VT100Output {
	return &VT100Output{w: w, fd: fd}
}

func (o *VT100Output) Write(data string)    { o.buf.WriteString(data) }
func (o *VT100Output) WriteRaw(data string) { o.buf.WriteString(data) }

// Flush writes the buffered content as a single underlying stream write.
// When the sync-output flag is set and the buffer is non-empty, the
// sync-output begin/end pair is prepended/appended around it rather than
// written at Enable/DisableSyncOutput time, so a flush that happens while
// the region is still open (the normal render sequence: begin, write,
// flush, end) produces one bracketed write instead of a begin stranded in
// one flush and an end stranded in the next (spec §4.3 step 9, §6).
func (o *VT100Output) Flush() error {
	if o.buf.Len() == 0 {
		return nil
	}
	content := o.buf.String()
	o.buf.Reset()
	if o.syncDepth > 0 {
		content = seqSyncOutputEnable + content + seqSyncOutputDisable
	}
	_, err := io.WriteString(o.w, content)
	return err
}

func (o *VT100Output) EnterAlternateScreen() { o.buf.WriteString(seqAltScreenEnable) }
func (o *VT100Output) QuitAlternateScreen()  { o.buf.WriteString(seqAltScreenDisable) }

func (o *VT100Output) EnableMouseSupport()  { o.buf.WriteString(seqMouseEnable) }
func (o *VT100Output) DisableMouseSupport() { o.buf.WriteString(seqMouseDisable) }

func (o *VT100Output) EraseScreen()    { o.buf.WriteString(seqEraseScreen) }
func (o *VT100Output) EraseDown()      { o.buf.WriteString(seqEraseDown) }
func (o *VT100Output) EraseEndOfLine() { o.buf.WriteString(seqEraseEndOfLine) }

func (o *VT100Output) CursorGoto(row, col int) {
	if row == 0 && col == 0 {
		o.buf.WriteString(seqCursorHome)
		return
	}
	fmt.Fprintf(&o.buf, "\x1b[%d;%dH", row+1, col+1)
}

func (o *VT100Output) CursorUp(n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(&o.buf, "\x1b[%dA", n)
}

func (o *VT100Output) CursorDown(n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(&o.buf, "\x1b[%dB", n)
}

func (o *VT100Output) CursorForward(n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(&o.buf, "\x1b[%dC", n)
}

func (o *VT100Output) CursorBackward(n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(&o.buf, "\x1b[%dD", n)
}

func (o *VT100Output) HideCursor() { o.buf.WriteString(seqHideCursor) }
func (o *VT100Output) ShowCursor() { o.buf.WriteString(seqShowCursor) }

func (o *VT100Output) SetCursorShape(shape CursorShape) {
	code := 1
	switch shape {
	case CursorShapeBlock:
		code = 2
	case CursorShapeBlockBlink:
		code = 1
	case CursorShapeUnderline:
		code = 4
	case CursorShapeUnderlineBlink:
		code = 3
	case CursorShapeBeam:
		code = 6
	case CursorShapeBeamBlink:
		code = 5
	}
	fmt.Fprintf(&o.buf, "\x1b[%d q", code)
}

func (o *VT100Output) ResetCursorShape() { o.buf.WriteString("\x1b[0 q") }

func (o *VT100Output) EnableAutowrap()  { o.buf.WriteString(seqAutowrapEnable) }
func (o *VT100Output) DisableAutowrap() { o.buf.WriteString(seqAutowrapDisable) }

func (o *VT100Output) SetAttributes(style Style) {
	if o.lastStyle != nil && o.lastStyle.Equal(style) {
		return
	}
	o.buf.WriteString(seqResetAttributes)
	o.buf.WriteString(ansiForStyle(style))
	s := style
	o.lastStyle = &s
}

func (o *VT100Output) ResetAttributes() {
	o.buf.WriteString(seqResetAttributes)
	o.lastStyle = nil
}

// EnableSyncOutput / DisableSyncOutput are re-entrant: nested render calls
// only affect the flag at depth 0/1 transitions. Neither writes to the
// buffer directly — Flush is the sole place the bracket bytes are emitted,
// so they wrap exactly the content flushed while the flag is set (spec
// §4.3, §6).
func (o *VT100Output) EnableSyncOutput() {
	o.syncDepth++
}

func (o *VT100Output) DisableSyncOutput() {
	if o.syncDepth == 0 {
		return
	}
	o.syncDepth--
}

func (o *VT100Output) AskForCPR() { o.buf.WriteString(seqRequestCPR) }

func (o *VT100Output) BellSound() { o.buf.WriteString(seqBell) }

func (o *VT100Output) GetSize() (rows, cols int, err error) {
	w, h, err := term.GetSize(o.fd)
	if err != nil {
		return 0, 0, err
	}
	return h, w, nil
}

func (o *VT100Output) SupportsSyncOutput() bool { return true }

// ansiForStyle renders a resolved Style as an SGR parameter sequence.
func ansiForStyle(s Style) string {
	var parts []string
	if s.Attr.Has(AttrBold) {
		parts = append(parts, "1")
	}
	if s.Attr.Has(AttrDim) {
		parts = append(parts, "2")
	}
	if s.Attr.Has(AttrItalic) {
		parts = append(parts, "3")
	}
	if s.Attr.Has(AttrUnderline) {
		parts = append(parts, "4")
	}
	if s.Attr.Has(AttrBlink) {
		parts = append(parts, "5")
	}
	if s.Attr.Has(AttrReverse) {
		parts = append(parts, "7")
	}
	if s.Attr.Has(AttrHidden) {
		parts = append(parts, "8")
	}
	if s.Attr.Has(AttrStrike) {
		parts = append(parts, "9")
	}
	parts = append(parts, colorSGR(s.FG, false)...)
	parts = append(parts, colorSGR(s.BG, true)...)
	if len(parts) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(parts, ";") + "m"
}

func colorSGR(c Color, bg bool) []string {
	base := 30
	if bg {
		base = 40
	}
	switch c.Mode {
	case ColorDefault:
		return nil
	case Color16:
		if c.Index < 8 {
			return []string{fmt.Sprint(base + int(c.Index))}
		}
		return []string{fmt.Sprint(base + 60 + int(c.Index-8))}
	case Color256:
		return []string{fmt.Sprint(base + 8), "5", fmt.Sprint(c.Index)}
	case ColorRGB:
		return []string{fmt.Sprint(base + 8), "2", fmt.Sprint(c.R), fmt.Sprint(c.G), fmt.Sprint(c.B)}
	}
	return nil
}

package promptcore

import (
	"io"
	"strings"
)

// PlainTextOutput strips every escape sequence and just accumulates
// visible text — used when stdout is not a terminal (piped to a file, a
// CI log) but the embedder still wants line output (spec §4.5).
type PlainTextOutput struct {
	w   io.Writer
	buf strings.Builder
}

// NewPlainTextOutput wraps w.
func NewPlainTextOutput(w io.Writer) *PlainTextOutput { return &PlainTextOutput{w: w} }

func (o *PlainTextOutput) Write(data string)    { o.buf.WriteString(data) }
func (o *PlainTextOutput) WriteRaw(data string) {} // escapes are never plain text

func (o *PlainTextOutput) Flush() error {
	if o.buf.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(o.w, o.buf.String())
	o.buf.Reset()
	return err
}

func (o *PlainTextOutput) EnterAlternateScreen() {}
func (o *PlainTextOutput) QuitAlternateScreen()  {}
func (o *PlainTextOutput) EnableMouseSupport()   {}
func (o *PlainTextOutput) DisableMouseSupport()  {}
func (o *PlainTextOutput) EraseScreen()          {}
func (o *PlainTextOutput) EraseDown()            {}
func (o *PlainTextOutput) EraseEndOfLine()        {}
func (o *PlainTextOutput) CursorGoto(int, int)    {}
func (o *PlainTextOutput) CursorUp(int)          {}
func (o *PlainTextOutput) CursorDown(int)        {}
func (o *PlainTextOutput) CursorForward(int)     {}
func (o *PlainTextOutput) CursorBackward(int)    {}
func (o *PlainTextOutput) HideCursor()           {}
func (o *PlainTextOutput) ShowCursor()           {}
func (o *PlainTextOutput) SetCursorShape(CursorShape) {}
func (o *PlainTextOutput) ResetCursorShape()     {}
func (o *PlainTextOutput) EnableAutowrap()       {}
func (o *PlainTextOutput) DisableAutowrap()      {}
func (o *PlainTextOutput) SetAttributes(Style)   {}
func (o *PlainTextOutput) ResetAttributes()      {}
func (o *PlainTextOutput) EnableSyncOutput()     {}
func (o *PlainTextOutput) DisableSyncOutput()    {}
func (o *PlainTextOutput) AskForCPR()            {}
func (o *PlainTextOutput) BellSound()            {}
func (o *PlainTextOutput) SupportsSyncOutput() bool { return false }

func (o *PlainTextOutput) GetSize() (rows, cols int, err error) {
	return 24, 80, nil
}

// DummyOutput discards everything written to it. Used by tests that need
// an Output but never inspect what was sent to the terminal (spec §4.5).
type DummyOutput struct{}

func NewDummyOutput() *DummyOutput { return &DummyOutput{} }

func (o *DummyOutput) Write(string)                 {}
func (o *DummyOutput) WriteRaw(string)               {}
func (o *DummyOutput) Flush() error                  { return nil }
func (o *DummyOutput) EnterAlternateScreen()         {}
func (o *DummyOutput) QuitAlternateScreen()          {}
func (o *DummyOutput) EnableMouseSupport()           {}
func (o *DummyOutput) DisableMouseSupport()          {}
func (o *DummyOutput) EraseScreen()                  {}
func (o *DummyOutput) EraseDown()                    {}
func (o *DummyOutput) EraseEndOfLine()               {}
func (o *DummyOutput) CursorGoto(int, int)           {}
func (o *DummyOutput) CursorUp(int)                  {}
func (o *DummyOutput) CursorDown(int)                {}
func (o *DummyOutput) CursorForward(int)             {}
func (o *DummyOutput) CursorBackward(int)            {}
func (o *DummyOutput) HideCursor()                   {}
func (o *DummyOutput) ShowCursor()                   {}
func (o *DummyOutput) SetCursorShape(CursorShape)    {}
func (o *DummyOutput) ResetCursorShape()             {}
func (o *DummyOutput) EnableAutowrap()               {}
func (o *DummyOutput) DisableAutowrap()               {}
func (o *DummyOutput) SetAttributes(Style)           {}
func (o *DummyOutput) ResetAttributes()              {}
func (o *DummyOutput) EnableSyncOutput()             {}
func (o *DummyOutput) DisableSyncOutput()            {}
func (o *DummyOutput) AskForCPR()                    {}
func (o *DummyOutput) BellSound()                    {}
func (o *DummyOutput) SupportsSyncOutput() bool      { return false }
func (o *DummyOutput) GetSize() (rows, cols int, err error) { return 24, 80, nil }

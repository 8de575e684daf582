//go:build windows

package promptcore

import (
	"golang.org/x/sys/windows"
)

// LegacyWin32Output drives the classic Windows console API directly
// (SetConsoleCursorPosition, SetConsoleTextAttribute, ...) for consoles
// that predate ConEmu/Windows Terminal VT100 passthrough (spec §4.5).
type LegacyWin32Output struct {
	handle windows.Handle
}

// NewLegacyWin32Output wraps the process's console output handle, failing
// with ErrNoConsoleScreenBuffer if none is attached.
func NewLegacyWin32Output() (*LegacyWin32Output, error) {
	h, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil || h == windows.InvalidHandle {
		return nil, ErrNoConsoleScreenBuffer
	}
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err != nil {
		return nil, ErrNoConsoleScreenBuffer
	}
	return &LegacyWin32Output{handle: h}, nil
}

func (o *LegacyWin32Output) Write(data string)    { o.writeString(data) }
func (o *LegacyWin32Output) WriteRaw(data string) { o.writeString(data) }

func (o *LegacyWin32Output) writeString(s string) {
	u16, err := windows.UTF16FromString(s)
	if err != nil {
		return
	}
	var written uint32
	windows.WriteConsole(o.handle, &u16[0], uint32(len(u16)-1), &written, nil)
}

func (o *LegacyWin32Output) Flush() error { return nil }

func (o *LegacyWin32Output) EnterAlternateScreen() {}
func (o *LegacyWin32Output) QuitAlternateScreen()  {}
func (o *LegacyWin32Output) EnableMouseSupport()   {}
func (o *LegacyWin32Output) DisableMouseSupport()  {}

func (o *LegacyWin32Output) EraseScreen() {
	info, err := o.info()
	if err != nil {
		return
	}
	size := info.Size.X * info.Size.Y
	var written uint32
	windows.FillConsoleOutputCharacter(o.handle, ' ', uint32(size), windows.Coord{}, &written)
}

func (o *LegacyWin32Output) EraseDown()      {}
func (o *LegacyWin32Output) EraseEndOfLine() {}

func (o *LegacyWin32Output) CursorGoto(row, col int) {
	windows.SetConsoleCursorPosition(o.handle, windows.Coord{X: int16(col), Y: int16(row)})
}

func (o *LegacyWin32Output) CursorUp(n int)       { o.moveCursor(0, -n) }
func (o *LegacyWin32Output) CursorDown(n int)     { o.moveCursor(0, n) }
func (o *LegacyWin32Output) CursorForward(n int)  { o.moveCursor(n, 0) }
func (o *LegacyWin32Output) CursorBackward(n int) { o.moveCursor(-n, 0) }

func (o *LegacyWin32Output) moveCursor(dx, dy int) {
	info, err := o.info()
	if err != nil {
		return
	}
	windows.SetConsoleCursorPosition(o.handle, windows.Coord{
		X: info.CursorPosition.X + int16(dx),
		Y: info.CursorPosition.Y + int16(dy),
	})
}

func (o *LegacyWin32Output) HideCursor() {
	windows.SetConsoleCursorInfo(o.handle, &windows.ConsoleCursorInfo{Size: 25, Visible: 0})
}

func (o *LegacyWin32Output) ShowCursor() {
	windows.SetConsoleCursorInfo(o.handle, &windows.ConsoleCursorInfo{Size: 25, Visible: 1})
}

func (o *LegacyWin32Output) SetCursorShape(CursorShape) {}
func (o *LegacyWin32Output) ResetCursorShape()          {}
func (o *LegacyWin32Output) EnableAutowrap()            {}
func (o *LegacyWin32Output) DisableAutowrap()           {}

func (o *LegacyWin32Output) SetAttributes(style Style) {
	windows.SetConsoleTextAttribute(o.handle, win32Attribute(style))
}

func (o *LegacyWin32Output) ResetAttributes() {
	windows.SetConsoleTextAttribute(o.handle, windows.FOREGROUND_RED|windows.FOREGROUND_GREEN|windows.FOREGROUND_BLUE)
}

func (o *LegacyWin32Output) EnableSyncOutput()  {}
func (o *LegacyWin32Output) DisableSyncOutput() {}
func (o *LegacyWin32Output) AskForCPR()         {}
func (o *LegacyWin32Output) BellSound()         { o.writeString("\a") }

func (o *LegacyWin32Output) GetSize() (rows, cols int, err error) {
	info, err := o.info()
	if err != nil {
		return 0, 0, err
	}
	return int(info.Window.Bottom-info.Window.Top) + 1, int(info.Window.Right-info.Window.Left) + 1, nil
}

func (o *LegacyWin32Output) SupportsSyncOutput() bool { return false }

func (o *LegacyWin32Output) info() (windows.ConsoleScreenBufferInfo, error) {
	var info windows.ConsoleScreenBufferInfo
	err := windows.GetConsoleScreenBufferInfo(o.handle, &info)
	return info, err
}

func win32Attribute(s Style) uint16 {
	var attr uint16
	if s.FG.Mode != ColorDefault {
		if s.FG.Index&1 != 0 {
			attr |= windows.FOREGROUND_RED
		}
		if s.FG.Index&2 != 0 {
			attr |= windows.FOREGROUND_GREEN
		}
		if s.FG.Index&4 != 0 {
			attr |= windows.FOREGROUND_BLUE
		}
	} else {
		attr |= windows.FOREGROUND_RED | windows.FOREGROUND_GREEN | windows.FOREGROUND_BLUE
	}
	if s.Attr.Has(AttrBold) {
		attr |= windows.FOREGROUND_INTENSITY
	}
	// Reverse video has no direct legacy-console attribute bit; left
	// unimplemented on this backend (ConEmu/Windows Terminal use VT100Output
	// instead, where SGR 7 is available).
	return attr
}

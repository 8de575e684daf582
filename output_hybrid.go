//go:build windows

package promptcore

import (
	"io"

	"golang.org/x/sys/windows"
)

// HybridWin32Output is VT100Output plus a one-time attempt to turn on
// ENABLE_VIRTUAL_TERMINAL_PROCESSING on the console handle, used for
// Windows 10+ consoles and ConEmu, which understand ANSI/VT100 sequences
// but are reached through a console handle rather than a plain pipe (spec
// §4.5).
type HybridWin32Output struct {
	*VT100Output
	handle windows.Handle
}

// NewHybridWin32Output wraps w/fd with VT100Output and enables VT
// processing on handle if possible; failure to enable it is not fatal —
// the sequences are simply ignored by the console in that case.
func NewHybridWin32Output(w io.Writer, fd int, handle windows.Handle) *HybridWin32Output {
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err == nil {
		windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
	}
	return &HybridWin32Output{VT100Output: NewVT100Output(w, fd), handle: handle}
}

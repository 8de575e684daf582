package promptcore

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// RawModeSession manages entering/restoring raw terminal mode and
// delivering resize notifications, grounded in the teacher's raw-mode
// enter-then-defer-exit pattern around its run loop and its SIGWINCH
// watcher goroutine (spec §5).
type RawModeSession struct {
	fd       int
	prevTerm *term.State

	resize chan struct{}
	stop   chan struct{}
}

// NewRawModeSession prepares a session for the given terminal file
// descriptor without yet entering raw mode.
func NewRawModeSession(fd int) *RawModeSession {
	return &RawModeSession{fd: fd, resize: make(chan struct{}, 1), stop: make(chan struct{})}
}

// Enter puts the terminal into raw mode and starts the SIGWINCH watcher.
// Callers must call Exit (typically via defer) before the process ends.
func (r *RawModeSession) Enter() error {
	prev, err := term.MakeRaw(r.fd)
	if err != nil {
		return err
	}
	r.prevTerm = prev

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGWINCH)
	go func() {
		for {
			select {
			case <-sigCh:
				select {
				case r.resize <- struct{}{}:
				default:
				}
			case <-r.stop:
				signal.Stop(sigCh)
				return
			}
		}
	}()
	return nil
}

// Exit restores the terminal's prior mode and stops the resize watcher.
func (r *RawModeSession) Exit() error {
	close(r.stop)
	if r.prevTerm == nil {
		return nil
	}
	return term.Restore(r.fd, r.prevTerm)
}

// Resize returns the channel that receives a value (coalesced; a burst of
// SIGWINCH collapses to one pending notification) each time the terminal
// is resized.
func (r *RawModeSession) Resize() <-chan struct{} { return r.resize }

// WindowSize queries the current terminal size directly via TIOCGWINSZ,
// the same ioctl VT100Output.GetSize uses through x/term; exposed
// separately so a SIGWINCH handler can re-query without going through an
// Output.
func WindowSize(fd int) (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Row), int(ws.Col), nil
}

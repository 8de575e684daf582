package promptcore

import "errors"

// ErrNotHandled is the return-value sentinel produced by mouse and key
// handlers when an event is outside their concern. It is always returned,
// never raised as a panic — see spec §7 (NotHandled).
var ErrNotHandled = errors.New("promptcore: event not handled")

// ErrHeightUnknown is returned by Renderer.RowsAboveLayout when asked
// before a CPR response has arrived. The single caller that can observe
// this — the VT100 mouse handler — catches it and degrades to
// ErrNotHandled.
var ErrHeightUnknown = errors.New("promptcore: terminal height not yet known")

// ErrNoConsoleScreenBuffer is returned by the legacy Win32 backend's
// constructor when the process is not attached to a console.
var ErrNoConsoleScreenBuffer = errors.New("promptcore: no console screen buffer attached; run inside a compatible terminal")

// ErrPlatformUnsupported names the wrong-platform failure of a
// platform-specific backend. No constructor in this module returns it: the
// Windows backends are compiled only on Windows (build tag) and are absent
// elsewhere rather than failing at construction.
var ErrPlatformUnsupported = errors.New("promptcore: backend not supported on this platform")

// ErrKeyboardInterrupt and ErrEndOfInput are the default sentinel types a
// prompt driver (out of scope for this module) raises on Ctrl-C and
// Ctrl-D-on-empty respectively. They are declared here only so that
// downstream collaborators have a stable identity to compare against;
// nothing in this module returns or checks them.
var ErrKeyboardInterrupt = errors.New("promptcore: keyboard interrupt")
var ErrEndOfInput = errors.New("promptcore: end of input")

package promptcore

import "sync"

// FocusRing cycles keyboard focus across a fixed set of windows in
// registration order, wrapping around at either end via modular
// arithmetic — adapted from the teacher's FocusManager.moveFocus, reduced
// to the bare cyclic-index responsibility (binding, sub-router push/pop,
// and key dispatch all live above this module's scope) per spec §9's
// design notes on focus traversal.
type FocusRing struct {
	mu      sync.Mutex
	windows []WindowID
	current int
}

// NewFocusRing creates an empty ring; windows join it via Register.
func NewFocusRing() *FocusRing { return &FocusRing{} }

// Register appends w to the ring. Registering the first window also
// gives it focus.
func (f *FocusRing) Register(w WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows = append(f.windows, w)
}

// Current returns the currently focused window and whether the ring is
// non-empty.
func (f *FocusRing) Current() (WindowID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.windows) == 0 {
		return 0, false
	}
	return f.windows[f.current], true
}

// Next advances focus by one, wrapping to the first window after the
// last.
func (f *FocusRing) Next() { f.move(1) }

// Previous moves focus back by one, wrapping to the last window before
// the first.
func (f *FocusRing) Previous() { f.move(-1) }

func (f *FocusRing) move(delta int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.windows)
	if n == 0 {
		return
	}
	f.current = (f.current + n + delta) % n
}

// Focus sets focus directly to w, if it is registered. Returns false if
// w is not a member of the ring.
func (f *FocusRing) Focus(w WindowID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, id := range f.windows {
		if id == w {
			f.current = i
			return true
		}
	}
	return false
}

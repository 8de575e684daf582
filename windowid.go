package promptcore

import "sync/atomic"

// WindowID is an opaque identity token for a window/control, used to key
// Screen's cursor/menu/visible-window maps. Source toolkits key these
// tables on a marker-interface object's identity; spec §9 directs a
// systems-language implementation to use an opaque token instead —
// participation in nothing beyond equality. A zero WindowID is invalid and
// must never be passed to Screen (spec §4.1: "non-null precondition; null
// is a usage error").
type WindowID uint64

var nextWindowID uint64

// NewWindowID issues a fresh, monotonically increasing window identity.
// Layouts call this once per control/container at construction time.
func NewWindowID() WindowID {
	return WindowID(atomic.AddUint64(&nextWindowID, 1))
}

// Valid reports whether the id was actually issued by NewWindowID.
func (id WindowID) Valid() bool { return id != 0 }

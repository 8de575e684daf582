package promptcore

import (
	"fmt"
	"sync"

	"github.com/mattn/go-runewidth"
)

// Char is an immutable (display_text, style, width) triple describing a
// single screen cell's content. Constructing one from a raw control byte
// folds it into its caret or hex-escape display form and tags the style
// with "class:control-character" — see CharacterDisplayMappings.
type Char struct {
	character string
	style     StyleString
	width     int
}

// Character returns the display text for this Char.
func (c Char) Character() string { return c.character }

// Style returns the StyleString attached to this Char.
func (c Char) Style() StyleString { return c.style }

// Width returns the Unicode display width (0, 1, or 2).
func (c Char) Width() int { return c.width }

// Equal compares Chars by (character, style) only, per spec §3 — width is
// derived and never participates in equality.
func (c Char) Equal(other Char) bool {
	return c.character == other.character && c.style == other.style
}

// CharacterDisplayMappings is the frozen, process-wide table of 66 control
// and special-byte display substitutions: 32 C0 controls + DEL in caret
// notation, 32 C1 controls in <hh> notation, and NBSP folded to a plain
// space. It is built once at package init and never mutated.
var CharacterDisplayMappings = buildCharacterDisplayMappings()

func buildCharacterDisplayMappings() map[byte]string {
	m := make(map[byte]string, 66)
	for b := 0; b <= 0x1F; b++ {
		m[byte(b)] = caretForm(byte(b))
	}
	m[0x7F] = "^?"
	for b := 0x80; b <= 0x9F; b++ {
		m[byte(b)] = fmt.Sprintf("<%02x>", b)
	}
	m[0xA0] = " "
	return m
}

// caretForm renders a C0 control byte in caret notation: b ^ 0x40 per the
// classic terminal convention (0x00 -> ^@, 0x01 -> ^A, ... 0x1F -> ^_).
func caretForm(b byte) string {
	return "^" + string(rune(b^0x40))
}

// NewChar constructs a Char from a single-rune string and a style,
// applying the control-character / C1 / NBSP folding rules of spec §3.
// Multi-rune strings (e.g. combined grapheme clusters written by
// processors) bypass folding and are used verbatim.
func NewChar(s string, style StyleString) Char {
	if r := soleRune(s); r >= 0 {
		b := byte(r)
		switch {
		case r <= 0x1F || r == 0x7F:
			return internChar(CharacterDisplayMappings[b], style.Prepend("class:control-character"), 2)
		case r >= 0x80 && r <= 0x9F:
			return internChar(CharacterDisplayMappings[b], style.Prepend("class:control-character"), 4)
		case r == 0xA0:
			return internChar(" ", style.Prepend("class:nbsp"), 1)
		}
	}
	return internChar(s, style, runewidth.StringWidth(s))
}

// soleRune returns the single rune in s if s is exactly one ASCII-range
// control/byte-like rune, or -1 otherwise. It deliberately only looks at
// the byte range the folding table covers.
func soleRune(s string) int {
	rs := []rune(s)
	if len(rs) != 1 {
		return -1
	}
	r := rs[0]
	if r < 0 || r > 0x9F+1 {
		return -1
	}
	return int(r)
}

// charInterner is a bounded, thread-safe cache of Chars keyed by
// (character, style). Two Chars built with identical arguments MAY be
// identity-equal (share the same backing struct via a pointer-free value
// cache keyed by a string), but callers never depend on this — only
// (character, style) equality is guaranteed. Capacity is bounded; on
// overflow we evict at random rather than maintaining a true LRU list,
// trading perfect recency for an allocation-free hot path (the same
// trade-off the teacher's Screen makes with a single coarse lock rather
// than fine-grained structures).
type internerTable struct {
	mu       sync.Mutex
	entries  map[string]Char
	capacity int
}

const internerCapacity = 1_000_000

var globalInterner = &internerTable{
	entries:  make(map[string]Char, 1024),
	capacity: internerCapacity,
}

func internKey(character string, style StyleString, width int) string {
	return character + "\x00" + string(style) + "\x00" + fmt.Sprint(width)
}

func internChar(character string, style StyleString, width int) Char {
	key := internKey(character, style, width)

	globalInterner.mu.Lock()
	if c, ok := globalInterner.entries[key]; ok {
		globalInterner.mu.Unlock()
		return c
	}
	c := Char{character: character, style: style, width: width}
	if len(globalInterner.entries) >= globalInterner.capacity {
		// Bounded eviction: drop one arbitrary entry (map iteration order
		// is randomized by the runtime) to make room, then fall back to
		// fresh construction for this call rather than stalling on a
		// proper LRU walk.
		for k := range globalInterner.entries {
			delete(globalInterner.entries, k)
			break
		}
	}
	globalInterner.entries[key] = c
	globalInterner.mu.Unlock()
	return c
}

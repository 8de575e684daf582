package promptcore

import "strings"

// StyleString is a free-form, whitespace-separated token string describing
// colour/attribute/class intent. The core only composes these strings; it
// never resolves class: tokens against a theme — that is a downstream
// concern (spec §3). Recognised tokens: "class:NAME", "fg:COLOR",
// "bg:COLOR", "bold", "italic", "underline", "strike", "dim", "blink",
// "reverse", "hidden", and the "[Transparent]" sentinel meaning "inherit".
type StyleString string

// TransparentStyle is the sentinel meaning "inherit the enclosing style".
const TransparentStyle StyleString = "[Transparent]"

// Empty reports whether the style carries no tokens.
func (s StyleString) Empty() bool {
	return strings.TrimSpace(string(s)) == ""
}

// Tokens splits the style into its whitespace-separated tokens.
func (s StyleString) Tokens() []string {
	return strings.Fields(string(s))
}

// Append returns a new StyleString with extra tokens added after the
// existing ones: "{existing} {extra}". Appending the empty string is a
// no-op, matching Screen.append_style_to_content's contract.
func (s StyleString) Append(extra string) StyleString {
	if strings.TrimSpace(extra) == "" {
		return s
	}
	if s.Empty() {
		return StyleString(extra)
	}
	return StyleString(string(s) + " " + extra)
}

// Prepend returns a new StyleString with extra tokens added before the
// existing ones: "{extra} {existing}".
func (s StyleString) Prepend(extra string) StyleString {
	if strings.TrimSpace(extra) == "" {
		return s
	}
	if s.Empty() {
		return StyleString(extra)
	}
	return StyleString(extra + " " + string(s))
}

// Compose implements Screen.fill_area's style-composition rule: when
// after is false the new tokens come first ("{new} {existing}"); when
// true the existing tokens come first ("{existing} {new}"). An empty (or
// all-whitespace) newStyle is a no-op regardless of after.
func (s StyleString) Compose(newStyle StyleString, after bool) StyleString {
	if newStyle.Empty() {
		return s
	}
	if after {
		return s.Append(string(newStyle))
	}
	return s.Prepend(string(newStyle))
}

// HasClass reports whether the style carries the given "class:NAME" token.
func (s StyleString) HasClass(name string) bool {
	want := "class:" + name
	for _, t := range s.Tokens() {
		if t == want {
			return true
		}
	}
	return false
}

// --- Resolved style: the downstream-facing (FG, BG, Attr) triple ---
//
// StyleString is what the core composes and carries around; Style is what
// an Output backend actually emits as ANSI/truecolour/palette sequences.
// Resolution (StyleString -> Style) is generically a theme lookup and is
// out of scope for this module's core, but the Output backends need *some*
// concrete representation to diff and emit, so a minimal, teacher-grounded
// resolver is provided for the token forms spec §3 lists explicitly
// ("fg:COLOR", "bg:COLOR", "bold", ...). Unrecognised or class: tokens are
// left for a real theme to resolve upstream and are ignored here.

// ColorMode selects how a Color's channel values are interpreted.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // terminal default, no escape emitted
	Color16                      // basic 16-colour palette (0-15)
	Color256                     // 256-colour palette
	ColorRGB                     // 24-bit truecolour
)

// Color is a single resolved terminal colour.
type Color struct {
	Mode    ColorMode
	R, G, B uint8
	Index   uint8
}

// DefaultColor returns the terminal's default colour (no escape emitted).
func DefaultColor() Color { return Color{Mode: ColorDefault} }

// Attribute is a bitmask of resolved text attributes.
type Attribute uint16

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrItalic
	AttrUnderline
	AttrStrike
	AttrDim
	AttrBlink
	AttrReverse
	AttrHidden
)

// Has reports whether attr is set.
func (a Attribute) Has(attr Attribute) bool { return a&attr != 0 }

// With returns a new Attribute with attr added.
func (a Attribute) With(attr Attribute) Attribute { return a | attr }

// Style is the resolved, renderer-facing form of a StyleString: a plain
// (FG, BG, Attr) triple with no class:/theme indirection left in it.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle returns the resolved default style (default colours, no
// attributes).
func DefaultStyle() Style {
	return Style{FG: DefaultColor(), BG: DefaultColor()}
}

// Equal reports whether two resolved styles are identical.
func (s Style) Equal(other Style) bool { return s == other }

// ResolveBasic resolves the literal attribute/fg/bg tokens of a
// StyleString into a Style, ignoring any "class:NAME" tokens (those are a
// theme's job) and the "[Transparent]" sentinel (callers inheriting a
// parent style should special-case it before calling ResolveBasic). Colour
// tokens accept "#rrggbb" (truecolour), a bare decimal 0-255 (256-colour
// palette), or one of the 16 basic names (black, red, green, yellow, blue,
// magenta, cyan, white, and their "bright-" prefixed variants).
func (s StyleString) ResolveBasic() Style {
	out := DefaultStyle()
	for _, tok := range s.Tokens() {
		switch {
		case tok == "bold":
			out.Attr = out.Attr.With(AttrBold)
		case tok == "italic":
			out.Attr = out.Attr.With(AttrItalic)
		case tok == "underline":
			out.Attr = out.Attr.With(AttrUnderline)
		case tok == "strike":
			out.Attr = out.Attr.With(AttrStrike)
		case tok == "dim":
			out.Attr = out.Attr.With(AttrDim)
		case tok == "blink":
			out.Attr = out.Attr.With(AttrBlink)
		case tok == "reverse":
			out.Attr = out.Attr.With(AttrReverse)
		case tok == "hidden":
			out.Attr = out.Attr.With(AttrHidden)
		case strings.HasPrefix(tok, "fg:"):
			out.FG = resolveColorToken(strings.TrimPrefix(tok, "fg:"))
		case strings.HasPrefix(tok, "bg:"):
			out.BG = resolveColorToken(strings.TrimPrefix(tok, "bg:"))
		}
	}
	return out
}

var basicColorNames = map[string]uint8{
	"black": 0, "red": 1, "green": 2, "yellow": 3,
	"blue": 4, "magenta": 5, "cyan": 6, "white": 7,
	"bright-black": 8, "bright-red": 9, "bright-green": 10, "bright-yellow": 11,
	"bright-blue": 12, "bright-magenta": 13, "bright-cyan": 14, "bright-white": 15,
}

func resolveColorToken(v string) Color {
	if v == "" || v == "default" {
		return DefaultColor()
	}
	if idx, ok := basicColorNames[v]; ok {
		return Color{Mode: Color16, Index: idx}
	}
	if strings.HasPrefix(v, "#") && (len(v) == 7) {
		r, okR := hexByte(v[1:3])
		g, okG := hexByte(v[3:5])
		b, okB := hexByte(v[5:7])
		if okR && okG && okB {
			return Color{Mode: ColorRGB, R: r, G: g, B: b}
		}
	}
	if n, ok := parseDecimal(v); ok && n >= 0 && n <= 255 {
		return Color{Mode: Color256, Index: uint8(n)}
	}
	return DefaultColor()
}

func hexByte(s string) (uint8, bool) {
	if len(s) != 2 {
		return 0, false
	}
	n, ok := parseHex(s)
	return uint8(n), ok
}

func parseHex(s string) (int, bool) {
	n := 0
	for _, r := range s {
		n *= 16
		switch {
		case r >= '0' && r <= '9':
			n += int(r - '0')
		case r >= 'a' && r <= 'f':
			n += int(r-'a') + 10
		case r >= 'A' && r <= 'F':
			n += int(r-'A') + 10
		default:
			return 0, false
		}
	}
	return n, true
}

func parseDecimal(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

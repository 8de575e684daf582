package promptcore

import "testing"

func TestStyleStringComposePrependsByDefault(t *testing.T) {
	base := StyleString("bold")
	got := base.Compose("fg:red", false)
	if got != "fg:red bold" {
		t.Fatalf("Compose(after=false) = %q, want %q", got, "fg:red bold")
	}
}

func TestStyleStringComposeAppendsWhenAfterTrue(t *testing.T) {
	base := StyleString("bold")
	got := base.Compose("fg:red", true)
	if got != "bold fg:red" {
		t.Fatalf("Compose(after=true) = %q, want %q", got, "bold fg:red")
	}
}

func TestStyleStringComposeEmptyIsNoop(t *testing.T) {
	base := StyleString("bold")
	if got := base.Compose("", false); got != base {
		t.Fatalf("Compose with empty style changed value: %q", got)
	}
	if got := base.Compose("   ", true); got != base {
		t.Fatalf("Compose with whitespace style changed value: %q", got)
	}
}

func TestStyleStringHasClass(t *testing.T) {
	s := StyleString("bold class:selected fg:red")
	if !s.HasClass("selected") {
		t.Fatalf("expected HasClass(selected) true")
	}
	if s.HasClass("search") {
		t.Fatalf("expected HasClass(search) false")
	}
}

func TestResolveBasicAttributes(t *testing.T) {
	s := StyleString("bold underline fg:red bg:#112233")
	r := s.ResolveBasic()
	if !r.Attr.Has(AttrBold) || !r.Attr.Has(AttrUnderline) {
		t.Fatalf("expected bold+underline attrs, got %v", r.Attr)
	}
	if r.FG.Mode != Color16 || r.FG.Index != 1 {
		t.Fatalf("fg = %+v, want basic red (index 1)", r.FG)
	}
	if r.BG.Mode != ColorRGB || r.BG.R != 0x11 || r.BG.G != 0x22 || r.BG.B != 0x33 {
		t.Fatalf("bg = %+v, want rgb(0x11,0x22,0x33)", r.BG)
	}
}

func TestResolveBasic256Palette(t *testing.T) {
	r := StyleString("fg:200").ResolveBasic()
	if r.FG.Mode != Color256 || r.FG.Index != 200 {
		t.Fatalf("fg = %+v, want 256-palette index 200", r.FG)
	}
}

func TestResolveBasicIgnoresClassTokens(t *testing.T) {
	r := StyleString("class:selected bold").ResolveBasic()
	if !r.Attr.Has(AttrBold) {
		t.Fatalf("expected bold preserved alongside ignored class token")
	}
}

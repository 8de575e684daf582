package promptcore

import "testing"

func TestNewCharControlCharacterFolding(t *testing.T) {
	c := NewChar("\x01", "")
	if c.Character() != "^A" {
		t.Fatalf("character = %q, want ^A", c.Character())
	}
	if !c.Style().HasClass("control-character") {
		t.Fatalf("style = %q, want class:control-character", c.Style())
	}
	if c.Width() != 2 {
		t.Fatalf("width = %d, want 2", c.Width())
	}
}

func TestNewCharC1Folding(t *testing.T) {
	c := NewChar(string(rune(0x80)), "")
	if c.Character() != "<80>" {
		t.Fatalf("character = %q, want <80>", c.Character())
	}
	if c.Width() != 4 {
		t.Fatalf("width = %d, want 4", c.Width())
	}
}

func TestNewCharNBSPFolding(t *testing.T) {
	c := NewChar(string(rune(0xA0)), "")
	if c.Character() != " " {
		t.Fatalf("character = %q, want space", c.Character())
	}
	if !c.Style().HasClass("nbsp") {
		t.Fatalf("style = %q, want class:nbsp", c.Style())
	}
	if c.Width() != 1 {
		t.Fatalf("width = %d, want 1", c.Width())
	}
}

func TestNewCharWideCharacter(t *testing.T) {
	c := NewChar("中", "")
	if c.Width() != 2 {
		t.Fatalf("width = %d, want 2", c.Width())
	}
	if c.Character() != "中" {
		t.Fatalf("character = %q, want 中", c.Character())
	}
}

func TestCharEqualIgnoresWidth(t *testing.T) {
	a := Char{character: "x", style: "bold", width: 1}
	b := Char{character: "x", style: "bold", width: 99}
	if !a.Equal(b) {
		t.Fatalf("expected equal Chars regardless of width")
	}
}

func TestInternerReusesIdenticalChars(t *testing.T) {
	a := NewChar("q", "bold")
	b := NewChar("q", "bold")
	if a != b {
		t.Fatalf("expected identical (character, style, width) Chars to intern to the same value")
	}
}

func TestCharacterDisplayMappingsCoversAllControlBytes(t *testing.T) {
	if got := len(CharacterDisplayMappings); got != 66 {
		t.Fatalf("CharacterDisplayMappings has %d entries, want 66", got)
	}
	if CharacterDisplayMappings[0x00] != "^@" {
		t.Fatalf("NUL mapping = %q, want ^@", CharacterDisplayMappings[0x00])
	}
	if CharacterDisplayMappings[0x1F] != "^_" {
		t.Fatalf("US mapping = %q, want ^_", CharacterDisplayMappings[0x1F])
	}
	if CharacterDisplayMappings[0x7F] != "^?" {
		t.Fatalf("DEL mapping = %q, want ^?", CharacterDisplayMappings[0x7F])
	}
	if CharacterDisplayMappings[0xA0] != " " {
		t.Fatalf("NBSP mapping = %q, want space", CharacterDisplayMappings[0xA0])
	}
}

package promptcore

import "github.com/mattn/go-runewidth"

// Fragment is one contiguous run of text sharing a single style, plus an
// optional opaque mouse handler token carried alongside it (spec §4.2).
type Fragment struct {
	Text  string
	Style StyleString
	// MouseHandler is a key into the owning FragmentList's handler table
	// (0 means "no handler"). Processors that split a fragment must copy it
	// onto every piece they produce from it, per spec §4.2's "handlers
	// follow their originating fragment" rule.
	MouseHandler int
}

// FragmentList is an ordered sequence of Fragments representing one
// logical line, together with the bidirectional position map a processor
// pipeline accumulates as it transforms the line (spec §4.2).
type FragmentList struct {
	Fragments []Fragment

	// sourceToDisplay and displayToSource map character offsets in the
	// original, untransformed line to/from offsets in the final, fully
	// processed line. They are maintained incrementally by Explode +
	// Apply, not recomputed from scratch.
	sourceToDisplay map[int]int
	displayToSource map[int]int
}

// NewFragmentList builds a FragmentList from fragments whose position maps
// are the identity (no processor has run yet).
func NewFragmentList(fragments []Fragment) *FragmentList {
	fl := &FragmentList{Fragments: fragments}
	fl.sourceToDisplay = make(map[int]int)
	fl.displayToSource = make(map[int]int)
	offset := 0
	for _, f := range fragments {
		for range []rune(f.Text) {
			fl.sourceToDisplay[offset] = offset
			fl.displayToSource[offset] = offset
			offset++
		}
	}
	return fl
}

// Width returns the sum of display widths of every fragment's text.
func (fl *FragmentList) Width() int {
	w := 0
	for _, f := range fl.Fragments {
		w += runewidth.StringWidth(f.Text)
	}
	return w
}

// SourceToDisplay maps a source-line character offset to its offset in the
// currently processed display line. An offset with no entry in the map
// (for example one past the end of the line) is returned unchanged; it is
// not extended from the last known mapping, so past the end of a shifted
// map (such as TabsProcessor output) the result is not the display offset.
func (fl *FragmentList) SourceToDisplay(offset int) int {
	if v, ok := fl.sourceToDisplay[offset]; ok {
		return v
	}
	return offset
}

// DisplayToSource is the inverse of SourceToDisplay.
func (fl *FragmentList) DisplayToSource(offset int) int {
	if v, ok := fl.displayToSource[offset]; ok {
		return v
	}
	return offset
}

// Explode returns a new FragmentList with exactly one rune per Fragment,
// each carrying the style and mouse handler of the fragment it came from.
// Explode is idempotent: exploding an already-exploded list returns an
// equivalent one-rune-per-fragment list unchanged (spec §4.2, testable
// property 7). Position maps are preserved unchanged since splitting a
// fragment does not move any character's offset.
func (fl *FragmentList) Explode() *FragmentList {
	out := make([]Fragment, 0, fl.Width())
	for _, f := range fl.Fragments {
		for _, r := range f.Text {
			out = append(out, Fragment{Text: string(r), Style: f.Style, MouseHandler: f.MouseHandler})
		}
	}
	return &FragmentList{
		Fragments:       out,
		sourceToDisplay: fl.sourceToDisplay,
		displayToSource: fl.displayToSource,
	}
}

// Merge coalesces adjacent fragments that share identical style and mouse
// handler into a single fragment, the inverse operation of Explode's
// granularity, so identical runs are not re-styled per character.
func (fl *FragmentList) Merge() *FragmentList {
	if len(fl.Fragments) == 0 {
		return &FragmentList{sourceToDisplay: fl.sourceToDisplay, displayToSource: fl.displayToSource}
	}
	out := make([]Fragment, 0, len(fl.Fragments))
	cur := fl.Fragments[0]
	for _, f := range fl.Fragments[1:] {
		if f.Style == cur.Style && f.MouseHandler == cur.MouseHandler {
			cur.Text += f.Text
			continue
		}
		out = append(out, cur)
		cur = f
	}
	out = append(out, cur)
	return &FragmentList{
		Fragments:       out,
		sourceToDisplay: fl.sourceToDisplay,
		displayToSource: fl.displayToSource,
	}
}

// Text concatenates every fragment's text, ignoring style.
func (fl *FragmentList) Text() string {
	out := ""
	for _, f := range fl.Fragments {
		out += f.Text
	}
	return out
}

// rebuildIdentityMaps replaces the position maps with an identity mapping
// over the exploded rune sequence. Processors that only recolor text (do
// not insert/delete/reorder characters) can use this helper after
// building their output fragments, since the offsets are unchanged.
func (fl *FragmentList) rebuildIdentityMaps() {
	fl.sourceToDisplay = make(map[int]int)
	fl.displayToSource = make(map[int]int)
	offset := 0
	for _, f := range fl.Fragments {
		for range []rune(f.Text) {
			fl.sourceToDisplay[offset] = offset
			fl.displayToSource[offset] = offset
			offset++
		}
	}
}

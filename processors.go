package promptcore

import "strings"

// runes returns fl's fragments exploded to one rune each, in source order —
// the same granularity NewFragmentList's position maps are keyed in.
func (fl *FragmentList) runes() []Fragment {
	return fl.Explode().Fragments
}

// identityWidthTransform is the common shape for processors that replace
// characters one-for-one without changing the line's length: the position
// maps are untouched, only the fragment text/style changes.
func identityWidthTransform(in TransformationInput, out []Fragment) Transformation {
	fl := &FragmentList{
		Fragments:       out,
		sourceToDisplay: in.Fragments.sourceToDisplay,
		displayToSource: in.Fragments.displayToSource,
	}
	return identityTransformation(fl)
}

// PasswordProcessor replaces every visible character with a fixed mask
// rune, preserving style, mouse handler, and offsets 1:1 (spec §4.2).
type PasswordProcessor struct {
	Mask rune
}

// NewPasswordProcessor returns a PasswordProcessor masking with '*'.
func NewPasswordProcessor() *PasswordProcessor { return &PasswordProcessor{Mask: '*'} }

func (p *PasswordProcessor) Apply(in TransformationInput) Transformation {
	mask := p.Mask
	if mask == 0 {
		mask = '*'
	}
	rs := in.Fragments.runes()
	out := make([]Fragment, len(rs))
	for i, f := range rs {
		out[i] = Fragment{Text: string(mask), Style: f.Style, MouseHandler: f.MouseHandler}
	}
	return identityWidthTransform(in, out)
}

// SelectionRange is a half-open [Start, End) range of source offsets.
type SelectionRange struct{ Start, End int }

func (r SelectionRange) contains(i int) bool { return i >= r.Start && i < r.End }

// HighlightSelectionProcessor tags every character inside Selection with
// "class:selected", leaving text and offsets unchanged (spec §4.2).
type HighlightSelectionProcessor struct {
	Selection SelectionRange
}

func (p *HighlightSelectionProcessor) Apply(in TransformationInput) Transformation {
	rs := in.Fragments.runes()
	out := make([]Fragment, len(rs))
	for i, f := range rs {
		st := f.Style
		if p.Selection.contains(i) {
			st = st.Append("class:selected")
		}
		out[i] = Fragment{Text: f.Text, Style: st, MouseHandler: f.MouseHandler}
	}
	return identityWidthTransform(in, out)
}

// HighlightSearchProcessor tags characters under any completed search
// match with "class:search", and the currently-selected match (if any)
// with "class:search.current" instead (spec §4.2).
type HighlightSearchProcessor struct {
	Matches       []SelectionRange
	CurrentMatch  *SelectionRange
}

func (p *HighlightSearchProcessor) Apply(in TransformationInput) Transformation {
	rs := in.Fragments.runes()
	out := make([]Fragment, len(rs))
	for i, f := range rs {
		st := f.Style
		switch {
		case p.CurrentMatch != nil && p.CurrentMatch.contains(i):
			st = st.Append("class:search.current")
		default:
			for _, m := range p.Matches {
				if m.contains(i) {
					st = st.Append("class:search")
					break
				}
			}
		}
		out[i] = Fragment{Text: f.Text, Style: st, MouseHandler: f.MouseHandler}
	}
	return identityWidthTransform(in, out)
}

// HighlightIncrementalSearchProcessor is HighlightSearchProcessor's sibling
// for an in-progress (not yet committed) incremental search: matches get
// "class:incsearch" and the active one "class:incsearch.current" (spec
// §4.2).
type HighlightIncrementalSearchProcessor struct {
	Matches      []SelectionRange
	CurrentMatch *SelectionRange
}

func (p *HighlightIncrementalSearchProcessor) Apply(in TransformationInput) Transformation {
	rs := in.Fragments.runes()
	out := make([]Fragment, len(rs))
	for i, f := range rs {
		st := f.Style
		switch {
		case p.CurrentMatch != nil && p.CurrentMatch.contains(i):
			st = st.Append("class:incsearch.current")
		default:
			for _, m := range p.Matches {
				if m.contains(i) {
					st = st.Append("class:incsearch")
					break
				}
			}
		}
		out[i] = Fragment{Text: f.Text, Style: st, MouseHandler: f.MouseHandler}
	}
	return identityWidthTransform(in, out)
}

// AppendAutoSuggestion appends Suggestion, styled "class:auto-suggestion",
// after the line's own text. The appended characters have no source
// offset of their own; they fall off the edge of the mapping and resolve
// to the end of the source line (spec §4.2).
type AppendAutoSuggestion struct {
	Suggestion string
}

func (p *AppendAutoSuggestion) Apply(in TransformationInput) Transformation {
	if p.Suggestion == "" {
		return identityTransformation(in.Fragments)
	}
	out := append([]Fragment{}, in.Fragments.Fragments...)
	out = append(out, Fragment{Text: p.Suggestion, Style: "class:auto-suggestion"})

	srcLen := len(in.Fragments.sourceToDisplay)
	fl := &FragmentList{Fragments: out}
	fl.sourceToDisplay = in.Fragments.sourceToDisplay
	fl.displayToSource = in.Fragments.displayToSource
	return Transformation{
		Fragments: fl,
		SourceToDisplay: func(o int) int {
			if v, ok := in.Fragments.sourceToDisplay[o]; ok {
				return v
			}
			return srcLen
		},
		DisplayToSource: func(o int) int {
			if v, ok := in.Fragments.displayToSource[o]; ok {
				return v
			}
			return srcLen
		},
	}
}

// BeforeInput prepends Text, styled Style, before the line. Every original
// offset shifts right by the rune length of Text; the prepended span maps
// back to source offset 0 (spec §4.2).
type BeforeInput struct {
	Text  string
	Style StyleString
}

func (p *BeforeInput) Apply(in TransformationInput) Transformation {
	if p.Text == "" {
		return identityTransformation(in.Fragments)
	}
	shift := len([]rune(p.Text))
	out := append([]Fragment{{Text: p.Text, Style: p.Style}}, in.Fragments.Fragments...)
	fl := &FragmentList{Fragments: out}
	return Transformation{
		Fragments: fl,
		SourceToDisplay: func(o int) int {
			if v, ok := in.Fragments.sourceToDisplay[o]; ok {
				return v + shift
			}
			return o + shift
		},
		DisplayToSource: func(o int) int {
			if o < shift {
				return 0
			}
			if v, ok := in.Fragments.displayToSource[o-shift]; ok {
				return v
			}
			return o - shift
		},
	}
}

// AfterInput appends Text, styled Style, after the line. Original offsets
// are unaffected; the appended span maps back to the end of the source
// line (spec §4.2).
type AfterInput struct {
	Text  string
	Style StyleString
}

func (p *AfterInput) Apply(in TransformationInput) Transformation {
	if p.Text == "" {
		return identityTransformation(in.Fragments)
	}
	out := append(append([]Fragment{}, in.Fragments.Fragments...), Fragment{Text: p.Text, Style: p.Style})
	srcLen := len(in.Fragments.sourceToDisplay)
	fl := &FragmentList{Fragments: out}
	return Transformation{
		Fragments: fl,
		SourceToDisplay: func(o int) int {
			if v, ok := in.Fragments.sourceToDisplay[o]; ok {
				return v
			}
			return srcLen
		},
		DisplayToSource: func(o int) int {
			if v, ok := in.Fragments.displayToSource[o]; ok {
				return v
			}
			return srcLen
		},
	}
}

// TabsProcessor expands tab characters to the next multiple of TabSize
// columns: the first filled column is Char1 (default '|'), and the
// remaining tabstop-(col%tabstop)-1 columns are Char2 (default U+2508, a
// dashed box-drawing line) — the distinct leading marker makes a tab stop
// visually distinguishable from a run of spaces. Every column produced by
// one tab maps back to that tab's own source offset; the reverse map picks
// the tab's offset for any of those display columns (spec §4.2).
type TabsProcessor struct {
	TabSize int
	Char1   rune
	Char2   rune
}

// NewTabsProcessor returns a TabsProcessor expanding to 4-column stops.
func NewTabsProcessor() *TabsProcessor {
	return &TabsProcessor{TabSize: 4, Char1: '|', Char2: '┈'}
}

func (p *TabsProcessor) Apply(in TransformationInput) Transformation {
	tabSize := p.TabSize
	if tabSize <= 0 {
		tabSize = 4
	}
	char1 := p.Char1
	if char1 == 0 {
		char1 = '|'
	}
	char2 := p.Char2
	if char2 == 0 {
		char2 = '┈'
	}

	rs := in.Fragments.runes()
	var out []Fragment
	sToD := make(map[int]int, len(rs))
	dToS := make(map[int]int, len(rs))
	col := 0
	for srcIdx, f := range rs {
		sToD[srcIdx] = col
		if f.Text == "\t" {
			spaces := tabSize - (col % tabSize)
			for i := 0; i < spaces; i++ {
				fill := char2
				if i == 0 {
					fill = char1
				}
				out = append(out, Fragment{Text: string(fill), Style: f.Style, MouseHandler: f.MouseHandler})
				dToS[col] = srcIdx
				col++
			}
			continue
		}
		out = append(out, Fragment{Text: f.Text, Style: f.Style, MouseHandler: f.MouseHandler})
		dToS[col] = srcIdx
		col++
	}

	fl := &FragmentList{Fragments: out, sourceToDisplay: sToD, displayToSource: dToS}
	return identityTransformation(fl)
}

// ShowLeadingWhiteSpace replaces the line's leading run of space
// characters with Marker (a middle-dot by default), styled
// "class:leading-whitespace", one rune at a time so offsets are unchanged
// (spec §4.2).
type ShowLeadingWhiteSpaceProcessor struct {
	Marker rune
}

func NewShowLeadingWhiteSpaceProcessor() *ShowLeadingWhiteSpaceProcessor {
	return &ShowLeadingWhiteSpaceProcessor{Marker: '·'}
}

func (p *ShowLeadingWhiteSpaceProcessor) Apply(in TransformationInput) Transformation {
	marker := p.Marker
	if marker == 0 {
		marker = '·'
	}
	rs := in.Fragments.runes()
	out := make([]Fragment, len(rs))
	inLeading := true
	for i, f := range rs {
		if inLeading && f.Text == " " {
			out[i] = Fragment{Text: string(marker), Style: f.Style.Append("class:leading-whitespace"), MouseHandler: f.MouseHandler}
			continue
		}
		inLeading = false
		out[i] = f
	}
	return identityWidthTransform(in, out)
}

// ShowTrailingWhiteSpaceProcessor replaces the line's trailing run of
// space characters with Marker, styled "class:training-whitespace" — the
// class name's spelling is carried over unchanged from the upstream
// toolkit this behaviour is modeled on (spec §4.2).
type ShowTrailingWhiteSpaceProcessor struct {
	Marker rune
}

func NewShowTrailingWhiteSpaceProcessor() *ShowTrailingWhiteSpaceProcessor {
	return &ShowTrailingWhiteSpaceProcessor{Marker: '·'}
}

func (p *ShowTrailingWhiteSpaceProcessor) Apply(in TransformationInput) Transformation {
	marker := p.Marker
	if marker == 0 {
		marker = '·'
	}
	rs := in.Fragments.runes()
	out := make([]Fragment, len(rs))
	copy(out, rs)

	trailingStart := len(rs)
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i].Text != " " {
			break
		}
		trailingStart = i
	}
	for i := trailingStart; i < len(rs); i++ {
		out[i] = Fragment{Text: string(marker), Style: rs[i].Style.Append("class:training-whitespace"), MouseHandler: rs[i].MouseHandler}
	}
	return identityWidthTransform(in, out)
}

// ReverseSearchProcessor prepends a "(reverse-i-search)`term': " style
// prompt to the targeted line, used while an incremental reverse search is
// active. Only LineNo == TargetLine is modified; other lines pass through
// unchanged (spec §4.2).
type ReverseSearchProcessor struct {
	TargetLine int
	SearchTerm string
}

func (p *ReverseSearchProcessor) Apply(in TransformationInput) Transformation {
	if in.LineNo != p.TargetLine {
		return identityTransformation(in.Fragments)
	}
	prefix := "(reverse-i-search)`" + p.SearchTerm + "': "
	before := &BeforeInput{Text: prefix, Style: "class:reverse-i-search"}
	return before.Apply(in)
}

// trimTrailingSpacesCount returns the number of trailing space runes in s,
// the same boundary ShowTrailingWhiteSpaceProcessor detects. Nothing in
// this package calls it at present.
func trimTrailingSpacesCount(s string) int {
	trimmed := strings.TrimRight(s, " ")
	return len([]rune(s)) - len([]rune(trimmed))
}

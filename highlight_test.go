package promptcore

import "testing"

func TestSyntaxHighlightProcessorTagsKeyword(t *testing.T) {
	src := "package main\n"
	p := NewSyntaxHighlightProcessor("go", src)

	fl := NewFragmentList([]Fragment{{Text: "package main"}})
	in := TransformationInput{LineNo: 0, Fragments: fl, CursorSource: -1, Width: 80}
	out := p.Apply(in)

	foundKeywordClass := false
	for _, f := range out.Fragments.Fragments {
		if f.Style.HasClass("token.keyword") {
			foundKeywordClass = true
			break
		}
	}
	if !foundKeywordClass {
		t.Fatalf("expected at least one fragment tagged class:token.keyword for %q", src)
	}
}

func TestSyntaxHighlightProcessorUnknownLanguageFallsBackWithoutPanic(t *testing.T) {
	p := NewSyntaxHighlightProcessor("not-a-real-language", "some text\n")
	fl := NewFragmentList([]Fragment{{Text: "some text"}})
	in := TransformationInput{LineNo: 0, Fragments: fl, CursorSource: -1, Width: 80}
	out := p.Apply(in)
	if got := out.Fragments.Text(); got != "some text" {
		t.Fatalf("got %q, want unchanged text", got)
	}
}

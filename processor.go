package promptcore

// TransformationInput carries everything a Processor needs to transform
// one logical line: which line number it is, the line's own FragmentList,
// an accessor for the other lines (for processors that need neighbouring
// context), the cursor's source-offset on this line if any,
// and width constraints from the enclosing layout (spec §4.2).
type TransformationInput struct {
	LineNo       int
	Fragments    *FragmentList
	Lines        func(lineNo int) *FragmentList
	LineCount    int
	CursorSource int // -1 if the cursor is not on this line
	Width        int
}

// Transformation is the result of running a Processor over one line: the
// transformed fragments plus the functions needed to translate offsets
// across the transformation, per spec §4.2.
type Transformation struct {
	Fragments       *FragmentList
	SourceToDisplay func(int) int
	DisplayToSource func(int) int
}

// Processor transforms one line's FragmentList into another. Processors
// compose left-to-right: the output of one is the input to the next
// (spec §4.2).
type Processor interface {
	Apply(in TransformationInput) Transformation
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(in TransformationInput) Transformation

func (f ProcessorFunc) Apply(in TransformationInput) Transformation { return f(in) }

// identityTransformation wraps fragments that were not modified, so the
// offset maps remain pass-through.
func identityTransformation(fl *FragmentList) Transformation {
	return Transformation{
		Fragments:       fl,
		SourceToDisplay: fl.SourceToDisplay,
		DisplayToSource: fl.DisplayToSource,
	}
}

// mergedProcessor runs a sequence of Processors in order, feeding each
// one's output fragments as the next one's input, and composing their
// offset-mapping functions so the final Transformation maps all the way
// from the original source line to the final display line and back
// (spec §4.2's merge_processors).
type mergedProcessor struct {
	processors []Processor
}

// MergeProcessors builds a single Processor that runs procs in order.
// An empty list yields a no-op identity processor.
func MergeProcessors(procs ...Processor) Processor {
	return &mergedProcessor{processors: procs}
}

func (m *mergedProcessor) Apply(in TransformationInput) Transformation {
	if len(m.processors) == 0 {
		return identityTransformation(in.Fragments)
	}

	sToD := func(o int) int { return o }
	dToS := func(o int) int { return o }

	cur := in
	for _, p := range m.processors {
		out := p.Apply(cur)
		prevSToD := sToD
		sToD = func(o int) int { return out.SourceToDisplay(prevSToD(o)) }
		prevDToS := dToS
		dToS = func(o int) int { return prevDToS(out.DisplayToSource(o)) }

		cursorSource := cur.CursorSource
		cursorDisplay := -1
		if cursorSource >= 0 {
			cursorDisplay = out.SourceToDisplay(cursorSource)
		}
		cur = TransformationInput{
			LineNo:       cur.LineNo,
			Fragments:    out.Fragments,
			Lines:        cur.Lines,
			LineCount:    cur.LineCount,
			CursorSource: cursorDisplay,
			Width:        cur.Width,
		}
	}
	return Transformation{
		Fragments:       cur.Fragments,
		SourceToDisplay: sToD,
		DisplayToSource: dToS,
	}
}

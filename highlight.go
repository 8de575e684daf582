package promptcore

import (
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
)

// SyntaxHighlightProcessor colors an entire multi-line buffer with a
// chroma lexer chosen by language name, tagging each token with a
// "class:token.<chroma-category>" style token rather than baking in literal
// colours — a theme resolves the actual colour downstream, consistent
// with every other processor in this pipeline only ever emitting
// StyleString tokens (spec §4.2's processor contract, extended with a
// highlighting stage this module's distillation omitted).
type SyntaxHighlightProcessor struct {
	Language string

	lexer    chroma.Lexer
	tokenize func(lineNo int) []chroma.Token
}

// NewSyntaxHighlightProcessor builds a SyntaxHighlightProcessor for the
// named language (e.g. "go", "python", "json"). FullText is the entire
// buffer's text, used once to tokenise the whole document so that
// multi-line constructs (block comments, triple-quoted strings) are
// highlighted correctly even though the pipeline applies per line.
func NewSyntaxHighlightProcessor(language, fullText string) *SyntaxHighlightProcessor {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	p := &SyntaxHighlightProcessor{Language: language, lexer: lexer}
	p.tokenize = p.buildLineTokenizer(fullText)
	return p
}

// buildLineTokenizer tokenises fullText once and buckets the resulting
// tokens by the line they fall on, returning a lookup closure keyed by
// line number.
func (p *SyntaxHighlightProcessor) buildLineTokenizer(fullText string) func(int) []chroma.Token {
	iter, err := p.lexer.Tokenise(nil, fullText)
	byLine := map[int][]chroma.Token{}
	if err == nil {
		line := 0
		for _, tok := range iter.Tokens() {
			parts := strings.Split(tok.Value, "\n")
			for i, part := range parts {
				if part != "" {
					byLine[line] = append(byLine[line], chroma.Token{Type: tok.Type, Value: part})
				}
				if i < len(parts)-1 {
					line++
				}
			}
		}
	}
	return func(lineNo int) []chroma.Token { return byLine[lineNo] }
}

// tokenClass maps a chroma token's broad category to a style class name.
func tokenClass(t chroma.TokenType) string {
	switch t.Category() {
	case chroma.Keyword:
		return "class:token.keyword"
	case chroma.Name:
		return "class:token.name"
	case chroma.Literal:
		return "class:token.literal"
	case chroma.String:
		return "class:token.string"
	case chroma.Number:
		return "class:token.number"
	case chroma.Comment:
		return "class:token.comment"
	case chroma.Operator:
		return "class:token.operator"
	case chroma.Punctuation:
		return "class:token.punctuation"
	default:
		return "class:token.text"
	}
}

func (p *SyntaxHighlightProcessor) Apply(in TransformationInput) Transformation {
	tokens := p.tokenize(in.LineNo)
	if len(tokens) == 0 {
		return identityTransformation(in.Fragments)
	}

	rs := in.Fragments.runes()
	out := make([]Fragment, len(rs))
	copy(out, rs)

	pos := 0
	for _, tok := range tokens {
		class := tokenClass(tok.Type)
		n := len([]rune(tok.Value))
		for i := 0; i < n && pos+i < len(out); i++ {
			out[pos+i].Style = out[pos+i].Style.Append(class)
		}
		pos += n
	}

	return identityWidthTransform(in, out)
}

package highlight

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ErrUnknownLanguage is returned when no lexer exists for a language.
var ErrUnknownLanguage = errors.New("unknown language")

// Chroma is a Highlighter backed by a chroma lexer.
type Chroma struct {
	language string
	exts     []string
	lexer    chroma.Lexer
}

// NewChroma builds a highlighter for a chroma language name (for
// example "go" or "lua") serving the given file extensions.
func NewChroma(language string, exts ...string) (*Chroma, error) {
	lex := lexers.Get(language)
	if lex == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
	}
	return &Chroma{
		language: language,
		exts:     exts,
		lexer:    chroma.Coalesce(lex),
	}, nil
}

// Language returns the chroma language name.
func (c *Chroma) Language() string { return c.language }

// FileExtensions returns the extensions this highlighter serves,
// without leading dots.
func (c *Chroma) FileExtensions() []string {
	out := make([]string, len(c.exts))
	copy(out, c.exts)
	return out
}

// HighlightLine tokenizes one line and maps chroma token types onto
// span categories. Plain text and whitespace produce no spans.
func (c *Chroma) HighlightLine(text string, _ int) []Span {
	if text == "" {
		return nil
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	it, err := c.lexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}

	var spans []Span
	col := 0
	for _, tok := range it.Tokens() {
		val := strings.TrimSuffix(tok.Value, "\n")
		n := utf8.RuneCountInString(val)
		if n == 0 {
			continue
		}
		cat, ok := categoryFor(tok.Type)
		if ok {
			spans = append(spans, Span{StartCol: col, EndCol: col + n, Category: cat})
		}
		col += n
	}
	return spans
}

func categoryFor(t chroma.TokenType) (Category, bool) {
	switch {
	case t == chroma.None || t.InCategory(chroma.Text):
		return CategoryOther, false
	case t.InCategory(chroma.Comment):
		return CategoryComment, true
	case t.InCategory(chroma.Keyword):
		return CategoryKeyword, true
	case t.InSubCategory(chroma.LiteralString):
		return CategoryString, true
	case t.InSubCategory(chroma.LiteralNumber):
		return CategoryNumber, true
	case t.InCategory(chroma.Operator):
		return CategoryOperator, true
	case t.InCategory(chroma.Name):
		return CategoryIdent, true
	default:
		return CategoryOther, true
	}
}

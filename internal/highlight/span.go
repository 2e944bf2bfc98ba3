package highlight

import "fmt"

// Category classifies a highlighted span.
type Category uint8

const (
	CategoryOther Category = iota
	CategoryKeyword
	CategoryString
	CategoryComment
	CategoryNumber
	CategoryIdent
	CategoryOperator
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryKeyword:
		return "keyword"
	case CategoryString:
		return "string"
	case CategoryComment:
		return "comment"
	case CategoryNumber:
		return "number"
	case CategoryIdent:
		return "ident"
	case CategoryOperator:
		return "operator"
	default:
		return "other"
	}
}

// Span is a half-open column range [StartCol, EndCol) on one line,
// measured in runes, with its highlight category.
type Span struct {
	StartCol int
	EndCol   int
	Category Category
}

// String renders the span for logs and the hl command.
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d) %s", s.StartCol, s.EndCol, s.Category)
}

// Highlighter produces highlight spans for single lines. Index is the
// line's position in the buffer; implementations may use it to keep
// cross-line state.
type Highlighter interface {
	HighlightLine(text string, index int) []Span
	Language() string
	FileExtensions() []string
}

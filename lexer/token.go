package lexer

import "fmt"

// Kind classifies a Token
type Kind int

const (
	// Word is a bare word without quoted segments
	Word Kind = iota
	// Quoted is a word containing at least one quoted segment
	Quoted
	// Operator is a single dialect operator character
	Operator
	// Separator is a run of separator characters, only emitted when Dialect.KeepSeparators is set
	Separator
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Quoted:
		return "quoted"
	case Operator:
		return "operator"
	case Separator:
		return "separator"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Span is a half-open range of rune offsets into the tokenized line
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes covered by s
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether the rune offset pos lies in s. The end offset counts as
// inside so a cursor placed right after a word still belongs to it.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos <= s.End
}

// Token is one lexical unit of a line. Text holds the decoded content with quotes
// and escapes removed.
type Token struct {
	Kind Kind
	Text string
	Span Span
}

// IsValue reports whether t can only be read as a literal value.
func (t Token) IsValue() bool {
	return t.Kind == Quoted
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Span.Start, t.Span.End)
}

// Words returns the decoded text of every word token, dropping operators and separators.
func Words(tokens []Token) []string {
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == Word || t.Kind == Quoted {
			words = append(words, t.Text)
		}
	}

	return words
}

package lexer

import "slices"

// Dialect configures how a line is split. The zero value splits on nothing and
// recognises no quotes; use DefaultDialect or PosixDialect as a starting point.
type Dialect struct {
	// Quotes open and close quoted spans. A span is closed by the same character.
	Quotes []rune
	// Escape removes the special meaning of the next character. 0 disables escaping.
	Escape rune
	// Separators delimit words.
	Separators []rune
	// Operators outside quotes become single-character Operator tokens.
	Operators []rune
	// RawQuotes are the quote characters inside which Escape has no effect.
	RawQuotes []rune
	// KeepSeparators emits one Separator token per run of separators.
	KeepSeparators bool
}

// DefaultDialect quotes with ' and ", escapes with \ and splits on space, tab and newline.
func DefaultDialect() Dialect {
	return Dialect{
		Quotes:     []rune{'\'', '"'},
		Escape:     '\\',
		Separators: []rune{' ', '\t', '\n'},
	}
}

// PosixDialect is DefaultDialect with single quotes taken literally.
func PosixDialect() Dialect {
	d := DefaultDialect()
	d.RawQuotes = []rune{'\''}

	return d
}

func (d Dialect) isSeparator(r rune) bool {
	return slices.Contains(d.Separators, r)
}

func (d Dialect) isOperator(r rune) bool {
	return slices.Contains(d.Operators, r)
}

func (d Dialect) isQuote(r rune) bool {
	return slices.Contains(d.Quotes, r)
}

func (d Dialect) isRaw(r rune) bool {
	return slices.Contains(d.RawQuotes, r)
}

func (d Dialect) isEscape(r rune) bool {
	return d.Escape != 0 && r == d.Escape
}

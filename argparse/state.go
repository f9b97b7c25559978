package argparse

import "github.com/napalu/noshell/lexer"

// state is a cursor over the tokens of one invocation. The position starts before
// the first token.
type state struct {
	pos    int
	tokens []lexer.Token
}

func newState(tokens []lexer.Token) *state {
	filtered := make([]lexer.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != lexer.Separator {
			filtered = append(filtered, t)
		}
	}

	return &state{pos: -1, tokens: filtered}
}

// Pos returns the current position in the token list
func (s *state) Pos() int {
	return s.pos
}

// SetPos sets the current position in the token list
func (s *state) SetPos(pos int) {
	s.pos = pos
}

// Advance moves to the next token, returning false at the end
func (s *state) Advance() bool {
	if s.pos+1 < len(s.tokens) {
		s.pos++
		return true
	}

	return false
}

// Current returns the token at the current position
func (s *state) Current() lexer.Token {
	if s.pos < 0 || s.pos >= len(s.tokens) {
		return lexer.Token{}
	}

	return s.tokens[s.pos]
}

// Peek returns the next token without advancing
func (s *state) Peek() (lexer.Token, bool) {
	if s.pos+1 < len(s.tokens) {
		return s.tokens[s.pos+1], true
	}

	return lexer.Token{}, false
}

// AtEnd reports whether no token follows the current position
func (s *state) AtEnd() bool {
	return s.pos+1 >= len(s.tokens)
}

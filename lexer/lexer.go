// Package lexer turns source text into a stream of tokens, pulled one at a time by a parser.
package lexer

import (
	"unicode"

	"github.com/pkg/errors"

	"github.com/ccbrown/loonge/cursor"
	"github.com/ccbrown/loonge/token"
)

// Tokenizer reads tokens from a cursor. It borrows the cursor: closing the cursor is the caller's
// job. A Tokenizer is not safe for concurrent use.
//
// After Read, Peek, or Lookahead returns an error the tokenizer may be positioned mid-token and
// should not be used further.
type Tokenizer struct {
	input *cursor.Cursor

	// the token most recently returned by Read, backing Peek
	current    token.Token
	hasCurrent bool
	start      cursor.Pos

	// a token scanned by Lookahead but not yet returned by Read
	pending      token.Token
	pendingStart cursor.Pos
	hasPending   bool

	// the most recently scanned token and the offset just past it
	prev    token.Token
	prevEnd int
}

func New(input *cursor.Cursor) *Tokenizer {
	return &Tokenizer{
		input:   input,
		prevEnd: -1,
	}
}

func (t *Tokenizer) Line() int     { return t.input.Line() }
func (t *Tokenizer) Column() int   { return t.input.Column() }
func (t *Tokenizer) Position() int { return t.input.Position() }

// Start returns the position at which the token most recently returned by Read began.
func (t *Tokenizer) Start() cursor.Pos {
	return t.start
}

// Read consumes and returns the next token, which also becomes the token returned by Peek. At the
// end of input it returns token.Eof, and keeps doing so on subsequent calls.
func (t *Tokenizer) Read() (token.Token, error) {
	if t.hasPending {
		t.hasPending = false
		t.current, t.start, t.hasCurrent = t.pending, t.pendingStart, true
		return t.current, nil
	}
	tok, start, err := t.scan()
	if err != nil {
		return token.Token{}, err
	}
	t.current, t.start, t.hasCurrent = tok, start, true
	return tok, nil
}

// Peek returns the token most recently returned by Read. If Read has not been called yet, Peek
// calls it first, so the first token is consumed. Repeated calls return the same token until the
// next Read.
func (t *Tokenizer) Peek() (token.Token, error) {
	if !t.hasCurrent {
		return t.Read()
	}
	return t.current, nil
}

// Lookahead returns the token the next Read will return without consuming it. Only one token of
// lookahead is available.
func (t *Tokenizer) Lookahead() (token.Token, error) {
	if !t.hasPending {
		tok, start, err := t.scan()
		if err != nil {
			return token.Token{}, err
		}
		t.pending, t.pendingStart, t.hasPending = tok, start, true
	}
	return t.pending, nil
}

// All reads tokens until the end of input. The trailing token.Eof is not included.
func All(t *Tokenizer) ([]token.Token, error) {
	var ret []token.Token
	for {
		tok, err := t.Read()
		if err != nil {
			return ret, err
		}
		if tok.Kind == token.EOF {
			return ret, nil
		}
		ret = append(ret, tok)
	}
}

func (t *Tokenizer) read() (rune, error) {
	r, err := t.input.Read()
	if err != nil {
		return 0, errors.Wrap(err, "unable to read source")
	}
	return r, nil
}

// consume advances past a character that Peek has already returned.
func (t *Tokenizer) consume() {
	t.input.Read()
}

func (t *Tokenizer) scan() (token.Token, cursor.Pos, error) {
	for {
		if t.input.IsEndOfStream() {
			return token.Eof, t.input.Pos(), nil
		}

		start := t.input.Pos()
		r, err := t.read()
		if err != nil {
			return token.Token{}, start, err
		}

		if unicode.IsSpace(r) {
			continue
		}

		if r == '/' {
			switch t.input.Peek() {
			case '/':
				t.skipLineComment()
				continue
			case '*':
				if err := t.skipBlockComment(); err != nil {
					return token.Token{}, start, err
				}
				continue
			}
		}

		tok, err := t.scanToken(r, start)
		if err != nil {
			return token.Token{}, start, err
		}
		t.prev, t.prevEnd = tok, t.input.Offset()
		return tok, start, nil
	}
}

func (t *Tokenizer) scanToken(r rune, start cursor.Pos) (token.Token, error) {
	switch {
	case r == '"':
		return t.scanString()
	case r == '\'':
		return t.scanCharacter()
	case isDigit(r) || (r == '.' && isDigit(t.input.Peek()) && !t.followsOperand(start)):
		return t.scanNumber(r)
	case token.IsOperatorLead(r):
		return t.scanOperator(r), nil
	case isWordStart(r):
		return t.scanWord(r), nil
	case token.IsPunctuation(r):
		return token.Token{Kind: token.PUNCTUATION, Value: r}, nil
	}
	return token.Token{}, t.errorf("unexpected token: %c (code %d)", r, r)
}

// followsOperand reports whether a token starting at start directly abuts something that can be
// the left side of a member access, such as "x" in "x.5".
func (t *Tokenizer) followsOperand(start cursor.Pos) bool {
	if t.prevEnd != start.Offset {
		return false
	}
	switch t.prev.Kind {
	case token.IDENTIFIER:
		return true
	case token.PUNCTUATION:
		return t.prev.Value == rune(')') || t.prev.Value == rune(']')
	}
	return false
}

func (t *Tokenizer) skipLineComment() {
	for !t.input.IsEndOfStream() {
		if r, _ := t.input.Read(); r == '\n' || r == '\r' {
			return
		}
	}
}

func (t *Tokenizer) skipBlockComment() error {
	t.consume() // '*'
	for {
		if t.input.IsEndOfStream() {
			return t.errorf("comment never closes")
		}
		r, err := t.read()
		if err != nil {
			return err
		}
		if r == '*' && t.input.Peek() == '/' {
			t.consume()
			return nil
		}
	}
}

package lexer

import (
	"strings"

	"github.com/ccbrown/loonge/token"
)

func escapeValue(r rune) (rune, bool) {
	switch r {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case '0':
		return 0, true
	case 'a':
		return '\a', true
	case 'b':
		return '\b', true
	case 'v':
		return '\v', true
	case 'f':
		return '\f', true
	}
	return 0, false
}

// readEscape decodes the character following a backslash that has already been consumed.
func (t *Tokenizer) readEscape() (rune, error) {
	next := t.input.Peek()
	if t.input.IsEndOfStream() {
		return 0, t.errorf("invalid special char after backslash: end of stream")
	}
	r, ok := escapeValue(next)
	if !ok {
		return 0, t.errorf("invalid special char after backslash: %c", next)
	}
	t.consume()
	return r, nil
}

// Strings may not span lines.
func (t *Tokenizer) scanString() (token.Token, error) {
	if t.input.Peek() == '"' {
		t.consume()
		return token.Token{Kind: token.STRING, Value: ""}, nil
	}

	var value strings.Builder
	for {
		if t.input.IsEndOfStream() {
			return token.Token{}, t.errorf("string never closes on the same line")
		}
		r, err := t.read()
		if err != nil {
			return token.Token{}, err
		}
		switch r {
		case '"':
			return token.Token{Kind: token.STRING, Value: value.String()}, nil
		case '\n', '\r':
			return token.Token{}, t.errorf("string never closes on the same line")
		case '\\':
			r, err := t.readEscape()
			if err != nil {
				return token.Token{}, err
			}
			value.WriteRune(r)
		default:
			value.WriteRune(r)
		}
	}
}

func (t *Tokenizer) scanCharacter() (token.Token, error) {
	if t.input.IsEndOfStream() {
		return token.Token{}, t.errorf("character never closes")
	}
	r, err := t.read()
	if err != nil {
		return token.Token{}, err
	}
	if r == '\\' {
		if r, err = t.readEscape(); err != nil {
			return token.Token{}, err
		}
	}

	if t.input.IsEndOfStream() {
		return token.Token{}, t.errorf("character never closes")
	}
	if t.input.Peek() != '\'' {
		return token.Token{}, t.errorf("only one character expected")
	}
	t.consume()
	return token.Token{Kind: token.CHARACTER, Value: r}, nil
}

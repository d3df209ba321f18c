package lexer

import (
	"strconv"
	"strings"

	"github.com/ccbrown/loonge/token"
)

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (t *Tokenizer) consumeDigits(sb *strings.Builder) {
	for isDigit(t.input.Peek()) {
		sb.WriteRune(t.input.Peek())
		t.consume()
	}
}

// scanNumber scans an integer or decimal literal whose first character, a digit or a '.' followed
// by a digit, has already been consumed.
func (t *Tokenizer) scanNumber(first rune) (token.Token, error) {
	var text strings.Builder

	if first == '.' {
		text.WriteString("0.")
		t.consumeDigits(&text)
		return t.decimalNumber(text.String())
	}

	text.WriteRune(first)
	point := false
	for {
		next := t.input.Peek()
		if next == '.' {
			t.consume()
			if point {
				return token.Token{}, t.errorf("multiple points in number")
			}
			point = true
		} else if isDigit(next) {
			t.consume()
		} else {
			break
		}
		text.WriteRune(next)
	}

	if point {
		return t.decimalNumber(text.String())
	}

	n, err := strconv.ParseInt(text.String(), 10, 32)
	if err != nil {
		if isRangeError(err) {
			return token.Token{}, &OverflowError{Literal: text.String()}
		}
		return token.Token{}, t.errorf("invalid number: '%v'", text.String())
	}
	return token.Token{Kind: token.NUMBER, Value: int32(n)}, nil
}

func (t *Tokenizer) decimalNumber(text string) (token.Token, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if isRangeError(err) {
			return token.Token{}, &OverflowError{Literal: text}
		}
		return token.Token{}, t.errorf("invalid number: '%v'", text)
	}
	return token.Token{Kind: token.DECIMAL_NUMBER, Value: f}, nil
}

func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

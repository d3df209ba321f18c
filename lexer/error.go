package lexer

import "fmt"

// Error is a lexical error. It carries the cursor coordinates at which the malformation was
// detected.
type Error struct {
	Message  string
	Position int
	Line     int
	Column   int
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v (%v:%v)", err.Message, err.Line, err.Column)
}

// OverflowError is returned when an integer literal does not fit in 32 bits.
type OverflowError struct {
	Literal string
}

func (err *OverflowError) Error() string {
	return fmt.Sprintf("integer literal %v overflows int32", err.Literal)
}

// NewError returns a lexical error stamped with the tokenizer's current position. If inner is
// given, its message is chained in front of message.
func (t *Tokenizer) NewError(message string, inner error) *Error {
	if inner != nil {
		message = inner.Error() + "\nAdditional: " + message
	}
	return &Error{
		Message:  message,
		Position: t.input.Position(),
		Line:     t.input.Line(),
		Column:   t.input.Column(),
	}
}

func (t *Tokenizer) errorf(message string, args ...interface{}) *Error {
	return t.NewError(fmt.Sprintf(message, args...), nil)
}

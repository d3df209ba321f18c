package loonge

import (
	"github.com/pkg/errors"

	"github.com/ccbrown/loonge/cursor"
	"github.com/ccbrown/loonge/lexer"
	"github.com/ccbrown/loonge/token"
)

// Item is the wire form of a token along with where it starts. Keywords, type aliases, and
// operators are encoded by name. Characters and punctuation are encoded as one-character strings.
type Item struct {
	Kind     string      `json:"kind" msgpack:"kind"`
	Value    interface{} `json:"value" msgpack:"value"`
	Position int         `json:"position" msgpack:"position"`
	Line     int         `json:"line" msgpack:"line"`
	Column   int         `json:"column" msgpack:"column"`
}

func NewItem(tok token.Token, pos cursor.Pos) Item {
	item := Item{
		Kind:     tok.Kind.String(),
		Value:    tok.Value,
		Position: pos.Position,
		Line:     pos.Line,
		Column:   pos.Column,
	}
	switch v := tok.Value.(type) {
	case token.Keyword:
		item.Value = v.String()
	case token.TypeAlias:
		item.Value = v.String()
	case token.Operator:
		item.Value = v.String()
	case rune:
		if tok.Kind == token.CHARACTER || tok.Kind == token.PUNCTUATION {
			item.Value = string(v)
		}
	}
	return item
}

// Error describes a failure to tokenize. Lexical errors carry the coordinates at which they were
// detected.
type Error struct {
	Message  string `json:"message" msgpack:"message"`
	Position int    `json:"position,omitempty" msgpack:"position,omitempty"`
	Line     int    `json:"line,omitempty" msgpack:"line,omitempty"`
	Column   int    `json:"column,omitempty" msgpack:"column,omitempty"`
}

func (err *Error) Error() string {
	return err.Message
}

func newError(err error) *Error {
	if lexErr, ok := errors.Cause(err).(*lexer.Error); ok {
		return &Error{
			Message:  lexErr.Message,
			Position: lexErr.Position,
			Line:     lexErr.Line,
			Column:   lexErr.Column,
		}
	}
	return &Error{
		Message: err.Error(),
	}
}

// Scan tokenizes src, invoking f with each token. It stops early if f returns false. The returned
// error is the first lexical error, if any.
func Scan(src string, f func(Item) bool) error {
	c := cursor.New(src)
	defer c.Close()
	return ScanCursor(c, f)
}

// ScanCursor is like Scan, but reads from c. The caller remains responsible for closing c.
func ScanCursor(c *cursor.Cursor, f func(Item) bool) error {
	tz := lexer.New(c)
	for {
		tok, err := tz.Read()
		if err != nil {
			return err
		}
		if tok.Kind == token.EOF || !f(NewItem(tok, tz.Start())) {
			return nil
		}
	}
}

// Tokenize tokenizes src in full. If a lexical error occurs, the items before it are returned along
// with the error.
func Tokenize(src string) ([]Item, error) {
	var items []Item
	err := Scan(src, func(item Item) bool {
		items = append(items, item)
		return true
	})
	return items, err
}

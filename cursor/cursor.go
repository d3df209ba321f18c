// Package cursor provides character-level reading over a source text held entirely in memory.
package cursor

import (
	"io"
	"io/ioutil"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// EndOfStream is returned by Peek once every character has been consumed.
const EndOfStream rune = 0xFFFF

var (
	ErrEndOfStream = errors.New("end of stream")
	ErrClosed      = errors.New("cursor is closed")
)

// Pos is a snapshot of a cursor's coordinates.
type Pos struct {
	// Characters consumed. A CRLF pair counts as two.
	Position int
	// Bytes consumed.
	Offset int
	// 1-based.
	Line int
	// 0-based, reset by each newline.
	Column int
}

// Cursor reads characters from a source and tracks where it is. A Cursor is not safe for
// concurrent use.
type Cursor struct {
	src       []byte
	totalSize int
	closed    bool

	offset   int
	position int
	line     int
	column   int
}

// New returns a cursor over text.
func New(text string) *Cursor {
	return newCursor([]byte(text))
}

// Open loads the entire file at path.
func Open(path string) (*Cursor, error) {
	src, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %v", path)
	}
	return newCursor(src), nil
}

// FromReader reads r to the end and closes it if it is an io.Closer.
func FromReader(r io.Reader) (*Cursor, error) {
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}
	src, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read source")
	}
	return newCursor(src), nil
}

func newCursor(src []byte) *Cursor {
	return &Cursor{
		src:       src,
		totalSize: utf8.RuneCount(src),
		line:      1,
	}
}

func (c *Cursor) Position() int  { return c.position }
func (c *Cursor) Offset() int    { return c.offset }
func (c *Cursor) Line() int      { return c.line }
func (c *Cursor) Column() int    { return c.column }
func (c *Cursor) TotalSize() int { return c.totalSize }

func (c *Cursor) Pos() Pos {
	return Pos{
		Position: c.position,
		Offset:   c.offset,
		Line:     c.line,
		Column:   c.column,
	}
}

func (c *Cursor) decode(offset int) (rune, int) {
	if c.closed || offset >= len(c.src) {
		return EndOfStream, 0
	}
	return utf8.DecodeRune(c.src[offset:])
}

// Peek returns the next character without consuming it, or EndOfStream.
func (c *Cursor) Peek() rune {
	r, _ := c.decode(c.offset)
	return r
}

// IsEndOfStream reports whether every character has been consumed. Unlike comparing Peek against
// EndOfStream, it is not fooled by a literal U+FFFF in the source. It is false for a closed cursor
// so that read loops fail with ErrClosed rather than stopping quietly.
func (c *Cursor) IsEndOfStream() bool {
	return !c.closed && c.offset >= len(c.src)
}

// Read consumes and returns the next character. A "\r\n" pair is consumed as a single newline and
// returned as '\n'.
func (c *Cursor) Read() (rune, error) {
	if c.closed {
		return 0, ErrClosed
	}
	r, size := c.decode(c.offset)
	if size == 0 {
		return 0, ErrEndOfStream
	}
	c.offset += size
	c.position++

	switch r {
	case '\n':
		c.line++
		c.column = 0
	case '\r':
		if next, size := c.decode(c.offset); next == '\n' {
			c.offset += size
			c.position++
			c.line++
			c.column = 0
			r = next
		}
	default:
		c.column++
	}
	return r, nil
}

// Close releases the source. It is safe to call more than once.
func (c *Cursor) Close() error {
	c.closed = true
	c.src = nil
	return nil
}

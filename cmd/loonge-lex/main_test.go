package main

import (
	"bytes"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack"

	"github.com/ccbrown/loonge"
)

func runWithInput(args []string, input string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(input), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Text(t *testing.T) {
	code, stdout, stderr := runWithInput(nil, "let c: char = 'a';\nprint(\"hi\", 5, 1.5)")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, `Keyword let
Identifier "c"
Operator TypeAssign
TypeAlias char
Operator Assign
Character "a"
Punctuation ;
Identifier "print"
Punctuation (
String "hi"
Punctuation ,
Number 5
Punctuation ,
DecimalNumber 1.5
Punctuation )
`, stdout)
}

func TestRun_Positions(t *testing.T) {
	code, stdout, _ := runWithInput([]string{"--positions"}, "a\n  b")
	assert.Equal(t, 0, code)
	assert.Equal(t, "1:0\tIdentifier \"a\"\n2:2\tIdentifier \"b\"\n", stdout)
}

func TestRun_JSON(t *testing.T) {
	code, stdout, _ := runWithInput([]string{"-f", "json"}, "x += 1")
	assert.Equal(t, 0, code)
	assert.JSONEq(t, `[
		{"kind": "Identifier", "value": "x", "position": 0, "line": 1, "column": 0},
		{"kind": "Operator", "value": "PlusAssign", "position": 2, "line": 1, "column": 2},
		{"kind": "Number", "value": 1, "position": 5, "line": 1, "column": 5}
	]`, stdout)

	code, stdout, _ = runWithInput([]string{"--format=json"}, "")
	assert.Equal(t, 0, code)
	assert.Equal(t, "[]\n", stdout)
}

func TestRun_Msgpack(t *testing.T) {
	code, stdout, _ := runWithInput([]string{"--format", "msgpack"}, "fn main")
	assert.Equal(t, 0, code)

	var items []loonge.Item
	require.NoError(t, msgpack.Unmarshal([]byte(stdout), &items))
	assert.Equal(t, []loonge.Item{
		{Kind: "Keyword", Value: "fn", Position: 0, Line: 1, Column: 0},
		{Kind: "Identifier", Value: "main", Position: 3, Line: 1, Column: 3},
	}, items)
}

func TestRun_LexicalError(t *testing.T) {
	code, stdout, stderr := runWithInput([]string{"-f", "json"}, "x \"abc")
	assert.Equal(t, 1, code)
	assert.Equal(t, "<stdin>:1:6: string never closes on the same line\n", stderr)

	var items []loonge.Item
	require.NoError(t, jsoniter.Unmarshal([]byte(stdout), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "x", items[0].Value)
}

func TestRun_Files(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.lg")
	b := filepath.Join(dir, "b.lg")
	require.NoError(t, ioutil.WriteFile(a, []byte("a"), 0600))
	require.NoError(t, ioutil.WriteFile(b, []byte("\n\n  #"), 0600))

	code, stdout, stderr := runWithInput([]string{a, b}, "ignored")
	assert.Equal(t, 1, code)
	assert.Equal(t, "Identifier \"a\"\n", stdout)
	assert.Equal(t, b+":3:3: unexpected token: # (code 35)\n", stderr)

	code, _, stderr = runWithInput([]string{filepath.Join(dir, "missing.lg")}, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "missing.lg")
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (r *closeRecorder) Close() error {
	r.closed = true
	return nil
}

func TestRun_StdinLeftOpen(t *testing.T) {
	stdin := &closeRecorder{Reader: strings.NewReader("a")}
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run(nil, stdin, &stdout, &stderr))
	assert.Equal(t, "Identifier \"a\"\n", stdout.String())
	assert.False(t, stdin.closed)
}

func TestRun_BadFlags(t *testing.T) {
	code, _, _ := runWithInput([]string{"--nope"}, "")
	assert.Equal(t, 2, code)

	code, _, stderr := runWithInput([]string{"-f", "xml"}, "")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown format")
}

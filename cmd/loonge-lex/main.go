package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/vmihailenco/msgpack"

	"github.com/ccbrown/loonge"
	"github.com/ccbrown/loonge/cursor"
	"github.com/ccbrown/loonge/lexer"
	"github.com/ccbrown/loonge/token"
)

type options struct {
	format    string
	positions bool
}

func writeText(w io.Writer, items []loonge.Item, positions bool) error {
	for _, item := range items {
		if positions {
			if _, err := fmt.Fprintf(w, "%v:%v\t", item.Line, item.Column); err != nil {
				return err
			}
		}
		var err error
		switch item.Kind {
		case token.STRING.String(), token.IDENTIFIER.String(), token.CHARACTER.String():
			_, err = fmt.Fprintf(w, "%v %q\n", item.Kind, item.Value)
		case token.EOF.String():
			_, err = fmt.Fprintln(w, item.Kind)
		default:
			_, err = fmt.Fprintf(w, "%v %v\n", item.Kind, item.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeItems(w io.Writer, opts options, items []loonge.Item) error {
	if items == nil {
		items = []loonge.Item{}
	}
	switch opts.format {
	case "text":
		return writeText(w, items, opts.positions)
	case "json":
		buf, err := jsoniter.Marshal(items)
		if err != nil {
			return errors.Wrap(err, "unable to marshal tokens")
		}
		_, err = fmt.Fprintln(w, string(buf))
		return err
	case "msgpack":
		return errors.Wrap(msgpack.NewEncoder(w).Encode(items), "unable to encode tokens")
	}
	return errors.Errorf("unknown format %v", opts.format)
}

func describeError(name string, err error) string {
	if lexErr, ok := errors.Cause(err).(*lexer.Error); ok {
		return fmt.Sprintf("%v:%v:%v: %v", name, lexErr.Line, lexErr.Column, lexErr.Message)
	}
	return fmt.Sprintf("%v: %v", name, err.Error())
}

// lex writes the tokens of the source read by c. Tokens preceding a lexical error are written
// before the error is returned.
func lex(w io.Writer, opts options, c *cursor.Cursor) error {
	var items []loonge.Item
	lexErr := loonge.ScanCursor(c, func(item loonge.Item) bool {
		items = append(items, item)
		return true
	})
	if err := writeItems(w, opts, items); err != nil {
		return errors.Wrap(err, "unable to write output")
	}
	return lexErr
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("loonge-lex", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	format := flags.StringP("format", "f", "text", "the output format: text, json, or msgpack")
	positions := flags.Bool("positions", false, "prefix each token with its line and column in text output")
	verbose := flags.BoolP("verbose", "v", false, "log progress to stderr")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	opts := options{
		format:    *format,
		positions: *positions,
	}
	switch opts.format {
	case "text", "json", "msgpack":
	default:
		fmt.Fprintf(stderr, "unknown format %q\n", opts.format)
		return 2
	}

	logger := logrus.New()
	logger.Out = stderr
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	type input struct {
		name string
		open func() (*cursor.Cursor, error)
	}
	var inputs []input
	if flags.NArg() == 0 {
		inputs = append(inputs, input{"<stdin>", func() (*cursor.Cursor, error) {
			// stdin belongs to the process
			return cursor.FromReader(ioutil.NopCloser(stdin))
		}})
	}
	for _, path := range flags.Args() {
		path := path
		inputs = append(inputs, input{path, func() (*cursor.Cursor, error) {
			return cursor.Open(path)
		}})
	}

	for _, in := range inputs {
		c, err := in.open()
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
		logger.WithField("input", in.name).WithField("characters", c.TotalSize()).Debug("lexing")
		err = lex(stdout, opts, c)
		c.Close()
		if err != nil {
			fmt.Fprintln(stderr, describeError(in.name, err))
			return 1
		}
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

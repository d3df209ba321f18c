package lexer

import (
	"fmt"

	"github.com/ccbrown/loonge/token"
)

// scanOperator resolves the longest operator, of at most two characters, beginning with first.
func (t *Tokenizer) scanOperator(first rune) token.Token {
	if op, ok := token.LookupOperator(string([]rune{first, t.input.Peek()})); ok {
		t.consume()
		return token.Token{Kind: token.OPERATOR, Value: op}
	}
	op, ok := token.LookupOperator(string(first))
	if !ok {
		panic(fmt.Sprintf("no operator for lead character %q", first))
	}
	return token.Token{Kind: token.OPERATOR, Value: op}
}

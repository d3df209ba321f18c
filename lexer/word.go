package lexer

import (
	"strings"
	"unicode"

	"github.com/ccbrown/loonge/token"
)

func isWordStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isWordPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanWord scans an identifier, keyword, or type alias. Type aliases win over keywords.
func (t *Tokenizer) scanWord(first rune) token.Token {
	var word strings.Builder
	word.WriteRune(first)
	for isWordPart(t.input.Peek()) {
		word.WriteRune(t.input.Peek())
		t.consume()
	}

	s := word.String()
	if ta, ok := token.LookupTypeAlias(s); ok {
		return token.Token{Kind: token.TYPE_ALIAS, Value: ta}
	}
	if kw, ok := token.LookupKeyword(s); ok {
		return token.Token{Kind: token.KEYWORD, Value: kw}
	}
	return token.Token{Kind: token.IDENTIFIER, Value: s}
}

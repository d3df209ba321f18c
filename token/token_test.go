package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKeyword(t *testing.T) {
	for _, kw := range Keywords() {
		spelling := kw.String()
		for _, s := range []string{spelling, strings.ToUpper(spelling), strings.Title(spelling)} {
			got, ok := LookupKeyword(s)
			assert.True(t, ok, s)
			assert.Equal(t, kw, got, s)
		}
	}

	for _, s := range []string{"ifx", "fnn", "", "le", "i32"} {
		_, ok := LookupKeyword(s)
		assert.False(t, ok, s)
	}
}

func TestLookupTypeAlias(t *testing.T) {
	for _, ta := range TypeAliases() {
		got, ok := LookupTypeAlias(strings.ToUpper(ta.String()))
		assert.True(t, ok)
		assert.Equal(t, ta, got)
	}

	ta, ok := LookupTypeAlias("String")
	assert.True(t, ok)
	assert.Equal(t, TypeAliasString, ta)

	_, ok = LookupTypeAlias("i128")
	assert.False(t, ok)
}

func TestKeywordsAndTypeAliasesAreDisjoint(t *testing.T) {
	for _, ta := range TypeAliases() {
		_, ok := LookupKeyword(ta.String())
		assert.False(t, ok, ta.String())
	}
}

func TestOperators(t *testing.T) {
	assert.Len(t, Operators(), 39)

	seen := map[string]bool{}
	for _, op := range Operators() {
		spelling := op.Spelling()
		assert.False(t, seen[spelling], spelling)
		seen[spelling] = true

		got, ok := LookupOperator(spelling)
		assert.True(t, ok)
		assert.Equal(t, op, got)

		assert.True(t, IsOperatorLead(rune(spelling[0])), spelling)
	}

	for _, r := range "+-/*=^!~?:<>&|%.$@" {
		assert.True(t, IsOperatorLead(r))
		_, ok := LookupOperator(string(r))
		assert.True(t, ok, "missing single-character operator %q", r)
	}

	assert.Equal(t, "LogicalAnd", OperatorLogicalAnd.String())
	assert.Equal(t, "&&", OperatorLogicalAnd.Spelling())
	assert.Equal(t, "", Operator(-1).Spelling())
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "Eof", Eof.String())
	assert.Equal(t, "Keyword(let)", Token{KEYWORD, KeywordLet}.String())
	assert.Equal(t, "TypeAlias(i32)", Token{TYPE_ALIAS, TypeAliasI32}.String())
	assert.Equal(t, "Operator(Plus)", Token{OPERATOR, OperatorPlus}.String())
	assert.Equal(t, `Identifier("x")`, Token{IDENTIFIER, "x"}.String())
	assert.Equal(t, `Punctuation(';')`, Token{PUNCTUATION, ';'}.String())
	assert.Equal(t, "Number(5)", Token{NUMBER, int32(5)}.String())
	assert.Equal(t, "DecimalNumber(0.15)", Token{DECIMAL_NUMBER, 0.15}.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestToken_Equality(t *testing.T) {
	assert.True(t, Token{NUMBER, int32(5)} == Token{NUMBER, int32(5)})
	assert.False(t, Token{NUMBER, int32(5)} == Token{CHARACTER, rune(5)})
	assert.False(t, Token{IDENTIFIER, "x"} == Token{STRING, "x"})
}

func TestIsPunctuation(t *testing.T) {
	for _, r := range ",;[](){}" {
		assert.True(t, IsPunctuation(r))
	}
	assert.False(t, IsPunctuation('.'))
}

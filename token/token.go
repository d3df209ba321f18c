package token

import "fmt"

// Kind classifies a token. The set is closed.
type Kind int

const (
	EOF Kind = iota
	PUNCTUATION
	KEYWORD
	TYPE_ALIAS
	OPERATOR
	STRING
	CHARACTER
	NUMBER
	DECIMAL_NUMBER
	IDENTIFIER
)

var kindNames = [...]string{
	EOF:            "Eof",
	PUNCTUATION:    "Punctuation",
	KEYWORD:        "Keyword",
	TYPE_ALIAS:     "TypeAlias",
	OPERATOR:       "Operator",
	STRING:         "String",
	CHARACTER:      "Character",
	NUMBER:         "Number",
	DECIMAL_NUMBER: "DecimalNumber",
	IDENTIFIER:     "Identifier",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is an immutable (kind, value) pair. The dynamic type of Value depends on Kind:
//
//	EOF            nil
//	PUNCTUATION    rune
//	KEYWORD        Keyword
//	TYPE_ALIAS     TypeAlias
//	OPERATOR       Operator
//	STRING         string (escapes decoded)
//	CHARACTER      rune
//	NUMBER         int32
//	DECIMAL_NUMBER float64
//	IDENTIFIER     string (original case)
//
// Tokens are comparable with ==.
type Token struct {
	Kind  Kind
	Value interface{}
}

var Eof = Token{Kind: EOF}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return t.Kind.String()
	case PUNCTUATION, CHARACTER, STRING, IDENTIFIER:
		return fmt.Sprintf("%v(%q)", t.Kind, t.Value)
	default:
		return fmt.Sprintf("%v(%v)", t.Kind, t.Value)
	}
}

func IsPunctuation(r rune) bool {
	switch r {
	case ',', ';', '[', ']', '(', ')', '{', '}':
		return true
	default:
		return false
	}
}

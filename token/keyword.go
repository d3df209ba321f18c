package token

import (
	"fmt"
	"strings"
)

// Keyword is a reserved word of the language.
type Keyword int

const (
	KeywordFn Keyword = iota
	KeywordLet
	KeywordIf
	KeywordElse
	KeywordType
	KeywordPub
	KeywordInternal
	KeywordConst
	KeywordTrue
	KeywordFalse
	KeywordUse
	KeywordModule
	KeywordExport
	KeywordImpl
	KeywordMatch
	KeywordLoop
	KeywordFor
	KeywordDo
	KeywordWhile
	KeywordSwitch
	KeywordCase
	KeywordBreak
	KeywordContinue
	KeywordDefault
	KeywordStatic
	KeywordExtern
	KeywordReturn
	KeywordEnum
	KeywordStruct
	KeywordIntf
	KeywordIs
	KeywordAs
	KeywordTypeof
	KeywordSizeof
	KeywordNameof
	KeywordNew
	KeywordVoid
	KeywordNull
	KeywordThrow
	KeywordExtend
	KeywordWith
	KeywordFrom
	KeywordTry
	KeywordCatch
	KeywordThis
	KeywordBase
	KeywordWhere
	KeywordEvent
	KeywordAwait
	KeywordAsync
	KeywordTest
	KeywordOverride
	KeywordVirtual
	KeywordAbstract
	KeywordIn
	KeywordMut
	KeywordImport
)

var keywordSpellings = [...]string{
	KeywordFn:       "fn",
	KeywordLet:      "let",
	KeywordIf:       "if",
	KeywordElse:     "else",
	KeywordType:     "type",
	KeywordPub:      "pub",
	KeywordInternal: "internal",
	KeywordConst:    "const",
	KeywordTrue:     "true",
	KeywordFalse:    "false",
	KeywordUse:      "use",
	KeywordModule:   "module",
	KeywordExport:   "export",
	KeywordImpl:     "impl",
	KeywordMatch:    "match",
	KeywordLoop:     "loop",
	KeywordFor:      "for",
	KeywordDo:       "do",
	KeywordWhile:    "while",
	KeywordSwitch:   "switch",
	KeywordCase:     "case",
	KeywordBreak:    "break",
	KeywordContinue: "continue",
	KeywordDefault:  "default",
	KeywordStatic:   "static",
	KeywordExtern:   "extern",
	KeywordReturn:   "return",
	KeywordEnum:     "enum",
	KeywordStruct:   "struct",
	KeywordIntf:     "intf",
	KeywordIs:       "is",
	KeywordAs:       "as",
	KeywordTypeof:   "typeof",
	KeywordSizeof:   "sizeof",
	KeywordNameof:   "nameof",
	KeywordNew:      "new",
	KeywordVoid:     "void",
	KeywordNull:     "null",
	KeywordThrow:    "throw",
	KeywordExtend:   "extend",
	KeywordWith:     "with",
	KeywordFrom:     "from",
	KeywordTry:      "try",
	KeywordCatch:    "catch",
	KeywordThis:     "this",
	KeywordBase:     "base",
	KeywordWhere:    "where",
	KeywordEvent:    "event",
	KeywordAwait:    "await",
	KeywordAsync:    "async",
	KeywordTest:     "test",
	KeywordOverride: "override",
	KeywordVirtual:  "virtual",
	KeywordAbstract: "abstract",
	KeywordIn:       "in",
	KeywordMut:      "mut",
	KeywordImport:   "import",
}

var keywords map[string]Keyword

func init() {
	keywords = make(map[string]Keyword, len(keywordSpellings))
	for kw, spelling := range keywordSpellings {
		keywords[spelling] = Keyword(kw)
	}
}

// LookupKeyword matches word case-insensitively against the reserved words. The entire word must
// match: "ifx" is not a keyword.
func LookupKeyword(word string) (Keyword, bool) {
	kw, ok := keywords[strings.ToLower(word)]
	return kw, ok
}

// Keywords returns every keyword in declaration order.
func Keywords() []Keyword {
	ret := make([]Keyword, len(keywordSpellings))
	for i := range ret {
		ret[i] = Keyword(i)
	}
	return ret
}

func (kw Keyword) String() string {
	if kw >= 0 && int(kw) < len(keywordSpellings) {
		return keywordSpellings[kw]
	}
	return fmt.Sprintf("Keyword(%d)", int(kw))
}

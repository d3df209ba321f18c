package token

import (
	"fmt"
	"strings"
)

// TypeAlias is a primitive type name. Type aliases take priority over keywords.
type TypeAlias int

const (
	TypeAliasI8 TypeAlias = iota
	TypeAliasI16
	TypeAliasI32
	TypeAliasI64
	TypeAliasSi8
	TypeAliasUi16
	TypeAliasUi32
	TypeAliasUi64
	TypeAliasF32
	TypeAliasF64
	TypeAliasF128
	TypeAliasString
	TypeAliasChar
	TypeAliasBool
	TypeAliasObject
)

var typeAliasSpellings = [...]string{
	TypeAliasI8:     "i8",
	TypeAliasI16:    "i16",
	TypeAliasI32:    "i32",
	TypeAliasI64:    "i64",
	TypeAliasSi8:    "si8",
	TypeAliasUi16:   "ui16",
	TypeAliasUi32:   "ui32",
	TypeAliasUi64:   "ui64",
	TypeAliasF32:    "f32",
	TypeAliasF64:    "f64",
	TypeAliasF128:   "f128",
	TypeAliasString: "string",
	TypeAliasChar:   "char",
	TypeAliasBool:   "bool",
	TypeAliasObject: "object",
}

var typeAliases map[string]TypeAlias

func init() {
	typeAliases = make(map[string]TypeAlias, len(typeAliasSpellings))
	for ta, spelling := range typeAliasSpellings {
		typeAliases[spelling] = TypeAlias(ta)
	}
}

// LookupTypeAlias matches word case-insensitively against the primitive type names.
func LookupTypeAlias(word string) (TypeAlias, bool) {
	ta, ok := typeAliases[strings.ToLower(word)]
	return ta, ok
}

// TypeAliases returns every type alias in declaration order.
func TypeAliases() []TypeAlias {
	ret := make([]TypeAlias, len(typeAliasSpellings))
	for i := range ret {
		ret[i] = TypeAlias(i)
	}
	return ret
}

func (ta TypeAlias) String() string {
	if ta >= 0 && int(ta) < len(typeAliasSpellings) {
		return typeAliasSpellings[ta]
	}
	return fmt.Sprintf("TypeAlias(%d)", int(ta))
}

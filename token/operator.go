package token

import "fmt"

// Operator is an operator tag. Each tag is bound to exactly one literal spelling of one or two
// characters.
type Operator int

const (
	// single character
	OperatorPlus Operator = iota
	OperatorMinus
	OperatorDivide
	OperatorMultiply
	OperatorModulo
	OperatorBitXor
	OperatorBitOr
	OperatorBitAnd
	OperatorBitNot
	OperatorAssign
	OperatorTypeAssign
	OperatorNullable
	OperatorGreater
	OperatorLess
	OperatorMemberAccess
	OperatorStringInterpolation
	OperatorStringAsIs
	OperatorLogicalNot

	// two characters
	OperatorModuleProvider
	OperatorLambda
	OperatorNext
	OperatorEquals
	OperatorNotEquals
	OperatorGreaterOrEquals
	OperatorLessOrEquals
	OperatorPlusAssign
	OperatorMinusAssign
	OperatorMultiplyAssign
	OperatorDivideAssign
	OperatorModuloAssign
	OperatorBitXorAssign
	OperatorBitOrAssign
	OperatorBitAndAssign
	OperatorBitShiftRight
	OperatorBitShiftLeft
	OperatorLogicalAnd
	OperatorLogicalOr
	OperatorIncrement
	OperatorDecrement
)

var operatorInfo = [...]struct {
	name     string
	spelling string
}{
	OperatorPlus:                {"Plus", "+"},
	OperatorMinus:               {"Minus", "-"},
	OperatorDivide:              {"Divide", "/"},
	OperatorMultiply:            {"Multiply", "*"},
	OperatorModulo:              {"Modulo", "%"},
	OperatorBitXor:              {"BitXor", "^"},
	OperatorBitOr:               {"BitOr", "|"},
	OperatorBitAnd:              {"BitAnd", "&"},
	OperatorBitNot:              {"BitNot", "~"},
	OperatorAssign:              {"Assign", "="},
	OperatorTypeAssign:          {"TypeAssign", ":"},
	OperatorNullable:            {"Nullable", "?"},
	OperatorGreater:             {"Greater", ">"},
	OperatorLess:                {"Less", "<"},
	OperatorMemberAccess:        {"MemberAccess", "."},
	OperatorStringInterpolation: {"StringInterpolation", "$"},
	OperatorStringAsIs:          {"StringAsIs", "@"},
	OperatorLogicalNot:          {"LogicalNot", "!"},
	OperatorModuleProvider:      {"ModuleProvider", "::"},
	OperatorLambda:              {"Lambda", "=>"},
	OperatorNext:                {"Next", "->"},
	OperatorEquals:              {"Equals", "=="},
	OperatorNotEquals:           {"NotEquals", "!="},
	OperatorGreaterOrEquals:     {"GreaterOrEquals", ">="},
	OperatorLessOrEquals:        {"LessOrEquals", "<="},
	OperatorPlusAssign:          {"PlusAssign", "+="},
	OperatorMinusAssign:         {"MinusAssign", "-="},
	OperatorMultiplyAssign:      {"MultiplyAssign", "*="},
	OperatorDivideAssign:        {"DivideAssign", "/="},
	OperatorModuloAssign:        {"ModuloAssign", "%="},
	OperatorBitXorAssign:        {"BitXorAssign", "^="},
	OperatorBitOrAssign:         {"BitOrAssign", "|="},
	OperatorBitAndAssign:        {"BitAndAssign", "&="},
	OperatorBitShiftRight:       {"BitShiftRight", ">>"},
	OperatorBitShiftLeft:        {"BitShiftLeft", "<<"},
	OperatorLogicalAnd:          {"LogicalAnd", "&&"},
	OperatorLogicalOr:           {"LogicalOr", "||"},
	OperatorIncrement:           {"Increment", "++"},
	OperatorDecrement:           {"Decrement", "--"},
}

var operators map[string]Operator

func init() {
	operators = make(map[string]Operator, len(operatorInfo))
	for op, info := range operatorInfo {
		operators[info.spelling] = Operator(op)
	}
}

// LookupOperator returns the operator spelled exactly as s.
func LookupOperator(s string) (Operator, bool) {
	op, ok := operators[s]
	return op, ok
}

// Operators returns every operator in declaration order.
func Operators() []Operator {
	ret := make([]Operator, len(operatorInfo))
	for i := range ret {
		ret[i] = Operator(i)
	}
	return ret
}

// IsOperatorLead reports whether r can begin an operator. Every lead character has a
// single-character entry in the operator table.
func IsOperatorLead(r rune) bool {
	switch r {
	case '+', '-', '/', '*', '=', '^', '!', '~', '?', ':', '<', '>', '&', '|', '%', '.', '$', '@':
		return true
	default:
		return false
	}
}

func (op Operator) String() string {
	if op >= 0 && int(op) < len(operatorInfo) {
		return operatorInfo[op].name
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// Spelling returns the literal source text of the operator.
func (op Operator) Spelling() string {
	if op >= 0 && int(op) < len(operatorInfo) {
		return operatorInfo[op].spelling
	}
	return ""
}

package ast

// BinaryOperator - операторы BinaryOp. Сравнения живут в ComparisonOperator,
// конкатенация строк - отдельный узел StringConcat.
type BinaryOperator uint8

const (
	OpPlus BinaryOperator = iota
	OpMinus
	OpStar
	OpSlash
	OpBackslash
	OpPower
	OpMod
	OpAnd
	OpOr
	OpXor
	OpEqv
	OpImp
	OpElvis
	OpCastAs
	OpContains
	OpNotContains
	OpInstanceOf
)

var binaryNames = [...]string{
	OpPlus:        "+",
	OpMinus:       "-",
	OpStar:        "*",
	OpSlash:       "/",
	OpBackslash:   "\\",
	OpPower:       "^",
	OpMod:         "MOD",
	OpAnd:         "AND",
	OpOr:          "OR",
	OpXor:         "XOR",
	OpEqv:         "EQV",
	OpImp:         "IMP",
	OpElvis:       "?:",
	OpCastAs:      "CASTAS",
	OpContains:    "CONTAINS",
	OpNotContains: "NOT CONTAINS",
	OpInstanceOf:  "INSTANCEOF",
}

func (op BinaryOperator) String() string { return binaryNames[op] }

type ComparisonOperator uint8

const (
	CmpEqual ComparisonOperator = iota
	CmpNotEqual
	CmpGreater
	CmpGreaterEqual
	CmpLess
	CmpLessEqual
	CmpTEqual
)

var comparisonNames = [...]string{
	CmpEqual:        "EQ",
	CmpNotEqual:     "NEQ",
	CmpGreater:      "GT",
	CmpGreaterEqual: "GTE",
	CmpLess:         "LT",
	CmpLessEqual:    "LTE",
	CmpTEqual:       "TEQ",
}

func (op ComparisonOperator) String() string { return comparisonNames[op] }

type UnaryOperator uint8

const (
	UnPrePlusPlus UnaryOperator = iota
	UnPreMinusMinus
	UnPostPlusPlus
	UnPostMinusMinus
	UnPlus
	UnMinus
	UnNot
)

var unaryNames = [...]string{
	UnPrePlusPlus:    "pre++",
	UnPreMinusMinus:  "pre--",
	UnPostPlusPlus:   "post++",
	UnPostMinusMinus: "post--",
	UnPlus:           "+",
	UnMinus:          "-",
	UnNot:            "NOT",
}

func (op UnaryOperator) String() string { return unaryNames[op] }

type AssignOperator uint8

const (
	AssignEqual AssignOperator = iota
	AssignPlus
	AssignMinus
	AssignStar
	AssignSlash
	AssignMod
	AssignConcat
)

var assignNames = [...]string{
	AssignEqual:  "=",
	AssignPlus:   "+=",
	AssignMinus:  "-=",
	AssignStar:   "*=",
	AssignSlash:  "/=",
	AssignMod:    "%=",
	AssignConcat: "&=",
}

func (op AssignOperator) String() string { return assignNames[op] }

// AssignModifier qualifies an assignment target.
type AssignModifier uint8

const (
	ModifierVar AssignModifier = iota
)

func (m AssignModifier) String() string { return "var" }

// AccessModifier is the access level of a function.
type AccessModifier uint8

const (
	AccessPublic AccessModifier = iota
	AccessPrivate
	AccessRemote
	AccessPackage
)

var accessNames = [...]string{
	AccessPublic:  "public",
	AccessPrivate: "private",
	AccessRemote:  "remote",
	AccessPackage: "package",
}

func (a AccessModifier) String() string { return accessNames[a] }

// ParseAccess maps a case-folded modifier word to an AccessModifier.
func ParseAccess(word string) (AccessModifier, bool) {
	for i, name := range accessNames {
		if name == word {
			return AccessModifier(i), true
		}
	}
	return AccessPublic, false
}

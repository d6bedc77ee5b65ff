package ast

// Identifier is a bare name.
type Identifier struct {
	Base
	Name string
}

// ScopeRef names one of the built-in variable scopes (variables, local, ...).
type ScopeRef struct {
	Base
	Name string // lower case
}

type StringLit struct {
	Base
	Value string // escapes already removed
}

// IntegerLit keeps the literal spelling; no range check is done here.
type IntegerLit struct {
	Base
	Value string
}

type DecimalLit struct {
	Base
	Value string
}

type BooleanLit struct {
	Base
	Value bool
}

type NullLit struct {
	Base
}

type ArrayLit struct {
	Base
	Items []Expr
}

// StructKind tells an insertion-ordered literal `[k: v]` from `{k: v}`.
type StructKind uint8

const (
	StructUnordered StructKind = iota
	StructOrdered
)

func (k StructKind) String() string {
	if k == StructOrdered {
		return "ordered"
	}
	return "unordered"
}

type StructEntry struct {
	Key   Expr
	Value Expr
}

type StructLit struct {
	Base
	Kind    StructKind
	Entries []StructEntry
}

// StringInterpolation is a string with `#expr#` parts, in source order.
type StringInterpolation struct {
	Base
	Parts []Expr
}

// StringConcat is an n-ary `&` chain.
type StringConcat struct {
	Base
	Parts []Expr
}

type BinaryOp struct {
	Base
	Op          BinaryOperator
	Left, Right Expr
}

type ComparisonOp struct {
	Base
	Op          ComparisonOperator
	Left, Right Expr
}

type UnaryOp struct {
	Base
	Op UnaryOperator
	X  Expr
}

type TernaryOp struct {
	Base
	Cond, Then, Else Expr
}

type Assignment struct {
	Base
	Op        AssignOperator
	Modifiers []AssignModifier
	Left      Expr
	Right     Expr
}

type Parenthesis struct {
	Base
	X Expr
}

// DotAccess is `ctx.name`; Access is an Identifier or an IntegerLit.
type DotAccess struct {
	Base
	Context Expr
	Access  Expr
	Safe    bool
}

type ArrayAccess struct {
	Base
	Context Expr
	Index   Expr
	Safe    bool
}

// MethodInvocation is `obj.name(args)`.
type MethodInvocation struct {
	Base
	Obj  Expr
	Name *Identifier
	Args []*Argument
	Safe bool
}

// FunctionInvocation is `name(args)`.
type FunctionInvocation struct {
	Base
	Name string
	Args []*Argument
}

// ExpressionInvocation calls a computed callee, e.g. `a[1](x)`.
type ExpressionInvocation struct {
	Base
	Callee Expr
	Args   []*Argument
}

// NewOp is `new [prefix:]Class(args)`; Class is an FQN or a string.
type NewOp struct {
	Base
	Prefix string
	Class  Expr
	Args   []*Argument
}

// FQN is a dotted name such as `java.lang.String` or `foo.*`.
type FQN struct {
	Base
	Value string
}

// Argument is a call argument. Name is nil for positional arguments.
type Argument struct {
	Base
	Name  Expr
	Value Expr
}

// Closure is `function(...) {}` or `(...) => ...`.
type Closure struct {
	Base
	Args        []*ArgumentDecl
	Annotations []*Annotation
	Body        []Stmt
}

// Lambda is `(...) -> ...`.
type Lambda struct {
	Base
	Args        []*ArgumentDecl
	Annotations []*Annotation
	Body        []Stmt
}

func (*Identifier) exprNode()           {}
func (*ScopeRef) exprNode()             {}
func (*StringLit) exprNode()            {}
func (*IntegerLit) exprNode()           {}
func (*DecimalLit) exprNode()           {}
func (*BooleanLit) exprNode()           {}
func (*NullLit) exprNode()              {}
func (*ArrayLit) exprNode()             {}
func (*StructLit) exprNode()            {}
func (*StringInterpolation) exprNode()  {}
func (*StringConcat) exprNode()         {}
func (*BinaryOp) exprNode()             {}
func (*ComparisonOp) exprNode()         {}
func (*UnaryOp) exprNode()              {}
func (*TernaryOp) exprNode()            {}
func (*Assignment) exprNode()           {}
func (*Parenthesis) exprNode()          {}
func (*DotAccess) exprNode()            {}
func (*ArrayAccess) exprNode()          {}
func (*MethodInvocation) exprNode()     {}
func (*FunctionInvocation) exprNode()   {}
func (*ExpressionInvocation) exprNode() {}
func (*NewOp) exprNode()                {}
func (*FQN) exprNode()                  {}
func (*Argument) exprNode()             {}
func (*Closure) exprNode()              {}
func (*Lambda) exprNode()               {}

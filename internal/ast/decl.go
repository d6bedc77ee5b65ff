package ast

// Annotation is `key=value` metadata. Value is nil for a bare key.
type Annotation struct {
	Base
	Key   *FQN
	Value Expr
}

// DocAnnotation is one `@tag text` line of a doc comment.
type DocAnnotation struct {
	Base
	Key   *FQN
	Value Expr
}

// Documentation is a lowered doc comment.
type Documentation struct {
	Base
	Description string
	Annotations []*DocAnnotation
}

// Lookup returns the value of the first doc tag named key.
func (d *Documentation) Lookup(key string) (Expr, bool) {
	if d == nil {
		return nil, false
	}
	for _, a := range d.Annotations {
		if equalFold(a.Key.Value, key) {
			return a.Value, true
		}
	}
	return nil, false
}

type ReturnType struct {
	Base
	Type string
}

// ArgumentDecl is a function parameter.
type ArgumentDecl struct {
	Base
	Name          string
	Type          string
	Required      bool
	Default       Expr
	Annotations   []*Annotation
	Documentation []*DocAnnotation
}

type FunctionDecl struct {
	Base
	Name          string
	Access        AccessModifier
	Modifiers     []string // static, abstract, final
	ReturnType    *ReturnType
	Args          []*ArgumentDecl
	Annotations   []*Annotation
	Documentation *Documentation
	// Body is nil for a declaration without a body (interface member).
	Body []Stmt
}

// PropertyDecl is `property ...` or <cfproperty>.
type PropertyDecl struct {
	Base
	Annotations   []*Annotation
	Documentation *Documentation
}

func (*Annotation) declNode()    {}
func (*DocAnnotation) declNode() {}
func (*Documentation) declNode() {}
func (*ReturnType) declNode()    {}
func (*ArgumentDecl) declNode()  {}
func (*FunctionDecl) declNode()  {}
func (*PropertyDecl) declNode()  {}

func (*ArgumentDecl) stmtNode() {}
func (*FunctionDecl) stmtNode() {}
func (*PropertyDecl) stmtNode() {}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		x, y := a[i], b[i]
		if 'A' <= x && x <= 'Z' {
			x += 'a' - 'A'
		}
		if 'A' <= y && y <= 'Z' {
			y += 'a' - 'A'
		}
		if x != y {
			return false
		}
	}
	return true
}

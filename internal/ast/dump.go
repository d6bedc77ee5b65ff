package ast

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
)

// Fprint writes an indented dump of the tree, one node per line with its
// byte span. Two equal dumps mean structurally equal trees.
func Fprint(w io.Writer, n Node) error {
	var b strings.Builder
	dump(&b, n, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

// Sprint is Fprint into a string.
func Sprint(n Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(KindName(n))
	if d := Detail(n); d != "" {
		b.WriteString(" " + d)
	}
	sp := n.Span()
	fmt.Fprintf(b, " [%d,%d)\n", sp.Start, sp.End)
	for _, c := range Children(n) {
		dump(b, c, depth+1)
	}
}

// KindName is the node's Go type name without package and pointer.
func KindName(n Node) string {
	return reflect.TypeOf(n).Elem().Name()
}

// Detail renders the scalar fields of a node, e.g. an operator or a name.
func Detail(n Node) string {
	switch n := n.(type) {
	case *Identifier:
		return n.Name
	case *ScopeRef:
		return n.Name
	case *StringLit:
		return strconv.Quote(n.Value)
	case *IntegerLit:
		return n.Value
	case *DecimalLit:
		return n.Value
	case *BooleanLit:
		return strconv.FormatBool(n.Value)
	case *FQN:
		return n.Value
	case *StructLit:
		return n.Kind.String()
	case *BinaryOp:
		return n.Op.String()
	case *ComparisonOp:
		return n.Op.String()
	case *UnaryOp:
		return n.Op.String()
	case *Assignment:
		if len(n.Modifiers) > 0 {
			return "var " + n.Op.String()
		}
		return n.Op.String()
	case *DotAccess:
		if n.Safe {
			return "safe"
		}
	case *ArrayAccess:
		if n.Safe {
			return "safe"
		}
	case *MethodInvocation:
		if n.Safe {
			return "safe"
		}
	case *FunctionInvocation:
		return n.Name
	case *NewOp:
		return n.Prefix
	case *ForInStmt:
		if n.HasVar {
			return "var"
		}
	case *BreakStmt:
		return n.Label
	case *ContinueStmt:
		return n.Label
	case *ImportStmt:
		return strings.TrimSpace(n.Prefix + " " + n.Alias)
	case *FunctionDecl:
		d := n.Access.String() + " " + n.Name
		if len(n.Modifiers) > 0 {
			d += " " + strings.Join(n.Modifiers, " ")
		}
		if n.Body == nil {
			d += " (no body)"
		}
		return d
	case *ArgumentDecl:
		d := n.Type + " " + n.Name
		if n.Required {
			d = "required " + d
		}
		return d
	case *ReturnType:
		return n.Type
	case *ClassDecl:
		if n.Interface {
			return "interface"
		}
	case *ComponentStmt:
		if n.Pending() {
			return n.Name + " (pending)"
		}
		return n.Name
	case *Documentation:
		return strconv.Quote(n.Description)
	}
	return ""
}

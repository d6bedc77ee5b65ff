package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cfparse/internal/ast"
	"cfparse/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Detail   string          `json:"detail,omitempty"`
	Start    uint32          `json:"start"`
	End      uint32          `json:"end"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty печатает дерево с псевдографикой:
//
//	Script (span: 1:1-1:7)
//	└─ ExprStmt (span: 1:1-1:7)
//	   └─ Assignment = (span: 1:1-1:6)
func FormatASTPretty(w io.Writer, root ast.Node, file *source.File) error {
	if root == nil {
		_, err := fmt.Fprintln(w, "<no tree>")
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", nodeLabel(root, file)); err != nil {
		return err
	}
	return formatChildren(w, root, file, "")
}

func formatChildren(w io.Writer, n ast.Node, file *source.File, prefix string) error {
	children := ast.Children(n)
	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLabel(c, file)); err != nil {
			return err
		}
		if err := formatChildren(w, c, file, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

func nodeLabel(n ast.Node, file *source.File) string {
	label := ast.KindName(n)
	if d := ast.Detail(n); d != "" {
		label += " " + d
	}
	return fmt.Sprintf("%s (span: %s)", label, formatSpan(n.Span(), file))
}

func formatSpan(span source.Span, file *source.File) string {
	if file == nil {
		return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
	}
	start, end := file.Position(span.Start), file.Position(span.End)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// BuildASTOutput converts a tree for JSON output. Leaf nodes carry their
// source text.
func BuildASTOutput(n ast.Node) ASTNodeOutput {
	sp := n.Span()
	out := ASTNodeOutput{
		Type:   ast.KindName(n),
		Detail: ast.Detail(n),
		Start:  sp.Start,
		End:    sp.End,
	}
	children := ast.Children(n)
	if len(children) == 0 {
		out.Text = n.SourceText()
		return out
	}
	out.Children = make([]ASTNodeOutput, len(children))
	for i, c := range children {
		out.Children[i] = BuildASTOutput(c)
	}
	return out
}

func FormatASTJSON(w io.Writer, root ast.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if root == nil {
		return encoder.Encode(nil)
	}
	return encoder.Encode(BuildASTOutput(root))
}

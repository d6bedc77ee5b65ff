package lsp

import (
	"sort"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"cfparse/internal/ast"
	"cfparse/internal/driver"
)

// buildFoldingRanges folds every block construct spanning more than one line.
func buildFoldingRanges(res *driver.Result) []protocol.FoldingRange {
	if res == nil || res.Root == nil || res.File == nil {
		return []protocol.FoldingRange{}
	}
	file := res.File
	// одна строка - один диапазон, побеждает самый длинный
	byStart := make(map[uint32]uint32)
	ast.Inspect(res.Root, func(n ast.Node) bool {
		if !foldable(n) {
			return true
		}
		sp := n.Span()
		if sp.End <= sp.Start {
			return true
		}
		start, end := lspLine(file, sp.Start), lspLine(file, sp.End-1)
		if end <= start {
			return true
		}
		if cur, ok := byStart[start]; !ok || end > cur {
			byStart[start] = end
		}
		return true
	})

	ranges := make([]protocol.FoldingRange, 0, len(byStart))
	for start, end := range byStart {
		ranges = append(ranges, protocol.FoldingRange{
			StartLine: protocol.UInteger(start),
			EndLine:   protocol.UInteger(end),
		})
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].StartLine < ranges[j].StartLine
	})
	return ranges
}

func foldable(n ast.Node) bool {
	switch n.(type) {
	case *ast.ClassDecl, *ast.FunctionDecl,
		*ast.IfStmt, *ast.WhileStmt, *ast.DoWhileStmt, *ast.ForInStmt, *ast.ForIndexStmt,
		*ast.SwitchStmt, *ast.SwitchCase, *ast.TryStmt, *ast.CatchClause,
		*ast.ComponentStmt, *ast.ScriptIslandStmt,
		*ast.Closure, *ast.Lambda, *ast.StructLit, *ast.ArrayLit:
		return true
	}
	return false
}

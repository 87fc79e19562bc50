// Package loopcall detects source store and fetcher calls inside loops.
package loopcall

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects per-item store and fetch calls inside loops.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "detects source store and fetcher calls inside loops",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// externalMethods are method names that reach the database or network.
var externalMethods = map[string]bool{
	// SourceStore interface
	"SaveSource":          true,
	"FindSourceByAddress": true,
	"DeleteSource":        true,
	"SaveCompilation":     true,
	// Fetcher interface
	"Fetch": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		body := loopBody(n)
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			// closures run later, not once per iteration
			if _, ok := n.(*ast.FuncLit); ok {
				return false
			}

			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if externalMethods[sel.Sel.Name] {
				pass.Reportf(call.Pos(),
					"%s called inside loop - hoist it or go through the loader",
					sel.Sel.Name)
			}

			return true
		})
	})

	return nil, nil
}

func loopBody(n ast.Node) *ast.BlockStmt {
	switch stmt := n.(type) {
	case *ast.RangeStmt:
		return stmt.Body
	case *ast.ForStmt:
		return stmt.Body
	}
	return nil
}

// Package flagloop detects rule-text flag construction inside loops.
package flagloop

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects grammar flag and regexp construction inside loops.
var Analyzer = &analysis.Analyzer{
	Name:     "flagloop",
	Doc:      "detects grammar flag and regexp construction inside loops",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// constructors maps package identifiers to the functions that build
// matchers.
var constructors = map[string]map[string]bool{
	"grammar": {
		"Prefix":    true,
		"Suffix":    true,
		"Parameter": true,
	},
	"regexp": {
		"Compile":     true,
		"MustCompile": true,
	},
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			ident, ok := sel.X.(*ast.Ident)
			if !ok {
				return true
			}

			if constructors[ident.Name][sel.Sel.Name] {
				pass.Reportf(call.Pos(),
					"%s.%s called inside loop - declare it once at package level",
					ident.Name, sel.Sel.Name)
			}

			return true
		})
	})

	return nil, nil
}

// Package analyzers provides all custom static analyzers for rulebook-core.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/rulebook-core/tools/rulebook-lint/analyzers/flagloop"
	"github.com/ersonp/rulebook-core/tools/rulebook-lint/analyzers/loopcall"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		loopcall.Analyzer,
		flagloop.Analyzer,
	}
}

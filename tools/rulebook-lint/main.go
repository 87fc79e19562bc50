// rulebook-lint is a custom static analyzer for rulebook-core hot paths.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/rulebook-core/tools/rulebook-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}

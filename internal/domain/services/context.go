package services

import (
	"fmt"

	"github.com/ersonp/rulebook-core/internal/domain/document"
	"github.com/ersonp/rulebook-core/internal/domain/entities"
)

// compileContext is the state shared by the category parsers of one
// mechanism compile. Later categories see what earlier ones declared.
type compileContext struct {
	mechanism string
	playbook  string
	root      *document.Map // merged raw rules, read by "large" globals
	types     *TypeRegistry
	choices   []*entities.Choice
	warn      func(msg string)
}

func newCompileContext(mechanism, playbook string, root *document.Map, warn func(string)) *compileContext {
	if warn == nil {
		warn = func(string) {}
	}
	return &compileContext{
		mechanism: mechanism,
		playbook:  playbook,
		root:      root,
		types:     NewTypeRegistry(),
		warn:      warn,
	}
}

func (cc *compileContext) warnf(format string, args ...any) {
	cc.warn(fmt.Sprintf("mechanism %q: ", cc.mechanism) + fmt.Sprintf(format, args...))
}

func (cc *compileContext) choice(name string) (*entities.Choice, bool) {
	for _, c := range cc.choices {
		if c.Match(name) {
			return c, true
		}
	}
	return nil, false
}

package services

import (
	"fmt"

	"github.com/ersonp/rulebook-core/internal/domain/document"
	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/grammar"
	"github.com/ersonp/rulebook-core/internal/domain/ruleerr"
)

// Mechanism document categories, in the order they are compiled.
const (
	CategoryTypes           = "types"
	CategoryFormulas        = "formulas"
	CategoryEffects         = "effects"
	CategoryChoices         = "choices"
	CategoryGlobalFields    = "global fields"
	CategoryPlaybookFields  = "playbook fields"
	CategoryCharacterFields = "character fields"
	CategoryMoves           = "moves"
)

// CompileOptions tunes how strictly rule documents are read.
type CompileOptions struct {
	// Strict rejects unknown mechanism categories instead of warning.
	Strict bool
}

// categoryParser compiles one entry of a category into the mechanism.
type categoryParser func(cc *compileContext, m *entities.Mechanism, name string, raw any) error

var categories = []struct {
	key   string
	parse categoryParser
}{
	{CategoryTypes, func(cc *compileContext, _ *entities.Mechanism, name string, raw any) error {
		_, err := cc.types.DefineType(name, raw)
		return err
	}},
	{CategoryFormulas, func(cc *compileContext, m *entities.Mechanism, name string, raw any) error {
		f, err := parseFormula(cc, name, raw)
		m.Formulas = append(m.Formulas, f)
		return err
	}},
	{CategoryEffects, func(cc *compileContext, m *entities.Mechanism, name string, raw any) error {
		e, err := parseEffect(cc, name, raw)
		m.Effects = append(m.Effects, e)
		return err
	}},
	{CategoryChoices, func(cc *compileContext, m *entities.Mechanism, name string, raw any) error {
		c, err := parseChoice(cc, name, raw)
		if err != nil {
			return err
		}
		cc.choices = append(cc.choices, c)
		m.Choices = append(m.Choices, c)
		return nil
	}},
	{CategoryGlobalFields, func(cc *compileContext, m *entities.Mechanism, name string, raw any) error {
		f, err := parseGlobalField(cc, name, raw)
		m.GlobalFields = append(m.GlobalFields, f)
		return err
	}},
	{CategoryPlaybookFields, func(cc *compileContext, m *entities.Mechanism, name string, raw any) error {
		f, err := parsePlaybookField(cc, name, raw)
		m.PlaybookFields = append(m.PlaybookFields, f)
		return err
	}},
	{CategoryCharacterFields, func(cc *compileContext, m *entities.Mechanism, name string, raw any) error {
		f, err := parseCharacterField(cc, name, raw)
		m.CharacterFields = append(m.CharacterFields, f)
		return err
	}},
	{CategoryMoves, func(cc *compileContext, m *entities.Mechanism, name string, raw any) error {
		mv, err := parseMove(cc, name, raw)
		m.Moves = append(m.Moves, mv)
		return err
	}},
}

func isCategory(key string) bool {
	for _, c := range categories {
		if c.key == key {
			return true
		}
	}
	return false
}

// MechanismCompiler compiles raw mechanism documents. Each Compile call
// starts from a fresh type registry seeded with the presets.
type MechanismCompiler struct {
	root     *document.Map
	opts     CompileOptions
	warnings []string
}

// NewMechanismCompiler creates a compiler reading "large" global fields
// from root, the merged raw rules.
func NewMechanismCompiler(root *document.Map, opts CompileOptions) *MechanismCompiler {
	return &MechanismCompiler{root: root, opts: opts}
}

// Warnings returns the diagnostics collected so far.
func (c *MechanismCompiler) Warnings() []string {
	out := make([]string, len(c.warnings))
	copy(out, c.warnings)
	return out
}

func (c *MechanismCompiler) warn(msg string) {
	c.warnings = append(c.warnings, msg)
}

// Compile compiles a rulebook-level mechanism.
func (c *MechanismCompiler) Compile(name string, raw any) (*entities.Mechanism, error) {
	return c.CompileForPlaybook(entities.AllPlaybooks, name, raw)
}

// CompileForPlaybook compiles a mechanism whose choices belong to playbook.
func (c *MechanismCompiler) CompileForPlaybook(playbook, name string, raw any) (*entities.Mechanism, error) {
	doc, err := mechanismDocument(name, raw)
	if err != nil {
		return nil, err
	}

	present, err := c.indexCategories(name, doc)
	if err != nil {
		return nil, err
	}

	cc := newCompileContext(name, playbook, c.root, c.warn)
	m := &entities.Mechanism{Name: name}

	for _, category := range categories {
		key, ok := present[category.key]
		if !ok {
			continue
		}
		value, _ := doc.Get(key)
		if value == nil {
			continue
		}
		entries, ok := value.(*document.Map)
		if !ok {
			return nil, annotate(ruleerr.Grammar("%s must be a mapping, got %T", category.key, value), name, category.key, "")
		}
		err := entries.Each(func(entry string, raw any) error {
			if err := category.parse(cc, m, entry, raw); err != nil {
				return annotate(err, name, category.key, entry)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	m.Types = cc.types.Types()
	m.Formulas = prependDeclared(m.Formulas, entities.PresetFormulas())
	m.Effects = prependDeclared(m.Effects, entities.PresetEffects())
	return m, nil
}

func mechanismDocument(name string, raw any) (*document.Map, error) {
	switch v := raw.(type) {
	case nil:
		return document.New(), nil
	case *document.Map:
		return v, nil
	default:
		return nil, ruleerr.Grammar("mechanism %q must be a mapping, got %T", name, raw).
			With(ruleerr.KeyMechanism, name)
	}
}

// indexCategories maps each canonical category to the key the author wrote.
func (c *MechanismCompiler) indexCategories(mechanism string, doc *document.Map) (map[string]string, error) {
	present := make(map[string]string, doc.Len())
	for _, key := range doc.Keys() {
		canonical := grammar.NormalizeKey(key)
		if !isCategory(canonical) {
			if c.opts.Strict {
				return nil, ruleerr.Schema("mechanism %q has unknown category %q", mechanism, key).
					With(ruleerr.KeyMechanism, mechanism).
					With(ruleerr.KeyCategory, key)
			}
			c.warn(fmt.Sprintf("mechanism %q: unknown category %q ignored", mechanism, key))
			continue
		}
		if prev, dup := present[canonical]; dup {
			return nil, ruleerr.Grammar("mechanism %q declares %s twice (%q and %q)", mechanism, canonical, prev, key).
				With(ruleerr.KeyMechanism, mechanism).
				With(ruleerr.KeyCategory, canonical)
		}
		present[canonical] = key
	}
	return present, nil
}

// annotate locates err in the rule documents.
func annotate(err error, mechanism, category, entry string) error {
	ruleerr.Annotate(err, ruleerr.KeyMechanism, mechanism)
	ruleerr.Annotate(err, ruleerr.KeyCategory, category)
	if entry == "" {
		return fmt.Errorf("mechanism %q, %s: %w", mechanism, category, err)
	}
	ruleerr.Annotate(err, ruleerr.KeyName, entry)
	return fmt.Errorf("mechanism %q, %s %q: %w", mechanism, category, entry, err)
}

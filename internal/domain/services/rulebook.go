package services

import (
	"strconv"
	"strings"

	"github.com/ersonp/rulebook-core/internal/domain/document"
	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/ruleerr"
)

// ParserVersion is the oldest rule document version this compiler reads.
const ParserVersion = 1.0

// CoreTag marks the base rulebook every other document extends.
const CoreTag = "core"

// Root document keys.
const (
	KeyRulebook   = "rulebook"
	KeyParser     = "parser"
	KeyMechanisms = "mechanisms"
	KeyPlaybooks  = "playbooks"
)

// Compile validates docs, merges them in order and compiles the result.
// The first error aborts the compile; no partial rulebook is returned.
func Compile(docs []*document.Map, opts CompileOptions) (*entities.Rulebook, error) {
	if err := ValidateRulebooks(docs); err != nil {
		return nil, err
	}

	root := document.Merge(docs...)
	mc := NewMechanismCompiler(root, opts)

	rawMechanisms, err := rootMapping(root, KeyMechanisms)
	if err != nil {
		return nil, err
	}
	rb := &entities.Rulebook{Playbooks: make(map[string]*entities.Playbook)}
	err = rawMechanisms.Each(func(name string, raw any) error {
		m, err := mc.Compile(name, raw)
		if err != nil {
			return err
		}
		rb.Mechanisms = append(rb.Mechanisms, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rawPlaybooks, err := rootMapping(root, KeyPlaybooks)
	if err != nil {
		return nil, err
	}
	err = rawPlaybooks.Each(func(name string, raw any) error {
		p, err := composePlaybook(name, raw, rb, mc)
		if err != nil {
			return ruleerr.Annotate(err, ruleerr.KeyPlaybook, name)
		}
		rb.Playbooks[name] = p
		rb.PlaybookNames = append(rb.PlaybookNames, name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rb.Warnings = mc.Warnings()
	return rb, nil
}

// ValidateRulebooks checks every document is recent enough and exactly
// one of them is the core rulebook.
func ValidateRulebooks(docs []*document.Map) error {
	cores := 0
	for i, doc := range docs {
		if doc == nil {
			return ruleerr.Schema("rulebook %d is empty", i+1)
		}
		version, err := parserVersion(doc)
		if err != nil {
			return err
		}
		if version < ParserVersion {
			return ruleerr.Schema("outdated rulebook found (parser %v, need %v or newer); make sure all rulebooks are up to date",
				version, ParserVersion)
		}
		if tag, _ := doc.GetString(KeyRulebook); tag == CoreTag {
			cores++
		}
	}

	switch {
	case cores == 0:
		return ruleerr.Schema("no core rulebook found; use a core rulebook in your game")
	case cores > 1:
		return ruleerr.Schema("multiple core rulebooks found; only one core rulebook is allowed")
	}
	return nil
}

func parserVersion(doc *document.Map) (float64, error) {
	raw, ok := doc.Get(KeyParser)
	if !ok || raw == nil {
		return 0, ruleerr.Schema("rulebook does not declare a parser version")
	}
	switch v := raw.(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, ruleerr.Wrap(ruleerr.CodeSchema, "parser version must be a number", err)
		}
		return f, nil
	default:
		return 0, ruleerr.Schema("parser version must be a number, got %T", raw)
	}
}

func rootMapping(root *document.Map, key string) (*document.Map, error) {
	raw, ok := root.Get(key)
	if !ok || raw == nil {
		return document.New(), nil
	}
	m, ok := raw.(*document.Map)
	if !ok {
		return nil, ruleerr.Schema("%s must be a mapping, got %T", key, raw)
	}
	return m, nil
}

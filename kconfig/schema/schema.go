// Package schema generates JSON Schema (Draft 7) describing a merged option
// table, so that configurations expressed as JSON or YAML objects keyed by
// option identifier can be validated and documented by editors.
//
// Like the tables it is built from, the schema fails open: every property
// is optional and unknown properties are allowed.
package schema

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/kconfigdoc/kconfig"
)

const (
	draft7 = "http://json-schema.org/draft-07/schema#"

	typeString  = "string"
	typeInteger = "integer"
	typeObject  = "object"

	// ExtraDefaults holds every default expression of an option.
	ExtraDefaults = "x-kconfig-defaults"
	// ExtraDependencies holds every dependency expression of an option.
	ExtraDependencies = "x-kconfig-depends-on"
	// ExtraType holds the declared value type keyword.
	ExtraType = "x-kconfig-type"

	hexPattern = `^0[xX][0-9a-fA-F]+$`
)

var (
	boolEnum     = []any{"y", "n"}
	tristateEnum = []any{"y", "m", "n"}

	// enumMapping maps boolean-like type keywords to their permitted values.
	enumMapping = map[string][]any{
		"bool":         boolEnum,
		"def_bool":     boolEnum,
		"tristate":     tristateEnum,
		"def_tristate": tristateEnum,
	}
)

// Generator produces JSON Schema from a [kconfig.Table].
type Generator struct {
	title       string
	description string
	id          string
	strict      bool
}

// Option configures a Generator.
type Option func(*Generator)

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithTitle sets the schema title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithDescription sets the schema description.
func WithDescription(desc string) Option {
	return func(g *Generator) {
		g.description = desc
	}
}

// WithID sets the schema $id.
func WithID(id string) Option {
	return func(g *Generator) {
		g.id = id
	}
}

// WithStrict sets additionalProperties to false on the root object.
func WithStrict(strict bool) Option {
	return func(g *Generator) {
		g.strict = strict
	}
}

// Generate returns the schema of an object with one property per record in
// table, in key order.
func (g *Generator) Generate(table *kconfig.Table) *jsonschema.Schema {
	root := &jsonschema.Schema{
		Schema:      draft7,
		Type:        typeObject,
		Title:       g.title,
		Description: g.description,
		ID:          g.id,
		Properties:  make(map[string]*jsonschema.Schema, table.Len()),
	}

	for _, rec := range table.Records() {
		root.Properties[rec.Key] = Property(rec)
		root.PropertyOrder = append(root.PropertyOrder, rec.Key)
	}

	if g.strict {
		root.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}
	} else {
		root.AdditionalProperties = &jsonschema.Schema{}
	}

	return root
}

// Property returns the schema of a single option.
func Property(rec kconfig.Record) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Title:       rec.Label,
		Description: rec.Description,
	}

	switch {
	case enumMapping[rec.Type] != nil:
		s.Type = typeString
		s.Enum = enumMapping[rec.Type]
	case rec.Type == "int":
		s.Type = typeInteger
	case rec.Type == "hex":
		s.Type = typeString
		s.Pattern = hexPattern
	case rec.Type == "string":
		s.Type = typeString
	}

	if def, ok := literalDefault(rec); ok {
		s.Default = def
	}

	extra := map[string]any{}
	if rec.Type != "" {
		extra[ExtraType] = rec.Type
	}

	if len(rec.Defaults) > 0 {
		extra[ExtraDefaults] = rec.Defaults
	}

	if len(rec.Dependencies) > 0 {
		extra[ExtraDependencies] = rec.Dependencies
	}

	if len(extra) > 0 {
		s.Extra = extra
	}

	return s
}

// literalDefault returns the JSON encoding of the default of rec when it has
// exactly one unconditional default that is a literal of its type.
func literalDefault(rec kconfig.Record) (json.RawMessage, bool) {
	if len(rec.Defaults) != 1 {
		return nil, false
	}

	def := strings.TrimSpace(rec.Defaults[0])
	if def == "" || strings.Contains(def, " if ") {
		return nil, false
	}

	var v any

	switch {
	case enumMapping[rec.Type] != nil:
		for _, allowed := range enumMapping[rec.Type] {
			if def == allowed {
				v = def
			}
		}
	case rec.Type == "int":
		n, err := strconv.ParseInt(def, 10, 64)
		if err == nil {
			v = n
		}
	case rec.Type == "hex":
		_, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(def), "0x"), 16, 64)
		if err == nil && strings.HasPrefix(strings.ToLower(def), "0x") {
			v = def
		}
	case rec.Type == "string":
		s, err := strconv.Unquote(def)
		if err == nil {
			v = s
		}
	}

	if v == nil {
		return nil, false
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}

	return b, true
}

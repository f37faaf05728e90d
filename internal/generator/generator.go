package generator

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/swiftmodeler/internal/config"
	"github.com/mcncl/swiftmodeler/internal/models"
)

// Placeholder tokens are Xcode editor placeholders the user fills in.
const (
	ModelPlaceholder    = "<#Model#>"
	NullPlaceholder     = "<#NSNull#>"
	SubModelPlaceholder = "<#SubModel#>"
	UnknownPlaceholder  = "<#Unknown#>"
)

// handyJSONMarker names the protocol whose conformers need an empty required initializer.
const handyJSONMarker = "HandyJSON"

const indent = "\t"

// Render produces the declaration block for one model built from sample JSON.
// Field lines come out in the reverse of the order given.
func Render(fields []models.Field, kind config.CommandKind, cfg config.RenderConfig) models.DeclarationBlock {
	return renderModel(cfg.Prefix+ModelPlaceholder+cfg.Suffix, fields, kind, cfg)
}

// RenderModels renders several models, separated by a blank line. A model
// without a name gets the editable model placeholder; named models get the
// configured prefix and suffix around their name.
func RenderModels(ms []models.Model, kind config.CommandKind, cfg config.RenderConfig) models.DeclarationBlock {
	var block models.DeclarationBlock
	for i, m := range ms {
		if i > 0 {
			block = append(block, "")
		}
		block = append(block, renderModel(ModelName(m.Name, cfg), m.Fields, kind, cfg)...)
	}
	return block
}

// ModelName returns the rendered name for a model; an empty name yields the placeholder.
func ModelName(name string, cfg config.RenderConfig) string {
	if name == "" {
		name = ModelPlaceholder
	}
	return cfg.Prefix + name + cfg.Suffix
}

func renderModel(name string, fields []models.Field, kind config.CommandKind, cfg config.RenderConfig) models.DeclarationBlock {
	block := make(models.DeclarationBlock, 0, len(fields)*2+4)
	block = append(block, openingLine(kind.Keyword(), name, cfg.Parent))
	block = append(block, fieldLines(fields, cfg)...)

	if kind.IsReferenceType() && strings.Contains(cfg.Parent, handyJSONMarker) {
		block = append(block, "", indent+"required init() { }")
	}

	return append(block, "}")
}

func openingLine(keyword, name, parent string) string {
	if parent == "" {
		return fmt.Sprintf("%s %s {", keyword, name)
	}
	return fmt.Sprintf("%s %s: %s {", keyword, name, parent)
}

// fieldLines formats each field, applies the optionality marker and reverses
// the result. A field's comment is kept directly above its declaration.
func fieldLines(fields []models.Field, cfg config.RenderConfig) []string {
	marker := cfg.Optionality.Marker()
	lines := make([]string, 0, len(fields)*2)
	for i := len(fields) - 1; i >= 0; i-- {
		f := fields[i]
		if f.Comment != "" {
			for _, c := range strings.Split(strings.TrimSpace(f.Comment), "\n") {
				lines = append(lines, indent+"/// "+strings.TrimSpace(c))
			}
		}
		lines = append(lines, fmt.Sprintf("%svar %s: %s%s", indent, FieldName(f.Name, cfg), typeString(f.Type, cfg), marker))
	}
	return lines
}

// FieldName returns the Swift property name for a JSON key.
func FieldName(key string, cfg config.RenderConfig) string {
	name := key
	if cfg.CamelCaseFields {
		if camel := strcase.ToLowerCamel(key); camel != "" {
			name = camel
		}
	}
	if _, reserved := swiftKeywords[name]; reserved {
		return "`" + name + "`"
	}
	return name
}

// TypeString converts a TypeInfo to its Swift spelling.
func TypeString(t models.TypeInfo) string {
	return typeString(t, config.RenderConfig{})
}

// typeString spells t; references to named models carry the configured prefix and suffix.
func typeString(t models.TypeInfo, cfg config.RenderConfig) string {
	switch t.Kind {
	case models.TypeNull:
		return NullPlaceholder
	case models.TypeString:
		return "String"
	case models.TypeInt:
		return "Int"
	case models.TypeDouble:
		return "Double"
	case models.TypeBool:
		return "Bool"
	case models.TypeArray:
		if t.Elem == nil {
			return "[" + UnknownPlaceholder + "]"
		}
		return "[" + typeString(*t.Elem, cfg) + "]"
	case models.TypeEmptyArray:
		return "[" + UnknownPlaceholder + "]"
	case models.TypeObject:
		return SubModelPlaceholder
	case models.TypeModel:
		if t.Name == "" {
			return SubModelPlaceholder
		}
		return ModelName(t.Name, cfg)
	default:
		return UnknownPlaceholder
	}
}

// swiftKeywords are identifiers that need backticks when used as property names.
var swiftKeywords = map[string]struct{}{
	"associatedtype": {}, "class": {}, "deinit": {}, "enum": {}, "extension": {},
	"fileprivate": {}, "func": {}, "import": {}, "init": {}, "inout": {},
	"internal": {}, "let": {}, "open": {}, "operator": {}, "private": {},
	"protocol": {}, "public": {}, "rethrows": {}, "static": {}, "struct": {},
	"subscript": {}, "typealias": {}, "var": {}, "break": {}, "case": {},
	"continue": {}, "default": {}, "defer": {}, "do": {}, "else": {},
	"fallthrough": {}, "for": {}, "guard": {}, "if": {}, "in": {},
	"repeat": {}, "return": {}, "switch": {}, "where": {}, "while": {},
	"as": {}, "catch": {}, "false": {}, "is": {}, "nil": {}, "self": {},
	"Self": {}, "super": {}, "throw": {}, "throws": {}, "true": {}, "try": {},
	"Any": {}, "Type": {},
}

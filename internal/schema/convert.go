package schema

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/swiftmodeler/internal/errors"
	"github.com/mcncl/swiftmodeler/internal/models"
)

// Converter converts an API description into models
type Converter struct {
	schema      *Schema
	models      []models.Model
	modelNames  map[string]int             // Track used names to avoid collisions
	definitions map[string]*Schema         // Definitions for $ref resolution
	resolved    map[string]models.TypeInfo // Cache for already resolved $refs
	resolving   map[string]bool
}

// NewConverter creates a new schema converter
func NewConverter(schema *Schema) *Converter {
	definitions := make(map[string]*Schema, len(schema.Definitions))
	for k, v := range schema.Definitions {
		definitions[k] = v
	}

	return &Converter{
		schema:      schema,
		models:      make([]models.Model, 0),
		modelNames:  make(map[string]int),
		definitions: definitions,
		resolved:    make(map[string]models.TypeInfo),
		resolving:   make(map[string]bool),
	}
}

// Convert returns the root model first, with an empty name, followed by one
// named model per nested object schema in the order they are reached.
func (c *Converter) Convert() ([]models.Model, error) {
	root := c.schema
	if root.Ref != "" {
		def, _, err := c.lookupRef(root.Ref)
		if err != nil {
			return nil, err
		}
		root = def
	}
	if len(root.AllOf) > 0 {
		root = c.mergeAllOf(root.AllOf)
	}
	if !isObjectSchema(root) {
		return nil, errors.NewSchemaError("root of the description is not an object schema", errors.ErrInvalidSchema)
	}

	if err := c.convertObject(root, ""); err != nil {
		return nil, err
	}
	return c.models, nil
}

// Convert is a shorthand for NewConverter(schema).Convert().
func Convert(schema *Schema) ([]models.Model, error) {
	return NewConverter(schema).Convert()
}

// convertSchema recursively converts a schema to a type
func (c *Converter) convertSchema(schema *Schema, suggestedName string) (models.TypeInfo, error) {
	if schema == nil {
		return models.TypeInfo{Kind: models.TypeUnknown}, nil
	}
	if schema.Ref != "" {
		return c.resolveRef(schema.Ref)
	}
	if len(schema.AllOf) > 0 {
		return c.convertSchema(c.mergeAllOf(schema.AllOf), suggestedName)
	}

	schemaType := schema.Type.Primary()
	if schemaType == "" {
		// Infer type from properties
		if len(schema.Properties) > 0 {
			schemaType = "object"
		} else if schema.Items != nil {
			schemaType = "array"
		}
	}

	switch schemaType {
	case "object":
		if len(schema.Properties) == 0 {
			return models.TypeInfo{Kind: models.TypeObject}, nil
		}
		name := c.generateUniqueName(suggestedName)
		if err := c.convertObject(schema, name); err != nil {
			return models.TypeInfo{}, err
		}
		return models.NamedModel(name), nil
	case "array":
		if schema.Items == nil {
			return models.TypeInfo{Kind: models.TypeEmptyArray}, nil
		}
		elem, err := c.convertSchema(schema.Items, singularize(suggestedName))
		if err != nil {
			return models.TypeInfo{}, err
		}
		return models.ArrayOf(elem), nil
	case "string":
		return models.TypeInfo{Kind: models.TypeString}, nil
	case "integer":
		return models.TypeInfo{Kind: models.TypeInt}, nil
	case "number":
		return models.TypeInfo{Kind: models.TypeDouble}, nil
	case "boolean":
		return models.TypeInfo{Kind: models.TypeBool}, nil
	case "null":
		return models.TypeInfo{Kind: models.TypeNull}, nil
	default:
		return models.TypeInfo{Kind: models.TypeUnknown}, nil
	}
}

// convertObject registers a model called name. The slot is reserved before
// the properties are converted so a parent always precedes its children.
func (c *Converter) convertObject(schema *Schema, name string) error {
	idx := len(c.models)
	c.models = append(c.models, models.Model{Name: name})

	fields := make([]models.Field, 0, len(schema.Properties))
	for _, prop := range schema.Properties {
		typeInfo, err := c.convertSchema(prop.Schema, modelName(prop.Name))
		if err != nil {
			return fmt.Errorf("failed to convert property %s: %w", prop.Name, err)
		}
		field := models.Field{Name: prop.Name, Type: typeInfo}
		if prop.Schema != nil {
			field.Comment = prop.Schema.Description
		}
		fields = append(fields, field)
	}

	c.models[idx].Fields = fields
	return nil
}

// resolveRef resolves a local $ref. Object definitions become models named
// after the definition; the name is cached before conversion so recursive
// definitions refer back to it.
func (c *Converter) resolveRef(ref string) (models.TypeInfo, error) {
	if cached, ok := c.resolved[ref]; ok {
		return cached, nil
	}
	if c.resolving[ref] {
		return models.TypeInfo{Kind: models.TypeUnknown}, nil
	}

	def, defName, err := c.lookupRef(ref)
	if err != nil {
		return models.TypeInfo{}, err
	}

	if isObjectSchema(def) && len(def.AllOf) == 0 && def.Ref == "" && len(def.Properties) > 0 {
		name := c.generateUniqueName(modelName(defName))
		typeInfo := models.NamedModel(name)
		c.resolved[ref] = typeInfo
		if err := c.convertObject(def, name); err != nil {
			return models.TypeInfo{}, err
		}
		return typeInfo, nil
	}

	c.resolving[ref] = true
	typeInfo, err := c.convertSchema(def, modelName(defName))
	delete(c.resolving, ref)
	if err != nil {
		return models.TypeInfo{}, err
	}
	c.resolved[ref] = typeInfo
	return typeInfo, nil
}

func (c *Converter) lookupRef(ref string) (*Schema, string, error) {
	for _, prefix := range []string{"#/definitions/", "#/$defs/"} {
		if strings.HasPrefix(ref, prefix) {
			defName := strings.TrimPrefix(ref, prefix)
			if def, ok := c.definitions[defName]; ok {
				return def, defName, nil
			}
			return nil, "", errors.NewSchemaError(fmt.Sprintf("unresolved $ref: %s", ref), errors.ErrInvalidSchema)
		}
	}
	return nil, "", errors.NewSchemaError(fmt.Sprintf("external $ref not supported: %s", ref), errors.ErrInvalidSchema)
}

// mergeAllOf merges the properties of several schemas into one object schema
func (c *Converter) mergeAllOf(schemas []*Schema) *Schema {
	merged := &Schema{Type: SchemaType{Types: []string{"object"}}}

	for _, s := range schemas {
		resolved := s
		if s.Ref != "" {
			if def, _, err := c.lookupRef(s.Ref); err == nil {
				resolved = def
			}
		}
		if len(resolved.AllOf) > 0 {
			resolved = c.mergeAllOf(resolved.AllOf)
		}

		for _, prop := range resolved.Properties {
			replaced := false
			for i := range merged.Properties {
				if merged.Properties[i].Name == prop.Name {
					merged.Properties[i] = prop
					replaced = true
					break
				}
			}
			if !replaced {
				merged.Properties = append(merged.Properties, prop)
			}
		}

		if merged.Title == "" && resolved.Title != "" {
			merged.Title = resolved.Title
		}
		if merged.Description == "" && resolved.Description != "" {
			merged.Description = resolved.Description
		}
	}

	return merged
}

// generateUniqueName ensures model names are unique
func (c *Converter) generateUniqueName(baseName string) string {
	name := baseName
	count := c.modelNames[baseName]
	if count > 0 {
		name = fmt.Sprintf("%s%d", baseName, count)
	}
	c.modelNames[baseName] = count + 1
	return name
}

func isObjectSchema(s *Schema) bool {
	if s == nil {
		return false
	}
	if s.Type.Primary() == "object" || len(s.AllOf) > 0 {
		return true
	}
	return len(s.Type.Types) == 0 && len(s.Properties) > 0
}

// modelName converts a property or definition name into a Swift type name.
func modelName(key string) string {
	name := strcase.ToCamel(key)
	if name == "" {
		return "Model"
	}
	return name
}

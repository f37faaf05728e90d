// Package schema reads RAW API descriptions (JSON Schema style interface
// bodies as exported by API documentation tools such as YApi) and converts
// them into named models.
package schema

import (
	"fmt"

	"github.com/mcncl/swiftmodeler/internal/errors"
	"github.com/mcncl/swiftmodeler/internal/models"
	"github.com/mcncl/swiftmodeler/internal/parser"
)

// SchemaType holds the JSON Schema type keyword, which may be a string or an array of strings
type SchemaType struct {
	Types []string
}

// Primary returns the first non-null type, or "null" when that is the only one.
func (st SchemaType) Primary() string {
	for _, t := range st.Types {
		if t != "null" {
			return t
		}
	}
	if len(st.Types) > 0 {
		return st.Types[0]
	}
	return ""
}

// IsNullable returns true if "null" is one of the allowed types
func (st SchemaType) IsNullable() bool {
	for _, t := range st.Types {
		if t == "null" {
			return true
		}
	}
	return false
}

// Property is a named entry of an object schema's properties.
type Property struct {
	Name   string
	Schema *Schema
}

// Schema is the subset of JSON Schema that API descriptions use to describe bodies
type Schema struct {
	Ref         string
	Title       string
	Description string
	Type        SchemaType

	// Properties keep the order of the description document.
	Properties []Property
	Items      *Schema
	AllOf      []*Schema

	// Definitions merges "definitions" and "$defs".
	Definitions map[string]*Schema
}

// Property returns the named property schema.
func (s *Schema) Property(name string) (*Schema, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// Parse decodes an API description. Besides a bare schema it accepts an
// exported interface object whose "res_body" (or "req_body_other") field holds
// the schema as a JSON string.
func Parse(text string) (*Schema, error) {
	return ParseWithOptions(text, parser.Options{})
}

// ParseWithOptions is Parse with explicit decode options, applied to the
// description and to an embedded body alike.
func ParseWithOptions(text string, opts parser.Options) (*Schema, error) {
	obj, err := parser.DecodeTopLevelWithOptions(text, opts)
	if err != nil {
		return nil, err
	}

	if body, ok := embeddedBody(obj); ok {
		obj, err = parser.DecodeTopLevelWithOptions(body, opts)
		if err != nil {
			return nil, err
		}
	}

	return fromObject(obj, "#")
}

// ParseFile reads and parses an API description from a file
func ParseFile(path string) (*Schema, error) {
	data, err := parser.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

func embeddedBody(obj *models.Object) (string, bool) {
	if _, ok := obj.Get("type"); ok {
		return "", false
	}
	if _, ok := obj.Get("properties"); ok {
		return "", false
	}
	for _, key := range []string{"res_body", "req_body_other"} {
		if v, ok := obj.Get(key); ok && v.Kind == models.KindString && v.String != "" {
			return v.String, true
		}
	}
	return "", false
}

func fromValue(v models.Value, path string) (*Schema, error) {
	if v.Kind != models.KindObject {
		return nil, invalid(path, fmt.Sprintf("expected a schema object, got %s", v.Kind))
	}
	return fromObject(v.Object, path)
}

func fromObject(obj *models.Object, path string) (*Schema, error) {
	s := &Schema{}
	for _, m := range obj.Members {
		memberPath := path + "/" + m.Key
		switch m.Key {
		case "$ref":
			str, err := stringValue(m.Value, memberPath)
			if err != nil {
				return nil, err
			}
			s.Ref = str
		case "title":
			s.Title, _ = stringValue(m.Value, memberPath)
		case "description":
			s.Description, _ = stringValue(m.Value, memberPath)
		case "type":
			st, err := typeValue(m.Value, memberPath)
			if err != nil {
				return nil, err
			}
			s.Type = st
		case "properties":
			props, err := propertiesValue(m.Value, memberPath)
			if err != nil {
				return nil, err
			}
			s.Properties = props
		case "items":
			items, err := itemsValue(m.Value, memberPath)
			if err != nil {
				return nil, err
			}
			s.Items = items
		case "allOf":
			if m.Value.Kind != models.KindArray {
				return nil, invalid(memberPath, "allOf must be an array")
			}
			for i, item := range m.Value.Array {
				sub, err := fromValue(item, fmt.Sprintf("%s/%d", memberPath, i))
				if err != nil {
					return nil, err
				}
				s.AllOf = append(s.AllOf, sub)
			}
		case "definitions", "$defs":
			if m.Value.Kind != models.KindObject {
				return nil, invalid(memberPath, m.Key+" must be an object")
			}
			if s.Definitions == nil {
				s.Definitions = make(map[string]*Schema)
			}
			for _, def := range m.Value.Object.Members {
				sub, err := fromValue(def.Value, memberPath+"/"+def.Key)
				if err != nil {
					return nil, err
				}
				s.Definitions[def.Key] = sub
			}
		}
	}
	return s, nil
}

func stringValue(v models.Value, path string) (string, error) {
	if v.Kind != models.KindString {
		return "", invalid(path, "expected a string")
	}
	return v.String, nil
}

func typeValue(v models.Value, path string) (SchemaType, error) {
	switch v.Kind {
	case models.KindString:
		return SchemaType{Types: []string{v.String}}, nil
	case models.KindArray:
		types := make([]string, 0, len(v.Array))
		for _, item := range v.Array {
			if item.Kind != models.KindString {
				return SchemaType{}, invalid(path, "type must be string or array of strings")
			}
			types = append(types, item.String)
		}
		return SchemaType{Types: types}, nil
	default:
		return SchemaType{}, invalid(path, "type must be string or array of strings")
	}
}

func propertiesValue(v models.Value, path string) ([]Property, error) {
	if v.Kind != models.KindObject {
		return nil, invalid(path, "properties must be an object")
	}
	props := make([]Property, 0, v.Object.Len())
	for _, m := range v.Object.Members {
		sub, err := fromValue(m.Value, path+"/"+m.Key)
		if err != nil {
			return nil, err
		}
		props = append(props, Property{Name: m.Key, Schema: sub})
	}
	return props, nil
}

// itemsValue accepts a single schema or, for tuple-style descriptions, an
// array whose first schema stands for every element.
func itemsValue(v models.Value, path string) (*Schema, error) {
	if v.Kind == models.KindArray {
		if len(v.Array) == 0 {
			return nil, nil
		}
		return fromValue(v.Array[0], path+"/0")
	}
	return fromValue(v, path)
}

func invalid(path, message string) error {
	return errors.NewSchemaError(fmt.Sprintf("%s: %s", path, message), errors.ErrInvalidSchema)
}

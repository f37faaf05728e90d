// Package analyzer infers Swift-facing types from decoded JSON values.
package analyzer

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/mcncl/swiftmodeler/internal/models"
)

// Infer returns the type of a single JSON value. It never fails: values it
// cannot classify come back as models.TypeUnknown.
func Infer(value models.Value) models.TypeInfo {
	switch value.Kind {
	case models.KindNull:
		return models.TypeInfo{Kind: models.TypeNull}
	case models.KindNumber:
		return inferNumber(value.Number)
	case models.KindString:
		return models.TypeInfo{Kind: models.TypeString}
	case models.KindBool:
		return models.TypeInfo{Kind: models.TypeBool}
	case models.KindArray:
		// Only the first element is inspected; later elements are not reconciled.
		if len(value.Array) == 0 {
			return models.TypeInfo{Kind: models.TypeEmptyArray}
		}
		return models.ArrayOf(Infer(value.Array[0]))
	case models.KindObject:
		return models.TypeInfo{Kind: models.TypeObject}
	default:
		return models.TypeInfo{Kind: models.TypeUnknown}
	}
}

// InferFields returns one field per member of obj, in the object's enumeration order.
func InferFields(obj *models.Object) []models.Field {
	fields := make([]models.Field, 0, obj.Len())
	if obj == nil {
		return fields
	}
	for _, m := range obj.Members {
		fields = append(fields, models.Field{
			Name: m.Key,
			Type: Infer(m.Value),
		})
	}
	return fields
}

// inferNumber checks for an integer first: every integer is also a valid
// double, so the reverse order would never yield Int.
func inferNumber(num json.Number) models.TypeInfo {
	if isIntegerLiteral(num) {
		return models.TypeInfo{Kind: models.TypeInt}
	}
	return models.TypeInfo{Kind: models.TypeDouble}
}

// isIntegerLiteral reports whether num was written without a fractional part
// or exponent and fits in an int64. 3.0 keeps its fractional representation
// and is therefore not an integer literal.
func isIntegerLiteral(num json.Number) bool {
	s := string(num)
	if s == "" || strings.ContainsAny(s, ".eE") {
		return false
	}
	_, err := num.Int64()
	return err == nil
}

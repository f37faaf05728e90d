// Package selector narrows a decoded sample down to the object that should be
// modeled, using a jq expression.
package selector

import (
	stderrors "errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/mcncl/swiftmodeler/internal/errors"
	"github.com/mcncl/swiftmodeler/internal/models"
)

// Select runs expression against obj and returns the first result. The result
// must be an object. jq objects are unordered, so the selected object lists
// its keys in sorted order.
func Select(obj *models.Object, expression string) (*models.Object, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, errors.NewQueryError(fmt.Sprintf("invalid jq expression %q: %v", expression, err), errors.ErrInvalidQuery)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, errors.NewQueryError(fmt.Sprintf("failed to compile jq expression %q: %v", expression, err), errors.ErrInvalidQuery)
	}

	iter := code.Run(toAny(models.ObjectValue(obj)))
	v, ok := iter.Next()
	if !ok {
		return nil, errors.NewQueryError(fmt.Sprintf("%q produced no result", expression), errors.ErrNoResult)
	}

	if err, isErr := v.(error); isErr {
		var haltErr *gojq.HaltError
		if stderrors.As(err, &haltErr) && haltErr.Value() == nil {
			return nil, errors.NewQueryError(fmt.Sprintf("%q produced no result", expression), errors.ErrNoResult)
		}
		return nil, errors.NewQueryError(fmt.Sprintf("%q failed: %v", expression, err), errors.ErrInvalidQuery)
	}

	selected := fromAny(v)
	if selected.Kind != models.KindObject {
		return nil, errors.NewQueryError(fmt.Sprintf("%q selected a %s, not an object", expression, selected.Kind), errors.ErrNotAnObject)
	}
	return selected.Object, nil
}

// toAny converts a Value into the representation gojq operates on.
func toAny(v models.Value) any {
	switch v.Kind {
	case models.KindBool:
		return v.Bool
	case models.KindNumber:
		return numberToAny(string(v.Number))
	case models.KindString:
		return v.String
	case models.KindArray:
		items := make([]any, len(v.Array))
		for i, item := range v.Array {
			items[i] = toAny(item)
		}
		return items
	case models.KindObject:
		m := make(map[string]any, v.Object.Len())
		if v.Object != nil {
			for _, member := range v.Object.Members {
				m[member.Key] = toAny(member.Value)
			}
		}
		return m
	default:
		return nil
	}
}

func numberToAny(literal string) any {
	if !strings.ContainsAny(literal, ".eE") {
		if n, err := strconv.Atoi(literal); err == nil {
			return n
		}
		if n, ok := new(big.Int).SetString(literal, 10); ok {
			return n
		}
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return nil
	}
	return f
}

// fromAny converts a gojq result back into a Value.
func fromAny(v any) models.Value {
	switch x := v.(type) {
	case nil:
		return models.NullValue()
	case bool:
		return models.BoolValue(x)
	case int:
		return models.NumberValue(strconv.Itoa(x))
	case *big.Int:
		return models.NumberValue(x.String())
	case float64:
		return models.NumberValue(floatLiteral(x))
	case string:
		return models.StringValue(x)
	case []any:
		items := make([]models.Value, len(x))
		for i, item := range x {
			items[i] = fromAny(item)
		}
		return models.ArrayValue(items...)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		obj := models.NewObject()
		for _, k := range keys {
			obj.Set(k, fromAny(x[k]))
		}
		return models.ObjectValue(obj)
	default:
		return models.Value{}
	}
}

// floatLiteral formats f so it still reads as a floating point literal when
// the value happens to be integral.
func floatLiteral(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !math.IsNaN(f) && !math.IsInf(f, 0) && !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

package parser

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcncl/swiftmodeler/internal/errors"
	"github.com/mcncl/swiftmodeler/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTopLevel_SimpleObject(t *testing.T) {
	obj, err := DecodeTopLevel(`{"name": "John Doe", "age": 30, "isStudent": false, "city": null, "score": 3.0}`)
	require.NoError(t, err)

	expected := &models.Object{Members: []models.Member{
		{Key: "name", Value: models.StringValue("John Doe")},
		{Key: "age", Value: models.NumberValue("30")},
		{Key: "isStudent", Value: models.BoolValue(false)},
		{Key: "city", Value: models.NullValue()},
		{Key: "score", Value: models.NumberValue("3.0")},
	}}
	assert.Equal(t, expected, obj)
}

func TestDecodeTopLevel_KeepsDocumentOrder(t *testing.T) {
	obj, err := DecodeTopLevel(`{"zeta": 1, "alpha": 2, "mid": 3}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())
}

func TestDecodeTopLevel_DuplicateKeys(t *testing.T) {
	obj, err := DecodeTopLevel(`{"a": 1, "b": 2, "a": "last"}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, models.StringValue("last"), v)
}

func TestDecodeTopLevel_Nested(t *testing.T) {
	obj, err := DecodeTopLevel(`{"list": [1, [2, 3], {"k": "v"}], "empty": {}, "none": []}`)
	require.NoError(t, err)

	list, ok := obj.Get("list")
	require.True(t, ok)
	require.Equal(t, models.KindArray, list.Kind)
	require.Len(t, list.Array, 3)
	assert.Equal(t, models.KindNumber, list.Array[0].Kind)
	assert.Equal(t, models.KindArray, list.Array[1].Kind)
	require.Equal(t, models.KindObject, list.Array[2].Kind)
	assert.Equal(t, []string{"k"}, list.Array[2].Object.Keys())

	empty, _ := obj.Get("empty")
	assert.Equal(t, models.KindObject, empty.Kind)
	assert.Equal(t, 0, empty.Object.Len())

	none, _ := obj.Get("none")
	assert.Equal(t, models.KindArray, none.Kind)
	assert.Empty(t, none.Array)
}

func TestDecodeTopLevel_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{name: "empty", input: "", expected: errors.ErrEmptyInput},
		{name: "whitespace", input: " \n\t ", expected: errors.ErrEmptyInput},
		{name: "truncated object", input: `{"a": 1`, expected: errors.ErrMalformedJSON},
		{name: "missing value", input: `{"a": }`, expected: errors.ErrMalformedJSON},
		{name: "garbage", input: `not json`, expected: errors.ErrMalformedJSON},
		{name: "trailing data", input: `{"a": 1} {"b": 2}`, expected: errors.ErrMalformedJSON},
		{name: "truncated array", input: `[1, 2`, expected: errors.ErrMalformedJSON},
		{name: "array", input: `[1, 2, 3]`, expected: errors.ErrNotAnObject},
		{name: "string", input: `"hello"`, expected: errors.ErrNotAnObject},
		{name: "number", input: `42`, expected: errors.ErrNotAnObject},
		{name: "null", input: `null`, expected: errors.ErrNotAnObject},
		{name: "boolean", input: `true`, expected: errors.ErrNotAnObject},
		{name: "leading zero", input: `{"a": 01}`, expected: errors.ErrMalformedJSON},
		{name: "negative leading zero", input: `{"a": -01}`, expected: errors.ErrMalformedJSON},
		{name: "trailing dot", input: `{"a": 1.}`, expected: errors.ErrMalformedJSON},
		{name: "double zero fraction", input: `{"a": 00.5}`, expected: errors.ErrMalformedJSON},
		{name: "leading zero in array", input: `{"a": [01]}`, expected: errors.ErrMalformedJSON},
		{name: "raw tab in string", input: "{\"a\": \"tab\there\"}", expected: errors.ErrMalformedJSON},
		{name: "raw newline in key", input: "{\"a\nb\": 1}", expected: errors.ErrMalformedJSON},
		{name: "top-level leading zero", input: `01`, expected: errors.ErrMalformedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := DecodeTopLevel(tt.input)
			require.Error(t, err)
			assert.Nil(t, obj)
			assert.True(t, stderrors.Is(err, tt.expected), "got %v, want %v", err, tt.expected)

			var appErr *errors.AppError
			require.True(t, stderrors.As(err, &appErr))
			assert.Equal(t, errors.ErrorTypeParsing, appErr.Type)
		})
	}
}

func TestDecodeTopLevel_ErrorKindsAreDistinct(t *testing.T) {
	_, emptyErr := DecodeTopLevel("")
	_, notObjectErr := DecodeTopLevel("[]")

	assert.True(t, stderrors.Is(emptyErr, errors.ErrEmptyInput))
	assert.False(t, stderrors.Is(emptyErr, errors.ErrNotAnObject))
	assert.True(t, stderrors.Is(notObjectErr, errors.ErrNotAnObject))
	assert.False(t, stderrors.Is(notObjectErr, errors.ErrEmptyInput))
	assert.False(t, stderrors.Is(notObjectErr, errors.ErrMalformedJSON))
}

func TestDecodeTopLevel_DepthLimit(t *testing.T) {
	nested := func(depth int) string {
		return `{"a":` + strings.Repeat("[", depth-1) + strings.Repeat("]", depth-1) + `}`
	}

	t.Run("within the limit", func(t *testing.T) {
		_, err := DecodeTopLevelWithOptions(nested(8), Options{MaxDepth: 8})
		require.NoError(t, err)
	})

	t.Run("beyond the limit", func(t *testing.T) {
		_, err := DecodeTopLevelWithOptions(nested(9), Options{MaxDepth: 8})
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrTooDeep))
	})

	t.Run("default limit", func(t *testing.T) {
		_, err := DecodeTopLevel(nested(DefaultMaxDepth + 1))
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrTooDeep))
	})
}

func TestDecodeTopLevel_DeepNonObject(t *testing.T) {
	deepArray := func(depth int) string {
		return strings.Repeat("[", depth) + strings.Repeat("]", depth)
	}

	t.Run("within the limit", func(t *testing.T) {
		_, err := DecodeTopLevelWithOptions(deepArray(600), Options{MaxDepth: 1000})
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrNotAnObject), "got %v", err)
		assert.False(t, stderrors.Is(err, errors.ErrMalformedJSON))
	})

	t.Run("beyond the limit", func(t *testing.T) {
		_, err := DecodeTopLevel(deepArray(20000))
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrTooDeep), "got %v", err)
		assert.False(t, stderrors.Is(err, errors.ErrMalformedJSON))
	})

	t.Run("broken deep array", func(t *testing.T) {
		_, err := DecodeTopLevelWithOptions(deepArray(600)+"]", Options{MaxDepth: 1000})
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrMalformedJSON), "got %v", err)
	})
}

func TestValidNumber(t *testing.T) {
	for _, lit := range []string{"0", "-0", "7", "-12", "3.0", "0.5", "1e10", "1E+2", "-2.5e-3"} {
		assert.True(t, validNumber(lit), lit)
	}
	for _, lit := range []string{"", "-", "01", "-01", "1.", ".5", "00.5", "1e", "1e+", "+1", "1.e3", "0x10"} {
		assert.False(t, validNumber(lit), lit)
	}
}

func TestParseString_Empty(t *testing.T) {
	_, err := ParseString("   ")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyInput))
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "valid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"id": 1}`), 0644))

		obj, err := ParseFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, obj.Keys())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(dir, "missing.json"))
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrFileNotFound))
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		_, err := ParseFile(path)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrFileEmpty))
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := ParseFile(" ")
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrInvalidFilePath))
	})
}

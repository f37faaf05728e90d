package parser

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/mcncl/swiftmodeler/internal/errors" // Custom errors package
	"github.com/mcncl/swiftmodeler/internal/models"
)

// DefaultMaxDepth bounds how deeply objects and arrays may nest.
const DefaultMaxDepth = 512

// Options tunes decoding.
type Options struct {
	// MaxDepth is the deepest container nesting accepted. Zero means DefaultMaxDepth.
	MaxDepth int
}

var (
	errDepthExceeded = stderrors.New("depth exceeded")
	errUnexpected    = stderrors.New("unexpected token")
)

// DecodeTopLevel decodes text and returns its top-level object with members in
// document order.
func DecodeTopLevel(text string) (*models.Object, error) {
	return DecodeTopLevelWithOptions(text, Options{})
}

// DecodeTopLevelWithOptions is DecodeTopLevel with explicit options.
func DecodeTopLevelWithOptions(text string, opts Options) (*models.Object, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	data := []byte(text)
	d := newTokenDecoder(data, maxDepth)

	first, err := d.dec.Token()
	if err != nil {
		return nil, malformed(err)
	}

	// Non-objects are scanned under the same depth guard so that a well-formed
	// array or scalar is told apart from broken text.
	delim, isObject := first.(json.Delim)
	isObject = isObject && delim == '{'
	var root models.Value
	if isObject {
		root, err = d.object()
	} else {
		root, err = d.value(first)
	}
	if err != nil {
		if stderrors.Is(err, errDepthExceeded) {
			return nil, errors.NewParsingError(fmt.Sprintf("nesting exceeds %d levels", maxDepth), errors.ErrTooDeep)
		}
		return nil, malformed(err)
	}

	// Only whitespace may follow the root value.
	if _, err := d.dec.Token(); !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParsingError("invalid trailing data after the top-level value", errors.ErrMalformedJSON)
	}
	if err := checkStrings(data); err != nil {
		return nil, errors.NewParsingError("unescaped control character in a string", errors.ErrMalformedJSON)
	}
	// The token stream is lenient about separators; the validator is not.
	if !json.Valid(data) {
		return nil, malformed(nil)
	}

	if !isObject {
		return nil, errors.NewParsingError(fmt.Sprintf("top-level value is %s, not an object", describeToken(first)), errors.ErrNotAnObject)
	}
	return root.Object, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (*models.Object, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return DecodeTopLevel(jsonString)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (*models.Object, error) {
	data, err := ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return DecodeTopLevel(string(data))
}

// ReadFile reads an input file, mapping the usual failures onto input errors.
func ReadFile(filePath string) ([]byte, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(fmt.Sprintf("file '%s' not found", filePath), errors.ErrFileNotFound)
		}
		return nil, errors.NewInputError(fmt.Sprintf("failed to open file '%s'", filePath), err)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(fmt.Sprintf("input file '%s' is empty", filePath), errors.ErrFileEmpty)
	}
	return data, nil
}

func malformed(cause error) *errors.AppError {
	var syntaxErr *json.SyntaxError
	if stderrors.As(cause, &syntaxErr) {
		return errors.NewParsingError(fmt.Sprintf("JSON syntax error at offset %d", syntaxErr.Offset), errors.ErrMalformedJSON)
	}
	return errors.NewParsingError("input is not valid JSON", errors.ErrMalformedJSON)
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "an array"
		}
		return fmt.Sprintf("delimiter %q", rune(v))
	case string:
		return "a string"
	case json.Number, float64:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

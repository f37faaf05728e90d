package parser

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/mcncl/swiftmodeler/internal/models"
)

// tokenDecoder builds models.Value trees from a token stream so that object
// members keep the order in which the decoder enumerates them.
type tokenDecoder struct {
	dec      *json.Decoder
	maxDepth int
	depth    int
}

func newTokenDecoder(data []byte, maxDepth int) *tokenDecoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return &tokenDecoder{dec: dec, maxDepth: maxDepth}
}

func (d *tokenDecoder) next() (models.Value, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return models.Value{}, err
	}
	return d.value(tok)
}

func (d *tokenDecoder) value(tok json.Token) (models.Value, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return d.object()
		case '[':
			return d.array()
		default:
			return models.Value{}, errUnexpected
		}
	case string:
		return models.StringValue(v), nil
	case json.Number:
		if !validNumber(string(v)) {
			return models.Value{}, errUnexpected
		}
		return models.NumberValue(string(v)), nil
	case float64:
		return models.NumberValue(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case bool:
		return models.BoolValue(v), nil
	case nil:
		return models.NullValue(), nil
	default:
		// Left as KindInvalid; inference degrades it to an unknown type.
		return models.Value{}, nil
	}
}

// object is called after the opening brace has been consumed.
func (d *tokenDecoder) object() (models.Value, error) {
	if err := d.enter(); err != nil {
		return models.Value{}, err
	}
	defer d.leave()

	obj := &models.Object{}
	index := make(map[string]int)
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return models.Value{}, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return models.ObjectValue(obj), nil
		}
		key, ok := tok.(string)
		if !ok {
			return models.Value{}, errUnexpected
		}
		val, err := d.next()
		if err != nil {
			return models.Value{}, err
		}
		if i, seen := index[key]; seen {
			obj.Members[i].Value = val
			continue
		}
		index[key] = len(obj.Members)
		obj.Members = append(obj.Members, models.Member{Key: key, Value: val})
	}
}

// array is called after the opening bracket has been consumed.
func (d *tokenDecoder) array() (models.Value, error) {
	if err := d.enter(); err != nil {
		return models.Value{}, err
	}
	defer d.leave()

	items := make([]models.Value, 0)
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return models.Value{}, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == ']' {
			return models.ArrayValue(items...), nil
		}
		val, err := d.value(tok)
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, val)
	}
}

func (d *tokenDecoder) enter() error {
	d.depth++
	if d.depth > d.maxDepth {
		return errDepthExceeded
	}
	return nil
}

func (d *tokenDecoder) leave() {
	d.depth--
}

// validNumber reports whether lit matches the JSON number grammar:
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func validNumber(lit string) bool {
	i := 0
	if i < len(lit) && lit[i] == '-' {
		i++
	}
	switch {
	case i < len(lit) && lit[i] == '0':
		i++
	case i < len(lit) && lit[i] >= '1' && lit[i] <= '9':
		i = skipDigits(lit, i)
	default:
		return false
	}
	if i < len(lit) && lit[i] == '.' {
		j := skipDigits(lit, i+1)
		if j == i+1 {
			return false
		}
		i = j
	}
	if i < len(lit) && (lit[i] == 'e' || lit[i] == 'E') {
		i++
		if i < len(lit) && (lit[i] == '+' || lit[i] == '-') {
			i++
		}
		j := skipDigits(lit, i)
		if j == i {
			return false
		}
		i = j
	}
	return i == len(lit)
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// checkStrings rejects raw control characters inside string literals, which
// the token stream passes through unchanged.
func checkStrings(data []byte) error {
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			continue
		}
		switch {
		case c == '\\':
			i++
		case c == '"':
			inString = false
		case c < 0x20:
			return errUnexpected
		}
	}
	return nil
}

package gfa

import (
	"encoding/hex"
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	errs "github.com/matzehuels/gfak/pkg/errors"
)

// FieldType is the single-character type code of an optional field.
type FieldType byte

// Optional field type codes.
const (
	TypeChar   FieldType = 'A' // printable character
	TypeInt    FieldType = 'i' // signed integer
	TypeFloat  FieldType = 'f' // single-precision float
	TypeString FieldType = 'Z' // printable string, spaces allowed
	TypeJSON   FieldType = 'J' // JSON, excluding newline and tab
	TypeHex    FieldType = 'H' // byte array in hex
	TypeArray  FieldType = 'B' // integer or numeric array
)

// Valid reports whether t is one of the seven GFA type codes.
func (t FieldType) Valid() bool {
	switch t {
	case TypeChar, TypeInt, TypeFloat, TypeString, TypeJSON, TypeHex, TypeArray:
		return true
	}
	return false
}

// Field is one optional field. Value keeps the exact text from the input so
// that encoding a parsed field reproduces the original token byte for byte.
//
// A field with Type 0 is opaque: the token could not be decoded and Value
// holds it verbatim.
type Field struct {
	Key   string
	Type  FieldType
	Value string
}

// ParseField decodes a key:type:value token. Everything after the second
// colon is the value, so string and JSON values may contain colons.
func ParseField(token string) (Field, error) {
	parts := strings.SplitN(token, ":", 3)
	if len(parts) < 3 {
		return Field{}, errs.New(errs.ErrCodeMalformedField, "optional field %q: want key:type:value", token)
	}
	if parts[0] == "" {
		return Field{}, errs.New(errs.ErrCodeMalformedField, "optional field %q: empty key", token)
	}
	if len(parts[1]) != 1 || !FieldType(parts[1][0]).Valid() {
		return Field{}, errs.New(errs.ErrCodeMalformedField, "optional field %q: unknown type %q", token, parts[1])
	}
	return Field{Key: parts[0], Type: FieldType(parts[1][0]), Value: parts[2]}, nil
}

// Opaque reports whether the field holds an undecodable token.
func (f Field) Opaque() bool { return f.Type == 0 }

// String encodes the field back to its key:type:value token.
func (f Field) String() string {
	if f.Opaque() {
		return f.Value
	}
	return f.Key + ":" + string(f.Type) + ":" + f.Value
}

// Int returns the value of an i field.
func (f Field) Int() (int64, error) {
	if f.Type != TypeInt {
		return 0, f.typeErr(TypeInt)
	}
	n, err := strconv.ParseInt(f.Value, 10, 64)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidFormat, err, "field %s", f.Key)
	}
	return n, nil
}

// Float returns the value of an f or i field.
func (f Field) Float() (float64, error) {
	if f.Type != TypeFloat && f.Type != TypeInt {
		return 0, f.typeErr(TypeFloat)
	}
	x, err := strconv.ParseFloat(f.Value, 64)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidFormat, err, "field %s", f.Key)
	}
	return x, nil
}

// Char returns the value of an A field.
func (f Field) Char() (byte, error) {
	if f.Type != TypeChar {
		return 0, f.typeErr(TypeChar)
	}
	if len(f.Value) != 1 {
		return 0, errs.New(errs.ErrCodeInvalidFormat, "field %s: want one character, got %q", f.Key, f.Value)
	}
	return f.Value[0], nil
}

// JSON decodes the value of a J field.
func (f Field) JSON() (any, error) {
	if f.Type != TypeJSON {
		return nil, f.typeErr(TypeJSON)
	}
	var v any
	if err := json.Unmarshal([]byte(f.Value), &v); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "field %s", f.Key)
	}
	return v, nil
}

// Hex decodes the value of an H field.
func (f Field) Hex() ([]byte, error) {
	if f.Type != TypeHex {
		return nil, f.typeErr(TypeHex)
	}
	b, err := hex.DecodeString(f.Value)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "field %s", f.Key)
	}
	return b, nil
}

// Array splits the value of a B field into its subtype (one of cCsSiIf) and
// the raw element texts.
func (f Field) Array() (byte, []string, error) {
	if f.Type != TypeArray {
		return 0, nil, f.typeErr(TypeArray)
	}
	parts := strings.Split(f.Value, ",")
	if len(parts[0]) != 1 || !strings.Contains("cCsSiIf", parts[0]) {
		return 0, nil, errs.New(errs.ErrCodeInvalidFormat, "field %s: unknown array subtype %q", f.Key, parts[0])
	}
	return parts[0][0], parts[1:], nil
}

func (f Field) typeErr(want FieldType) error {
	return errs.New(errs.ErrCodeInvalidFormat, "field %s has type %q, want %q", f.Key, string(f.Type), string(want))
}

// Tags is the ordered optional-field run of a record. Keyed fields are
// unique; opaque fields have no key and may repeat.
type Tags []Field

// Get returns the field with the given key.
func (t Tags) Get(key string) (Field, bool) {
	for _, f := range t {
		if !f.Opaque() && f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Has reports whether a field with the given key exists.
func (t Tags) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Set stores f, replacing an existing field with the same key in place.
func (t *Tags) Set(f Field) {
	if !f.Opaque() {
		for i := range *t {
			if !(*t)[i].Opaque() && (*t)[i].Key == f.Key {
				(*t)[i] = f
				return
			}
		}
	}
	*t = append(*t, f)
}

// Delete removes the field with the given key.
func (t *Tags) Delete(key string) {
	*t = slices.DeleteFunc(*t, func(f Field) bool { return !f.Opaque() && f.Key == key })
}

// Clone returns an independent copy.
func (t Tags) Clone() Tags { return slices.Clone(t) }

// Equal reports whether both runs hold the same fields in the same order.
func (t Tags) Equal(o Tags) bool { return slices.Equal(t, o) }

// Same reports whether both runs hold the same fields in any order.
func (t Tags) Same(o Tags) bool {
	if len(t) != len(o) {
		return false
	}
	for _, f := range t {
		if !slices.Contains(o, f) {
			return false
		}
	}
	return true
}

// String renders the run as tab-separated tokens, without a leading tab.
func (t Tags) String() string {
	parts := make([]string, len(t))
	for i, f := range t {
		parts[i] = f.String()
	}
	return strings.Join(parts, "\t")
}

// isTag reports whether s looks like an optional field rather than a
// positional value. Used to tell optional trailing columns from tags.
func isTag(s string) bool {
	return len(s) >= 5 && s[2] == ':' && s[4] == ':' && FieldType(s[3]).Valid()
}

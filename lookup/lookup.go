// Package lookup implements tolerant access to nested values in JSON
// documents. A missing key, an index out of range or a type mismatch along
// the path all yield a missing value instead of an error.
package lookup

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var keyEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
)

// Path builds a gjson path from string keys and integer indices. Other
// element types are rendered with their default string form.
func Path(elems ...any) string {
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		switch v := e.(type) {
		case int:
			parts = append(parts, strconv.Itoa(v))
		case string:
			parts = append(parts, keyEscaper.Replace(v))
		default:
			parts = append(parts, keyEscaper.Replace(toString(v)))
		}
	}
	return strings.Join(parts, ".")
}

func toString(v any) string {
	switch t := v.(type) {
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	default:
		return ""
	}
}

// Get returns the value found at path. Strings are returned unquoted, numbers
// exactly as written in the document, so 1.0 stays 1.0. Booleans, objects and
// arrays are returned as raw JSON. JSON null counts as missing.
func Get(doc []byte, path ...any) (string, bool) {
	if len(path) == 0 {
		return "", false
	}
	r := gjson.GetBytes(doc, Path(path...))
	if !r.Exists() || r.Type == gjson.Null {
		return "", false
	}
	if r.Type == gjson.String {
		return r.String(), true
	}
	return r.Raw, true
}

// Optional is like Get, but returns nil for a missing value.
func Optional(doc []byte, path ...any) *string {
	v, ok := Get(doc, path...)
	if !ok {
		return nil
	}
	return &v
}

// Int returns the integer value at path, if it exists and is a number.
func Int(doc []byte, path ...any) (int64, bool) {
	if len(path) == 0 {
		return 0, false
	}
	r := gjson.GetBytes(doc, Path(path...))
	if r.Type != gjson.Number {
		return 0, false
	}
	return r.Int(), true
}

package lookup

import "testing"

var doc = []byte(`{
  "retjson": [
    {
      "Submission": {"metadata": "2.0", "bildate": "2023-01-01"},
      "Contributors": [{"contributorname": "Jane Doe", "affiliation": "CMU"}],
      "Funders": [],
      "Dataset": [{"bildirectory": "/bil/data/ab/cd", "count": 12, "version": 1.0, "ratio": 2.50, "big": 1e3, "public": true}],
      "a.b": {"c": "dotted"},
      "nothing": null
    }
  ]
}`)

func TestGet(t *testing.T) {
	var cases = []struct {
		about string
		path  []any
		want  string
		ok    bool
	}{
		{"nested key", []any{"retjson", 0, "Submission", "metadata"}, "2.0", true},
		{"array element", []any{"retjson", 0, "Contributors", 0, "affiliation"}, "CMU", true},
		{"number", []any{"retjson", 0, "Dataset", 0, "count"}, "12", true},
		{"number with trailing zero", []any{"retjson", 0, "Dataset", 0, "version"}, "1.0", true},
		{"number with trailing zeros", []any{"retjson", 0, "Dataset", 0, "ratio"}, "2.50", true},
		{"number with exponent", []any{"retjson", 0, "Dataset", 0, "big"}, "1e3", true},
		{"boolean", []any{"retjson", 0, "Dataset", 0, "public"}, "true", true},
		{"object", []any{"retjson", 0, "a.b"}, `{"c": "dotted"}`, true},
		{"empty array", []any{"retjson", 0, "Funders", 0, "award_number"}, "", false},
		{"missing key", []any{"retjson", 0, "Specimen", 0, "species"}, "", false},
		{"index out of range", []any{"retjson", 3, "Submission"}, "", false},
		{"index into object", []any{"retjson", 0, "Submission", 0}, "", false},
		{"key into string", []any{"retjson", 0, "Submission", "metadata", "x"}, "", false},
		{"null", []any{"retjson", 0, "nothing"}, "", false},
		{"dotted key", []any{"retjson", 0, "a.b", "c"}, "dotted", true},
		{"empty path", nil, "", false},
	}
	for _, c := range cases {
		got, ok := Get(doc, c.path...)
		if ok != c.ok || got != c.want {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", c.about, got, ok, c.want, c.ok)
		}
	}
}

func TestGetInvalidDocument(t *testing.T) {
	if _, ok := Get([]byte("<html>"), "retjson", 0); ok {
		t.Errorf("expected missing value for invalid document")
	}
	if _, ok := Get(nil, "retjson"); ok {
		t.Errorf("expected missing value for empty document")
	}
}

func TestOptional(t *testing.T) {
	if v := Optional(doc, "retjson", 0, "Funders", 0); v != nil {
		t.Errorf("expected nil, got %v", *v)
	}
	v := Optional(doc, "retjson", 0, "Submission", "bildate")
	if v == nil || *v != "2023-01-01" {
		t.Errorf("got %v", v)
	}
	if v := Optional(doc, "retjson", 0, "Specimen"); v != nil {
		t.Errorf("expected nil for missing key, got %v", *v)
	}
}

func TestInt(t *testing.T) {
	n, ok := Int(doc, "retjson", 0, "Dataset", 0, "count")
	if !ok || n != 12 {
		t.Errorf("got (%d, %v)", n, ok)
	}
	if _, ok := Int(doc, "retjson", 0, "Submission", "metadata"); ok {
		t.Errorf("string should not count as number")
	}
}

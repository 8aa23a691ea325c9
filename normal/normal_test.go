package normal

import "testing"

func TestReplaceNewlineAndTab(t *testing.T) {
	var cases = []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"a\tb", "a b"},
		{"line\nbreak", "line break"},
		{"crlf\r\nend", "crlf end"},
	}
	for _, c := range cases {
		if got := ReplaceNewlineAndTab(c.in); got != c.want {
			t.Errorf("ReplaceNewlineAndTab(%q) got %q, want %q", c.in, got, c.want)
		}
	}
}

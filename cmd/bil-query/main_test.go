package main

import (
	"bytes"
	"testing"

	"github.com/brain-image-library/bilkit/web"
)

func TestWrite(t *testing.T) {
	var cases = []struct {
		v    any
		want string
	}{
		{web.Result(nil), "null\n"},
		{web.Result{}, "{}\n"},
		{[]string(nil), "null\n"},
		{[]string{}, "[]\n"},
		{[]string{"ace-bag"}, "[\n  \"ace-bag\"\n]\n"},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		if err := write(&buf, c.v); err != nil {
			t.Fatal(err)
		}
		if buf.String() != c.want {
			t.Errorf("write(%#v) got %q, want %q", c.v, buf.String(), c.want)
		}
	}
}

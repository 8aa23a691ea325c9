package scholar

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

const resultPage = `<html><body><div id="gs_res_ccl_mid">
<div class="gs_r gs_or gs_scl"><div class="gs_ri">
  <h3 class="gs_rt"><a href="https://doi.org/10.35077/act-bag">Whole brain images</a></h3>
  <div class="gs_fl gs_flb"><a href="#">Save</a> <a href="/scholar?cites=1">Cited by 12</a> <a href="#">Related articles</a></div>
</div></div>
<div class="gs_r gs_or gs_scl"><div class="gs_ri">
  <h3 class="gs_rt"><a href="#">Other</a></h3>
  <div class="gs_fl"><a href="/scholar?cites=2">Cited by 99</a></div>
</div></div>
</div></body></html>`

const uncitedPage = `<html><body><div class="gs_ri">
  <h3 class="gs_rt"><a href="#">Whole brain images</a></h3>
  <div class="gs_fl"><a href="#">Save</a></div>
</div></body></html>`

const emptyPage = `<html><body><div id="gs_res_ccl_mid"></div></body></html>`

func TestParseCitationCount(t *testing.T) {
	var cases = []struct {
		about string
		page  string
		count int64
		err   error
	}{
		{"first result only", resultPage, 12, nil},
		{"result without citations", uncitedPage, 0, nil},
		{"no result", emptyPage, 0, ErrNoResult},
	}
	for _, c := range cases {
		n, err := ParseCitationCount([]byte(c.page))
		if n != c.count || !errors.Is(err, c.err) {
			t.Errorf("%s: got (%d, %v), want (%d, %v)", c.about, n, err, c.count, c.err)
		}
	}
}

func TestCitationCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "10.35077/act-bag":
			io.WriteString(w, resultPage)
		case "10.35077/blocked":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			io.WriteString(w, emptyPage)
		}
	}))
	defer server.Close()
	c := &Client{Doer: server.Client(), BaseURL: server.URL}
	if n, ok := c.CitationCount("10.35077/act-bag"); n != 12 || !ok {
		t.Errorf("got (%d, %v)", n, ok)
	}
	if _, ok := c.CitationCount("10.35077/blocked"); ok {
		t.Errorf("expected no count for rate limited request")
	}
	if _, ok := c.CitationCount("10.35077/unknown"); ok {
		t.Errorf("expected no count for empty result")
	}
}

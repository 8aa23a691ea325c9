package inventory

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/brain-image-library/bilkit/bil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestDatasetUUID(t *testing.T) {
	var cases = []struct {
		dir  string
		want string
	}{
		// uuid.uuid5(uuid.NAMESPACE_DNS, "python.org")
		{"python.org", "886313e1-3b8a-5372-9b90-0c9aee199e5d"},
		{"python.org/", "886313e1-3b8a-5372-9b90-0c9aee199e5d"},
	}
	for _, c := range cases {
		if got := DatasetUUID(c.dir); got != c.want {
			t.Errorf("DatasetUUID(%q) got %s, want %s", c.dir, got, c.want)
		}
	}
}

func TestDatasetUUIDProperties(t *testing.T) {
	dirs := []string{
		"/bil/data/2b/4f/2b4f3a1c2d",
		"/bil/data/ab/cd/ace-bag",
		"relative/path",
		"",
	}
	for _, d := range dirs {
		a, b := DatasetUUID(d), DatasetUUID(d+"/")
		if a != b {
			t.Errorf("%q: trailing slash changes identifier: %s != %s", d, a, b)
		}
		if DatasetUUID(d) != a {
			t.Errorf("%q: not deterministic", d)
		}
		u, err := uuid.Parse(a)
		if err != nil {
			t.Fatalf("%q: invalid uuid: %v", d, err)
		}
		if u.Version() != 5 {
			t.Errorf("%q: got version %d, want 5", d, u.Version())
		}
	}
	if DatasetUUID("/bil/data/AB") == DatasetUUID("/bil/data/ab") {
		t.Errorf("identifier should be case sensitive")
	}
	if DatasetUUID("/bil/data/ab//") == DatasetUUID("/bil/data/ab") {
		t.Errorf("only a single trailing slash should be stripped")
	}
}

func TestFilename(t *testing.T) {
	got := Filename("python.org/")
	if got != "886313e1-3b8a-5372-9b90-0c9aee199e5d.json" {
		t.Errorf("got %s", got)
	}
}

const inventoryDoc = `{
  "size": 35,
  "pretty_size": "35 Bytes",
  "number_of_files": 3,
  "frequencies": {"tif": 2, "json": 1},
  "file_types": ["tif", "json"],
  "manifest": [
    {"fullpath": "/bil/data/ab/cd/a.tif", "extension": "tif", "size": 10},
    {"fullpath": "/bil/data/ab/cd/b.tif", "extension": "tif", "size": 20},
    {"fullpath": "/bil/data/ab/cd/c.json", "extension": "json", "size": 5}
  ]
}`

func TestSizeByExtension(t *testing.T) {
	m := Manifest{
		{Extension: "tif", Size: 10},
		{Extension: "tif", Size: 20},
		{Extension: "json", Size: 5},
	}
	want := map[string]int64{"tif": 30, "json": 5}
	if diff := cmp.Diff(want, SizeByExtension(m)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got := SizeByExtension(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]byte(inventoryDoc))
	if err != nil {
		t.Fatal(err)
	}
	want := &Summary{
		Size:            35,
		PrettySize:      "35 Bytes",
		NumberOfFiles:   3,
		Frequencies:     map[string]int64{"tif": 2, "json": 1},
		FileTypes:       []string{"tif", "json"},
		SizeByExtension: map[string]int64{"tif": 30, "json": 5},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeDerived(t *testing.T) {
	doc := `{"manifest": [
		{"extension": "tif", "size": 2000},
		{"extension": null, "size": 1},
		{"extension": "nii", "size": 500}
	]}`
	s, err := Summarize([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if s.Size != 2500 || s.NumberOfFiles != 2 {
		t.Errorf("got size=%d, files=%d", s.Size, s.NumberOfFiles)
	}
	if s.PrettySize != "2.5 kB" {
		t.Errorf("got pretty size %q", s.PrettySize)
	}
	if diff := cmp.Diff([]string{"nii", "tif"}, s.FileTypes); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if _, ok := s.SizeByExtension["zip"]; ok {
		t.Errorf("absent extensions must not be zero filled")
	}
}

func TestSummarizeInvalid(t *testing.T) {
	for _, doc := range []string{"", "[]", "<html>"} {
		if _, err := Summarize([]byte(doc)); !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("%q: expected ErrInvalidDocument, got %v", doc, err)
		}
	}
}

func setupTestServer(t *testing.T, downloads *int64) *httptest.Server {
	t.Helper()
	dir := "/bil/data/ab/cd/ace-bag"
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/retrieve" && r.URL.Query().Get("bildid") == "ace-bag":
			io.WriteString(w, `{"retjson": [{"Dataset": [{"bildirectory": "`+dir+`/"}]}]}`)
		case r.URL.Path == "/retrieve" && r.URL.Query().Get("bildid") == "no-dir":
			io.WriteString(w, `{"retjson": [{"Dataset": []}]}`)
		case r.URL.Path == "/retrieve":
			io.WriteString(w, `{"message": "GET failure, no entry found"}`)
		case r.URL.Path == "/inventory/"+Filename(dir):
			atomic.AddInt64(downloads, 1)
			io.WriteString(w, inventoryDoc)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClientGet(t *testing.T) {
	var downloads int64
	server := setupTestServer(t, &downloads)
	defer server.Close()
	cacheDir := t.TempDir()
	c := &Client{
		Doer:        server.Client(),
		DownloadURL: server.URL,
		Metadata:    &bil.Client{Doer: server.Client(), BaseURL: server.URL},
		CacheDir:    cacheDir,
	}
	r, err := c.Get("ace-bag")
	if err != nil {
		t.Fatal(err)
	}
	if r == nil || r["pretty_size"] != "35 Bytes" {
		t.Errorf("unexpected result: %v", r)
	}
	s, err := c.Summary("ace-bag")
	if err != nil {
		t.Fatal(err)
	}
	if s.SizeByExtension["tif"] != 30 {
		t.Errorf("got %v", s.SizeByExtension)
	}
	if downloads != 1 {
		t.Errorf("got %d downloads, want 1 (second from cache)", downloads)
	}
	var cached []string
	filepath.Walk(cacheDir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			cached = append(cached, filepath.Base(path))
		}
		return nil
	})
	if len(cached) != 1 || !strings.HasSuffix(cached[0], ".json.zst") {
		t.Errorf("unexpected cache contents: %v", cached)
	}
}

func TestClientGetFailures(t *testing.T) {
	var downloads int64
	server := setupTestServer(t, &downloads)
	defer server.Close()
	c := &Client{
		Doer:        server.Client(),
		DownloadURL: server.URL,
		Metadata:    &bil.Client{Doer: server.Client(), BaseURL: server.URL},
	}
	if r, err := c.Get("missing"); r != nil || !errors.Is(err, bil.ErrNotFound) {
		t.Errorf("got %v, %v", r, err)
	}
	if r, err := c.Get("no-dir"); r != nil || err == nil {
		t.Errorf("got %v, %v", r, err)
	}
	server.Close()
	if r, err := c.Get("ace-bag"); r != nil || err == nil {
		t.Errorf("got %v, %v", r, err)
	}
}

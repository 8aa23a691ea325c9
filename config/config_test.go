package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brain-image-library/bilkit/bil"
	"github.com/brain-image-library/bilkit/datacite"
	"github.com/brain-image-library/bilkit/scholar"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "config.toml")
	data := `
api_url = "http://localhost:9000"
store_dir = "/tmp/bil-store"
timeout = "5s"
max_retries = 2
`
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(fn)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.APIURL != "http://localhost:9000" {
		t.Errorf("api url, got %s", c.APIURL)
	}
	if c.StoreDir != "/tmp/bil-store" {
		t.Errorf("store dir, got %s", c.StoreDir)
	}
	if c.Timeout.Duration != 5*time.Second {
		t.Errorf("timeout, got %v", c.Timeout)
	}
	if c.MaxRetries != 2 {
		t.Errorf("max retries, got %d", c.MaxRetries)
	}
	if c.DownloadURL != bil.DefaultDownloadURL {
		t.Errorf("download url should keep default, got %s", c.DownloadURL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if c.MaxRetries != 1 {
		t.Errorf("default should be a single attempt, got %d", c.MaxRetries)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"BIL_API_URL":      "http://api.test",
		"BIL_REPORT_STORE": "/data/reports",
		"BIL_MAX_RETRIES":  "3",
		"BIL_TIMEOUT":      "1m",
	}
	c := Default()
	if err := c.applyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}
	if c.APIURL != "http://api.test" || c.StoreDir != "/data/reports" {
		t.Errorf("env not applied: %+v", c)
	}
	if c.MaxRetries != 3 || c.Timeout.Duration != time.Minute {
		t.Errorf("numeric env not applied: %+v", c)
	}
	bad := func(k string) string {
		if k == "BIL_MAX_RETRIES" {
			return "many"
		}
		return ""
	}
	if err := Default().applyEnv(bad); err == nil {
		t.Errorf("expected error for invalid retry count")
	}
}

func TestNewHTTPClient(t *testing.T) {
	c := Default()
	c.MaxRetries = 0
	client := c.NewHTTPClient()
	if client.MaxRetries != 1 {
		t.Errorf("got %d attempts, want 1", client.MaxRetries)
	}
}

func TestDefaultsFollowClients(t *testing.T) {
	c := Default()
	var cases = []struct {
		name, got, want string
	}{
		{"api", c.APIURL, bil.DefaultBaseURL},
		{"download", c.DownloadURL, bil.DefaultDownloadURL},
		{"datacite", c.DataciteURL, datacite.DefaultBaseURL},
		{"scholar", c.ScholarURL, scholar.DefaultBaseURL},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, tc.got, tc.want)
		}
	}
}

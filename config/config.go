// Package config holds settings shared by all bilkit commands. Values are
// layered: defaults, an optional TOML file, environment variables and finally
// command line flags, which are applied by each command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/brain-image-library/bilkit"
	"github.com/brain-image-library/bilkit/bil"
	"github.com/brain-image-library/bilkit/datacite"
	"github.com/brain-image-library/bilkit/scholar"
	"github.com/sethgrid/pester"
)

// Config for the BIL clients and the report builder.
type Config struct {
	// APIURL is the base of the BIL metadata REST API.
	APIURL string `toml:"api_url"`
	// DownloadURL is the static file host, serving inventories and
	// precomputed reports.
	DownloadURL string `toml:"download_url"`
	// DataciteURL is the base of the DataCite REST API.
	DataciteURL string `toml:"datacite_url"`
	// ScholarURL is the citation search endpoint.
	ScholarURL string `toml:"scholar_url"`
	// ReportDir is the local working directory for daily reports.
	ReportDir string `toml:"report_dir"`
	// StoreDir is the persistent store, reports are mirrored there, if the
	// directory exists and is writable.
	StoreDir string `toml:"store_dir"`
	// CacheDir keeps downloaded inventory documents.
	CacheDir string `toml:"cache_dir"`
	// Timeout for a single HTTP request, zero means no timeout.
	Timeout Duration `toml:"timeout"`
	// MaxRetries is the number of attempts per request; one means a single
	// attempt, without retries.
	MaxRetries int `toml:"max_retries"`
	// UserAgent sent with every request.
	UserAgent string `toml:"user_agent"`
}

// Duration wraps time.Duration to allow strings like "30s" in the TOML file.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns a configuration with all defaults set.
func Default() *Config {
	return &Config{
		APIURL:      bil.DefaultBaseURL,
		DownloadURL: bil.DefaultDownloadURL,
		DataciteURL: datacite.DefaultBaseURL,
		ScholarURL:  scholar.DefaultBaseURL,
		ReportDir:   "reports",
		StoreDir:    filepath.Join(xdg.DataHome, bilkit.AppName, "reports"),
		CacheDir:    filepath.Join(xdg.CacheHome, bilkit.AppName, "inventory"),
		Timeout:     Duration{60 * time.Second},
		MaxRetries:  1,
		UserAgent:   fmt.Sprintf("%s/%s", bilkit.AppName, bilkit.Version),
	}
}

// DefaultFile returns the location of the config file, which may not exist.
func DefaultFile() string {
	return filepath.Join(xdg.ConfigHome, bilkit.AppName, "config.toml")
}

// Load reads defaults, then the given TOML file, if it exists, then
// environment variables. An empty filename means DefaultFile.
func Load(filename string) (*Config, error) {
	c := Default()
	if filename == "" {
		filename = DefaultFile()
	}
	if _, err := os.Stat(filename); err == nil {
		if _, err := toml.DecodeFile(filename, c); err != nil {
			return nil, fmt.Errorf("config: %s: %w", filename, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	if err := c.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	for key, dst := range map[string]*string{
		"BIL_API_URL":      &c.APIURL,
		"BIL_DOWNLOAD_URL": &c.DownloadURL,
		"BIL_REPORT_DIR":   &c.ReportDir,
		"BIL_REPORT_STORE": &c.StoreDir,
		"BIL_CACHE_DIR":    &c.CacheDir,
		"DATACITE_API_URL": &c.DataciteURL,
	} {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	if v := getenv("BIL_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: BIL_MAX_RETRIES: %w", err)
		}
		c.MaxRetries = n
	}
	if v := getenv("BIL_TIMEOUT"); v != "" {
		if err := c.Timeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("config: BIL_TIMEOUT: %w", err)
		}
	}
	return nil
}

// NewHTTPClient returns a pester client configured with timeout and attempt
// count. With the default of one attempt, no request is ever retried.
func (c *Config) NewHTTPClient() *pester.Client {
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = c.MaxRetries
	if client.MaxRetries < 1 {
		client.MaxRetries = 1
	}
	client.Timeout = c.Timeout.Duration
	return client
}

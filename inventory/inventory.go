// Package inventory derives dataset identifiers from BIL directories and
// fetches and summarizes the per-dataset file inventories published on the
// download host.
package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brain-image-library/bilkit/atomicfile"
	"github.com/brain-image-library/bilkit/bil"
	"github.com/brain-image-library/bilkit/web"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
)

// DefaultCacheTTL for downloaded inventory documents.
const DefaultCacheTTL = 24 * time.Hour

// ErrNoDirectory is returned, if the dataset metadata carries no directory.
var ErrNoDirectory = errors.New("dataset without bildirectory")

// DatasetUUID returns a stable identifier for a dataset directory: a version
// 5 UUID in the DNS namespace, computed over the directory with a single
// trailing slash removed.
func DatasetUUID(directory string) string {
	directory = strings.TrimSuffix(directory, "/")
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(directory)).String()
}

// Filename returns the name of the inventory document for a directory.
func Filename(directory string) string {
	return DatasetUUID(directory) + ".json"
}

// Client fetches inventory documents.
type Client struct {
	Doer        web.Doer
	DownloadURL string
	// Metadata is used to resolve a bildid to a directory.
	Metadata *bil.Client
	// CacheDir keeps compressed copies of inventories; empty disables the
	// cache.
	CacheDir string
	CacheTTL time.Duration
}

// URL returns the location of the inventory document for a directory.
func (c *Client) URL(directory string) string {
	base := c.DownloadURL
	if base == "" {
		base = bil.DefaultDownloadURL
	}
	return fmt.Sprintf("%s/inventory/%s", strings.TrimSuffix(base, "/"), Filename(directory))
}

// Raw returns the inventory document for a bildid as bytes.
func (c *Client) Raw(bildid string) ([]byte, error) {
	dir, err := c.Metadata.Directory(bildid)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, ErrNoDirectory
	}
	return c.RawByDirectory(dir)
}

// RawByDirectory returns the inventory document for a dataset directory,
// consulting the cache first.
func (c *Client) RawByDirectory(directory string) ([]byte, error) {
	id := DatasetUUID(directory)
	if b, err := c.cached(id); err != nil {
		log.Warnf("inventory: cache read failed for %s: %v", id, err)
	} else if b != nil {
		log.Debugf("inventory: cache hit for %s", id)
		return b, nil
	}
	b, err := web.GetOK(c.Doer, c.URL(directory), nil, nil)
	if err != nil {
		return nil, err
	}
	if err := c.store(id, b); err != nil {
		log.Warnf("inventory: cache write failed for %s: %v", id, err)
	}
	return b, nil
}

// Get returns the decoded inventory document for a bildid. On any failure,
// including a dataset without directory, the result is nil.
func (c *Client) Get(bildid string) (web.Result, error) {
	b, err := c.Raw(bildid)
	if err != nil {
		log.Warnf("inventory: error making API request: %v", err)
		return nil, err
	}
	return web.DecodeResult(b)
}

// Summary returns the summary of the inventory for a bildid.
func (c *Client) Summary(bildid string) (*Summary, error) {
	b, err := c.Raw(bildid)
	if err != nil {
		return nil, err
	}
	return Summarize(b)
}

func (c *Client) cachePath(id string) string {
	return filepath.Join(c.CacheDir, id[:2], id+".json.zst")
}

// cached returns the cached document or nil, if there is no fresh copy.
func (c *Client) cached(id string) ([]byte, error) {
	if c.CacheDir == "" {
		return nil, nil
	}
	fn := c.cachePath(id)
	fi, err := os.Stat(fn)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ttl := c.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	if time.Since(fi.ModTime()) > ttl {
		return nil, nil
	}
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

func (c *Client) store(id string, b []byte) error {
	if c.CacheDir == "" {
		return nil
	}
	fn := c.cachePath(id)
	if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
		return err
	}
	f, err := atomicfile.New(fn)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Abort()
		return err
	}
	if _, err := io.Copy(enc, bytes.NewReader(b)); err != nil {
		f.Abort()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}

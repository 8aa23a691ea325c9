// Package bil is a client for the Brain Image Library metadata API, cf.
// https://api.brainimagelibrary.org.
//
// All lookups return a web.Result. A nil Result means the request failed
// (network, undecodable body), an empty Result means the API had no entry.
// Errors are returned alongside a nil Result for logging, they never carry
// a partial result.
package bil

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	schema "github.com/brain-image-library/bilkit/schema/bil"
	"github.com/brain-image-library/bilkit/web"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL of the metadata API.
	DefaultBaseURL = "https://api.brainimagelibrary.org"
	// DefaultDownloadURL is the static host serving inventories and
	// precomputed reports.
	DefaultDownloadURL = "https://download.brainimagelibrary.org"
)

// Metadata versions with a cohort of datasets each.
var Versions = []string{"1.0", "2.0"}

var (
	// ErrNotFound is returned by methods returning raw or typed documents,
	// when the API has no entry.
	ErrNotFound = errors.New("no entry found")
	// ErrMissingBildids is returned, if a submission listing lacks the list
	// of identifiers.
	ErrMissingBildids = errors.New("submission response without bildids")
)

// Client for the BIL metadata API.
type Client struct {
	Doer      web.Doer
	BaseURL   string
	UserAgent string
}

// New returns a client for the default API location.
func New(doer web.Doer) *Client {
	return &Client{Doer: doer, BaseURL: DefaultBaseURL}
}

func (c *Client) link(path string, key, value string) string {
	vs := url.Values{}
	vs.Set(key, value)
	return fmt.Sprintf("%s%s?%s", c.BaseURL, path, vs.Encode())
}

func (c *Client) header(h http.Header) http.Header {
	if c.UserAgent == "" {
		return h
	}
	out := h.Clone()
	if out == nil {
		out = http.Header{}
	}
	if out.Get("User-Agent") == "" {
		out.Set("User-Agent", c.UserAgent)
	}
	return out
}

// fetch returns the raw body of a GET request, regardless of status code;
// the API reports missing entries in the body.
func (c *Client) fetch(link string, params url.Values, header http.Header) ([]byte, error) {
	resp, err := web.Get(c.Doer, link, params, c.header(header))
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// get runs a request and normalizes the not found message to an empty
// result.
func (c *Client) get(link string, params url.Values, header http.Header) (web.Result, error) {
	b, err := c.fetch(link, params, header)
	if err != nil {
		log.Warnf("bil: error making API request: %v", err)
		return nil, err
	}
	result, err := web.DecodeResult(b)
	if err != nil {
		log.Warnf("bil: cannot decode response from %s: %v", link, err)
		return nil, err
	}
	if isNotFound(result) {
		return web.Result{}, nil
	}
	return result, nil
}

func isNotFound(r web.Result) bool {
	msg, ok := r["message"].(string)
	return ok && msg == schema.NotFoundMessage
}

// ByID retrieves metadata for a dataset by its bildid. An empty bildid
// returns an empty result without contacting the API.
func (c *Client) ByID(bildid string, params url.Values, header http.Header) (web.Result, error) {
	if bildid == "" {
		return web.Result{}, nil
	}
	return c.get(c.link("/retrieve", "bildid", bildid), params, header)
}

// Retrieve fetches detailed metadata for a dataset.
func (c *Client) Retrieve(bildid string, params url.Values, header http.Header) (web.Result, error) {
	return c.get(c.link("/retrieve", "bildid", bildid), params, header)
}

// Search looks up metadata for a dataset; currently served by the same
// endpoint as Retrieve.
func (c *Client) Search(bildid string, params url.Values, header http.Header) (web.Result, error) {
	return c.get(c.link("/retrieve", "bildid", bildid), params, header)
}

// ByDirectory retrieves metadata for a dataset by its directory path. An
// empty directory returns an empty result without contacting the API.
func (c *Client) ByDirectory(directory string, params url.Values, header http.Header) (web.Result, error) {
	if directory == "" {
		return web.Result{}, nil
	}
	return c.get(c.link("/query/dataset", "bildirectory", directory), params, header)
}

// ByAffiliation lists contributors of a given affiliation.
func (c *Client) ByAffiliation(affiliation string, params url.Values, header http.Header) (web.Result, error) {
	return c.get(c.link("/query/contributors", "affiliation", affiliation), params, header)
}

// Query searches the metadata division for a metadata element.
func (c *Client) Query(element string, params url.Values, header http.Header) (web.Result, error) {
	return c.get(c.link("/query/metadatadivision", "metadataelement", element), params, header)
}

// ByVersion returns the bildids of all datasets submitted with a given
// metadata version. If the API has no entry, the list is empty, but not nil.
// On failure the list is nil and the error is set.
func (c *Client) ByVersion(version string) ([]string, error) {
	link := c.link("/query/submission", "metadata", version)
	b, err := c.fetch(link, nil, nil)
	if err != nil {
		log.Warnf("bil: error making API request: %v", err)
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("bil: decode %s: %w", link, err)
	}
	var sl schema.SubmissionList
	if err := json.Unmarshal(b, &sl); err != nil {
		return nil, fmt.Errorf("bil: decode %s: %w", link, err)
	}
	if sl.Message == schema.NotFoundMessage {
		return []string{}, nil
	}
	if _, ok := raw["bildids"]; !ok {
		return nil, fmt.Errorf("bil: version %s: %w", version, ErrMissingBildids)
	}
	if sl.Bildids == nil {
		return []string{}, nil
	}
	return sl.Bildids, nil
}

// AllBildIDs returns the identifiers of all cohorts, in the order of
// Versions.
func (c *Client) AllBildIDs() ([]string, error) {
	var result []string
	for _, v := range Versions {
		ids, err := c.ByVersion(v)
		if err != nil {
			return nil, err
		}
		result = append(result, ids...)
	}
	return result, nil
}

// RetrieveRaw returns the undecoded retrieve response for a dataset. A
// missing entry yields ErrNotFound.
func (c *Client) RetrieveRaw(bildid string) ([]byte, error) {
	if bildid == "" {
		return nil, ErrNotFound
	}
	b, err := c.fetch(c.link("/retrieve", "bildid", bildid), nil, nil)
	if err != nil {
		return nil, err
	}
	var probe struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, fmt.Errorf("bil: decode %s: %w", bildid, err)
	}
	if probe.Message == schema.NotFoundMessage {
		return nil, ErrNotFound
	}
	return b, nil
}

// Detail returns the typed document for a dataset.
func (c *Client) Detail(bildid string) (*schema.Document, error) {
	b, err := c.RetrieveRaw(bildid)
	if err != nil {
		return nil, err
	}
	var doc schema.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("bil: decode %s: %w", bildid, err)
	}
	return &doc, nil
}

// Directory returns the bildirectory of a dataset.
func (c *Client) Directory(bildid string) (string, error) {
	doc, err := c.Detail(bildid)
	if err != nil {
		return "", err
	}
	dir, ok := doc.Directory()
	if !ok {
		return "", fmt.Errorf("bil: %s: no bildirectory in metadata", bildid)
	}
	return dir, nil
}

// Package datacite fetches DOI metadata of BIL datasets from the DataCite
// REST API, cf. https://support.datacite.org/docs/api-get-doi.
package datacite

import (
	"fmt"
	"strings"

	"github.com/brain-image-library/bilkit/lookup"
	schema "github.com/brain-image-library/bilkit/schema/datacite"
	"github.com/brain-image-library/bilkit/web"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL of the DataCite API.
	DefaultBaseURL = "https://api.datacite.org"
	// Prefix is the DOI prefix of the Brain Image Library.
	Prefix = "10.35077"
)

// Client for DOI lookups.
type Client struct {
	Doer    web.Doer
	BaseURL string
	Prefix  string
}

// New returns a client for the public API.
func New(doer web.Doer) *Client {
	return &Client{Doer: doer, BaseURL: DefaultBaseURL, Prefix: Prefix}
}

// DOI returns the DOI for a dataset identifier, e.g. "act-bag".
func (c *Client) DOI(datasetID string) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = Prefix
	}
	return fmt.Sprintf("%s/%s", prefix, datasetID)
}

// URL returns the API location for a dataset.
func (c *Client) URL(datasetID string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/dois/%s", strings.TrimSuffix(base, "/"), c.DOI(datasetID))
}

// Raw returns the response body, non-2xx responses are errors.
func (c *Client) Raw(datasetID string) ([]byte, error) {
	return web.GetOK(c.Doer, c.URL(datasetID), nil, nil)
}

// Metadata returns the DOI metadata of a dataset. The result is nil, if the
// request fails or DataCite does not know the DOI.
func (c *Client) Metadata(datasetID string) (web.Result, error) {
	b, err := c.Raw(datasetID)
	if err != nil {
		log.Debugf("datacite: %s: %v", datasetID, err)
		return nil, err
	}
	return web.DecodeResult(b)
}

// Document returns the typed DOI document of a dataset.
func (c *Client) Document(datasetID string) (*schema.Response, error) {
	b, err := c.Raw(datasetID)
	if err != nil {
		return nil, err
	}
	var resp schema.Response
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, fmt.Errorf("datacite: decode %s: %w", datasetID, err)
	}
	return &resp, nil
}

// CitationCount returns the number of citations DataCite has recorded for a
// dataset. The boolean is false, if the count is not available.
func (c *Client) CitationCount(datasetID string) (int64, bool) {
	b, err := c.Raw(datasetID)
	if err != nil {
		log.Debugf("datacite: unable to retrieve metadata for %s: %v", datasetID, err)
		return 0, false
	}
	return lookup.Int(b, "data", "attributes", "citationCount")
}

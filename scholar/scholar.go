// Package scholar looks up citation counts on the Google Scholar search
// page. There is no API, so this is best effort: the first search result is
// taken and its "Cited by" link parsed.
package scholar

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brain-image-library/bilkit/web"
	log "github.com/sirupsen/logrus"
)

// DefaultBaseURL of the search service.
const DefaultBaseURL = "https://scholar.google.com"

// ErrNoResult is returned, if the search yields nothing.
var ErrNoResult = errors.New("no search result")

var citedBy = regexp.MustCompile(`Cited by ([0-9]+)`)

// Client searches Google Scholar.
type Client struct {
	Doer      web.Doer
	BaseURL   string
	UserAgent string
}

// New returns a client for the public site.
func New(doer web.Doer) *Client {
	return &Client{Doer: doer, BaseURL: DefaultBaseURL}
}

// Search fetches the result page for a query and returns the number of
// citations of the first hit. A hit without a "Cited by" link has zero
// citations.
func (c *Client) Search(query string) (int64, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	header := make(http.Header)
	if c.UserAgent != "" {
		header.Set("User-Agent", c.UserAgent)
	}
	b, err := web.GetOK(c.Doer, strings.TrimSuffix(base, "/")+"/scholar",
		url.Values{"q": []string{query}, "hl": []string{"en"}}, header)
	if err != nil {
		return 0, err
	}
	return ParseCitationCount(b)
}

// CitationCount returns the citation count for a query, e.g. a DOI. The
// boolean is false, if there is no result or the lookup failed.
func (c *Client) CitationCount(query string) (int64, bool) {
	n, err := c.Search(query)
	if err != nil {
		log.Debugf("scholar: %s: %v", query, err)
		return 0, false
	}
	return n, true
}

// ParseCitationCount extracts the citation count of the first result from
// a search result page.
func ParseCitationCount(page []byte) (int64, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return 0, err
	}
	first := doc.Find(".gs_ri").First()
	if first.Length() == 0 {
		return 0, ErrNoResult
	}
	var count int64
	first.Find(".gs_fl a").EachWithBreak(func(i int, s *goquery.Selection) bool {
		m := citedBy.FindStringSubmatch(s.Text())
		if m == nil {
			return true
		}
		count, err = strconv.ParseInt(m[1], 10, 64)
		return false
	})
	return count, err
}

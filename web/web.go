// Package web contains the small HTTP layer shared by all API clients.
package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/segmentio/encoding/json"
)

// Doer abstracts https://pkg.go.dev/net/http#Client.Do.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Result is a decoded JSON object. A nil Result marks a failed request,
// while an empty Result means the remote side found nothing.
type Result map[string]any

// ErrNotObject is returned, if a response body is valid JSON, but not an
// object.
var ErrNotObject = errors.New("response is not a JSON object")

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d while fetching %s", e.StatusCode, e.URL)
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK returns true for 2xx status codes.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// BuildURL appends params to the query of link, keeping any query
// parameters already present.
func BuildURL(link string, params url.Values) (string, error) {
	if len(params) == 0 {
		return link, nil
	}
	u, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Get issues a GET request and reads the whole body. Only transport level
// problems are returned as errors; the status code is left to the caller.
func Get(doer Doer, link string, params url.Values, header http.Header) (*Response, error) {
	if doer == nil {
		doer = http.DefaultClient
	}
	link, err := BuildURL(link, params)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest("GET", link, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode, Body: b}, nil
}

// GetOK is like Get, but treats non-2xx responses as errors.
func GetOK(doer Doer, link string, params url.Values, header http.Header) ([]byte, error) {
	resp, err := Get(doer, link, params, header)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &StatusError{URL: link, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

// DecodeResult decodes a JSON object, numbers are kept as json.Number.
func DecodeResult(b []byte) (Result, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Result(m), nil
}

package inventory

import (
	"errors"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
)

// ErrInvalidDocument is returned for inventory documents that are not JSON
// objects.
var ErrInvalidDocument = errors.New("invalid inventory document")

// Entry is a single file in a dataset manifest. Only the fields needed for
// aggregation are kept.
type Entry struct {
	Path      string `json:"fullpath,omitempty"`
	Extension string `json:"extension"`
	Size      int64  `json:"size"`
}

// Manifest lists all files of a dataset.
type Manifest []Entry

// Summary aggregates an inventory document.
type Summary struct {
	Size            int64            `json:"size"`
	PrettySize      string           `json:"pretty_size"`
	NumberOfFiles   int64            `json:"number_of_files"`
	Frequencies     map[string]int64 `json:"frequencies,omitempty"`
	FileTypes       []string         `json:"file_types,omitempty"`
	SizeByExtension map[string]int64 `json:"size_by_extension"`
}

// SizeByExtension sums up file sizes per extension. Only extensions present
// in the manifest appear in the result.
func SizeByExtension(m Manifest) map[string]int64 {
	result := make(map[string]int64)
	for _, e := range m {
		result[e.Extension] += e.Size
	}
	return result
}

// Extensions returns the distinct extensions of a manifest, sorted.
func Extensions(m Manifest) []string {
	var (
		seen   = make(map[string]bool)
		result []string
	)
	for _, e := range m {
		if seen[e.Extension] {
			continue
		}
		seen[e.Extension] = true
		result = append(result, e.Extension)
	}
	sort.Strings(result)
	return result
}

// ParseManifest reads the manifest array from an inventory document.
// Entries without an extension are skipped.
func ParseManifest(doc []byte) Manifest {
	var m Manifest
	gjson.GetBytes(doc, "manifest").ForEach(func(_, v gjson.Result) bool {
		ext := v.Get("extension")
		if !ext.Exists() || ext.Type == gjson.Null {
			return true
		}
		m = append(m, Entry{
			Path:      v.Get("fullpath").String(),
			Extension: ext.String(),
			Size:      v.Get("size").Int(),
		})
		return true
	})
	return m
}

// Summarize passes through the precomputed fields of an inventory document
// and adds the size per extension, computed from the manifest. Missing
// totals are derived from the manifest as well.
func Summarize(doc []byte) (*Summary, error) {
	if !gjson.ValidBytes(doc) {
		return nil, ErrInvalidDocument
	}
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return nil, ErrInvalidDocument
	}
	var (
		manifest = ParseManifest(doc)
		s        = &Summary{
			SizeByExtension: SizeByExtension(manifest),
		}
	)
	if v := root.Get("size"); v.Exists() {
		s.Size = v.Int()
	} else {
		for _, e := range manifest {
			s.Size += e.Size
		}
	}
	if v := root.Get("number_of_files"); v.Exists() {
		s.NumberOfFiles = v.Int()
	} else {
		s.NumberOfFiles = int64(len(manifest))
	}
	if v := root.Get("pretty_size"); v.Exists() && v.String() != "" {
		s.PrettySize = v.String()
	} else if s.Size >= 0 {
		s.PrettySize = humanize.Bytes(uint64(s.Size))
	}
	if v := root.Get("frequencies"); v.IsObject() {
		s.Frequencies = make(map[string]int64)
		v.ForEach(func(k, n gjson.Result) bool {
			s.Frequencies[k.String()] = n.Int()
			return true
		})
	}
	if v := root.Get("file_types"); v.IsArray() {
		for _, ft := range v.Array() {
			s.FileTypes = append(s.FileTypes, ft.String())
		}
	} else if len(manifest) > 0 {
		s.FileTypes = Extensions(manifest)
	}
	return s, nil
}

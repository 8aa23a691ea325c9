// Package citation gathers citation counts of a dataset from several
// sources.
package citation

import (
	"github.com/brain-image-library/bilkit/datacite"
	"github.com/brain-image-library/bilkit/scholar"
)

// Counts per source, nil if a source has no count.
type Counts struct {
	DataCite *int64 `json:"datacite"`
	GScholar *int64 `json:"gscholar"`
}

// Lookup queries the configured sources; a nil source is skipped.
type Lookup struct {
	DataCite *datacite.Client
	Scholar  *scholar.Client
}

// Count returns the citation counts for a dataset identifier, e.g. "act-bag".
func (l *Lookup) Count(datasetID string) Counts {
	var counts Counts
	if l.DataCite != nil {
		if n, ok := l.DataCite.CitationCount(datasetID); ok {
			counts.DataCite = &n
		}
	}
	if l.Scholar != nil {
		doi := datacite.Prefix + "/" + datasetID
		if l.DataCite != nil {
			doi = l.DataCite.DOI(datasetID)
		}
		if n, ok := l.Scholar.CitationCount(doi); ok {
			counts.GScholar = &n
		}
	}
	return counts
}

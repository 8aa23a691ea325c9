// Package bil models the documents returned by the Brain Image Library
// metadata API. Every nested part is optional; absence is represented by nil
// pointers, empty slices or unset Text values.
package bil

import (
	"bytes"
	"strconv"

	"github.com/segmentio/encoding/json"
)

// NotFoundMessage is the message the API sends, if there is no entry.
const NotFoundMessage = "GET failure, no entry found"

// Text is an optional scalar. The API is not consistent about strings and
// numbers, so any JSON scalar is accepted and kept in textual form.
type Text struct {
	Value string
	Valid bool
}

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = Text{}
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text{Value: s, Valid: true}
		return nil
	default:
		*t = Text{Value: string(b), Valid: true}
		return nil
	}
}

// MarshalJSON writes the value as a string or null.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.Value)), nil
}

// Ptr returns a pointer to the value or nil, if unset.
func (t Text) Ptr() *string {
	if !t.Valid {
		return nil
	}
	v := t.Value
	return &v
}

// Document is the response of the retrieve and query/dataset endpoints.
type Document struct {
	Message string     `json:"message,omitempty"`
	Success Text       `json:"success"`
	Retjson []Metadata `json:"retjson"`
}

// First returns the first metadata block, if any.
func (d *Document) First() (*Metadata, bool) {
	if d == nil || len(d.Retjson) == 0 {
		return nil, false
	}
	return &d.Retjson[0], true
}

// Metadata is a single dataset submission with its related records.
type Metadata struct {
	Submission   *Submission   `json:"Submission"`
	Contributors []Contributor `json:"Contributors"`
	Funders      []Funder      `json:"Funders"`
	Dataset      []Dataset     `json:"Dataset"`
	Specimen     []Specimen    `json:"Specimen"`
}

// Submission describes the submission process.
type Submission struct {
	Metadata   Text `json:"metadata"`
	Bildate    Text `json:"bildate"`
	Project    Text `json:"project"`
	Consortium Text `json:"consortium"`
	Submitter  Text `json:"submitter_email"`
}

// Contributor of a dataset.
type Contributor struct {
	Name        Text `json:"contributorname"`
	Type        Text `json:"contributortype"`
	Affiliation Text `json:"affiliation"`
	ORCID       Text `json:"nameidentifier"`
}

// Funder of a dataset.
type Funder struct {
	Name        Text `json:"fundername"`
	AwardNumber Text `json:"award_number"`
	AwardTitle  Text `json:"awardtitle"`
}

// Dataset is the dataset level description.
type Dataset struct {
	Title           Text `json:"title"`
	Bildirectory    Text `json:"bildirectory"`
	GeneralModality Text `json:"generalmodality"`
	Technique       Text `json:"technique"`
	Abstract        Text `json:"abstract"`
	DOI             Text `json:"doi"`
}

// Specimen from which a dataset was acquired.
type Specimen struct {
	Species       Text `json:"species"`
	NCBITaxonomy  Text `json:"ncbitaxonomy"`
	Genotype      Text `json:"genotype"`
	SampleLocalID Text `json:"samplelocalid"`
	Sex           Text `json:"sex"`
	Age           Text `json:"age"`
}

// FirstContributor returns the first contributor, if any.
func (m *Metadata) FirstContributor() (*Contributor, bool) {
	if m == nil || len(m.Contributors) == 0 {
		return nil, false
	}
	return &m.Contributors[0], true
}

// FirstFunder returns the first funder, if any.
func (m *Metadata) FirstFunder() (*Funder, bool) {
	if m == nil || len(m.Funders) == 0 {
		return nil, false
	}
	return &m.Funders[0], true
}

// FirstDataset returns the first dataset block, if any.
func (m *Metadata) FirstDataset() (*Dataset, bool) {
	if m == nil || len(m.Dataset) == 0 {
		return nil, false
	}
	return &m.Dataset[0], true
}

// FirstSpecimen returns the first specimen, if any.
func (m *Metadata) FirstSpecimen() (*Specimen, bool) {
	if m == nil || len(m.Specimen) == 0 {
		return nil, false
	}
	return &m.Specimen[0], true
}

// Directory returns the bildirectory of the first dataset block.
func (d *Document) Directory() (string, bool) {
	m, ok := d.First()
	if !ok {
		return "", false
	}
	ds, ok := m.FirstDataset()
	if !ok || !ds.Bildirectory.Valid {
		return "", false
	}
	return ds.Bildirectory.Value, true
}

// SubmissionList is the response of the query/submission endpoint.
type SubmissionList struct {
	Message string   `json:"message,omitempty"`
	Bildids []string `json:"bildids"`
}

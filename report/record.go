package report

import (
	"github.com/brain-image-library/bilkit/lookup"
	schema "github.com/brain-image-library/bilkit/schema/bil"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

// Columns of a daily report, in order.
var Columns = []string{
	"metadata_version",
	"bildid",
	"bildate",
	"contributor",
	"affiliation",
	"award_number",
	"project",
	"consortium",
	"bildirectory",
	"generalmodality",
	"technique",
	"species",
	"taxonomy",
	"genotype",
	"samplelocalid",
}

// Record is a single row of a daily report. A nil field was missing in the
// upstream metadata.
type Record struct {
	MetadataVersion *string `json:"metadata_version"`
	Bildid          *string `json:"bildid"`
	Bildate         *string `json:"bildate"`
	Contributor     *string `json:"contributor"`
	Affiliation     *string `json:"affiliation"`
	AwardNumber     *string `json:"award_number"`
	Project         *string `json:"project"`
	Consortium      *string `json:"consortium"`
	Bildirectory    *string `json:"bildirectory"`
	GeneralModality *string `json:"generalmodality"`
	Technique       *string `json:"technique"`
	Species         *string `json:"species"`
	Taxonomy        *string `json:"taxonomy"`
	Genotype        *string `json:"genotype"`
	SampleLocalID   *string `json:"samplelocalid"`
}

// Values returns the fields in column order.
func (r Record) Values() []*string {
	return []*string{
		r.MetadataVersion,
		r.Bildid,
		r.Bildate,
		r.Contributor,
		r.Affiliation,
		r.AwardNumber,
		r.Project,
		r.Consortium,
		r.Bildirectory,
		r.GeneralModality,
		r.Technique,
		r.Species,
		r.Taxonomy,
		r.Genotype,
		r.SampleLocalID,
	}
}

// Row renders the record as table cells, missing values become empty cells.
func (r Record) Row() []string {
	vs := r.Values()
	row := make([]string, len(vs))
	for i, v := range vs {
		if v != nil {
			row[i] = *v
		}
	}
	return row
}

// Missing returns the number of missing fields.
func (r Record) Missing() (n int) {
	for _, v := range r.Values() {
		if v == nil {
			n++
		}
	}
	return n
}

// Extract builds a record from a retrieve response. The document is decoded
// into the optional schema, where each absent part only nulls the fields
// depending on it. If the document does not fit the schema at all, e.g. a
// list where an object is expected, fields are looked up one by one.
func Extract(bildid string, doc []byte) Record {
	var d schema.Document
	if err := json.Unmarshal(doc, &d); err != nil {
		log.Debugf("dataset %s: falling back to field lookup: %v", bildid, err)
		return extractFields(bildid, doc)
	}
	return FromDocument(bildid, &d)
}

// FromDocument builds a record from the first metadata block of a document.
func FromDocument(bildid string, d *schema.Document) Record {
	id := bildid
	r := Record{Bildid: &id}
	m, ok := d.First()
	if !ok {
		return r
	}
	if s := m.Submission; s != nil {
		r.MetadataVersion = s.Metadata.Ptr()
		r.Bildate = s.Bildate.Ptr()
		r.Project = s.Project.Ptr()
		r.Consortium = s.Consortium.Ptr()
	}
	if c, ok := m.FirstContributor(); ok {
		r.Contributor = c.Name.Ptr()
		r.Affiliation = c.Affiliation.Ptr()
	}
	if f, ok := m.FirstFunder(); ok {
		r.AwardNumber = f.AwardNumber.Ptr()
	}
	if ds, ok := m.FirstDataset(); ok {
		r.Bildirectory = ds.Bildirectory.Ptr()
		r.GeneralModality = ds.GeneralModality.Ptr()
		r.Technique = ds.Technique.Ptr()
	}
	if sp, ok := m.FirstSpecimen(); ok {
		r.Species = sp.Species.Ptr()
		r.Taxonomy = sp.NCBITaxonomy.Ptr()
		r.Genotype = sp.Genotype.Ptr()
		r.SampleLocalID = sp.SampleLocalID.Ptr()
	}
	return r
}

func extractFields(bildid string, doc []byte) Record {
	var (
		get = func(path ...any) *string {
			return lookup.Optional(doc, append([]any{"retjson", 0}, path...)...)
		}
		id = bildid
	)
	return Record{
		MetadataVersion: get("Submission", "metadata"),
		Bildid:          &id,
		Bildate:         get("Submission", "bildate"),
		Contributor:     get("Contributors", 0, "contributorname"),
		Affiliation:     get("Contributors", 0, "affiliation"),
		AwardNumber:     get("Funders", 0, "award_number"),
		Project:         get("Submission", "project"),
		Consortium:      get("Submission", "consortium"),
		Bildirectory:    get("Dataset", 0, "bildirectory"),
		GeneralModality: get("Dataset", 0, "generalmodality"),
		Technique:       get("Dataset", 0, "technique"),
		Species:         get("Specimen", 0, "species"),
		Taxonomy:        get("Specimen", 0, "ncbitaxonomy"),
		Genotype:        get("Specimen", 0, "genotype"),
		SampleLocalID:   get("Specimen", 0, "samplelocalid"),
	}
}

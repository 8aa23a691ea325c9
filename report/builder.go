// Package report builds the daily dataset report: one row per dataset across
// all metadata version cohorts, stored as a date stamped TSV file.
//
// Reports are fetched from the download host first. The simple report can
// be regenerated locally by querying the metadata API once per dataset,
// which takes a while. Once a report for a day exists on disk, it is reused.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brain-image-library/bilkit/atomicfile"
	"github.com/brain-image-library/bilkit/bil"
	"github.com/brain-image-library/bilkit/dateutil"
	"github.com/brain-image-library/bilkit/web"
	log "github.com/sirupsen/logrus"
)

// Mode selects the kind of report.
type Mode string

const (
	// Simple is the report with one row per dataset, which can be
	// regenerated locally.
	Simple Mode = "simple"
	// Detailed is a richer precomputed report, only available remotely.
	Detailed Mode = "detailed"
)

// ParseMode returns the mode for a name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Simple, Detailed:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown report mode: %q", s)
	}
}

// ErrEnumeration is returned, if the list of datasets could not be
// retrieved; this is different from an empty cohort.
var ErrEnumeration = errors.New("cannot enumerate datasets")

// Builder fetches or generates daily reports.
type Builder struct {
	// Doer is used for the download host.
	Doer web.Doer
	// API is the metadata API client used for regeneration.
	API *bil.Client
	// DownloadURL is the static host serving precomputed reports.
	DownloadURL string
	// LocalDir is the working directory for reports, created on demand.
	LocalDir string
	// StoreDir is the persistent store. Reports are mirrored there, if the
	// directory exists; failures to do so are only logged.
	StoreDir string
	// Now returns the current time, defaults to time.Now.
	Now func() time.Time
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b *Builder) localDir() string {
	if b.LocalDir == "" {
		return "reports"
	}
	return b.LocalDir
}

// Filename returns the name of the report file for a mode and day.
func Filename(mode Mode, t time.Time) string {
	if mode == Detailed {
		return dateutil.Stamp(t) + ".detailed.tsv"
	}
	return dateutil.Stamp(t) + ".tsv"
}

// URL returns the location of a precomputed report on the download host.
func (b *Builder) URL(mode Mode, t time.Time) string {
	base := b.DownloadURL
	if base == "" {
		base = bil.DefaultDownloadURL
	}
	base = strings.TrimSuffix(base, "/")
	if mode == Detailed {
		return fmt.Sprintf("%s/reports/detailed/%s.tsv", base, dateutil.Stamp(t))
	}
	return fmt.Sprintf("%s/reports/%s.tsv", base, dateutil.Stamp(t))
}

// locations returns the paths checked for an existing report, persistent
// store first.
func (b *Builder) locations(name string) []string {
	var result []string
	if b.StoreDir != "" {
		result = append(result, filepath.Join(b.StoreDir, name))
	}
	return append(result, filepath.Join(b.localDir(), name))
}

// Cached returns a report for the given mode and day found on disk, or nil.
func (b *Builder) Cached(mode Mode, t time.Time) (*Table, error) {
	for _, fn := range b.locations(Filename(mode, t)) {
		data, err := os.ReadFile(fn)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		log.Infof("daily report %s found on disk", fn)
		return ParseTSV(data)
	}
	return nil, nil
}

// Daily returns the report for today. Unless overwrite is set, a report
// already on disk is returned without any network access. Otherwise the
// precomputed report is fetched; if that fails, a simple report is
// regenerated and a detailed report is empty.
func (b *Builder) Daily(mode Mode, overwrite bool) (*Table, error) {
	today := b.now()
	if !overwrite {
		t, err := b.Cached(mode, today)
		if err != nil {
			return nil, err
		}
		if t != nil {
			return t, nil
		}
	}
	t, data, err := b.fetch(mode, today)
	if err == nil {
		b.persist(Filename(mode, today), data)
		return t, nil
	}
	log.Warnf("report: cannot fetch %s report: %v", mode, err)
	switch mode {
	case Detailed:
		return &Table{}, nil
	default:
		return b.Regenerate(overwrite)
	}
}

// ForDate fetches the precomputed report for a given day from the download
// host and keeps a copy on disk.
func (b *Builder) ForDate(mode Mode, day time.Time, overwrite bool) (*Table, error) {
	if !overwrite {
		t, err := b.Cached(mode, day)
		if err != nil || t != nil {
			return t, err
		}
	}
	t, data, err := b.fetch(mode, day)
	if err != nil {
		return nil, err
	}
	b.persist(Filename(mode, day), data)
	return t, nil
}

func (b *Builder) fetch(mode Mode, t time.Time) (*Table, []byte, error) {
	data, err := web.GetOK(b.Doer, b.URL(mode, t), nil, nil)
	if err != nil {
		return nil, nil, err
	}
	table, err := ParseTSV(data)
	if err != nil {
		return nil, nil, err
	}
	return table, data, nil
}

// Regenerate builds the simple report for today from the metadata API. If
// a report for today is already on disk and overwrite is false, it is
// returned instead.
func (b *Builder) Regenerate(overwrite bool) (*Table, error) {
	today := b.now()
	if !overwrite {
		t, err := b.Cached(Simple, today)
		if err != nil {
			return nil, err
		}
		if t != nil {
			return t, nil
		}
	}
	records, err := b.Records()
	if err != nil {
		return nil, err
	}
	data, err := NewTable(records).Bytes()
	if err != nil {
		return nil, err
	}
	if err := b.persist(Filename(Simple, today), data); err != nil {
		return nil, err
	}
	return ParseTSV(data)
}

// Records fetches one record per dataset, cohort by cohort. Datasets that
// cannot be retrieved yield a record with all fields missing.
func (b *Builder) Records() ([]Record, error) {
	if b.API == nil {
		return nil, fmt.Errorf("%w: no API client", ErrEnumeration)
	}
	var records []Record
	for _, version := range bil.Versions {
		log.Infof("processing datasets in metadata version %s", version)
		ids, err := b.API.ByVersion(version)
		if err != nil {
			return nil, fmt.Errorf("%w: version %s: %v", ErrEnumeration, version, err)
		}
		for i, id := range ids {
			records = append(records, b.record(id))
			if (i+1)%100 == 0 {
				log.Infof("version %s: %d/%d datasets", version, i+1, len(ids))
			}
		}
	}
	return records, nil
}

func (b *Builder) record(bildid string) Record {
	doc, err := b.API.RetrieveRaw(bildid)
	if err != nil {
		log.Warnf("unable to process dataset %s: %v", bildid, err)
		return Record{}
	}
	r := Extract(bildid, doc)
	if n := r.Missing(); n > 0 {
		log.Debugf("dataset %s: %d fields missing", bildid, n)
	}
	return r
}

// persist writes the report to the local directory, creating it, and mirrors
// it to the persistent store. Only the local write can fail.
func (b *Builder) persist(name string, data []byte) error {
	dir := b.localDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warnf("report: %v", err)
		return err
	}
	local := filepath.Join(dir, name)
	if err := atomicfile.WriteFile(local, data); err != nil {
		log.Warnf("report: %v", err)
		return err
	}
	log.Infof("report written to %s", local)
	if b.StoreDir == "" || sameDir(b.StoreDir, dir) {
		return nil
	}
	if fi, err := os.Stat(b.StoreDir); err != nil || !fi.IsDir() {
		log.Debugf("report: store %s not available, skipping mirror", b.StoreDir)
		return nil
	}
	mirror := filepath.Join(b.StoreDir, name)
	if err := atomicfile.WriteFile(mirror, data); err != nil {
		log.Warnf("report: cannot mirror to %s: %v", mirror, err)
		return nil
	}
	log.Infof("report mirrored to %s", mirror)
	return nil
}

func sameDir(a, b string) bool {
	x, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	y, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	return x == y
}

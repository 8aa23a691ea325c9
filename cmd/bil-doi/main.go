// bil-doi shows DataCite metadata and citation counts of BIL datasets.
//
// $ bil-doi -id act-bag -C
// {"datacite": 12, "gscholar": 5}
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/brain-image-library/bilkit"
	"github.com/brain-image-library/bilkit/citation"
	"github.com/brain-image-library/bilkit/config"
	"github.com/brain-image-library/bilkit/datacite"
	"github.com/brain-image-library/bilkit/scholar"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

var docs = strings.TrimLeft(`
# bil-doi - dataset DOIs

BIL datasets are registered with DataCite under the prefix 10.35077. By
default, the DataCite metadata of a dataset is printed. With -C, citation
counts from DataCite and Google Scholar are printed instead; a source
without a count is reported as null.

## flags

`, "\n")

var (
	datasetID   = flag.String("id", "", "dataset identifier, e.g. act-bag")
	citations   = flag.Bool("C", false, "show citation counts")
	noScholar   = flag.Bool("no-scholar", false, "do not query Google Scholar")
	configFile  = flag.String("c", "", "config file")
	verbose     = flag.Bool("verbose", false, "verbose output")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, docs)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(bilkit.Version)
		os.Exit(0)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *datasetID == "" {
		flag.Usage()
		os.Exit(1)
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	client := cfg.NewHTTPClient()
	dc := &datacite.Client{Doer: client, BaseURL: cfg.DataciteURL, Prefix: datacite.Prefix}
	var v any
	if *citations {
		lookup := &citation.Lookup{DataCite: dc}
		if !*noScholar {
			lookup.Scholar = &scholar.Client{
				Doer:      client,
				BaseURL:   cfg.ScholarURL,
				UserAgent: cfg.UserAgent,
			}
		}
		v = lookup.Count(*datasetID)
	} else {
		r, err := dc.Metadata(*datasetID)
		if err != nil {
			log.Warn(err)
		}
		v = r
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal(err)
	}
}

// bil-query queries the Brain Image Library metadata API and writes the
// response as JSON to stdout.
//
// $ bil-query -id ace-bag
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brain-image-library/bilkit"
	"github.com/brain-image-library/bilkit/bil"
	"github.com/brain-image-library/bilkit/config"
	"github.com/brain-image-library/bilkit/web"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

var docs = strings.TrimLeft(`
# bil-query - query the BIL metadata API

Examples:

	$ bil-query -id ace-bag
	$ bil-query -dir /bil/data/2b/4f/2b4f3a1c2d/
	$ bil-query -affiliation "Allen Institute"
	$ bil-query -element specimen
	$ bil-query -version-list 2.0
	$ bil-query -all

A dataset that is not known yields an empty object, a failed request yields
"null" and a non-zero exit code.

Settings are read from %s, followed by environment
variables (BIL_API_URL, BIL_TIMEOUT, BIL_MAX_RETRIES).

## flags

`, "\n")

var (
	bildid      = flag.String("id", "", "retrieve dataset by bildid")
	directory   = flag.String("dir", "", "retrieve dataset by bildirectory")
	affiliation = flag.String("affiliation", "", "query contributors by affiliation")
	element     = flag.String("element", "", "query a metadata element, e.g. specimen")
	versionList = flag.String("version-list", "", "list bildids of a metadata version, e.g. 1.0")
	listAll     = flag.Bool("all", false, "list bildids of all metadata versions")
	configFile  = flag.String("c", "", "config file")
	verbose     = flag.Bool("verbose", false, "verbose output")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, docs, config.DefaultFile())
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
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	client := &bil.Client{
		Doer:      cfg.NewHTTPClient(),
		BaseURL:   cfg.APIURL,
		UserAgent: cfg.UserAgent,
	}
	var v any
	switch {
	case *bildid != "":
		v, err = client.ByID(*bildid, nil, nil)
	case *directory != "":
		v, err = client.ByDirectory(*directory, nil, nil)
	case *affiliation != "":
		v, err = client.ByAffiliation(*affiliation, nil, nil)
	case *element != "":
		v, err = client.Query(*element, nil, nil)
	case *versionList != "":
		v, err = client.ByVersion(*versionList)
	case *listAll:
		v, err = client.AllBildIDs()
	default:
		flag.Usage()
		os.Exit(1)
	}
	if werr := write(os.Stdout, v); werr != nil {
		log.Fatal(werr)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// write encodes a result, nil results and lists are written as "null".
func write(w io.Writer, v any) error {
	switch t := v.(type) {
	case web.Result:
		if t == nil {
			v = nil
		}
	case []string:
		if t == nil {
			v = nil
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

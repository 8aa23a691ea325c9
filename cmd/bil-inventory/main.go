// bil-inventory derives dataset identifiers and summarizes dataset file
// inventories.
//
// $ bil-inventory -u /bil/data/2b/4f/2b4f3a1c2d/
// $ bil-inventory -id ace-bag
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/brain-image-library/bilkit"
	"github.com/brain-image-library/bilkit/bil"
	"github.com/brain-image-library/bilkit/config"
	"github.com/brain-image-library/bilkit/inventory"
	"github.com/dustin/go-humanize"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

var docs = strings.TrimLeft(`
# bil-inventory - dataset file inventories

With -u, print the identifier of a dataset directory, which is also the name
of its inventory document on the download host. With -id, fetch the
inventory of a dataset and print a JSON summary, including the total size
per file extension. Downloaded inventories are cached for a day under
%s.

## flags

`, "\n")

var (
	directory   = flag.String("u", "", "dataset directory to derive an identifier for")
	bildid      = flag.String("id", "", "bildid of dataset to summarize")
	raw         = flag.Bool("raw", false, "print the inventory document instead of a summary")
	noCache     = flag.Bool("no-cache", false, "do not use the inventory cache")
	configFile  = flag.String("c", "", "config file")
	verbose     = flag.Bool("verbose", false, "verbose output")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, docs, config.Default().CacheDir)
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
	switch {
	case *directory != "":
		fmt.Println(inventory.DatasetUUID(*directory))
		return
	case *bildid == "":
		flag.Usage()
		os.Exit(1)
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	client := cfg.NewHTTPClient()
	inv := &inventory.Client{
		Doer:        client,
		DownloadURL: cfg.DownloadURL,
		Metadata: &bil.Client{
			Doer:      client,
			BaseURL:   cfg.APIURL,
			UserAgent: cfg.UserAgent,
		},
		CacheDir: cfg.CacheDir,
	}
	if *noCache {
		inv.CacheDir = ""
	}
	if *raw {
		b, err := inv.Raw(*bildid)
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(b)
		return
	}
	summary, err := inv.Summary(*bildid)
	if err != nil {
		log.Fatal(err)
	}
	log.Debugf("%s: %s in %s files", *bildid,
		humanize.Bytes(uint64(summary.Size)), humanize.Comma(summary.NumberOfFiles))
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		log.Fatal(err)
	}
}

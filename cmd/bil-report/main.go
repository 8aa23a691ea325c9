// bil-report fetches or regenerates the daily BIL dataset report and writes
// it as TSV to stdout.
//
// $ bil-report -m simple > report.tsv
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/brain-image-library/bilkit"
	"github.com/brain-image-library/bilkit/bil"
	"github.com/brain-image-library/bilkit/config"
	"github.com/brain-image-library/bilkit/dateutil"
	"github.com/brain-image-library/bilkit/report"
	"github.com/brain-image-library/bilkit/xflag"
	"github.com/jinzhu/now"
	log "github.com/sirupsen/logrus"
)

var docs = strings.TrimLeft(`
# bil-report - daily dataset report

The report has one row per dataset. Precomputed reports are fetched from the
download host; if that fails, the simple report is regenerated from the
metadata API, one request per dataset. The detailed report cannot be
regenerated. Reports are kept in a local directory and mirrored to a
persistent store, if that directory exists. A report already on disk is
reused, unless -f is given.

Examples:

	$ bil-report
	$ bil-report -m detailed
	$ bil-report -regen -f
	$ bil-report -t 2024-03-01
	$ bil-report -B 2024-03-01

Settings are read from %s, followed by environment
variables (BIL_API_URL, BIL_DOWNLOAD_URL, BIL_REPORT_DIR, BIL_REPORT_STORE).

## flags

`, "\n")

var (
	mode        = flag.String("m", string(report.Simple), "report mode, simple or detailed")
	overwrite   = flag.Bool("f", false, "overwrite existing report on disk")
	regenerate  = flag.Bool("regen", false, "regenerate simple report from the metadata API, without trying the download host")
	localDir    = flag.String("o", "", "local report directory (default from config)")
	storeDir    = flag.String("s", "", "persistent report store (default from config)")
	configFile  = flag.String("c", "", "config file")
	quiet       = flag.Bool("q", false, "do not write report to stdout")
	verbose     = flag.Bool("verbose", false, "verbose output")
	showVersion = flag.Bool("version", false, "show version")
	date        xflag.Date
	backfill    xflag.Date
)

func main() {
	flag.Var(&date, "t", "fetch precomputed report for a given day")
	flag.Var(&backfill, "B", "fetch precomputed reports from a given day until yesterday")
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
	m, err := report.ParseMode(*mode)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *localDir != "" {
		cfg.ReportDir = *localDir
	}
	if *storeDir != "" {
		cfg.StoreDir = *storeDir
	}
	client := cfg.NewHTTPClient()
	builder := &report.Builder{
		Doer: client,
		API: &bil.Client{
			Doer:      client,
			BaseURL:   cfg.APIURL,
			UserAgent: cfg.UserAgent,
		},
		DownloadURL: cfg.DownloadURL,
		LocalDir:    cfg.ReportDir,
		StoreDir:    cfg.StoreDir,
	}
	var table *report.Table
	switch {
	case backfill.IsSet():
		for _, iv := range dateutil.Daily(backfill.Time, now.BeginningOfDay()) {
			if _, err := builder.ForDate(m, iv.Start, *overwrite); err != nil {
				log.Warnf("%s: %v", dateutil.Stamp(iv.Start), err)
			}
		}
		return
	case date.IsSet():
		table, err = builder.ForDate(m, date.Time, *overwrite)
	case *regenerate:
		if m != report.Simple {
			log.Fatalf("only the %s report can be regenerated", report.Simple)
		}
		table, err = builder.Regenerate(*overwrite)
	default:
		table, err = builder.Daily(m, *overwrite)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("report with %d rows", table.Len())
	if *quiet {
		return
	}
	if err := table.WriteTSV(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

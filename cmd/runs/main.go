// Runs tool - lists the runs recorded in a stats database, or dumps one
// run's per-second stats as CSV.
//
// Usage:
//
//	go run ./cmd/runs -db out/stats.db
//	go run ./cmd/runs -db out/stats.db -run <id> > run.csv
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/meadow/telemetry"
)

func main() {
	dbPath := flag.String("db", "", "Path to the stats database")
	runID := flag.String("run", "", "Dump this run's stats as CSV instead of listing runs")
	flag.Parse()

	if *dbPath == "" {
		slog.Error("--db is required")
		os.Exit(1)
	}

	store, err := telemetry.OpenStore(*dbPath)
	if err != nil {
		slog.Error("failed to open stats db", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if *runID != "" {
		err = dumpRun(store, *runID)
	} else {
		err = listRuns(store)
	}
	if err != nil {
		slog.Error("query failed", "error", err)
		os.Exit(1)
	}
}

func listRuns(store *telemetry.Store) error {
	runs, err := store.Runs()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSEED\tSTARTED\tSECONDS")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			r.ID, r.Seed,
			humanize.RelTime(r.StartedAt(), time.Now(), "ago", "from now"),
			humanize.Comma(int64(r.Seconds)),
		)
	}
	return tw.Flush()
}

func dumpRun(store *telemetry.Store, id string) error {
	rows, err := store.RunStats(id)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("run %s has no stats", id)
	}
	return gocsv.Marshal(&rows, os.Stdout)
}

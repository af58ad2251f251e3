// Command datacheck loads a cardiac outcomes export and prints its
// data-quality report: row counts, anomaly tallies per kind and, with
// -verbose, every individual finding.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"cardiopulse/internal/config"
	"cardiopulse/internal/dataset"
)

func main() {
	var (
		file    = flag.String("file", "", "dataset file to check (CSV or XLSX); defaults to the configured dataset")
		maxRows = flag.Int("max-rows", 500000, "abort when the file exceeds this many rows")
		verbose = flag.Bool("verbose", false, "print every individual finding")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	path := *file
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
			os.Exit(1)
		}
		path = cfg.DatasetPath()
	}

	loader := dataset.NewLoader(logger, *maxRows)
	snap, err := loader.Load(context.Background(), path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", path, err)
		os.Exit(1)
	}

	fmt.Printf("file:      %s\n", snap.Path)
	fmt.Printf("rows:      %d\n", snap.SourceRows)
	fmt.Printf("records:   %d\n", len(snap.Records))
	fmt.Printf("anomalies: %d\n", len(snap.Anomalies))

	counts := dataset.CountByKind(snap.Anomalies)
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("  %-22s %d\n", kind, counts[dataset.AnomalyKind(kind)])
	}

	if *verbose {
		fmt.Println()
		for _, a := range snap.Anomalies {
			fmt.Printf("row %d (%s): %s", a.Row, a.Hospital, a.Kind)
			if a.Column != "" {
				fmt.Printf(" column=%s value=%q", a.Column, a.Value)
			}
			fmt.Println()
		}
	}

	if len(snap.Anomalies) > 0 {
		os.Exit(2)
	}
}

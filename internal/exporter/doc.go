// Package exporter turns filtered record views into downloadable CSV
// documents.
//
// WriteRecordsCSV streams directly to an io.Writer so HTTP handlers can
// attach the export without buffering the whole document. Nullable
// fields export as empty cells, matching the source data convention.
package exporter

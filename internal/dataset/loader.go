package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"cardiopulse/pkg/contracts/domain"
)

// Loader reads the cardiac outcomes export into an immutable Snapshot.
type Loader struct {
	logger  *slog.Logger
	maxRows int
}

// NewLoader creates a loader. maxRows of zero disables the row bound.
func NewLoader(logger *slog.Logger, maxRows int) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:  logger.With(slog.String("component", "dataset_loader")),
		maxRows: maxRows,
	}
}

// Load reads the dataset file at path, dispatching on extension. CSV and
// XLSX carry the same logical table and produce identical records.
func (l *Loader) Load(ctx context.Context, path string) (*Snapshot, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = l.readXLSX(path)
	case ".csv":
		rows, err = l.readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q: expected .csv or .xlsx", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	snapshot, err := l.buildSnapshot(ctx, path, rows)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", path),
		slog.Int("source_rows", snapshot.SourceRows),
		slog.Int("records", len(snapshot.Records)),
		slog.Int("anomalies", len(snapshot.Anomalies)))

	return snapshot, nil
}

// readCSV reads all rows of a CSV file.
func (l *Loader) readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows handled downstream

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV records: %w", err)
		}
		rows = append(rows, record)
		if l.maxRows > 0 && len(rows) > l.maxRows {
			return nil, fmt.Errorf("dataset exceeds row bound of %d", l.maxRows)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset file is empty")
	}
	return rows, nil
}

// readXLSX reads all rows of the first sheet that carries the dataset's
// header. Spreadsheets exported by hand often have title or note rows
// above the data, so every sheet is scanned.
func (l *Loader) readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if l.maxRows > 0 && len(rows) > l.maxRows {
			return nil, fmt.Errorf("dataset exceeds row bound of %d", l.maxRows)
		}
		for _, row := range rows {
			if isHeaderCandidate(row) {
				l.logger.Info("found dataset sheet", slog.String("sheet", name))
				return rows, nil
			}
		}
	}

	return nil, fmt.Errorf("no sheet with the expected columns found")
}

// buildSnapshot locates the header row, resolves columns and converts
// every data row into a ProcedureRecord. Rows with data-quality problems
// are flagged and retained; only a missing header or missing required
// columns abort the load.
func (l *Loader) buildSnapshot(ctx context.Context, path string, rows [][]string) (*Snapshot, error) {
	headerIdx := -1
	var cm columnMap
	for i, row := range rows {
		if isHeaderCandidate(row) {
			headerIdx = i
			cm = mapHeader(row)
			break
		}
	}
	if headerIdx == -1 {
		return nil, fmt.Errorf("could not find header row in dataset")
	}
	if err := cm.validate(); err != nil {
		return nil, fmt.Errorf("dataset header incomplete: %w", err)
	}

	var log anomalyLog
	records := make([]domain.ProcedureRecord, 0, len(rows)-headerIdx-1)

	for i := headerIdx + 1; i < len(rows); i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("dataset load cancelled: %w", ctx.Err())
		default:
		}

		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		// Source row numbers are 1-based and include the header offset
		rec := l.buildRecord(cm, row, i+1, &log)
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("dataset has no data rows")
	}

	return newSnapshot(path, len(rows), records, log.anomalies), nil
}

// buildRecord converts one source row, recording anomalies as it goes.
func (l *Loader) buildRecord(cm columnMap, row []string, rowNum int, log *anomalyLog) domain.ProcedureRecord {
	rec := domain.ProcedureRecord{
		FacilityID:     cm.cell(row, colFacilityID),
		HospitalName:   cm.cell(row, colHospitalName),
		Region:         cm.cell(row, colRegion),
		DetailedRegion: cm.cell(row, colDetailedRegion),
		Procedure:      cm.cell(row, colProcedure),
		YearRaw:        cm.cell(row, colYear),
	}

	flag := func(kind AnomalyKind, column, value string) {
		log.add(Anomaly{
			Row:        rowNum,
			FacilityID: rec.FacilityID,
			Hospital:   rec.HospitalName,
			Kind:       kind,
			Column:     column,
			Value:      value,
		})
	}

	start, end, mid, ok := ParseYearRange(rec.YearRaw)
	if !ok && strings.TrimSpace(rec.YearRaw) != "" {
		flag(AnomalyUnparseableYear, colYear, rec.YearRaw)
	}
	rec.StartYear, rec.EndYear, rec.MidYear = start, end, mid

	rec.NumberOfCases = l.countCell(cm, row, colCases, flag)
	rec.NumberOfDeaths = l.countCell(cm, row, colDeaths, flag)

	rec.ObservedRate = l.rateCell(cm, row, colObserved, flag)
	rec.ExpectedRate = l.rateCell(cm, row, colExpected, flag)
	rec.RiskAdjustedRate = l.rateCell(cm, row, colRiskAdjusted, flag)
	rec.CILower = l.rateCell(cm, row, colCILower, flag)
	rec.CIUpper = l.rateCell(cm, row, colCIUpper, flag)

	rawComparison := cm.cell(row, colComparison)
	rec.Comparison = domain.ParseComparisonResult(rawComparison)
	if rec.Comparison == domain.ComparisonUnknown {
		flag(AnomalyUnknownComparison, colComparison, rawComparison)
	}

	// Consistency checks surface problems without correcting the data
	if rec.NumberOfCases != nil && rec.NumberOfDeaths != nil && *rec.NumberOfDeaths > *rec.NumberOfCases {
		flag(AnomalyDeathsExceedCases, colDeaths, cm.cell(row, colDeaths))
	}
	if rec.CILower != nil && rec.CIUpper != nil && *rec.CIUpper < *rec.CILower {
		flag(AnomalyNegativeCIWidth, colCIUpper, cm.cell(row, colCIUpper))
	}

	Derive(&rec)
	return rec
}

// countCell parses a non-negative count column.
func (l *Loader) countCell(cm columnMap, row []string, column string, flag func(AnomalyKind, string, string)) *int64 {
	raw := cm.cell(row, column)
	v, ok := parseNullableInt(raw)
	if !ok {
		flag(AnomalyNonNumeric, column, raw)
		return nil
	}
	if v != nil && *v < 0 {
		flag(AnomalyNegativeCount, column, raw)
		return nil
	}
	return v
}

// rateCell parses a nullable rate column.
func (l *Loader) rateCell(cm columnMap, row []string, column string, flag func(AnomalyKind, string, string)) *float64 {
	raw := cm.cell(row, column)
	v, ok := parseNullableFloat(raw)
	if !ok {
		flag(AnomalyNonNumeric, column, raw)
		return nil
	}
	return v
}

// isEmptyRow reports whether every cell in the row is blank.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

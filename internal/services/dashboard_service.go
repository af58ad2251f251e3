package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"cardiopulse/internal/analytics"
	"cardiopulse/internal/exporter"
	"cardiopulse/pkg/contracts/domain"
)

// DashboardService answers every dashboard read: filtered records, KPI
// aggregates, chart series and CSV export. All methods are pure over the
// snapshot, so concurrent requests need no locking.
type DashboardService struct {
	data     *DatasetService
	validate *validator.Validate
	logger   *slog.Logger

	// defaultTopN bounds the hospital ranking when the request does not
	// say otherwise.
	defaultTopN int
}

// NewDashboardService wires the dashboard reads over the dataset service.
func NewDashboardService(data *DatasetService, defaultTopN int, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultTopN <= 0 {
		defaultTopN = 10
	}
	return &DashboardService{
		data:        data,
		validate:    validator.New(),
		logger:      logger,
		defaultTopN: defaultTopN,
	}
}

// ParseFilterSpec builds a validated FilterSpec from request query
// parameters. Absent or "Overall" selections mean no constraint.
func (s *DashboardService) ParseFilterSpec(values url.Values) (domain.FilterSpec, error) {
	spec := domain.FilterSpec{
		Region:    domain.ParseSelection(values.Get("region")),
		Procedure: domain.ParseSelection(values.Get("procedure")),
		Hospital:  domain.ParseSelection(values.Get("hospital")),
	}

	var err error
	if spec.YearFrom, err = parseYearParam(values.Get("year_from"), "year_from"); err != nil {
		return domain.FilterSpec{}, err
	}
	if spec.YearTo, err = parseYearParam(values.Get("year_to"), "year_to"); err != nil {
		return domain.FilterSpec{}, err
	}

	if err := s.validate.Struct(spec); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			field := strings.ToLower(invalid[0].Field())
			return domain.FilterSpec{}, fmt.Errorf("%w: %s out of range", ErrInvalidYear, field)
		}
		return domain.FilterSpec{}, fmt.Errorf("%w: %v", ErrInvalidYear, err)
	}

	if spec.YearFrom != nil && spec.YearTo != nil && *spec.YearFrom > *spec.YearTo {
		return domain.FilterSpec{}, ErrInvalidYearRange
	}

	return spec, nil
}

// ParseTopN reads the optional "n" parameter bounding the hospital
// ranking, falling back to the configured default.
func (s *DashboardService) ParseTopN(values url.Values) (int, error) {
	raw := strings.TrimSpace(values.Get("n"))
	if raw == "" {
		return s.defaultTopN, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 100 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTopN, raw)
	}
	return n, nil
}

// Options returns the filter option lists for the dashboard controls.
func (s *DashboardService) Options(ctx context.Context) (domain.FilterOptions, error) {
	return s.data.FilterOptions()
}

// Records returns the filtered view of the base table in source order.
func (s *DashboardService) Records(ctx context.Context, spec domain.FilterSpec) ([]domain.ProcedureRecord, error) {
	snap, err := s.data.Snapshot()
	if err != nil {
		return nil, err
	}

	view := analytics.Apply(snap.Records, spec)
	s.logger.DebugContext(ctx, "filter applied",
		slog.Int("base_records", len(snap.Records)),
		slog.Int("view_records", len(view)))
	return view, nil
}

// KPIs computes the headline indicators for the filtered view.
func (s *DashboardService) KPIs(ctx context.Context, spec domain.FilterSpec) (domain.KpiSet, error) {
	view, err := s.Records(ctx, spec)
	if err != nil {
		return domain.KpiSet{}, err
	}
	return analytics.ComputeKPIs(view), nil
}

// Charts builds every chart series for the filtered view. topN bounds
// each side of the hospital ranking; zero or negative means the default.
func (s *DashboardService) Charts(ctx context.Context, spec domain.FilterSpec, topN int) (domain.ChartSet, error) {
	view, err := s.Records(ctx, spec)
	if err != nil {
		return domain.ChartSet{}, err
	}
	if topN <= 0 {
		topN = s.defaultTopN
	}
	return analytics.BuildCharts(view, topN), nil
}

// Export streams the filtered view to w as CSV and reports how many
// records were written.
func (s *DashboardService) Export(ctx context.Context, w io.Writer, spec domain.FilterSpec) (int, error) {
	view, err := s.Records(ctx, spec)
	if err != nil {
		return 0, err
	}
	if err := exporter.WriteRecordsCSV(w, view); err != nil {
		return 0, fmt.Errorf("export csv: %w", err)
	}
	return len(view), nil
}

func parseYearParam(raw, name string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidYear, name, raw)
	}
	return &year, nil
}

package http

import (
	"context"
	"io"
	"net/url"

	"cardiopulse/internal/dataset"
	"cardiopulse/pkg/contracts/domain"
)

// DashboardServiceInterface is the contract the dashboard handler
// depends on, satisfied by services.DashboardService.
type DashboardServiceInterface interface {
	ParseFilterSpec(values url.Values) (domain.FilterSpec, error)
	ParseTopN(values url.Values) (int, error)
	Options(ctx context.Context) (domain.FilterOptions, error)
	Records(ctx context.Context, spec domain.FilterSpec) ([]domain.ProcedureRecord, error)
	KPIs(ctx context.Context, spec domain.FilterSpec) (domain.KpiSet, error)
	Charts(ctx context.Context, spec domain.FilterSpec, topN int) (domain.ChartSet, error)
	Export(ctx context.Context, w io.Writer, spec domain.FilterSpec) (int, error)
}

// AnomalyProvider exposes the load-time data-quality findings, satisfied
// by services.DatasetService.
type AnomalyProvider interface {
	Anomalies() ([]dataset.Anomaly, error)
}

package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// HealthService reports liveness, build information and dataset status.
type HealthService struct {
	version   string
	buildTime string
	buildID   string
	data      *DatasetService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the health check response body.
type HealthStatus struct {
	Status        string        `json:"status"`
	Timestamp     time.Time     `json:"timestamp"`
	Version       string        `json:"version"`
	UptimeSeconds float64       `json:"uptime_seconds"`
	Dataset       DatasetHealth `json:"dataset"`
}

// DatasetHealth summarizes the loaded snapshot.
type DatasetHealth struct {
	Status    string     `json:"status"`
	Path      string     `json:"path,omitempty"`
	Records   int        `json:"records"`
	Anomalies int        `json:"anomalies"`
	LoadedAt  *time.Time `json:"loaded_at,omitempty"`
}

// VersionInfo is the version endpoint response body.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time,omitempty"`
	BuildID   string `json:"build_id,omitempty"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// NewHealthService creates a health service with build information.
func NewHealthService(version, buildTime, buildID string, data *DatasetService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		buildID:   buildID,
		data:      data,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Health reports the overall service status. The service is degraded,
// not down, when the snapshot is missing: the process is alive but every
// dashboard read will fail.
func (s *HealthService) Health(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:        "healthy",
		Timestamp:     time.Now().UTC(),
		Version:       s.version,
		UptimeSeconds: time.Since(s.startTime).Seconds(),
	}

	snap, err := s.data.Snapshot()
	if err != nil {
		status.Status = "degraded"
		status.Dataset = DatasetHealth{Status: "not_loaded"}
		return status
	}

	loadedAt := snap.LoadedAt
	status.Dataset = DatasetHealth{
		Status:    "loaded",
		Path:      snap.Path,
		Records:   len(snap.Records),
		Anomalies: len(snap.Anomalies),
		LoadedAt:  &loadedAt,
	}
	return status
}

// Version reports build and runtime information.
func (s *HealthService) Version(ctx context.Context) VersionInfo {
	return VersionInfo{
		Version:   s.version,
		BuildTime: s.buildTime,
		BuildID:   s.buildID,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

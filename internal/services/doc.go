// Package services holds the application services behind the HTTP
// handlers.
//
// DatasetService owns the immutable snapshot loaded at startup.
// DashboardService parses and validates filter requests and runs the
// analytics over the snapshot. HealthService reports liveness, build
// information and dataset load status.
package services

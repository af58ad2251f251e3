package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardiopulse/internal/config"
)

func TestHealthBeforeLoad(t *testing.T) {
	data := NewDatasetService(config.Default(), nil)
	health := NewHealthService("1.0.0", "", "", data, nil)

	status := health.Health(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "not_loaded", status.Dataset.Status)
	assert.Equal(t, "1.0.0", status.Version)
}

func TestHealthAfterLoad(t *testing.T) {
	data, _ := loadedServices(t,
		`1,Alpha,West,,All PCI,2015,100,2,2.0,2.5,2.1,1.0,3.0,Rate not different than Statewide Rate`,
	)
	health := NewHealthService("1.0.0", "2026-01-01", "abc123", data, nil)

	status := health.Health(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "loaded", status.Dataset.Status)
	assert.Equal(t, 1, status.Dataset.Records)
	require.NotNil(t, status.Dataset.LoadedAt)

	info := health.Version(context.Background())
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "abc123", info.BuildID)
	assert.NotEmpty(t, info.GoVersion)
}

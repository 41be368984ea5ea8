package modes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

func dashboardConfig() config.Config {
	return config.Config{
		Mode: types.DashboardMode,
		HTTP: config.HTTPConfig{Port: "0", MaxUploadMB: 1, ReadTimeout: time.Second, WriteTimeout: time.Second},
		Session: config.SessionConfig{
			Secret:        "secret",
			TTL:           time.Hour,
			Capacity:      2,
			SweepInterval: time.Minute,
		},
		Chart: config.ChartConfig{Scheme: "https"},
	}
}

func TestDashboardService_StopsWithContext(t *testing.T) {
	svc, err := NewDashboard(context.Background(), dashboardConfig(), discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("dashboard service did not stop")
	}
}

func TestNewDashboard_InvalidStore(t *testing.T) {
	cfg := dashboardConfig()
	cfg.Session.Capacity = 0

	_, err := NewDashboard(context.Background(), cfg, discard())
	assert.Error(t, err)
}

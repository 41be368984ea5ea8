package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
)

func discard() logger.Logger {
	return logger.New(io.Discard, "test", logger.LevelError)
}

func TestNewApplication_InvalidMode(t *testing.T) {
	_, err := NewApplication(context.Background(), config.Config{Mode: "admin"}, discard())
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestNewApplication_ReportModeFailure(t *testing.T) {
	cfg := config.Config{
		Mode:   types.ReportMode,
		Import: config.ImportConfig{Dir: filepath.Join(t.TempDir(), "absent")},
	}
	_, err := NewApplication(context.Background(), cfg, discard())
	assert.Error(t, err)
}

func TestRun_ReportMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rides.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date\n2024-07-01\n"), 0o600))

	a, err := NewApplication(context.Background(), config.Config{Mode: types.ReportMode, File: path}, discard())
	require.NoError(t, err)
	assert.ErrorIs(t, a.Run(context.Background()), types.ErrMissingColumn)
}

func TestRun_WithoutService(t *testing.T) {
	assert.ErrorIs(t, (&App{log: discard()}).Run(context.Background()), ErrServiceNotInitialized)
}

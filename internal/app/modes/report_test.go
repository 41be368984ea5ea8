package modes

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
)

const ridesCSV = `Date,Time,Booking_Status,Vehicle_Type,Payment_Method,Booking_Value,Ride_Distance,Driver_Ratings,Customer_Rating
2024-07-01,08:15:00,Success,Auto,Cash,120,4.2,4.1,4.3
2024-07-02,18:05:00,Canceled by Customer,Bike,UPI,0,0,,
`

// syncBuffer is written by the watcher goroutine and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func discard() logger.Logger {
	return logger.New(io.Discard, "test", logger.LevelError)
}

func TestReportService_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rides.csv")
	require.NoError(t, os.WriteFile(path, []byte(ridesCSV), 0o600))

	cfg := config.Config{Mode: types.ReportMode, File: path}
	var out syncBuffer

	svc, err := newReport(context.Background(), cfg, &out, discard())
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))

	assert.Contains(t, out.String(), "# Ride report: rides.csv")
	assert.Contains(t, out.String(), "| Total Rides | 2 |")
}

func TestReportService_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rides.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date\n2024-07-01\n"), 0o600))

	svc, err := newReport(context.Background(), config.Config{Mode: types.ReportMode, File: path}, io.Discard, discard())
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Start(context.Background()), types.ErrMissingColumn)
}

func TestReportService_WatchesImportDir(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{Mode: types.ReportMode, Import: config.ImportConfig{Dir: dir}}
	var out syncBuffer

	svc, err := newReport(context.Background(), cfg, &out, discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	// broken files are logged and skipped
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.csv"), []byte("Date\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "july.csv"), []byte(ridesCSV), 0o600))

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "# Ride report: july.csv")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("report service did not stop")
	}
	assert.NotContains(t, out.String(), "broken.csv")
}

func TestReportService_HandleImportRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date\n2024-07-01\n"), 0o600))

	var logs, out syncBuffer
	svc, err := newReport(context.Background(), config.Config{Mode: types.ReportMode}, &out, logger.New(&logs, "test", logger.LevelDebug))
	require.NoError(t, err)

	svc.handleImport(context.Background(), path)

	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), `"message":"imported file rejected"`)
	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.NotContains(t, logs.String(), `"level":"ERROR"`)
}

func TestNewReport_MissingImportDir(t *testing.T) {
	cfg := config.Config{Mode: types.ReportMode, Import: config.ImportConfig{Dir: filepath.Join(t.TempDir(), "absent")}}
	_, err := newReport(context.Background(), cfg, io.Discard, discard())
	assert.Error(t, err)
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_InjectsContextFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "dashboard", LevelDebug)

	ctx := wrap.WithAction(context.Background(), "upload_dataset")
	ctx = wrap.WithDatasetID(ctx, "ds-42")
	l.Error(ctx, "failed to load dataset", errors.New("missing column"), "file", "rides.csv")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))

	assert.Equal(t, "failed to load dataset", rec["message"])
	assert.Equal(t, "upload_dataset", rec["action"])
	assert.Equal(t, "ds-42", rec["dataset_id"])
	assert.Equal(t, "dashboard", rec["service"])
	assert.Equal(t, "rides.csv", rec["file"])
	assert.Contains(t, rec, "timestamp")

	errGroup, ok := rec["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "missing column", errGroup["msg"])
	assert.NotContains(t, errGroup, "message")
	assert.NotContains(t, rec, "msg")
}

func TestReplaceAttr_TopLevelOnly(t *testing.T) {
	top := replaceAttr(nil, slog.String(slog.MessageKey, "hello"))
	assert.Equal(t, "message", top.Key)

	nested := replaceAttr([]string{"error"}, slog.String(slog.MessageKey, "boom"))
	assert.Equal(t, slog.MessageKey, nested.Key)

	ts := time.Date(2024, 7, 1, 8, 15, 0, 0, time.UTC)
	stamp := replaceAttr(nil, slog.Time(slog.TimeKey, ts))
	assert.Equal(t, "timestamp", stamp.Key)
	assert.Equal(t, "2024-07-01T08:15:00Z", stamp.Value.String())

	inGroup := replaceAttr([]string{"request"}, slog.Time(slog.TimeKey, ts))
	assert.Equal(t, slog.TimeKey, inGroup.Key)
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "dashboard", LevelWarn)

	l.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	l.Warn(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestValidateLogLevel(t *testing.T) {
	for _, lvl := range []string{"DEBUG", "info", "Warn", "ERROR"} {
		assert.True(t, ValidateLogLevel(lvl), lvl)
	}
	assert.False(t, ValidateLogLevel("TRACE"))
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "report", LevelInfo).With("dir", "/imports")

	l.Info(context.Background(), "watching")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "/imports", rec["dir"])
	assert.Equal(t, "report", rec["service"])
}

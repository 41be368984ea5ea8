package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDatasetLoad(t *testing.T) {
	before := testutil.ToFloat64(DatasetsLoadedTotal.WithLabelValues("test", "success"))
	failedBefore := testutil.ToFloat64(DatasetsLoadedTotal.WithLabelValues("test", "error"))

	RecordDatasetLoad("test", 120, nil)
	RecordDatasetLoad("test", 0, errors.New("bad file"))

	assert.Equal(t, before+1, testutil.ToFloat64(DatasetsLoadedTotal.WithLabelValues("test", "success")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(DatasetsLoadedTotal.WithLabelValues("test", "error")))
}

func TestRecordRabbitMQPublish(t *testing.T) {
	key := "analytics.test"
	RecordRabbitMQPublish(key, nil)
	assert.Equal(t, float64(1), testutil.ToFloat64(EventsPublishedTotal.WithLabelValues(key, "success")))
}

func TestRecordHTTPMetrics(t *testing.T) {
	RecordHTTPMetrics("test", "GET", "/health", 200, 10*time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("test", "GET", "/health", "200")))
}

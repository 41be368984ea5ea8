package wrap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLogCtx_MergesFields(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithLogCtx(ctx, LogCtx{Action: "upload"})

	lc := FromContext(ctx)
	assert.Equal(t, "req-1", lc.RequestID)
	assert.Equal(t, "upload", lc.Action)
}

func TestError_NilStaysNil(t *testing.T) {
	assert.NoError(t, Error(context.Background(), nil))
}

func TestErrorCtx_RestoresCapturedContext(t *testing.T) {
	inner := WithDatasetID(WithAction(context.Background(), "load_dataset"), "ds-1")
	base := errors.New("boom")
	err := Error(inner, base)

	outer := WithRequestID(context.Background(), "req-9")
	restored := FromContext(ErrorCtx(outer, fmt.Errorf("handler: %w", err)))

	assert.Equal(t, "load_dataset", restored.Action)
	assert.Equal(t, "ds-1", restored.DatasetID)
	assert.Equal(t, "req-9", restored.RequestID)
	require.ErrorIs(t, err, base)
}

func TestError_RewrapKeepsMessage(t *testing.T) {
	first := Error(WithAction(context.Background(), "parse"), errors.New("bad row"))
	second := Error(WithDatasetID(context.Background(), "ds-2"), fmt.Errorf("load: %w", first))

	assert.Equal(t, "load: bad row", second.Error())
	lc := FromContext(ErrorCtx(context.Background(), second))
	assert.Equal(t, "parse", lc.Action)
	assert.Equal(t, "ds-2", lc.DatasetID)
}

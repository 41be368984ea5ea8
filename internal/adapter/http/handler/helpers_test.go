package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	t "github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

func TestGetCode(tt *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("upload: %w", errMalformedUpload), http.StatusBadRequest},
		{&t.MissingColumnsError{Columns: []string{t.ColDate}}, http.StatusUnprocessableEntity},
		{t.ErrEmptyDataset, http.StatusUnprocessableEntity},
		{t.ErrInvalidDateRange, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: limit", t.ErrFileTooLarge), http.StatusRequestEntityTooLarge},
		{t.ErrDatasetNotFound, http.StatusNotFound},
		{t.ErrInvalidSession, http.StatusUnauthorized},
		{t.ErrSessionMismatch, http.StatusForbidden},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		assert.Equal(tt, tc.code, GetCode(tc.err), tc.err.Error())
	}
}

func TestClientMessage(tt *testing.T) {
	assert.Equal(tt, "missing required columns: Date, Time",
		clientMessage(fmt.Errorf("load: %w", &t.MissingColumnsError{Columns: []string{"Date", "Time"}})))
	assert.Equal(tt, t.ErrDatasetNotFound.Error(), clientMessage(fmt.Errorf("store.Get: %w", t.ErrDatasetNotFound)))
	assert.NotContains(tt, clientMessage(errors.New("pq: password leaked")), "password")
}

func TestDecodeJSON(tt *testing.T) {
	type filter struct {
		Status []string `json:"status"`
	}

	var f filter
	require.NoError(tt, decodeJSON([]byte(`{"status":["Success"]}`), &f))
	assert.Equal(tt, []string{"Success"}, f.Status)

	bad := map[string]string{
		"empty":   ``,
		"syntax":  `{"status":`,
		"type":    `{"status":"Success"}`,
		"unknown": `{"vehicles":["Auto"]}`,
		"two":     `{} {}`,
	}
	for name, body := range bad {
		assert.Error(tt, decodeJSON([]byte(body), &filter{}), name)
	}
}

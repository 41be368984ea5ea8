package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingColumnsError(t *testing.T) {
	err := fmt.Errorf("load: %w", &MissingColumnsError{Columns: []string{ColDate, ColBookingValue}})

	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "Date, Booking_Value")

	var mce *MissingColumnsError
	assert.True(t, errors.As(err, &mce))
	assert.Len(t, mce.Columns, 2)
}

func TestServiceMode_Valid(t *testing.T) {
	assert.True(t, DashboardMode.Valid())
	assert.True(t, ReportMode.Valid())
	assert.False(t, ServiceMode("ride-service").Valid())
}

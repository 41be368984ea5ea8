package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidator_FirstErrorWins(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(false, "from", "must be a date")
	v.Check(false, "from", "second message")
	v.Check(true, "to", "never added")

	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"from": "must be a date"}, v.Errors)
}

func TestPermittedValue(t *testing.T) {
	assert.True(t, PermittedValue("csv", "csv", "xlsx"))
	assert.False(t, PermittedValue("pdf", "csv", "xlsx"))
}

func TestMatches_Date(t *testing.T) {
	assert.True(t, Matches("2024-07-01", DateRX))
	assert.False(t, Matches("01/07/2024", DateRX))
}

func TestUnique(t *testing.T) {
	assert.True(t, Unique([]string{"Auto", "Bike"}))
	assert.False(t, Unique([]string{"Auto", "Auto"}))
}

func TestNotAfter(t *testing.T) {
	d1 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	assert.True(t, NotAfter(d1, d2))
	assert.True(t, NotAfter(d1, d1))
	assert.False(t, NotAfter(d2, d1))
	assert.True(t, NotAfter(time.Time{}, d1))
}

package table

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// Missing marker written into string columns. gota reads it back as NA.
const NA = "NaN"

var dateParser = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats: []string{
		"2006-1-2",
		"2006-1-2 15:04:05",
		"2006-1-2 15:04",
		"2006-1-2T15:04:05Z07:00",
		"2006-1-2T15:04:05",
		"2006/1/2",
		"2006/1/2 15:04:05",
		"1/2/2006",
		"1/2/2006 15:04:05",
		"1/2/2006 15:04",
		"1-2-2006",
		"2-Jan-2006",
		"2 Jan 2006",
		"Jan 2, 2006",
		"2 January 2006",
		"January 2, 2006",
	},
}

var hourLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
	"3:04:05PM",
	"3:04PM",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2T15:04:05Z07:00",
	"2006-1-2T15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// IsMissing reports whether a raw cell is one of the missing markers.
func IsMissing(v string) bool {
	return slices.Contains(types.MissingValues, v)
}

// ParseFloat parses a finite number. Surrounding spaces are ignored.
func ParseFloat(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseDate parses v with day precision.
func ParseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	t, err := dateParser.Parse(v)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// NormalizeDate returns v as YYYY-MM-DD, or NA when it does not parse.
func NormalizeDate(v string) string {
	d, ok := ParseDate(v)
	if !ok {
		return NA
	}
	return d.Format(types.DateLayout)
}

// ParseHour extracts the hour of day from a time or date-time cell.
func ParseHour(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	for _, layout := range hourLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Hour(), true
		}
	}
	return 0, false
}

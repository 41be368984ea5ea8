package loader

import (
	"slices"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// ValidateSchema checks that every required column is present and records which
// optional columns are. Extra columns are kept and ignored.
func ValidateSchema(columns []string) (models.Schema, error) {
	var missing []string
	for _, col := range types.RequiredColumns {
		if !slices.Contains(columns, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return models.Schema{}, &types.MissingColumnsError{Columns: missing}
	}

	optional := make(map[string]bool, len(types.OptionalColumns))
	for _, col := range types.OptionalColumns {
		if slices.Contains(columns, col) {
			optional[col] = true
		}
	}

	return models.Schema{
		Columns:  slices.Clone(columns),
		Optional: optional,
	}, nil
}

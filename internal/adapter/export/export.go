// Package export writes a filtered view back out as CSV or XLSX.
package export

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/Temutjin2k/ride-analytics/internal/domain/table"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

const sheetName = "Sheet1"

// numeric columns are written to spreadsheets as numbers.
var numeric = map[string]bool{
	types.ColBookingValue:   true,
	types.ColRideDistance:   true,
	types.ColDriverRatings:  true,
	types.ColCustomerRating: true,
}

// ContentType returns the MIME type and file extension of format.
func ContentType(format types.FileFormat) (string, string) {
	switch format {
	case types.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx"
	default:
		return "text/csv; charset=utf-8", ".csv"
	}
}

// Write encodes df to w in the given format.
func Write(w io.Writer, df dataframe.DataFrame, format types.FileFormat) error {
	switch format {
	case types.FormatCSV:
		return WriteCSV(w, df)
	case types.FormatXLSX:
		return WriteXLSX(w, df)
	default:
		return fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, format)
	}
}

// WriteCSV writes df with a header row. Missing cells are left empty.
func WriteCSV(w io.Writer, df dataframe.DataFrame) error {
	if err := blankMissing(df).WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteXLSX writes df into the first sheet of a new workbook.
func WriteXLSX(w io.Writer, df dataframe.DataFrame) error {
	f := excelize.NewFile()
	defer f.Close()

	names := df.Names()
	for i, name := range names {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("write xlsx header: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("write xlsx header: %w", err)
		}
	}

	for colIdx, name := range names {
		values := table.Strings(df, name)
		for rowIdx, v := range values {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("write xlsx cell: %w", err)
			}

			var value any = v
			if numeric[name] {
				if num, ok := table.ParseFloat(v); ok {
					value = num
				}
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write xlsx cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func blankMissing(df dataframe.DataFrame) dataframe.DataFrame {
	names := df.Names()
	list := make([]series.Series, len(names))
	for i, name := range names {
		list[i] = series.New(table.Strings(df, name), series.String, name)
	}
	return dataframe.New(list...)
}

// Encoder exposes Write as a method for callers that take it as a dependency.
type Encoder struct{}

func (Encoder) Write(w io.Writer, df dataframe.DataFrame, format types.FileFormat) error {
	return Write(w, df, format)
}

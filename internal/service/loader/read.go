package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

var zipMagic = []byte("PK\x03\x04")

var delimiters = []rune{',', ';', '\t', '|'}

// DetectFormat picks the parser from the content, falling back to the file extension.
func DetectFormat(name string, raw []byte) (types.FileFormat, error) {
	if bytes.HasPrefix(raw, zipMagic) {
		return types.FormatXLSX, nil
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return types.FormatXLSX, nil
	case ".xls", ".ods", ".parquet", ".json":
		return "", fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, filepath.Ext(name))
	default:
		return types.FormatCSV, nil
	}
}

func readRecords(format types.FileFormat, raw []byte) ([][]string, error) {
	if format == types.FormatXLSX {
		return readXLSX(raw)
	}
	return readCSV(raw)
}

// readCSV decodes UTF-8 or BOM marked UTF-16 text and splits it on the sniffed delimiter.
func readCSV(raw []byte) ([][]string, error) {
	text, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode text: %v", types.ErrUnsupportedFormat, err)
	}
	if bytes.IndexByte(text, 0) >= 0 {
		return nil, fmt.Errorf("%w: binary content", types.ErrUnsupportedFormat)
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUnsupportedFormat, err)
	}
	return records, nil
}

// sniffDelimiter returns the candidate occurring most often outside quotes in the header line.
func sniffDelimiter(text []byte) rune {
	header, _, _ := bytes.Cut(text, []byte("\n"))

	counts := make(map[rune]int, len(delimiters))
	inQuotes := false
	for _, r := range string(header) {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}

	best := ','
	for _, d := range delimiters {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

// readXLSX reads the first sheet. Excel serial dates in the Date and Time columns are
// converted to text so they go through the same parsing as delimited files.
func readXLSX(raw []byte) ([][]string, error) {
	file, err := xlsx.OpenBinary(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUnsupportedFormat, err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", types.ErrUnsupportedFormat)
	}

	sheet := file.Sheets[0]
	var (
		records [][]string
		header  []string
	)
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}

		record := make([]string, len(row.Cells))
		blank := true
		for i, cell := range row.Cells {
			if cell == nil {
				continue
			}
			record[i] = cell.Value
			if record[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}

		if header == nil {
			header = record
		} else {
			convertSerials(header, record, file.Date1904)
		}
		records = append(records, record)
	}

	return records, nil
}

func convertSerials(header, record []string, date1904 bool) {
	for i := range record {
		if i >= len(header) {
			return
		}
		col := header[i]
		if col != types.ColDate && col != types.ColTime {
			continue
		}

		serial, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			continue
		}
		t := xlsx.TimeFromExcelTime(serial, date1904)
		if col == types.ColDate {
			record[i] = t.Format(types.DateLayout)
		} else {
			record[i] = t.Format("15:04:05")
		}
	}
}

package export

import (
	"bytes"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Temutjin2k/ride-analytics/internal/domain/table"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

func frame() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{"Completed", table.NA, "Canceled by Driver"}, series.String, types.ColBookingStatus),
		series.New([]string{"Auto", "Bike", "Auto"}, series.String, types.ColVehicleType),
		series.New([]string{"100", "250.5", table.NA}, series.String, types.ColBookingValue),
	)
}

func TestWriteCSV_BlanksMissingCells(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, frame(), types.FormatCSV))

	want := "Booking_Status,Vehicle_Type,Booking_Value\n" +
		"Completed,Auto,100\n" +
		",Bike,250.5\n" +
		"Canceled by Driver,Auto,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_EmptyFrameKeepsHeader(t *testing.T) {
	empty := dataframe.New(
		series.New([]string{}, series.String, types.ColBookingStatus),
		series.New([]string{}, series.String, types.ColBookingValue),
	)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, empty))
	assert.Equal(t, "Booking_Status,Booking_Value\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, frame(), types.FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Booking_Status", "Vehicle_Type", "Booking_Value"}, rows[0])
	assert.Equal(t, []string{"Completed", "Auto", "100"}, rows[1])
	assert.Equal(t, "", rows[2][0])
	assert.Equal(t, "Bike", rows[2][1])

	value, err := f.GetCellValue(sheetName, "C3")
	require.NoError(t, err)
	assert.Equal(t, "250.5", value)
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, frame(), types.FileFormat("parquet"))
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestContentType(t *testing.T) {
	mime, ext := ContentType(types.FormatXLSX)
	assert.Contains(t, mime, "spreadsheetml")
	assert.Equal(t, ".xlsx", ext)

	mime, ext = ContentType(types.FormatCSV)
	assert.Contains(t, mime, "text/csv")
	assert.Equal(t, ".csv", ext)
}

package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDecodeCSV(t *testing.T) {
	t.Run("maps rows onto trimmed headers", func(t *testing.T) {
		input := "name, studentId ,grade\nAsha,STU-1, 5 \nBilal,STU-2,6\n"

		rows, err := DecodeCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "Asha", rows[0]["name"])
		assert.Equal(t, "STU-1", rows[0]["studentId"])
		assert.Equal(t, "5", rows[0]["grade"])
		assert.Equal(t, "6", rows[1]["grade"])
	})

	t.Run("short records leave trailing columns empty", func(t *testing.T) {
		input := "name,studentId,grade\nAsha,STU-1\n"

		rows, err := DecodeCSV(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, "", rows[0]["grade"])
	})

	t.Run("empty input has no header", func(t *testing.T) {
		_, err := DecodeCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrMissingHeader)
	})

	t.Run("header without data rows", func(t *testing.T) {
		_, err := DecodeCSV(strings.NewReader("name,studentId\n"))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})
}

func TestDecodeXLSX(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]string{"name", "studentId", "grade"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]string{"Asha", "STU-1", "5"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A3", &[]string{"", "", ""})) // blank rows are skipped
	require.NoError(t, workbook.SetSheetRow(sheet, "A4", &[]string{"Bilal", "STU-2", "6"}))

	var buf bytes.Buffer
	require.NoError(t, workbook.Write(&buf))

	rows, err := DecodeXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Asha", rows[0]["name"])
	assert.Equal(t, "STU-2", rows[1]["studentId"])
}

func TestDecode(t *testing.T) {
	rows, err := Decode(strings.NewReader("name\nAsha\n"), "roster.CSV")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = Decode(strings.NewReader("irrelevant"), "roster.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCSV(t *testing.T) {
	out, err := Render(FormatCSV, Table{
		Columns: []string{"Student", "Status"},
		Rows:    [][]string{{"Ana", "PENDING"}, {"Budi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Student,Status\nAna,PENDING\nBudi,\n", string(out))
}

func TestRenderPDF(t *testing.T) {
	out, err := Render(FormatPDF, Table{
		Title:   "Bookings",
		Columns: []string{"Student", "Status"},
		Rows:    [][]string{{"Ana", "PENDING"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderRequiresColumns(t *testing.T) {
	_, err := Render(FormatCSV, Table{})
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 10, 5, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "bookings-confirmed-20241005.csv", Filename(FormatCSV, now, "Bookings", "CONFIRMED"))
	assert.Equal(t, "export-20241005.pdf", Filename(FormatPDF, now))
}

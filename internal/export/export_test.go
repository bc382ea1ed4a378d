package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/instalily/leadgen/internal/store"
)

func sampleRows() []store.ExportedLead {
	return []store.ExportedLead{
		{
			LeadID:             "lead-1",
			CompanyName:        "Alpha Signs",
			Industry:           "Signage",
			SourceEvent:        "ISA Sign Expo 2026",
			QualificationScore: 0.91,
			Status:             "new",
			Priority:           "high",
		},
		{
			LeadID:             "lead-2",
			CompanyName:        "Beta Graphics",
			QualificationScore: 0.72,
			Status:             "contacted",
			Priority:           "medium",
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleRows(), FormatJSON))

	var rows []store.ExportedLead
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha Signs", rows[0].CompanyName)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleRows(), FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "lead_id", records[0][0])
	assert.Equal(t, "Alpha Signs", records[1][1])
	assert.Equal(t, "0.91", records[1][7])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleRows(), FormatXLSX))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "company_name", sheet.Rows[0].Cells[1].String())
	assert.Equal(t, "Beta Graphics", sheet.Rows[2].Cells[1].String())

	score, err := sheet.Rows[1].Cells[7].Float()
	require.NoError(t, err)
	assert.InDelta(t, 0.91, score, 1e-9)
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sampleRows(), "parquet")
	assert.Error(t, err)
}

// Package export renders exported lead rows as JSON, CSV or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/instalily/leadgen/internal/store"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var header = []string{
	"lead_id", "company_name", "industry", "size", "location", "website",
	"source_event", "qualification_score", "status", "priority", "rationale",
	"outreach_subject", "created_at",
}

// Write renders rows in the given format.
func Write(w io.Writer, rows []store.ExportedLead, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatXLSX:
		return writeXLSX(w, rows)
	default:
		return eris.Errorf("export: unsupported format %q", format)
	}
}

func writeJSON(w io.Writer, rows []store.ExportedLead) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}

func fields(r store.ExportedLead) []string {
	return []string{
		r.LeadID, r.CompanyName, r.Industry, r.Size, r.Location, r.Website,
		r.SourceEvent, strconv.FormatFloat(r.QualificationScore, 'f', 2, 64),
		r.Status, r.Priority, r.Rationale, r.OutreachSubject, r.CreatedAt,
	}
}

func writeCSV(w io.Writer, rows []store.ExportedLead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, r := range rows {
		if err := cw.Write(fields(r)); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

func writeXLSX(w io.Writer, rows []store.ExportedLead) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	hr := sheet.AddRow()
	for _, h := range header {
		hr.AddCell().Value = h
	}
	for _, r := range rows {
		row := sheet.AddRow()
		for i, v := range fields(r) {
			cell := row.AddCell()
			if i == 7 { // qualification_score as a number
				cell.SetFloat(r.QualificationScore)
				continue
			}
			cell.Value = v
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

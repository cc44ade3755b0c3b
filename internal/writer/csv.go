// Package writer exports extracted ledger entries as CSV for spreadsheet
// review before the entries are handed to a ledger tool.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/riyadhledger/rajhi-importer/internal/models"
)

// CSVWriter writes ledger entries in CSV form.
type CSVWriter struct {
	// IncludeHeader adds account metadata rows before the column header.
	IncludeHeader bool
}

// WriteToFile writes entries to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, cfg models.Config, entries []models.LedgerEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, cfg, entries)
}

// Write writes entries in CSV form to the given writer. Each entry becomes
// one row carrying its single posting.
func (w *CSVWriter) Write(out io.Writer, cfg models.Config, entries []models.LedgerEntry) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if w.IncludeHeader {
		if cfg.Account != "" {
			cw.Write([]string{"# Account", cfg.Account})
		}
		if cfg.Currency != "" {
			cw.Write([]string{"# Currency", cfg.Currency})
		}
	}

	header := []string{"Date", "Flag", "Payee", "Narration", "Amount", "Currency"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, entry := range entries {
		row := []string{
			entry.Date.Format("2006-01-02"),
			entry.Flag,
			entry.Payee,
			entry.Narration,
			"",
			"",
		}
		if len(entry.Postings) > 0 {
			row[4] = entry.Postings[0].Units.String()
			row[5] = entry.Postings[0].Currency
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	return cw.Error()
}

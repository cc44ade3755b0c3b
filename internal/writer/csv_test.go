package writer

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riyadhledger/rajhi-importer/internal/models"
)

func sampleEntries() []models.LedgerEntry {
	return []models.LedgerEntry{
		{
			Date:      time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
			Flag:      "*",
			Payee:     "Some Merchant",
			Narration: "-150.00  on 02/05/23",
			Postings: []models.Posting{{
				Account:  "Liabilities:Rajhi:Visa",
				Units:    decimal.RequireFromString("-150.00"),
				Currency: "SAR",
			}},
		},
		{
			Date:      time.Date(2023, time.June, 10, 0, 0, 0, 0, time.UTC),
			Flag:      "*",
			Payee:     "Advance payment",
			Narration: "CR 1,250.50 SAR on 11/06/23",
			Postings: []models.Posting{{
				Account:  "Liabilities:Rajhi:Visa",
				Units:    decimal.RequireFromString("1250.50"),
				Currency: "SAR",
			}},
		},
	}
}

var sampleConfig = models.Config{
	Account:  "Liabilities:Rajhi:Visa",
	Currency: "SAR",
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, sampleConfig, sampleEntries()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	want := [][]string{
		{"Date", "Flag", "Payee", "Narration", "Amount", "Currency"},
		{"2023-05-01", "*", "Some Merchant", "-150.00  on 02/05/23", "-150", "SAR"},
		{"2023-06-10", "*", "Advance payment", "CR 1,250.50 SAR on 11/06/23", "1250.5", "SAR"},
	}
	for i, row := range want {
		for j, cell := range row {
			if rows[i][j] != cell {
				t.Errorf("row %d col %d: got %q, want %q", i, j, rows[i][j], cell)
			}
		}
	}
}

func TestCSVWriter_IncludeHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, sampleConfig, sampleEntries()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1 // metadata rows are shorter than entry rows
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}

	// Two metadata rows, column header, two entry rows.
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if rows[0][0] != "# Account" || rows[0][1] != "Liabilities:Rajhi:Visa" {
		t.Errorf("unexpected account metadata row: %q", rows[0])
	}
	if rows[1][0] != "# Currency" || rows[1][1] != "SAR" {
		t.Errorf("unexpected currency metadata row: %q", rows[1])
	}
}

func TestCSVWriter_NoEntries(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, sampleConfig, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected only the column header, got %d rows", len(rows))
	}
}

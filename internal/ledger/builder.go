// Package ledger builds normalized ledger entries from extracted
// transaction fields.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riyadhledger/rajhi-importer/internal/models"
)

// statementDateLayout is the dd/mm/yy format printed on statement lines.
const statementDateLayout = "02/01/06"

// Build converts extracted fields into a ledger entry: the posting date
// becomes the entry date, the raw amount becomes a single signed posting
// against the configured account (negative for debits, positive for
// credits), and the narration is synthesized from the settled amount.
// Build is pure; it returns an error only when a captured date or amount is
// not actually valid, in which case the caller drops the record instead of
// failing the document.
func Build(fields models.ExtractedFields, cfg models.Config) (models.LedgerEntry, error) {
	date, err := time.Parse(statementDateLayout, fields.PostingDate)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("posting date %q: %w", fields.PostingDate, err)
	}

	units, err := ParseAmount(fields.RawAmount)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("raw amount %q: %w", fields.RawAmount, err)
	}
	if !fields.IsCredit {
		units = units.Neg()
	}

	flag := cfg.Flag
	if flag == "" {
		flag = models.DefaultFlag
	}

	return models.LedgerEntry{
		Date:      date,
		Flag:      flag,
		Payee:     fields.Payee,
		Narration: Narration(fields),
		Tags:      []string{},
		Links:     []string{},
		Postings: []models.Posting{{
			Account:  cfg.Account,
			Units:    units,
			Currency: cfg.Currency,
		}},
	}, nil
}

// Narration reproduces the statement narration exactly: "CR " for credits
// or "-" for debits, the settled amount as printed, the transaction
// currency and the transaction date. Downstream consumers match on this
// format, so it must not change. A record without a resolved currency
// renders an empty code, leaving a double space before "on".
func Narration(fields models.ExtractedFields) string {
	sign := "-"
	if fields.IsCredit {
		sign = "CR "
	}
	return sign + fields.TransactionAmount + " " + fields.TransactionCurrency +
		" on " + fields.TransactionDate
}

// ParseAmount converts a statement amount such as "1,250.50" into a
// decimal, preserving the printed precision.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

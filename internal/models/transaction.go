package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shape identifies the structural layout of a transaction line on a
// Rajhi credit-card statement.
type Shape string

const (
	// ShapeAdvancePayment is a self-contained line carrying both the raw
	// amount and the settled amount/currency.
	ShapeAdvancePayment Shape = "advance"
	// ShapeAmountAnnotated is a line with an explicit "Amount:" field;
	// payee and description come from the two lines above it.
	ShapeAmountAnnotated Shape = "annotated"
	// ShapePlain is an amount/fee line with free text; payee comes from the
	// line above and description from the line below.
	ShapePlain Shape = "plain"
)

// ExtractedFields holds everything pulled out of one transaction line and
// its neighbors. Amount fields keep the exact captured text, thousands
// separators included, so the narration reproduces the statement verbatim.
type ExtractedFields struct {
	IsCredit            bool
	RawAmount           string
	Fee                 string
	TransactionAmount   string
	TransactionCurrency string // 3-letter code, or "" when the line carries none
	PostingDate         string // dd/mm/yy
	TransactionDate     string // dd/mm/yy
	Payee               string // "" when no neighbor line was available
	Description         string // "" when no neighbor line was available
}

// Posting is a single signed movement against an account.
type Posting struct {
	Account  string          `json:"account"`
	Units    decimal.Decimal `json:"units"`
	Currency string          `json:"currency"`
}

// LedgerEntry is a normalized transaction record: one dated entry with a
// single posting in the statement's configured currency. Entries are built
// once and never mutated afterwards.
type LedgerEntry struct {
	Date      time.Time `json:"date"`
	Flag      string    `json:"flag"`
	Payee     string    `json:"payee,omitempty"`
	Narration string    `json:"narration"`
	Tags      []string  `json:"tags"`
	Links     []string  `json:"links"`
	Postings  []Posting `json:"postings"`
}

// Config is the construction-time configuration for an importer instance.
// It is read-only once bound; there is no runtime reconfiguration.
type Config struct {
	// Account is the ledger account all postings are written against,
	// e.g. "Liabilities:Rajhi:Visa".
	Account string
	// Currency is the statement currency for posting units, e.g. "SAR".
	Currency string
	// CardNumber is the card-identifying token searched for when deciding
	// whether a document belongs to this statement family.
	CardNumber string
	// Flag is the status flag stamped on every entry. Defaults to "*".
	Flag string
}

// DefaultFlag is the cleared-transaction marker used when Config.Flag is
// left empty.
const DefaultFlag = "*"

package parser

import (
	"strings"

	"github.com/riyadhledger/rajhi-importer/internal/models"
)

// advancePayee is the fixed payee stamped on advance payment records.
const advancePayee = "Advance payment"

// classifyAt decides whether the line at index i opens a transaction record
// and extracts its fields. It returns the record, the cursor advance (2 when
// a continuation line was consumed, 1 otherwise) and whether a record was
// produced. Lines that match no shape are skipped without diagnostics:
// statement text is noisy and a false negative is cheaper than a false
// positive.
func classifyAt(lines []string, i int) (Record, int, bool) {
	line := lines[i]

	// Advance payment lines claim the line even when only the phrase is
	// present; a claimed line that still fails the loose pattern is skipped
	// rather than falling through to the standard shapes.
	if strings.Contains(line, "Advance Payment") {
		fields, ok := extractAdvance(line)
		if !ok {
			return Record{}, 1, false
		}
		return Record{Shape: models.ShapeAdvancePayment, Fields: fields, Line: i}, 1, true
	}

	return extractStandard(lines, i)
}

// extractAdvance pulls fields from an advance payment line, preferring the
// strict pattern with an explicit settled amount and currency, then falling
// back to the general shape with sub-extraction over the free text.
func extractAdvance(line string) (models.ExtractedFields, bool) {
	if m := advanceStrictPattern.FindStringSubmatch(line); m != nil {
		return models.ExtractedFields{
			IsCredit:            m[1] != "",
			RawAmount:           m[2],
			Fee:                 m[3],
			TransactionAmount:   m[4],
			TransactionCurrency: m[5],
			PostingDate:         m[6],
			TransactionDate:     m[7],
			Payee:               advancePayee,
		}, true
	}

	m := standardPattern.FindStringSubmatch(line)
	if m == nil {
		return models.ExtractedFields{}, false
	}
	fields := models.ExtractedFields{
		IsCredit:        m[1] != "",
		RawAmount:       m[2],
		Fee:             m[3],
		PostingDate:     m[5],
		TransactionDate: m[6],
		Payee:           advancePayee,
	}
	fields.TransactionAmount, fields.TransactionCurrency = resolveAmountCurrency(m[4])
	if fields.TransactionAmount == "" {
		fields.TransactionAmount = fields.RawAmount
	}
	return fields, true
}

// extractStandard handles the two standard shapes. The annotated pattern is
// tried first; a plain match is retroactively promoted to AmountAnnotated
// when the next line is an "Amount:" continuation, which is then consumed.
func extractStandard(lines []string, i int) (Record, int, bool) {
	line := lines[i]

	if m := annotatedPattern.FindStringSubmatch(line); m != nil {
		fields := models.ExtractedFields{
			IsCredit:          m[1] != "",
			RawAmount:         m[2],
			Fee:               m[3],
			TransactionAmount: m[4],
			PostingDate:       m[6],
			TransactionDate:   m[7],
		}
		_, fields.TransactionCurrency = resolveAmountCurrency(m[5])
		fields.Payee, fields.Description = twoLinesAbove(lines, i)
		return Record{Shape: models.ShapeAmountAnnotated, Fields: fields, Line: i}, 1, true
	}

	m := standardPattern.FindStringSubmatch(line)
	if m == nil {
		return Record{}, 1, false
	}
	fields := models.ExtractedFields{
		IsCredit:        m[1] != "",
		RawAmount:       m[2],
		Fee:             m[3],
		PostingDate:     m[5],
		TransactionDate: m[6],
	}
	fields.TransactionAmount, fields.TransactionCurrency = resolveAmountCurrency(m[4])
	if fields.TransactionAmount == "" {
		fields.TransactionAmount = fields.RawAmount
	}

	if i+1 < len(lines) && continuationPattern.MatchString(lines[i+1]) {
		fields.Payee, fields.Description = twoLinesAbove(lines, i)
		return Record{Shape: models.ShapeAmountAnnotated, Fields: fields, Line: i}, 2, true
	}

	if i > 0 {
		fields.Payee = lines[i-1]
	}
	if i+1 < len(lines) {
		fields.Description = lines[i+1]
	}
	return Record{Shape: models.ShapePlain, Fields: fields, Line: i}, 1, true
}

// twoLinesAbove returns the payee/description pair sourced from the two
// lines preceding index i. Both are absent when fewer than two lines
// precede; the annotated shape never falls back to a single predecessor.
func twoLinesAbove(lines []string, i int) (payee, description string) {
	if i < 2 {
		return "", ""
	}
	return lines[i-2], lines[i-1]
}

// resolveAmountCurrency scans free text already claimed by a shape pattern
// for the settled amount and transaction currency. An adjacent
// "<decimal> <code>" pair wins; otherwise the first bare decimal becomes the
// amount (callers substitute the raw amount when there is none) and a bare
// three-letter uppercase token is searched for independently. Either result
// may be empty.
func resolveAmountCurrency(text string) (amount, currency string) {
	if m := currencyPairPattern.FindStringSubmatch(text); m != nil {
		return m[1], m[2]
	}
	amount = bareDecimalPattern.FindString(text)
	currency = bareCurrencyPattern.FindString(text)
	return amount, currency
}

// Package parser turns the flat line stream of a Rajhi credit-card
// statement into typed transaction records. Statement text arrives with
// inconsistent layout: amounts, dates and descriptive text interleave
// across lines, and three distinct line shapes appear depending on the
// statement variant. The classifier walks the sanitized lines with an
// explicit cursor, consuming up to two neighboring lines per match.
package parser

import "github.com/riyadhledger/rajhi-importer/internal/models"

// Record couples a classified shape with the fields extracted from its line
// and neighbors. Line is the index into the sanitized line stream.
type Record struct {
	Shape  models.Shape
	Fields models.ExtractedFields
	Line   int
}

// Parse sanitizes raw statement text and returns the recognized transaction
// records in source-line order.
func Parse(text string) []Record {
	return ParseLines(Sanitize(text))
}

// ParseLines runs the classifier over an already-sanitized line stream.
// The cursor advance is computed once per classification: 2 when a plain
// match consumed an "Amount:" continuation line, 1 in every other case,
// including lines that produced no record.
func ParseLines(lines []string) []Record {
	var records []Record
	i := 0
	for i < len(lines) {
		rec, advance, ok := classifyAt(lines, i)
		if ok {
			records = append(records, rec)
		}
		i += advance
	}
	return records
}

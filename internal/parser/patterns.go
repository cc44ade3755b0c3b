package parser

import "regexp"

// Amounts as printed on the statement: "150.00", "1,250.50", "73.5".
const decimalPat = `\d{1,3}(?:,\d{3})*\.\d+|\d+\.\d+`

// Dates as printed: dd/mm/yy.
const datePat = `\d{2}/\d{2}/\d{2}`

// advanceStrictPattern matches a fully self-contained advance payment line:
// optional CR marker, raw amount, fee, the literal phrase, arbitrary text,
// settled amount, currency code and the two dates.
//
// Example: "CR 1,250.50 0.00 Advance Payment XYZ 1,250.50 SAR 10/06/23 11/06/23"
var advanceStrictPattern = regexp.MustCompile(
	`^(CR\s+)?(` + decimalPat + `)\s+(` + decimalPat + `)\s+Advance Payment\s+.+?\s+` +
		`(` + decimalPat + `)\s+([A-Z]{3})\s+(` + datePat + `)\s+(` + datePat + `)$`,
)

// standardPattern is the general transaction line: optional CR marker, raw
// amount, fee, free text, two trailing dates. It doubles as the loose
// fallback for advance payment lines the strict pattern rejects.
//
// Example: "150.00 2.00 Some Merchant 01/05/23 02/05/23"
var standardPattern = regexp.MustCompile(
	`^(CR\s+)?(` + decimalPat + `)\s+(` + decimalPat + `)\s+(.+?)\s+` +
		`(` + datePat + `)\s+(` + datePat + `)$`,
)

// annotatedPattern is the standard shape with a mandatory "Amount:" token
// carrying the settled amount before the free text.
//
// Example: "75.00 1.50 Amount: 73.50 USD 05/07/23 06/07/23"
var annotatedPattern = regexp.MustCompile(
	`^(CR\s+)?(` + decimalPat + `)\s+(` + decimalPat + `)\s+Amount:\s+(` + decimalPat + `)\s+(.+?)\s+` +
		`(` + datePat + `)\s+(` + datePat + `)$`,
)

// continuationPattern marks a line that carries only the settled amount of
// the transaction started on the previous line.
var continuationPattern = regexp.MustCompile(`^Amount:\s+(` + decimalPat + `)`)

// Sub-extraction patterns used by the amount/currency resolver.
var (
	currencyPairPattern = regexp.MustCompile(`(` + decimalPat + `)\s+([A-Z]{3})`)
	bareDecimalPattern  = regexp.MustCompile(decimalPat)
	bareCurrencyPattern = regexp.MustCompile(`\b([A-Z]{3})\b`)
)

package parser

import (
	"regexp"
	"strings"
)

// boilerplatePatterns match, at line start, the header and footer noise the
// statement layout repeats on every page: the bidirectional Arabic statement
// titles, the English title, and pagination markers.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ﺔﻴﻧﺎﻤﺘﺋﻻﺍ ﺔﻗﺎﻄﺒﻟﺍ ﺏﺎﺴﺣ ﻒﺸﻛ`),
	regexp.MustCompile(`^credit card statement`),
	regexp.MustCompile(`^Page no\. \d+ of \d+`),
	regexp.MustCompile(`^ﺮﻬﺷ ﺏﺎﺴﺣ ﻒﺸﻛ`),
	regexp.MustCompile(`^[A-Z]+, \d{4} Statement Month`),
}

// StripBoilerplate removes boilerplate lines from raw statement text. All
// other lines are kept verbatim, in their original order.
func StripBoilerplate(text string) []string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if isBoilerplate(line) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// Sanitize prepares raw statement text for classification: boilerplate
// removed, lines trimmed, blank lines dropped. Order is preserved.
func Sanitize(text string) []string {
	var lines []string
	for _, line := range StripBoilerplate(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func isBoilerplate(line string) bool {
	for _, pattern := range boilerplatePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

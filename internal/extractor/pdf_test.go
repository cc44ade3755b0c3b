package extractor

import (
	"strings"
	"testing"
)

func TestIsStatementText(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  bool
	}{
		{
			name: "english statement text",
			pages: []string{
				"credit card statement\nPage no. 1 of 2\n150.00 2.00 Some Merchant 01/05/23 02/05/23",
			},
			want: true,
		},
		{
			name: "bilingual statement text",
			pages: []string{
				"ﺔﻴﻧﺎﻤﺘﺋﻻﺍ ﺔﻗﺎﻄﺒﻟﺍ ﺏﺎﺴﺣ ﻒﺸﻛ credit card statement Date: 15 June 2023",
			},
			want: true,
		},
		{
			name:  "too short",
			pages: []string{"card"},
			want:  false,
		},
		{
			name:  "binary garbage",
			pages: []string{strings.Repeat("\x01\x02\x7f\x03", 50)},
			want:  false,
		},
		{
			name:  "readable but no statement vocabulary",
			pages: []string{strings.Repeat("lorem ipsum dolor sit ", 10)},
			want:  false,
		},
		{
			name:  "empty",
			pages: nil,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isStatementText(tt.pages); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextQualityCountsArabic(t *testing.T) {
	arabic := []string{"ﺔﻴﻧﺎﻤﺘﺋﻻﺍ ﺔﻗﺎﻄﺒﻟﺍ ﺏﺎﺴﺣ ﻒﺸﻛ"}
	if q := textQuality(arabic); q < 0.99 {
		t.Errorf("arabic presentation forms must count as readable, quality %.2f", q)
	}

	garbage := []string{strings.Repeat("\x01\x02\x03\x04", 25)}
	if q := textQuality(garbage); q > 0.1 {
		t.Errorf("control characters must not count as readable, quality %.2f", q)
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	if _, err := ExtractText("does-not-exist.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}

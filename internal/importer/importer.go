// Package importer binds the statement pipeline to a configured card and
// account: it decides whether a document belongs to this statement family,
// derives the statement's nominal date, and runs the extraction pipeline
// over the document text. Each call is independent and side-effect-free, so
// callers may process documents in parallel without coordination.
package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/riyadhledger/rajhi-importer/internal/extractor"
	"github.com/riyadhledger/rajhi-importer/internal/ledger"
	"github.com/riyadhledger/rajhi-importer/internal/models"
	"github.com/riyadhledger/rajhi-importer/internal/parser"
)

// statementDatePattern locates the statement's nominal date line.
var statementDatePattern = regexp.MustCompile(`Date: ([^\n]*)`)

// Importer extracts ledger entries for one configured card. Configuration
// is bound at construction and never changes afterwards.
type Importer struct {
	cfg models.Config
	log zerolog.Logger
}

// New binds the configuration. An empty status flag defaults to the cleared
// marker.
func New(cfg models.Config, log zerolog.Logger) *Importer {
	if cfg.Flag == "" {
		cfg.Flag = models.DefaultFlag
	}
	return &Importer{cfg: cfg, log: log}
}

// Config returns the bound configuration.
func (imp *Importer) Config() models.Config {
	return imp.cfg
}

// Account returns the ledger account postings are written against.
func (imp *Importer) Account() string {
	return imp.cfg.Account
}

// Identify reports whether the document at path is a Rajhi statement for
// the configured card: the file must sniff as a PDF and its extracted text
// must contain the card token. Extraction failures propagate; a document we
// cannot read is the caller's concern.
func (imp *Importer) Identify(path string) (bool, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false, fmt.Errorf("sniff %s: %w", path, err)
	}
	if !mtype.Is("application/pdf") {
		return false, nil
	}

	text, err := extractor.ExtractCombined(path)
	if err != nil {
		return false, err
	}
	return imp.IdentifyText(text), nil
}

// IdentifyText reports whether already-extracted text belongs to the
// configured card. Empty text is undetermined and reported as false. The
// token is matched as a plain substring: card tokens are digit fragments,
// and treating them as patterns would make configuration a foot-gun.
func (imp *Importer) IdentifyText(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return strings.Contains(text, imp.cfg.CardNumber)
}

// Date extracts the statement's nominal date from the document at path.
func (imp *Importer) Date(path string) (time.Time, bool, error) {
	text, err := extractor.ExtractCombined(path)
	if err != nil {
		return time.Time{}, false, err
	}
	date, ok := StatementDate(text)
	return date, ok, nil
}

// StatementDate locates a "Date: <value>" line in statement text and parses
// the value. The layout of the value varies across statement generations,
// so parsing is format-free. Absence of the line, or an unparseable value,
// reports false.
func StatementDate(text string) (time.Time, bool) {
	m := statementDatePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	date, err := dateparse.ParseAny(strings.TrimSpace(m[1]))
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// Extract runs the full pipeline over the document at path and returns its
// ledger entries in source-line order.
func (imp *Importer) Extract(path string) ([]models.LedgerEntry, error) {
	text, err := extractor.ExtractCombined(path)
	if err != nil {
		return nil, fmt.Errorf("extract text from %s: %w", path, err)
	}
	return imp.ExtractText(text), nil
}

// ExtractText runs the pipeline over already-extracted statement text.
// Records whose captured date or amount fails validation are dropped, not
// fatal: losing one malformed line must not lose the rest of the document.
func (imp *Importer) ExtractText(text string) []models.LedgerEntry {
	var entries []models.LedgerEntry
	for _, rec := range parser.Parse(text) {
		entry, err := ledger.Build(rec.Fields, imp.cfg)
		if err != nil {
			imp.log.Debug().Int("line", rec.Line).Str("shape", string(rec.Shape)).
				Err(err).Msg("dropping record")
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

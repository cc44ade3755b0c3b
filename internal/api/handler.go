// Package api exposes the statement pipeline over HTTP for the upload UI.
package api

import (
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/riyadhledger/rajhi-importer/internal/extractor"
	"github.com/riyadhledger/rajhi-importer/internal/importer"
	"github.com/riyadhledger/rajhi-importer/internal/models"
)

// ExtractResponse is the JSON response from POST /api/extract.
type ExtractResponse struct {
	Success       bool                 `json:"success"`
	Error         string               `json:"error,omitempty"`
	Identified    bool                 `json:"identified"`
	StatementDate string               `json:"statementDate,omitempty"`
	Entries       []models.LedgerEntry `json:"entries"`
	Count         int                  `json:"count"`
	TotalDebit    string               `json:"totalDebit"`
	TotalCredit   string               `json:"totalCredit"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Importer *importer.Importer
	Log      zerolog.Logger
}

// Register sets up the HTTP routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.Health)
	app.Post("/api/extract", h.Extract)
}

// Health reports service liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

// Extract accepts a statement PDF upload, runs identification and the
// extraction pipeline, and returns the ledger entries as JSON. The form
// fields account, currency and card override the configured importer for
// this request only.
func (h *Handler) Extract(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded; use form field 'file'")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "only PDF statements are supported")
	}

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "failed to create temp file")
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "failed to save uploaded file")
	}

	mtype, err := mimetype.DetectFile(tmpPath)
	if err != nil || !mtype.Is("application/pdf") {
		return writeError(c, fiber.StatusBadRequest, "uploaded file is not a PDF")
	}

	imp := h.requestImporter(c)

	text, err := extractor.ExtractCombined(tmpPath)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("pdf extraction failed: %v", err))
	}

	resp := ExtractResponse{
		Success:     true,
		Entries:     []models.LedgerEntry{},
		TotalDebit:  decimal.Zero.String(),
		TotalCredit: decimal.Zero.String(),
	}

	resp.Identified = imp.IdentifyText(text)
	if !resp.Identified {
		h.Log.Info().Str("file", fileHeader.Filename).Msg("statement not identified")
		return c.JSON(resp)
	}

	if date, ok := importer.StatementDate(text); ok {
		resp.StatementDate = date.Format("2006-01-02")
	}

	entries := imp.ExtractText(text)
	if entries == nil {
		entries = []models.LedgerEntry{}
	}
	resp.Entries = entries
	resp.Count = len(entries)
	resp.TotalDebit, resp.TotalCredit = totals(entries)

	h.Log.Info().Str("file", fileHeader.Filename).Int("entries", resp.Count).Msg("statement extracted")
	return c.JSON(resp)
}

// requestImporter applies per-request configuration overrides, if any.
func (h *Handler) requestImporter(c *fiber.Ctx) *importer.Importer {
	cfg := h.Importer.Config()
	override := false
	if v := c.FormValue("account"); v != "" {
		cfg.Account = v
		override = true
	}
	if v := c.FormValue("currency"); v != "" {
		cfg.Currency = v
		override = true
	}
	if v := c.FormValue("card"); v != "" {
		cfg.CardNumber = v
		override = true
	}
	if !override {
		return h.Importer
	}
	return importer.New(cfg, h.Log)
}

func totals(entries []models.LedgerEntry) (debit, credit string) {
	sumDebit := decimal.Zero
	sumCredit := decimal.Zero
	for _, entry := range entries {
		for _, posting := range entry.Postings {
			if posting.Units.IsNegative() {
				sumDebit = sumDebit.Add(posting.Units.Abs())
			} else {
				sumCredit = sumCredit.Add(posting.Units)
			}
		}
	}
	return sumDebit.String(), sumCredit.String()
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ExtractResponse{
		Success: false,
		Error:   msg,
		Entries: []models.LedgerEntry{},
	})
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/riyadhledger/rajhi-importer/internal/api"
	"github.com/riyadhledger/rajhi-importer/internal/importer"
	"github.com/riyadhledger/rajhi-importer/internal/logger"
	"github.com/riyadhledger/rajhi-importer/internal/models"
	"github.com/riyadhledger/rajhi-importer/internal/writer"
)

const version = "1.0.0"

func main() {
	accountFlag := flag.String("account", "", "Ledger account for postings, e.g. Liabilities:Rajhi:Visa (env RAJHI_ACCOUNT)")
	currencyFlag := flag.String("currency", "", "Statement currency code, e.g. SAR (env RAJHI_CURRENCY)")
	cardFlag := flag.String("card", "", "Card-identifying token searched for in statements (env RAJHI_CARD)")
	flagFlag := flag.String("flag", models.DefaultFlag, "Status flag stamped on entries")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .csv extension)")
	jsonFlag := flag.Bool("json", false, "Print entries as JSON to stdout instead of writing CSV")
	headerFlag := flag.Bool("header", true, "Include account metadata header rows in CSV")
	identifyFlag := flag.Bool("identify", false, "Only report whether each document is a Rajhi statement")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of processing files")
	addrFlag := flag.String("addr", ":8080", "Listen address for -serve")
	verboseFlag := flag.Bool("verbose", false, "Enable debug logging")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Rajhi Credit Card Statement Importer

Extracts transactions from Al Rajhi Bank credit-card PDF statements and
emits them as normalized ledger entries.

Usage:
  rajhi-importer [flags] <statement.pdf> [statement2.pdf ...]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Extract one statement to CSV
  rajhi-importer -account=Liabilities:Rajhi:Visa -currency=SAR -card=1234 statement.pdf

  # Print entries as JSON
  rajhi-importer -card=1234 -currency=SAR -json statement.pdf

  # Route a folder of mixed documents: only Rajhi statements are processed
  rajhi-importer -card=1234 -currency=SAR downloads/*.pdf

  # Run the HTTP API
  rajhi-importer -card=1234 -currency=SAR -serve -addr=:8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("rajhi-importer v%s\n", version)
		os.Exit(0)
	}

	level := zerolog.InfoLevel
	if *verboseFlag {
		level = zerolog.DebugLevel
	}
	log := logger.New(level)

	// Flags win; the environment fills the gaps.
	godotenv.Load()
	cfg := models.Config{
		Account:    fallback(*accountFlag, "RAJHI_ACCOUNT"),
		Currency:   fallback(*currencyFlag, "RAJHI_CURRENCY"),
		CardNumber: fallback(*cardFlag, "RAJHI_CARD"),
		Flag:       *flagFlag,
	}
	if cfg.CardNumber == "" {
		log.Fatal().Msg("a card token is required (use -card or RAJHI_CARD)")
	}

	imp := importer.New(cfg, log)

	if *serveFlag {
		serve(imp, log, *addrFlag)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	for _, path := range flag.Args() {
		if err := processFile(imp, log, path, *outputFlag, *jsonFlag, *headerFlag, *identifyFlag); err != nil {
			log.Fatal().Str("file", path).Err(err).Msg("processing failed")
		}
	}
}

func processFile(imp *importer.Importer, log zerolog.Logger, path, outputPath string, asJSON, includeHeader, identifyOnly bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", path)
	}

	identified, err := imp.Identify(path)
	if err != nil {
		return fmt.Errorf("identify: %w", err)
	}
	if identifyOnly {
		fmt.Printf("%s: %v\n", path, identified)
		return nil
	}
	if !identified {
		log.Info().Str("file", path).Msg("not a Rajhi statement for this card, skipping")
		return nil
	}

	if date, ok, _ := imp.Date(path); ok {
		log.Info().Str("file", path).Str("statementDate", date.Format("2006-01-02")).Msg("statement identified")
	}

	entries, err := imp.Extract(path)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	log.Info().Str("file", path).Int("entries", len(entries)).Msg("extraction complete")

	if len(entries) == 0 {
		log.Warn().Str("file", path).Msg("no transactions recognized; the statement layout may be a new variant")
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
	}
	w := &writer.CSVWriter{IncludeHeader: includeHeader}
	if err := w.WriteToFile(outPath, imp.Config(), entries); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	log.Info().Str("output", outPath).Msg("csv written")
	return nil
}

func serve(imp *importer.Importer, log zerolog.Logger, addr string) {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20,
	})
	h := &api.Handler{Importer: imp, Log: log}
	h.Register(app)

	log.Info().Str("addr", addr).Msg("listening")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func fallback(value, envKey string) string {
	if value != "" {
		return value
	}
	return os.Getenv(envKey)
}

// partmatch: разовая сверка из командной строки:
//
//	partmatch -catalog mydata.xlsx -text ocr.txt
//	partmatch -catalog mydata.xlsx -image table.jpg
//	tesseract table.jpg - | partmatch -catalog mydata.xlsx
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"partmatch-service/internal/config"
	"partmatch-service/internal/fileio"
	"partmatch-service/internal/ocr"
	"partmatch-service/internal/ocr/tesseract"
	recSvc "partmatch-service/internal/reconcile/service"
)

func main() {
	cfg := config.Load()

	catalogPath := flag.String("catalog", cfg.CatalogPath, "reference catalog (.xlsx, .xls, .csv)")
	textPath := flag.String("text", "", "file with OCR text (default: stdin)")
	imagePath := flag.String("image", "", "image to recognize instead of -text")
	threshold := flag.Float64("threshold", cfg.MatchThreshold, "match threshold 0..1")
	columnGaps := flag.Bool("column-gaps", cfg.ColumnGaps, "split lines on wide gaps between columns")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	if err := run(cfg, logger, *catalogPath, *textPath, *imagePath, *threshold, *columnGaps, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "partmatch:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger zerolog.Logger, catalogPath, textPath, imagePath string,
	threshold float64, columnGaps bool, stdin io.Reader, stdout io.Writer) error {
	cfg.MatchThreshold = threshold
	cfg.ColumnGaps = columnGaps
	opt, err := cfg.MatchOptions()
	if err != nil {
		return err
	}

	catalog, err := fileio.LoadFile(catalogPath)
	if err != nil {
		return err
	}
	logger.Info().Int("sheets", len(catalog)).Int("rows", catalog.Rows()).Msg("catalog loaded")

	var text string
	switch {
	case imagePath != "":
		img, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		engine := ocr.Preprocessed(tesseract.New(cfg.OCRLangs...), uint8(cfg.OCRBinarize))
		text, err = engine.Recognize(context.Background(), img)
		if err != nil {
			return fmt.Errorf("ocr: %w", err)
		}
	case textPath != "":
		b, err := os.ReadFile(textPath)
		if err != nil {
			return fmt.Errorf("read text: %w", err)
		}
		text = string(b)
	default:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(b)
	}

	res := recSvc.Run(text, catalog, opt)
	matched, unmatched, parseErrors := res.Counts()
	logger.Info().Int("matched", matched).Int("unmatched", unmatched).Int("parse_errors", parseErrors).Msg("done")

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

package csvutil

import (
	"encoding/csv"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// ProcessorOptions configures CSV processing behavior.
type ProcessorOptions struct {
	// FieldsPerRecord sets the expected number of fields per record.
	// If 0, it's set to the number of fields in the header.
	FieldsPerRecord int

	// SkipInvalid controls whether to skip invalid records or return an error.
	SkipInvalid bool
}

// ProcessCSV reads a CSV file and parses each record into type T.
// The parser receives the header row alongside every record so it can
// address fields by name. Rows the CSV reader rejects are logged and skipped.
func ProcessCSV[T any](filename string, parser func(header, record []string) (T, error), opts ProcessorOptions) ([]T, error) {
	csvFile, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = csvFile.Close() }()

	if fi, err := csvFile.Stat(); err != nil || fi.Size() == 0 {
		return nil, fmt.Errorf("CSV file is empty or cannot be read")
	}

	return Process(csvFile, parser, opts)
}

// Process is ProcessCSV over an arbitrary reader.
func Process[T any](r io.Reader, parser func(header, record []string) (T, error), opts ProcessorOptions) ([]T, error) {
	reader := csv.NewReader(r)
	if opts.FieldsPerRecord > 0 {
		reader.FieldsPerRecord = opts.FieldsPerRecord
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var items []T

	for {
		record, err := reader.Read()
		if stdErrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn("Error reading record", "error", err)
			continue
		}

		item, err := parser(header, record)
		if err != nil {
			if opts.SkipInvalid {
				slog.Warn("Skipping invalid record", "error", err)
				continue
			}
			return nil, fmt.Errorf("invalid record: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

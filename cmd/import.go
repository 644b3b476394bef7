package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/meslamib3/storiesdb/internal/csvutil"
	"github.com/meslamib3/storiesdb/internal/method"
)

// ImportCmd inserts one method per CSV row
type ImportCmd struct {
	Input string `short:"f" help:"Path to a CSV file whose header names method columns or labels"`
}

func (i *ImportCmd) Run(ctx context.Context, out io.Writer) error {
	input := i.Input
	if input == "" {
		input = viper.GetString("import.csvfile")
	}
	if input == "" {
		return fmt.Errorf("input CSV file is required (provide via --input flag or import.csvfile in config)")
	}

	methods, err := csvutil.ProcessCSV(input, parseMethodRow, csvutil.ProcessorOptions{})
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	for n, m := range methods {
		id, err := store.Insert(ctx, m)
		if err != nil {
			return fmt.Errorf("failed to import row %d after %d inserts: %w", n+1, n, err)
		}
		slog.Debug("Imported method", "id", id, "method_name", m.MethodName)
	}

	slog.Info("Imported methods", "count", len(methods), "file", input)
	_, err = fmt.Fprintf(out, "Imported %d methods from %s\n", len(methods), input)
	return err
}

// parseMethodRow maps a CSV record onto a Method by header name. Headers may be
// column names or form labels; unknown headers are ignored and absent fields stay empty.
func parseMethodRow(header, record []string) (method.Method, error) {
	var m method.Method
	matched := 0
	for i, name := range header {
		column, ok := method.ResolveColumn(name)
		if !ok {
			continue
		}
		matched++
		if i < len(record) {
			m.Set(column, record[i])
		}
	}
	if matched == 0 {
		return method.Method{}, fmt.Errorf("header names no method columns")
	}
	return m, nil
}

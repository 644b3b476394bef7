package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/meslamib3/storiesdb/internal/config"
	"github.com/meslamib3/storiesdb/internal/fileutil"
)

// ExportCmd writes every method to stdout or a file
type ExportCmd struct {
	Output    string `short:"o" help:"Output file; a bare name is placed under export.dir. Writes to stdout when omitted"`
	Format    string `help:"Output format" enum:"json,yaml" default:"json"`
	Overwrite bool   `help:"Replace an existing output file"`
}

func (e *ExportCmd) Run(ctx context.Context, out io.Writer) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	methods, err := store.List(ctx)
	if err != nil {
		return err
	}

	if e.Output == "" {
		data, err := fileutil.Encode(methods, e.Format)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	path := exportPath(e.Output)
	written, err := fileutil.WriteEncodedFile(methods, e.Format, path, config.OverwriteFiles)
	if err != nil {
		return fmt.Errorf("failed to export methods: %w", err)
	}
	if !written {
		return fmt.Errorf("%s already exists (use --overwrite to replace it)", path)
	}

	slog.Info("Exported methods", "count", len(methods), "file", path, "format", e.Format)
	_, err = fmt.Fprintf(out, "Exported %d methods to %s\n", len(methods), path)
	return err
}

// exportPath places bare file names under the configured export directory.
func exportPath(output string) string {
	if filepath.Base(output) != output || config.ExportDir == "" {
		return output
	}
	return filepath.Join(config.ExportDir, output)
}

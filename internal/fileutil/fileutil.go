package fileutil

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FileExists checks if a file exists at the given path
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// Encode marshals data as indented JSON or YAML
func Encode(data any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML, "yml":
		out, err := yaml.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// WriteFileWithOverwrite writes data to a file, respecting the overwrite flag
// Returns true if the file was written, false if it was skipped
func WriteFileWithOverwrite(filePath string, data []byte, perm os.FileMode, overwrite bool) (bool, error) {
	if FileExists(filePath) && !overwrite {
		return false, nil
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, data, perm); err != nil {
		return false, fmt.Errorf("failed to write file: %w", err)
	}

	return true, nil
}

// WriteEncodedFile encodes data in format and writes it, respecting the overwrite flag
// Returns true if the file was written, false if it was skipped
func WriteEncodedFile(data any, format, filePath string, overwrite bool) (bool, error) {
	if FileExists(filePath) && !overwrite {
		slog.Info("File already exists, skipping", "filename", filePath, "overwrite", overwrite)
		return false, nil
	}

	encoded, err := Encode(data, format)
	if err != nil {
		return false, err
	}

	slog.Info("Writing export file", "filename", filePath, "format", format, "overwrite", overwrite)
	return WriteFileWithOverwrite(filePath, encoded, 0644, overwrite)
}

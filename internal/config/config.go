package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Configuration keys
const (
	KeyDBFile      = "db.file"
	KeyServerAddr  = "server.addr"
	KeySubmitRate  = "server.submit_rate"
	KeySubmitBurst = "server.submit_burst"
	KeyLogLevel    = "log.level"
	KeyExportDir   = "export.dir"
)

// Defaults
const (
	DefaultDBFile      = "./stories_methods.db"
	DefaultServerAddr  = "127.0.0.1:8501"
	DefaultSubmitRate  = 5
	DefaultSubmitBurst = 10
	DefaultLogLevel    = "info"
	DefaultExportDir   = "./export/"
)

// Global configuration variables
var (
	// DBFile is the path of the SQLite file holding the methods table
	DBFile string
	// ServerAddr is the listen address of the web UI
	ServerAddr string
	// SubmitRate is the number of form submissions per second the UI accepts
	SubmitRate int
	// SubmitBurst is the number of submissions accepted in a burst
	SubmitBurst int
	// LogLevel is one of debug, info, warn, error
	LogLevel string
	// ExportDir holds export files named without a directory
	ExportDir string
	// OverwriteFiles controls whether export replaces an existing file
	OverwriteFiles bool
)

// SetDefaults registers default values with viper
func SetDefaults() {
	viper.SetDefault(KeyDBFile, DefaultDBFile)
	viper.SetDefault(KeyServerAddr, DefaultServerAddr)
	viper.SetDefault(KeySubmitRate, DefaultSubmitRate)
	viper.SetDefault(KeySubmitBurst, DefaultSubmitBurst)
	viper.SetDefault(KeyLogLevel, DefaultLogLevel)
	viper.SetDefault(KeyExportDir, DefaultExportDir)
	viper.SetDefault("OverwriteFiles", false)
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	// Get values from viper
	DBFile = viper.GetString(KeyDBFile)
	ServerAddr = viper.GetString(KeyServerAddr)
	SubmitRate = viper.GetInt(KeySubmitRate)
	SubmitBurst = viper.GetInt(KeySubmitBurst)
	LogLevel = viper.GetString(KeyLogLevel)
	ExportDir = viper.GetString(KeyExportDir)
	OverwriteFiles = viper.GetBool("OverwriteFiles")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// ParseLogLevel converts a level name to a slog.Level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

package cmd

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/meslamib3/storiesdb/internal/config"
	"github.com/meslamib3/storiesdb/internal/datastore"
	"github.com/meslamib3/storiesdb/internal/errors"
	"github.com/meslamib3/storiesdb/internal/tui"
	"github.com/meslamib3/storiesdb/internal/web"
)

var (
	openStore = func(ctx context.Context, opts ...datastore.Option) (datastore.Store, error) {
		return datastore.Open(ctx, config.DBFile, opts...)
	}
	selectMethod = tui.SelectMethod
	serveUI      = web.Serve

	stdin io.Reader = os.Stdin
)

// CLI represents the complete command structure for the storiesdb application
type CLI struct {
	// Global flags
	DB       string `help:"Path to the methods SQLite database file" default:"${db_file}"`
	LogLevel string `help:"Log level: debug, info, warn or error" default:"${log_level}"`

	Serve  ServeCmd  `cmd:"" help:"Serve the method management web UI"`
	Init   InitCmd   `cmd:"" help:"Create the methods table if it does not exist"`
	List   ListCmd   `cmd:"" help:"List all methods"`
	Show   ShowCmd   `cmd:"" help:"Show every field of one method"`
	Delete DeleteCmd `cmd:"" help:"Delete one method"`
	Export ExportCmd `cmd:"" help:"Export all methods as JSON or YAML"`
	Import ImportCmd `cmd:"" help:"Import methods from a CSV file"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(slog.LevelInfo)

	if err := initConfig(); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var cli CLI
	kctx := kong.Parse(&cli, kongOptions()...)

	if err := updateGlobalConfig(&cli); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	level, _ := config.ParseLogLevel(config.LogLevel)
	initLogging(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, kctx)
	stop()

	if errors.IsStopProcessingError(err) {
		slog.Info("Stopped by user")
		return
	}
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// kongOptions builds the parser options. Flag defaults come from the loaded configuration.
func kongOptions() []kong.Option {
	return []kong.Option{
		kong.Name("storiesdb"),
		kong.Description("Record and maintain the StoRIES catalogue of research methods."),
		kong.UsageOnError(),
		kong.Vars{
			"db_file":     config.DBFile,
			"log_level":   config.LogLevel,
			"server_addr": config.ServerAddr,
			"submit_rate": strconv.Itoa(config.SubmitRate),
		},
	}
}

// run executes the selected command with the context and output writer bound.
func run(ctx context.Context, kctx *kong.Context) error {
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.BindTo(kctx.Stdout, (*io.Writer)(nil))
	return kctx.Run()
}

func initConfig() error {
	config.SetDefaults()

	// STORIESDB_DB_FILE, STORIESDB_SERVER_ADDR, ...
	viper.SetEnvPrefix("STORIESDB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stdErrors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		slog.Debug("Config file not found, using defaults and environment")
	}

	config.InitConfig()
	return nil
}

func updateGlobalConfig(cli *CLI) error {
	if _, err := config.ParseLogLevel(cli.LogLevel); err != nil {
		return err
	}

	config.DBFile = cli.DB
	config.LogLevel = cli.LogLevel
	config.SetOverwriteFiles(cli.Export.Overwrite)

	viper.Set(config.KeyDBFile, cli.DB)
	viper.Set(config.KeyLogLevel, cli.LogLevel)
	return nil
}

func initLogging(level slog.Level) {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/meslamib3/storiesdb/internal/config"
	"github.com/meslamib3/storiesdb/internal/datastore"
	"github.com/meslamib3/storiesdb/internal/metrics"
	"github.com/meslamib3/storiesdb/internal/ratelimit"
	"github.com/meslamib3/storiesdb/internal/web"
)

// ServeCmd runs the web UI until interrupted
type ServeCmd struct {
	Addr       string `help:"Listen address" default:"${server_addr}"`
	SubmitRate int    `help:"Form submissions accepted per second (0 disables the limit)" default:"${submit_rate}"`
}

// InitCmd creates the methods table
type InitCmd struct{}

func (s *ServeCmd) Run(ctx context.Context) error {
	config.ServerAddr = s.Addr
	config.SubmitRate = s.SubmitRate

	m := metrics.New()
	store, err := openStore(ctx, datastore.WithMetrics(m))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	limiter := ratelimit.New("submit", config.SubmitRate, config.SubmitBurst)
	srv, err := web.NewServer(store, web.WithMetrics(m), web.WithSubmitLimiter(limiter))
	if err != nil {
		return err
	}

	slog.Info("Starting StoRIES method management",
		"addr", config.ServerAddr,
		"db", config.DBFile,
		"submit_rate", config.SubmitRate,
		"submit_burst", config.SubmitBurst)
	return serveUI(ctx, config.ServerAddr, srv.Handler())
}

func (i *InitCmd) Run(ctx context.Context, out io.Writer) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	_, err = fmt.Fprintf(out, "Methods table ready in %s\n", config.DBFile)
	return err
}

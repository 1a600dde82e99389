package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contractgen/pkg/counter"
	"github.com/goliatone/go-contractgen/pkg/server"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the form over a JSON API",
	Long: `Serves the form API on --listen. When database.url is configured the
next-number counter is mounted at /next-number as well.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, cleanup, err := buildHandler(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := listenAddr
	if addr == "" {
		addr = cfg.Server.Listen
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildHandler(ctx context.Context) (http.Handler, func(), error) {
	stack, err := newStack()
	if err != nil {
		return nil, nil, err
	}
	opts := []server.Option{
		server.WithUploader(stack.Renderer),
		server.WithLogger(logger),
		server.WithMaxCoverBytes(cfg.Server.MaxCoverBytes),
	}

	cleanup := func() {}
	if cfg.Database.URL != "" {
		pool, err := counter.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		cleanup = pool.Close
		opts = append(opts, server.WithCounter(counter.NewHandler(counter.NewPGStore(pool), logger)))
	}

	// The initial number load is best effort; failures are logged by numbering.
	stack.Controller.LoadNumber(ctx)

	return server.New(stack.Controller, opts...).Handler(), cleanup, nil
}

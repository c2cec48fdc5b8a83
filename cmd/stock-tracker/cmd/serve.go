package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/stock-tracker/api/openapi"
	"github.com/donaldgifford/stock-tracker/internal/api/handlers"
	"github.com/donaldgifford/stock-tracker/internal/api/middleware"
	"github.com/donaldgifford/stock-tracker/internal/engine"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and digest scheduler",
		Long: "Start the HTTP API. When alerts.digest_schedule is set, a stock digest\n" +
			"is also sent on that cron schedule.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	e := newServer(a)

	var sched *engine.Scheduler
	if spec := a.cfg.Alerts.DigestSchedule; spec != "" {
		sched, err = engine.NewScheduler(a.engine, spec, a.log)
		if err != nil {
			return err
		}
		sched.Start()
		a.log.Info("digest scheduled", "schedule", spec)
	}

	// Prime the stock gauges before the first scrape.
	if _, err := a.engine.Summary(ctx); err != nil {
		a.log.Warn("initial summary failed", "error", err)
	}

	addr := a.cfg.Server.Addr()
	a.log.Info("starting server", "addr", addr, "driver", a.cfg.Database.Driver, "version", Version)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	a.log.Info("shutting down server")

	if sched != nil {
		<-sched.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	a.log.Info("server stopped")
	return nil
}

// newServer builds the echo instance with every route registered.
func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = a.cfg.Server.ReadTimeout
	e.Server.WriteTimeout = a.cfg.Server.WriteTimeout

	e.Use(
		middleware.Recovery(a.log),
		middleware.RequestLog(a.log),
		middleware.Metrics(),
	)

	humaCfg := huma.DefaultConfig("Stock Tracker API", Version)
	humaCfg.Info.Description = "Telecom equipment inventory: stock buckets, imports and alerts."
	humaCfg.DocsPath = ""
	humaCfg.OpenAPIPath = ""
	api := humaecho.New(e, humaCfg)

	handlers.RegisterEquipmentRoutes(api, handlers.NewEquipmentHandler(a.engine))
	handlers.RegisterImportRoutes(api, handlers.NewImportHandler(
		a.engine,
		a.cfg.Import.SkipInvalidRows,
		a.cfg.Server.MaxUploadSize,
	))
	handlers.RegisterDigestRoutes(api, handlers.NewDigestHandler(a.engine))
	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(a.engine))
	openapi.RegisterRoutes(e, api)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"informant/internal/controllers"
	"informant/internal/providers"
	"informant/internal/services"
	"informant/internal/storage/interfaces"
	"informant/internal/structures"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
	conf      *structures.Config
	logger    providers.Logger
	scheduler interfaces.SchedulerInterface
}

func NewApp(healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	instrumentedAPI := providers.MetricsMiddleware(metrics, logger, apiMux)

	// Outer mux: infrastructure + instrumented API
	infra := providers.NewRouterProvider()
	infra.Get("/health", http.HandlerFunc(healthController.Health))
	if conf.Metrics.Enabled {
		infra.Get("/metrics", promhttp.Handler())
	}
	mux := http.NewServeMux()
	for _, route := range infra.GetRoutes() {
		mux.Handle(route.Url, route.Handler)
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:      conf,
		logger:    logger,
		scheduler: scheduler,
	}
}

// Run restores the last snapshot, loads the exports, serves HTTP until SIGINT or SIGTERM
// and persists a final snapshot.
func (app *App) Run() error {
	app.logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)
	if err := app.scheduler.Restore(); err != nil {
		app.logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}
	if _, err := app.scheduler.Reload(); err != nil && !errors.Is(err, services.ErrReloadInProgress) {
		app.logger.Warnf(providers.TypeApp, "Initial load failed, serving restored history: %s", err)
	}

	app.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		app.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		app.scheduler.Stop()
		if perr := app.scheduler.Persist(); perr != nil {
			return errors.Join(fmt.Errorf("server error: %w", err), perr)
		}
		return fmt.Errorf("server error: %w", err)
	}

	app.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	shutdownErr := app.WebServer.Shutdown(ctx)
	if err := app.scheduler.Persist(); err != nil {
		return errors.Join(shutdownErr, err)
	}
	if shutdownErr != nil {
		return shutdownErr
	}
	app.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}

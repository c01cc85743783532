package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/totegamma/confadmin/client"
	"github.com/totegamma/confadmin/internal/config"
	"github.com/totegamma/confadmin/internal/infra/database"
	"github.com/totegamma/confadmin/internal/infra/repository"
	"github.com/totegamma/confadmin/internal/logging"
	"github.com/totegamma/confadmin/internal/present/rest"
	restmiddleware "github.com/totegamma/confadmin/internal/present/rest/middleware"
	"github.com/totegamma/confadmin/internal/service"
	"github.com/totegamma/confadmin/internal/telemetry"
	"github.com/totegamma/confadmin/internal/usecase"
)

const serviceName = "confadmin"

func main() {
	configPath := flag.String("config", os.Getenv("CONFADMIN_CONFIG"), "path to config yaml")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Setup(logging.Options{Level: conf.Log.Level, Format: conf.Log.Format}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, conf.Server.TraceEndpoint, conf.Server.EnableTrace)
	if err != nil {
		slog.Error("failed to set up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			slog.Warn("failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	backend := client.New(conf.Backend.URL).WithUserAgent(conf.Backend.UserAgent)

	var trigger usecase.Trigger = service.NewLocalSignal()
	if conf.Server.RedisAddr != "" {
		rdb, err := database.NewRedis(ctx, conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
		if err != nil {
			slog.Error("failed to connect redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer rdb.Close()
		trigger = service.NewSignalService(rdb, conf.Server.InstanceID)
	}

	broadcaster := service.NewBroadcaster()
	publishers := service.Publishers{broadcaster}

	var viewCache *repository.ViewCache
	if conf.Server.MemcachedAddr != "" {
		mc, err := database.NewMemcached(conf.Server.MemcachedAddr)
		if err != nil {
			slog.Warn("memcached unavailable, view snapshots disabled", slog.String("error", err.Error()))
		} else {
			viewCache = repository.NewViewCache(mc)
			publishers = append(publishers, viewCache)
		}
	}

	sessionUC := usecase.NewSessionUsecase(backend)
	conferenceUC := usecase.NewConferenceUsecase(backend, sessionUC, trigger)
	speakerUC := usecase.NewSpeakerUsecase(backend, sessionUC, conferenceUC, publishers)
	dashboard := usecase.NewDashboard(conferenceUC, sessionUC, speakerUC)

	if viewCache != nil {
		if err := speakerUC.Restore(ctx, viewCache); err != nil {
			slog.Info("no speaker view snapshot restored", slog.String("reason", err.Error()))
		}
	}

	if err := dashboard.Refresh(ctx); err != nil {
		slog.Error("initial refresh failed", slog.String("error", err.Error()))
	}

	go func() {
		if err := dashboard.Watch(ctx, trigger); err != nil {
			slog.Error("speaker update watcher stopped", slog.String("error", err.Error()))
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(otelecho.Middleware(serviceName))
	e.Use(restmiddleware.RequestContext)

	handler := rest.NewHandler(speakerUC, sessionUC, conferenceUC, broadcaster)
	handler.RegisterRoutes(e)

	go func() {
		slog.Info("listening", slog.String("addr", conf.Server.Listen), slog.String("backend", conf.Backend.URL))
		if err := e.Start(conf.Server.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"plantillas-system/internal/integrations"
	"plantillas-system/internal/integrations/excel"
	"plantillas-system/internal/integrations/localfile"
	"plantillas-system/internal/integrations/mock"
	"plantillas-system/internal/integrations/sharepoint"
	"plantillas-system/internal/listeners"
	"plantillas-system/internal/repositories"
	"plantillas-system/internal/routes"
	"plantillas-system/internal/services"
	"plantillas-system/migrations"
	"plantillas-system/pkg/config"
	"plantillas-system/pkg/customvalidator"
	"plantillas-system/pkg/database/postgresql"
	apperrors "plantillas-system/pkg/errors"
	"plantillas-system/pkg/eventbus"
	applogger "plantillas-system/pkg/logger"
	"plantillas-system/pkg/middleware"
	"plantillas-system/pkg/utils"
	appwebsocket "plantillas-system/pkg/websocket"
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.File, cfg.Log.Level)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic en el handler",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Error interno del servidor", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.Server.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.InjectLogger(logger))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("error registrando reglas de validación", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("no se pudo conectar a PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	if err := postgresql.Migrate(ctx, dbConn, migrations.FS); err != nil {
		logger.Fatal("error aplicando migraciones", zap.Error(err))
	}

	// Redis is optional; without it the cache has no second tier.
	var snapshots repositories.TicketSnapshotRepositoryInterface
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis no disponible, se continúa sin snapshot", zap.Error(err), zap.String("address", cfg.Redis.Address))
		} else {
			snapshots = repositories.NewTicketSnapshotRepository(
				repositories.NewRedisCacheRepository(redisClient),
				0,
			)
		}
	}

	parser := excel.NewParser(cfg.Feed.SheetName, cfg.Feed.RecencyDays, nil)
	registry := integrations.NewRegistry()
	for _, provider := range []integrations.TicketProvider{
		sharepoint.New(cfg.Feed.DownloadURL, cfg.Feed.AccessToken, parser, logger),
		localfile.New(cfg.Feed.FilePath, parser),
		mock.NewMockProvider(),
	} {
		if err := registry.Register(provider); err != nil {
			logger.Fatal("error registrando proveedor", zap.Error(err))
		}
	}
	if err := registry.SetActive(cfg.Feed.Provider); err != nil {
		logger.Fatal("proveedor de tickets desconocido", zap.Error(err), zap.Strings("disponibles", registry.Names()))
	}
	provider, err := registry.GetActive()
	if err != nil {
		logger.Fatal("sin proveedor de tickets activo", zap.Error(err))
	}
	logger.Info("proveedor de tickets", zap.String("provider", provider.Name()))

	hub := appwebsocket.NewHub(logger)
	go hub.Run(ctx)

	bus := eventbus.New(logger)
	listeners.NewRealtimeListener(hub, logger).Register(bus)

	ticketCache := services.NewTicketCache(services.TicketCacheConfig{
		Fetch:     provider.FetchTickets,
		TTL:       cfg.Feed.CacheTTL,
		Snapshots: snapshots,
		Publisher: bus,
	}, logger)

	routes.InitRouter(e, dbConn, routes.Dependencies{
		Tickets:     ticketCache,
		Publisher:   bus,
		Hub:         hub,
		Environment: cfg.Server.Env,
		Logger:      logger,
	})

	go func() {
		logger.Info("servidor iniciado", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("error iniciando el servidor", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("error cerrando el servidor", zap.Error(err))
	}
}

package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"plantillas-system/internal/controllers"
	"plantillas-system/internal/repositories"
	"plantillas-system/internal/services"
	"plantillas-system/pkg/eventbus"
	appwebsocket "plantillas-system/pkg/websocket"
)

// Dependencies are the long-lived components built by main before routing.
type Dependencies struct {
	Tickets     services.TicketCacheInterface
	Publisher   eventbus.Publisher
	Hub         *appwebsocket.Hub
	Environment string
	Logger      *zap.Logger
}

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, deps Dependencies) {
	logger := deps.Logger
	logger.Info("InitRouter: creando rutas")

	api := e.Group("/api")
	txManager := repositories.NewTxManager(dbConn)

	// --- repositorios ---
	plantillaRepo := repositories.NewPlantillaRepository(dbConn)
	tallaRepo := repositories.NewTallaDetalleRepository(dbConn)
	programacionRepo := repositories.NewProgramacionRepository(dbConn)
	catalogRepo := repositories.NewCatalogRepository(dbConn)

	// --- servicios ---
	ticketService := services.NewTicketService(deps.Tickets, plantillaRepo, tallaRepo, programacionRepo, logger)
	plantillaService := services.NewPlantillaService(
		deps.Tickets, plantillaRepo, tallaRepo, programacionRepo, txManager, deps.Publisher, logger,
	)
	catalogService := services.NewCatalogService(catalogRepo, logger)

	// --- controladores ---
	ticketCtrl := controllers.NewTicketController(ticketService, plantillaService, logger)
	plantillaCtrl := controllers.NewPlantillaController(plantillaService, logger)
	catalogCtrl := controllers.NewCatalogController(catalogService, logger)
	healthCtrl := controllers.NewHealthController(deps.Environment)

	e.GET("/health", healthCtrl.Health)
	if deps.Hub != nil {
		wsCtrl := controllers.NewWebSocketController(deps.Hub, logger)
		e.GET("/ws", wsCtrl.ServeWs)
	}

	runTicketRouter(api, ticketCtrl)
	runPlantillaRouter(api, plantillaCtrl)
	runCatalogRouter(api, catalogCtrl)

	logger.Info("InitRouter: rutas creadas")
}

package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"trackhub/internal/authz"
	"trackhub/internal/controllers"
	"trackhub/internal/repositories"
	"trackhub/internal/services"
	"trackhub/pkg/config"
	"trackhub/pkg/middleware"
	"trackhub/pkg/service"
)

// InitRouter wires repositories, services and controllers, registers
// every route and installs the policy gate on the /api group.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, cfg *config.Config, logger *zap.Logger) {
	table := authz.NewRouteTable()
	api := e.Group("/api")

	txManager := repositories.NewTxManager(dbConn)
	cache := repositories.NewRedisCacheRepository(redisClient)

	userRepo := repositories.NewUserRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	interventionRepo := repositories.NewInterventionRepository(dbConn, logger)
	locationRepo := repositories.NewLocationRepository(dbConn, logger)
	typeRepo := repositories.NewEquipmentTypeRepository(dbConn)
	statusRepo := repositories.NewEquipmentStatusRepository(dbConn)
	outcomeRepo := repositories.NewInterventionOutcomeRepository(dbConn)

	authService := services.NewAuthService(userRepo, jwtSvc, logger)
	userService := services.NewUserService(userRepo, txManager, cache, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, interventionRepo, txManager, cache, logger)
	interventionService := services.NewInterventionService(interventionRepo, equipmentRepo, txManager, cache, logger)
	locationService := services.NewLocationService(locationRepo, txManager, logger)
	exportService := services.NewExportService(equipmentService, interventionService)
	homeService := services.NewHomeService(
		equipmentRepo, interventionRepo, userRepo,
		statusRepo, typeRepo, outcomeRepo,
		cache, cfg.Dashboard.StatsCacheTTL, logger,
	)

	registerAuthRoutes(api, table, controllers.NewAuthController(authService, logger))
	registerUserRoutes(api, table, controllers.NewUserController(userService, logger))
	registerEquipmentRoutes(api, table, controllers.NewEquipmentController(equipmentService, exportService, logger))
	registerInterventionRoutes(api, table, controllers.NewInterventionController(interventionService, exportService, logger))
	registerLocationRoutes(api, table, controllers.NewLocationController(locationService, logger))
	registerDictionaryRoutes(api, table,
		controllers.NewDictionaryController(services.NewDictionaryService(typeRepo), "equipment type", logger),
		controllers.NewDictionaryController(services.NewDictionaryService(statusRepo), "equipment status", logger),
		controllers.NewDictionaryController(services.NewDictionaryService(outcomeRepo), "intervention outcome", logger),
	)
	registerHomeRoutes(api, table, controllers.NewHomeController(homeService, logger))

	gate := middleware.NewGate(jwtSvc, table, logger)
	api.Use(gate.Enforce)
}

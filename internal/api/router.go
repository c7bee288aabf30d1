package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/echallan/enforcement-platform/internal/api/handler"
	"github.com/echallan/enforcement-platform/internal/api/middleware"
	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/service"
	mongorepo "github.com/echallan/enforcement-platform/internal/infrastructure/db/mongo"
	"github.com/echallan/enforcement-platform/internal/infrastructure/storage"
)

// RouterDeps carries everything the router needs that is built in main:
// connections, the detection dispatcher, the evidence store, and config.
type RouterDeps struct {
	DB            *mongo.Database
	Redis         *redis.Client
	Dispatcher    handler.DetectionDispatcher
	EvidenceStore storage.EvidenceStore
	JWTSecret     string
	UploadsDir    string // non-empty = serve /uploads statically
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("echallan"))

	// --- Repositories ---
	authRepo := mongorepo.NewAuthRepository(deps.DB)
	vehicleRepo := mongorepo.NewVehicleRepository(deps.DB)
	violationRepo := mongorepo.NewViolationRepository(deps.DB)
	paymentRepo := mongorepo.NewPaymentRepository(deps.DB)
	supportRepo := mongorepo.NewSupportRepository(deps.DB)
	cameraRepo := mongorepo.NewCameraRepository(deps.DB)

	// --- Services ---
	authService := service.NewAuthService(authRepo, vehicleRepo, deps.JWTSecret, 24*time.Hour)
	violationService := service.NewViolationService(violationRepo, deps.Log)
	challanService := service.NewChallanService(violationRepo, paymentRepo, authRepo, vehicleRepo, deps.Log)
	supportService := service.NewSupportService(supportRepo, violationRepo, authRepo)
	cameraService := service.NewCameraService(cameraRepo)
	statsService := service.NewStatsService(violationRepo, cameraRepo, authRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(authService)
	violationHandler := handler.NewViolationHandler(violationService)
	uploadHandler := handler.NewUploadHandler(deps.EvidenceStore, violationService)
	detectionHandler := handler.NewDetectionHandler(deps.Dispatcher)
	challanHandler := handler.NewChallanHandler(challanService)
	supportHandler := handler.NewSupportHandler(supportService)
	cameraHandler := handler.NewCameraHandler(cameraService)
	statsHandler := handler.NewStatsHandler(statsService)

	authMW := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	userOnly := middleware.RBAC(domain.RoleUser)

	// --- Public routes ---
	e.POST("/api/auth/register-user", authHandler.RegisterUser)
	e.POST("/api/auth/register-admin", authHandler.RegisterAdmin)
	e.POST("/api/auth/login", authHandler.Login)

	// Edge devices are on a trusted network segment; no auth on ingestion.
	e.POST("/api/upload", uploadHandler.Receive)
	e.POST("/api/detections", detectionHandler.Receive)
	e.POST("/api/detections/batch", detectionHandler.ReceiveBatch)

	if deps.UploadsDir != "" {
		e.Static("/uploads", deps.UploadsDir)
	}

	// --- Admin routes ---
	e.GET("/api/violations", violationHandler.List, authMW, adminOnly)

	admin := e.Group("/api/admin", authMW, adminOnly)
	admin.GET("/challans", challanHandler.ListAll)
	admin.GET("/cameras", cameraHandler.List)
	admin.GET("/camera/:id/stream", cameraHandler.Stream)
	admin.GET("/statistics", statsHandler.Get)

	// --- Citizen routes ---
	user := e.Group("/api/user", authMW, userOnly)
	user.GET("/challans", challanHandler.ListForUser)
	user.POST("/pay-challan", challanHandler.Pay)
	user.GET("/payments", challanHandler.Payments)
	user.GET("/profile", profileHandler.Get)
	user.PUT("/profile", profileHandler.Update)
	user.GET("/support", supportHandler.List)
	user.POST("/support", supportHandler.Create)

	// --- Probes + metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

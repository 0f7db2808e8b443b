package app

import (
	"path/filepath"

	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/salary"
	"go-payroll/internal/tax"
	"go-payroll/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	router.Use(middleware.RequestID())
	// Coarse pre-auth flood protection; per-user limits live on the routes.
	router.Use(middleware.RateLimitByIP(50, 100))

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	uploadRepo := upload.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(
		filepath.Join("internal", "rbac", "infra", "model.conf"),
		filepath.Join("internal", "rbac", "infra", "policy.csv"),
	)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, salaryRepo, rdb, logger)
	uploadService := upload.NewService(
		gormDB,
		uploadRepo,
		employeeRepo,
		salaryRepo,
		outboxRepo,
		employeeService,
		tax.ConfigFromEnv(),
		logger,
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	uploadHandler := upload.NewHandler(uploadService, rdb, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		upload.RegisterRoutes(api, uploadHandler, rbacService, rdb, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
	}

	return nil
}

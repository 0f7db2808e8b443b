package upload

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	uploads := r.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware())
	uploads.Use(middleware.ExtractUserID())
	uploads.Use(middleware.ContextLogger(logger))
	{
		uploads.POST("",
			middleware.RateLimitByUser(0.2, 2),
			rbac.Authorize(rbacService, "upload", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		uploads.POST("/validate",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "upload", "create"),
			handler.Validate,
		)

		uploads.GET("",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "upload", "read"),
			handler.GetAll,
		)

		uploads.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "upload", "read"),
			handler.GetById,
		)

		uploads.GET("/:id/employees",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "upload", "read"),
			handler.GetEmployees,
		)

		uploads.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			rbac.Authorize(rbacService, "upload", "delete"),
			handler.Delete,
		)
	}

	salaryGroup := r.Group("/salary")
	salaryGroup.Use(middleware.AuthMiddleware())
	salaryGroup.Use(middleware.ExtractUserID())
	salaryGroup.Use(middleware.ContextLogger(logger))
	{
		salaryGroup.POST("/compute",
			middleware.RateLimitByUser(5, 20),
			rbac.Authorize(rbacService, "salary", "compute"),
			handler.ComputeSalary,
		)
	}
}

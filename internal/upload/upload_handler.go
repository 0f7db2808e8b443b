package upload

import (
	"encoding/json"
	"net/http"
	"time"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"
	uploaderrors "go-payroll/internal/upload/errors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("upload.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("upload.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("upload request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	userID := c.GetString("user_id_validated")
	h.logger.Debug("http process upload", zap.String("user_id", userID))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, uploaderrors.ErrMissingFile)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, uploaderrors.ErrMissingFile)
		return
	}
	defer file.Close()

	resp, err := h.service.Process(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Validate(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, uploaderrors.ErrMissingFile)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, uploaderrors.ErrMissingFile)
		return
	}
	defer file.Close()

	resp, err := h.service.Validate(c.Request.Context(), file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ComputeSalary(c *gin.Context) {
	var req ComputeSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http compute salary validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.ComputeSalary(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id_validated")

	resp, err := h.service.GetAll(ctx, userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	targetID := c.Param("id")
	userID := c.GetString("user_id_validated")

	resp, err := h.service.GetByID(ctx, userID, targetID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetEmployees(c *gin.Context) {
	ctx := c.Request.Context()
	targetID := c.Param("id")
	userID := c.GetString("user_id_validated")

	resp, err := h.service.GetEmployees(ctx, userID, targetID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	userID := c.GetString("user_id_validated")
	h.logger.Debug("http delete upload",
		zap.String("user_id", userID),
		zap.String("upload_id", id),
	)

	if err := h.service.Delete(ctx, userID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

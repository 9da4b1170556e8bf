package employee

import (
	"net/http"
	"strings"

	"go-timeclock/internal/middleware"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	// q filters on name, surname and number without touching the cache.
	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		filtered := make([]EmployeeResponse, 0, len(resp))
		for _, e := range resp {
			if strings.Contains(strings.ToLower(e.Name+" "+e.Surname), q) ||
				strings.Contains(strings.ToLower(e.Number), q) {
				filtered = append(filtered, e)
			}
		}
		resp = filtered
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	resp, err := h.service.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("create employee validation failed", zap.Error(err))
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("update employee validation failed", zap.Error(err))
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Employee deleted"}, nil)
}

package company

import (
	"net/http"

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
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	companies, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, companies, nil)
}

func (h *Handler) Create(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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

func (h *Handler) Delete(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.logger.Debug("delete company rejected", zap.String("company_id", c.Param("id")), zap.Error(err))
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Company and all its data deleted successfully"}, nil)
}

func (h *Handler) Info(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	comp, err := h.service.Info(c.Request.Context(), p)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	comp, err := h.service.UpdateSettings(c.Request.Context(), p, req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}

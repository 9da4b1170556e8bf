package auth

import (
	"net/http"

	"go-timeclock/internal/company"
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
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RegisterCompany(c *gin.Context) {
	var req company.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RegisterCompany(c.Request.Context(), req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Me(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	resp, err := h.service.Me(c.Request.Context(), p)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

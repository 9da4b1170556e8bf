package attendance

import (
	"net/http"
	"time"

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
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Scan(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Scan(c.Request.Context(), p, req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListEntries(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	var req ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	result, err := h.service.ListEntries(c.Request.Context(), p, req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	meta := response.NewPaginationMeta(result.Total, result.Page, result.PageSize)
	response.Success(c, http.StatusOK, result.Items, &meta)
}

func (h *Handler) CreateEntry(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	var req ManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("manual entry validation failed", zap.Error(err))
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateManual(c.Request.Context(), p, req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	if err := h.service.DeleteEntry(c.Request.Context(), p, c.Param("id")); err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Time entry deleted"}, nil)
}

func (h *Handler) Report(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	var req ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	doc, err := h.service.Report(c.Request.Context(), p, req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	filename := "timesheet-" + time.Now().UTC().Format("20060102") + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

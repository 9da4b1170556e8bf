package rbac

import (
	"net/http"

	"go-timeclock/internal/domain"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/response"
	"go-timeclock/internal/tenant"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Permissions lists what the caller may do.
func (h *Handler) Permissions(c *gin.Context) {
	p, ok := tenant.FromContext(c.Request.Context())
	if !ok {
		response.AbortWithError(c, apperror.ErrUnauthorized)
		return
	}

	subject := tenant.SubjectOf(p)
	perms, err := h.service.PermissionsFor(subject)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, domain.PermissionsResponse{
		Subject:     subject,
		Permissions: perms,
	}, nil)
}

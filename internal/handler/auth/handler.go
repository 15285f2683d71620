package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/service/auth"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
	"github.com/medicare-platform/admin-api/pkg/httputil"
)

type Handler struct {
	service auth.Service
}

func NewHandler(service auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondCreated(c, "user registered", user)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, resp)
}

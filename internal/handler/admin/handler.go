package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medicare-platform/admin-api/internal/middleware"
	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/service/admin"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
	"github.com/medicare-platform/admin-api/pkg/httputil"
)

type Handler struct {
	service admin.Service
}

func NewHandler(service admin.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/users", h.ListUsers)
	r.PATCH("/users/:id/status", h.UpdateUserStatus)
	r.GET("/analytics", h.Analytics)
	r.GET("/links", h.ListLinks)
	r.POST("/links", h.CreateLink)
	r.PATCH("/links/:id/status", h.UpdateLinkStatus)
	r.GET("/activity", h.RecentActivity)
}

func (h *Handler) ListUsers(c *gin.Context) {
	var filter model.UserFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), &filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithPagination(c, users, filter.Page, filter.Limit, total)
}

func (h *Handler) UpdateUserStatus(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid user ID"))
		return
	}

	var req model.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("Authentication required"))
		return
	}

	user, err := h.service.UpdateUserStatus(c.Request.Context(), actorID, targetID, req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "user status updated", user)
}

func (h *Handler) Analytics(c *gin.Context) {
	analytics, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, analytics)
}

func (h *Handler) ListLinks(c *gin.Context) {
	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	links, total, err := h.service.ListLinks(c.Request.Context(), &p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithPagination(c, links, p.Page, p.Limit, total)
}

func (h *Handler) CreateLink(c *gin.Context) {
	var req model.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	link, err := h.service.CreateLink(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondCreated(c, "link created", link)
}

func (h *Handler) UpdateLinkStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid link ID"))
		return
	}

	var req model.UpdateLinkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	if err := h.service.UpdateLinkStatus(c.Request.Context(), id, req.Status); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "link status updated", nil)
}

func (h *Handler) RecentActivity(c *gin.Context) {
	activities, err := h.service.RecentActivity(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, activities)
}

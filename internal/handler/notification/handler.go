package notification

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medicare-platform/admin-api/internal/middleware"
	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/service/notification"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
	"github.com/medicare-platform/admin-api/pkg/httputil"
)

type Handler struct {
	service notification.Service
}

func NewHandler(service notification.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.ListNotifications)
		notifications.PATCH("/:id/read", h.MarkRead)
		notifications.PATCH("/read-all", h.MarkAllRead)
	}
}

func (h *Handler) ListNotifications(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("Authentication required"))
		return
	}

	var filter model.NotificationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	notifications, total, err := h.service.ListForUser(c.Request.Context(), userID, &filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithPagination(c, notifications, filter.Page, filter.Limit, total)
}

func (h *Handler) MarkRead(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("Authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid notification ID"))
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, userID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "notification marked read", nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("Authentication required"))
		return
	}

	count, err := h.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "notifications marked read", gin.H{"updated": count})
}

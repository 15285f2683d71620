package donation

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/service/donation"
	"github.com/medicare-platform/admin-api/internal/service/donormatch"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
	"github.com/medicare-platform/admin-api/pkg/httputil"
)

type Handler struct {
	donations donation.Service
	matching  donormatch.Service
}

func NewHandler(donations donation.Service, matching donormatch.Service) *Handler {
	return &Handler{donations: donations, matching: matching}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/donation-requests")
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.ListRequests)
		requests.GET("/:id", h.GetRequest)
		requests.GET("/:id/find-donors", h.FindSuitableDonors)
		requests.POST("/:id/notify-donors", h.NotifyDonors)
		requests.PATCH("/:id/approve", h.ApproveRequest)
		requests.PATCH("/:id/reject", h.RejectRequest)
	}

	donations := r.Group("/donations")
	{
		donations.POST("", h.RecordDonation)
		donations.GET("/:id", h.GetDonation)
	}

	r.GET("/donors/:id/donations", h.DonorHistory)
}

func (h *Handler) CreateRequest(c *gin.Context) {
	var req model.CreateDonationRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	request, err := h.matching.CreateRequest(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondCreated(c, "donation request created", request)
}

func (h *Handler) ListRequests(c *gin.Context) {
	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	requests, total, err := h.matching.ListRequests(c.Request.Context(), &p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithPagination(c, requests, p.Page, p.Limit, total)
}

func (h *Handler) GetRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request ID"))
		return
	}

	request, err := h.matching.GetRequest(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, request)
}

// FindSuitableDonors ranks donors for a request. A missing or
// malformed limit falls back to the service default rather than
// failing the search.
func (h *Handler) FindSuitableDonors(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request ID"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	result, err := h.matching.FindSuitableDonors(c.Request.Context(), id, limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) NotifyDonors(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request ID"))
		return
	}

	result, err := h.matching.NotifyDonors(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "donors notified", result)
}

func (h *Handler) ApproveRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request ID"))
		return
	}

	var req model.ApproveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	request, err := h.matching.ApproveRequest(c.Request.Context(), id, req.Notes)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "donation request approved", request)
}

func (h *Handler) RejectRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request ID"))
		return
	}

	var req model.RejectRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	request, err := h.matching.RejectRequest(c.Request.Context(), id, req.Reason)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "donation request rejected", request)
}

func (h *Handler) RecordDonation(c *gin.Context) {
	var req model.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	recorded, err := h.donations.RecordDonation(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondCreated(c, "donation recorded", recorded)
}

func (h *Handler) GetDonation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid donation ID"))
		return
	}

	recorded, err := h.donations.GetDonation(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, recorded)
}

func (h *Handler) DonorHistory(c *gin.Context) {
	donorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid donor ID"))
		return
	}

	donations, err := h.donations.DonorHistory(c.Request.Context(), donorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, donations)
}

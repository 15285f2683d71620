package medication

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/service/medication"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
	"github.com/medicare-platform/admin-api/pkg/httputil"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service medication.Service
}

func NewHandler(service medication.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	medications := r.Group("/medications")
	{
		medications.POST("", h.CreateMedication)
		medications.GET("/:id", h.GetMedication)
		medications.PUT("/:id", h.UpdateMedication)
		medications.DELETE("/:id", h.DeleteMedication)
	}

	patients := r.Group("/patients")
	{
		patients.GET("/:id/medications", h.ListMedications)
		patients.GET("/:id/doses", h.ListDoses)
		patients.GET("/:id/adherence", h.AdherenceReport)
	}

	r.PATCH("/doses/:id/status", h.UpdateDoseStatus)
}

func (h *Handler) CreateMedication(c *gin.Context) {
	var req model.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	med, err := h.service.CreateMedication(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondCreated(c, "medication created", med)
}

func (h *Handler) GetMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid medication ID"))
		return
	}

	med, err := h.service.GetMedication(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, med)
}

func (h *Handler) ListMedications(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid patient ID"))
		return
	}

	medications, err := h.service.ListMedications(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, medications)
}

func (h *Handler) UpdateMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid medication ID"))
		return
	}

	var req model.UpdateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	med, err := h.service.UpdateMedication(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "medication updated", med)
}

func (h *Handler) DeleteMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid medication ID"))
		return
	}

	if err := h.service.DeleteMedication(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "medication deleted", nil)
}

func (h *Handler) ListDoses(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid patient ID"))
		return
	}

	from, to, err := dateWindow(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	doses, err := h.service.ListDoses(c.Request.Context(), patientID, from, to)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, doses)
}

func (h *Handler) UpdateDoseStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid dose ID"))
		return
	}

	var req model.UpdateDoseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	if err := h.service.UpdateDoseStatus(c.Request.Context(), id, req.Status); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "dose status updated", nil)
}

func (h *Handler) AdherenceReport(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid patient ID"))
		return
	}

	from, to, err := dateWindow(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	report, err := h.service.AdherenceReport(c.Request.Context(), patientID, from, to)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, report)
}

// dateWindow parses the from/to query pair, defaulting to the last
// seven days when absent.
func dateWindow(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -7)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.Validation("invalid from date, expected YYYY-MM-DD")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.Validation("invalid to date, expected YYYY-MM-DD")
		}
		// Include the whole end day.
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return from, to, nil
}

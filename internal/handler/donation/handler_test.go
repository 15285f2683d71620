package donation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medicare-platform/admin-api/internal/model"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
	"github.com/medicare-platform/admin-api/pkg/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterCustomValidations(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type matchingMock struct {
	mock.Mock
}

func (m *matchingMock) CreateRequest(ctx context.Context, req *model.CreateDonationRequestRequest) (*model.DonationRequest, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*model.DonationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *matchingMock) GetRequest(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.DonationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *matchingMock) ListRequests(ctx context.Context, p *model.Pagination) ([]*model.DonationRequest, int, error) {
	args := m.Called(ctx, p)
	var requests []*model.DonationRequest
	if v := args.Get(0); v != nil {
		requests = v.([]*model.DonationRequest)
	}
	return requests, args.Int(1), args.Error(2)
}

func (m *matchingMock) FindSuitableDonors(ctx context.Context, requestID uuid.UUID, limit int) (*model.DonorSearchResult, error) {
	args := m.Called(ctx, requestID, limit)
	if v := args.Get(0); v != nil {
		return v.(*model.DonorSearchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *matchingMock) NotifyDonors(ctx context.Context, requestID uuid.UUID) (*model.NotifyDonorsResult, error) {
	args := m.Called(ctx, requestID)
	if v := args.Get(0); v != nil {
		return v.(*model.NotifyDonorsResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *matchingMock) ApproveRequest(ctx context.Context, id uuid.UUID, notes *string) (*model.DonationRequest, error) {
	args := m.Called(ctx, id, notes)
	if v := args.Get(0); v != nil {
		return v.(*model.DonationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *matchingMock) RejectRequest(ctx context.Context, id uuid.UUID, reason string) (*model.DonationRequest, error) {
	args := m.Called(ctx, id, reason)
	if v := args.Get(0); v != nil {
		return v.(*model.DonationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

type donationsMock struct {
	mock.Mock
}

func (m *donationsMock) RecordDonation(ctx context.Context, req *model.CreateDonationRequest) (*model.Donation, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*model.Donation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *donationsMock) GetDonation(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Donation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *donationsMock) DonorHistory(ctx context.Context, donorID uuid.UUID) ([]*model.Donation, error) {
	args := m.Called(ctx, donorID)
	var donations []*model.Donation
	if v := args.Get(0); v != nil {
		donations = v.([]*model.Donation)
	}
	return donations, args.Error(1)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupRouter(matching *matchingMock, donations *donationsMock) *gin.Engine {
	r := gin.New()
	NewHandler(donations, matching).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestCreateRequestReturns201(t *testing.T) {
	matching := new(matchingMock)
	created := &model.DonationRequest{
		Base:         model.Base{ID: uuid.New()},
		HospitalName: "City General",
		Status:       model.RequestStatusActive,
	}
	matching.On("CreateRequest", mock.Anything, mock.Anything).Return(created, nil)

	r := setupRouter(matching, new(donationsMock))
	w, env := doRequest(t, r, http.MethodPost, "/api/v1/donation-requests", map[string]interface{}{
		"hospital_name":  "City General",
		"location":       "Springfield",
		"blood_group":    "O+",
		"units_needed":   2,
		"contact_number": "555-0100",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "donation request created", env.Message)
	assert.NotEmpty(t, env.Data)
}

func TestCreateRequestValidationErrorSurfacesFieldList(t *testing.T) {
	matching := new(matchingMock)
	matching.On("CreateRequest", mock.Anything, mock.Anything).
		Return(nil, apperrors.Validation("missing required fields: location, contact_number"))

	r := setupRouter(matching, new(donationsMock))
	w, env := doRequest(t, r, http.MethodPost, "/api/v1/donation-requests", map[string]interface{}{
		"hospital_name": "City General",
		"blood_group":   "O+",
		"units_needed":  2,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "location")
	assert.Contains(t, env.Message, "contact_number")
}

func TestCreateRequestInvalidUrgencyRejectedAtBinding(t *testing.T) {
	matching := new(matchingMock)

	r := setupRouter(matching, new(donationsMock))
	w, env := doRequest(t, r, http.MethodPost, "/api/v1/donation-requests", map[string]interface{}{
		"hospital_name":  "City General",
		"location":       "Springfield",
		"blood_group":    "O+",
		"units_needed":   2,
		"contact_number": "555-0100",
		"urgency_level":  "Extreme",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	matching.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
}

func TestFindDonorsMalformedLimitFallsBack(t *testing.T) {
	matching := new(matchingMock)
	requestID := uuid.New()

	// The handler passes zero for unparsable limits; the service
	// substitutes its default.
	matching.On("FindSuitableDonors", mock.Anything, requestID, 0).
		Return(&model.DonorSearchResult{SuitableDonors: []*model.SuitableDonor{}, Total: 0}, nil)

	r := setupRouter(matching, new(donationsMock))
	w, env := doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/v1/donation-requests/%s/find-donors?limit=abc", requestID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	matching.AssertExpectations(t)
}

func TestFindDonorsPassesLimit(t *testing.T) {
	matching := new(matchingMock)
	requestID := uuid.New()
	matching.On("FindSuitableDonors", mock.Anything, requestID, 3).
		Return(&model.DonorSearchResult{SuitableDonors: []*model.SuitableDonor{}, Total: 0}, nil)

	r := setupRouter(matching, new(donationsMock))
	w, _ := doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/v1/donation-requests/%s/find-donors?limit=3", requestID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	matching.AssertExpectations(t)
}

func TestNotifyDonorsNoMatchesReturns404(t *testing.T) {
	matching := new(matchingMock)
	requestID := uuid.New()
	matching.On("NotifyDonors", mock.Anything, requestID).
		Return(nil, apperrors.NotFoundMsg("no donors found with blood group AB-"))

	r := setupRouter(matching, new(donationsMock))
	w, env := doRequest(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/donation-requests/%s/notify-donors", requestID), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "AB-")
}

func TestApproveNonPendingReturnsConflict(t *testing.T) {
	matching := new(matchingMock)
	requestID := uuid.New()
	matching.On("ApproveRequest", mock.Anything, requestID, (*string)(nil)).
		Return(nil, apperrors.Conflict(`cannot approve request with status "rejected"`))

	r := setupRouter(matching, new(donationsMock))
	w, env := doRequest(t, r, http.MethodPatch,
		fmt.Sprintf("/api/v1/donation-requests/%s/approve", requestID), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "rejected")
}

func TestRejectWithoutReasonReturns400(t *testing.T) {
	matching := new(matchingMock)
	requestID := uuid.New()
	matching.On("RejectRequest", mock.Anything, requestID, "").
		Return(nil, apperrors.Validation("rejection reason is required"))

	r := setupRouter(matching, new(donationsMock))
	w, env := doRequest(t, r, http.MethodPatch,
		fmt.Sprintf("/api/v1/donation-requests/%s/reject", requestID), map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "reason")
}

func TestGetRequestInvalidID(t *testing.T) {
	r := setupRouter(new(matchingMock), new(donationsMock))
	w, env := doRequest(t, r, http.MethodGet, "/api/v1/donation-requests/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "invalid request ID")
}

func TestGetDonationNotFound(t *testing.T) {
	donations := new(donationsMock)
	id := uuid.New()
	donations.On("GetDonation", mock.Anything, id).Return(nil, apperrors.NotFoundMsg("donation not found"))

	r := setupRouter(new(matchingMock), donations)
	w, env := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/donations/%s", id), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

package donormatch

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository/mocks"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
	"github.com/medicare-platform/admin-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func strPtr(s string) *string { return &s }

func newTestService(
	requests *mocks.DonationRequestRepository,
	users *mocks.UserRepository,
	donations *mocks.DonationRepository,
	notifications *mocks.NotificationRepository,
) Service {
	return NewService(requests, users, donations, notifications, nil, testLogger(), nil)
}

func activeRequest(bloodGroup string, requesterID *uuid.UUID) *model.DonationRequest {
	return &model.DonationRequest{
		Base:          model.Base{ID: uuid.New()},
		RequesterID:   requesterID,
		HospitalName:  "City General",
		Location:      "Springfield",
		BloodGroup:    bloodGroup,
		UnitsNeeded:   2,
		UrgencyLevel:  model.UrgencyHigh,
		ContactNumber: "555-0100",
		Status:        model.RequestStatusActive,
	}
}

func donor(name string, city *string) *model.User {
	return &model.User{
		Base:       model.Base{ID: uuid.New()},
		Name:       name,
		Email:      name + "@example.com",
		Role:       model.RoleDonor,
		Status:     model.UserStatusActive,
		BloodGroup: strPtr("O+"),
		City:       city,
	}
}

func TestFindSuitableDonorsRanking(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	users := new(mocks.UserRepository)
	donations := new(mocks.DonationRepository)

	requesterID := uuid.New()
	request := activeRequest("O+", &requesterID)
	requests.On("Get", mock.Anything, request.ID).Return(request, nil)

	requester := &model.User{
		Base: model.Base{ID: requesterID},
		Role: model.RolePatient,
		City: strPtr("Springfield"),
	}
	users.On("Get", mock.Anything, requesterID).Return(requester, nil)

	// outOfTown has the most donations but loses to both locals.
	outOfTown := donor("alice", strPtr("Shelbyville"))
	localFew := donor("bob", strPtr("Springfield"))
	localMany := donor("carol", strPtr("Springfield"))
	users.On("ListActiveDonors", mock.Anything).Return([]*model.User{outOfTown, localFew, localMany}, nil)

	counts := map[uuid.UUID]int{outOfTown.ID: 9, localFew.ID: 1, localMany.ID: 4}
	for id, n := range counts {
		donations.On("CompletedCount", mock.Anything, id).Return(n, nil)
		donations.On("LastDonationDate", mock.Anything, id).Return(nil, nil)
	}

	svc := newTestService(requests, users, donations, nil)
	result, err := svc.FindSuitableDonors(context.Background(), request.ID, 10)
	require.NoError(t, err)
	require.Len(t, result.SuitableDonors, 3)

	assert.Equal(t, localMany.ID, result.SuitableDonors[0].ID)
	assert.Equal(t, localFew.ID, result.SuitableDonors[1].ID)
	assert.Equal(t, outOfTown.ID, result.SuitableDonors[2].ID)

	assert.True(t, result.SuitableDonors[0].SameCity)
	assert.False(t, result.SuitableDonors[2].SameCity)
	assert.Equal(t, 4, result.SuitableDonors[0].TotalDonations)
}

func TestFindSuitableDonorsLimitTruncation(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	users := new(mocks.UserRepository)
	donations := new(mocks.DonationRepository)

	request := activeRequest("A+", nil)
	requests.On("Get", mock.Anything, request.ID).Return(request, nil)

	var donors []*model.User
	for i := 0; i < 5; i++ {
		d := donor(string(rune('a'+i)), nil)
		donors = append(donors, d)
		donations.On("CompletedCount", mock.Anything, d.ID).Return(i, nil)
		donations.On("LastDonationDate", mock.Anything, d.ID).Return(nil, nil)
	}
	users.On("ListActiveDonors", mock.Anything).Return(donors, nil)

	svc := newTestService(requests, users, donations, nil)
	result, err := svc.FindSuitableDonors(context.Background(), request.ID, 2)
	require.NoError(t, err)

	assert.Len(t, result.SuitableDonors, 2)
	// Total reflects the returned page, not the full candidate pool.
	assert.Equal(t, 2, result.Total)
	// Highest donation counts survive the cut.
	assert.Equal(t, 4, result.SuitableDonors[0].TotalDonations)
	assert.Equal(t, 3, result.SuitableDonors[1].TotalDonations)
}

func TestFindSuitableDonorsDefaultLimit(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	users := new(mocks.UserRepository)
	donations := new(mocks.DonationRepository)

	request := activeRequest("A+", nil)
	requests.On("Get", mock.Anything, request.ID).Return(request, nil)

	var donors []*model.User
	for i := 0; i < DefaultDonorLimit+3; i++ {
		d := donor(string(rune('a'+i)), nil)
		donors = append(donors, d)
		donations.On("CompletedCount", mock.Anything, d.ID).Return(0, nil)
		donations.On("LastDonationDate", mock.Anything, d.ID).Return(nil, nil)
	}
	users.On("ListActiveDonors", mock.Anything).Return(donors, nil)

	svc := newTestService(requests, users, donations, nil)
	result, err := svc.FindSuitableDonors(context.Background(), request.ID, 0)
	require.NoError(t, err)
	assert.Len(t, result.SuitableDonors, DefaultDonorLimit)
}

func TestFindSuitableDonorsRequestNotFound(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	id := uuid.New()
	requests.On("Get", mock.Anything, id).Return(nil, sql.ErrNoRows)

	svc := newTestService(requests, new(mocks.UserRepository), new(mocks.DonationRepository), nil)
	_, err := svc.FindSuitableDonors(context.Background(), id, 10)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFindSuitableDonorsCompletedCountFailure(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	users := new(mocks.UserRepository)
	donations := new(mocks.DonationRepository)

	request := activeRequest("O+", nil)
	requests.On("Get", mock.Anything, request.ID).Return(request, nil)

	d := donor("grace", nil)
	users.On("ListActiveDonors", mock.Anything).Return([]*model.User{d}, nil)
	donations.On("CompletedCount", mock.Anything, d.ID).Return(0, errors.New("connection reset"))

	svc := newTestService(requests, users, donations, nil)
	result, err := svc.FindSuitableDonors(context.Background(), request.ID, 10)

	// A donor with an unknown history must never be ranked.
	assert.Nil(t, result)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInternal))
}

func TestFindSuitableDonorsLastDonationLookupFailure(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	users := new(mocks.UserRepository)
	donations := new(mocks.DonationRepository)

	request := activeRequest("O+", nil)
	requests.On("Get", mock.Anything, request.ID).Return(request, nil)

	d := donor("heidi", nil)
	users.On("ListActiveDonors", mock.Anything).Return([]*model.User{d}, nil)
	donations.On("CompletedCount", mock.Anything, d.ID).Return(2, nil)
	donations.On("LastDonationDate", mock.Anything, d.ID).Return(nil, errors.New("connection reset"))

	svc := newTestService(requests, users, donations, nil)
	result, err := svc.FindSuitableDonors(context.Background(), request.ID, 10)

	assert.Nil(t, result)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInternal))
}

func TestNotifyDonorsCreatesNotificationPerDonor(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	users := new(mocks.UserRepository)
	notifications := new(mocks.NotificationRepository)

	request := activeRequest("B-", nil)
	requests.On("Get", mock.Anything, request.ID).Return(request, nil)

	matched := []*model.User{donor("dave", nil), donor("erin", nil), donor("frank", nil)}
	users.On("ListDonorsByBloodGroup", mock.Anything, "B-").Return(matched, nil)

	var created []*model.Notification
	notifications.On("BulkCreate", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).([]*model.Notification)
	}).Return(nil)

	svc := newTestService(requests, users, new(mocks.DonationRepository), notifications)
	result, err := svc.NotifyDonors(context.Background(), request.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, result.NotifiedCount)
	require.Len(t, created, 3)
	for _, n := range created {
		assert.Equal(t, model.NotificationTypeDonationRequest, n.Type)
		assert.Contains(t, n.Message, "City General")
		assert.Contains(t, n.Message, "2 unit(s)")
		assert.Contains(t, n.Message, "B-")
		assert.Contains(t, n.Message, "High")
		assert.Contains(t, n.Message, "Springfield")
		assert.Contains(t, n.Message, "555-0100")
	}
}

func TestNotifyDonorsNoMatchesIsNotFound(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	users := new(mocks.UserRepository)
	notifications := new(mocks.NotificationRepository)

	request := activeRequest("AB-", nil)
	requests.On("Get", mock.Anything, request.ID).Return(request, nil)
	users.On("ListDonorsByBloodGroup", mock.Anything, "AB-").Return([]*model.User{}, nil)

	svc := newTestService(requests, users, new(mocks.DonationRepository), notifications)
	_, err := svc.NotifyDonors(context.Background(), request.ID)

	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "AB-")
	notifications.AssertNotCalled(t, "BulkCreate", mock.Anything, mock.Anything)
}

func TestNotifyDonorsBulkInsertFailurePropagates(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	users := new(mocks.UserRepository)
	notifications := new(mocks.NotificationRepository)

	request := activeRequest("O+", nil)
	requests.On("Get", mock.Anything, request.ID).Return(request, nil)

	matched := []*model.User{donor("ivan", nil), donor("judy", nil)}
	users.On("ListDonorsByBloodGroup", mock.Anything, "O+").Return(matched, nil)
	notifications.On("BulkCreate", mock.Anything, mock.Anything).Return(errors.New("deadlock detected"))

	svc := newTestService(requests, users, new(mocks.DonationRepository), notifications)
	result, err := svc.NotifyDonors(context.Background(), request.ID)

	// The insert is a single statement, so a failure means nobody was
	// notified and no partial result may leak out.
	assert.Nil(t, result)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInternal))
}

func TestCreateRequestMissingFields(t *testing.T) {
	svc := newTestService(new(mocks.DonationRequestRepository), new(mocks.UserRepository), new(mocks.DonationRepository), nil)

	_, err := svc.CreateRequest(context.Background(), &model.CreateDonationRequestRequest{
		HospitalName: "City General",
		BloodGroup:   "O+",
	})

	require.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "location")
	assert.Contains(t, err.Error(), "units_needed")
	assert.Contains(t, err.Error(), "contact_number")
	assert.NotContains(t, err.Error(), "hospital_name")
}

func TestCreateRequestDefaultsUrgencyAndStatus(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	requests.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(requests, new(mocks.UserRepository), new(mocks.DonationRepository), nil)
	request, err := svc.CreateRequest(context.Background(), &model.CreateDonationRequestRequest{
		HospitalName:  "City General",
		Location:      "Springfield",
		BloodGroup:    "O+",
		UnitsNeeded:   1,
		ContactNumber: "555-0100",
	})
	require.NoError(t, err)

	assert.Equal(t, model.UrgencyMedium, request.UrgencyLevel)
	assert.Equal(t, model.RequestStatusActive, request.Status)
	assert.NotEqual(t, uuid.Nil, request.ID)
}

func TestCreateRequestCriticalSurvivesZeroDonors(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	users := new(mocks.UserRepository)

	requests.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("ListDonorsByBloodGroup", mock.Anything, "AB+").Return([]*model.User{}, nil)

	svc := newTestService(requests, users, new(mocks.DonationRepository), new(mocks.NotificationRepository))
	request, err := svc.CreateRequest(context.Background(), &model.CreateDonationRequestRequest{
		HospitalName:  "City General",
		Location:      "Springfield",
		BloodGroup:    "AB+",
		UnitsNeeded:   3,
		UrgencyLevel:  model.UrgencyCritical,
		ContactNumber: "555-0100",
	})

	// The automatic fan-out failing to find donors must not fail creation.
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusActive, request.Status)
	users.AssertCalled(t, "ListDonorsByBloodGroup", mock.Anything, "AB+")
}

func TestCreateRequestLowUrgencySkipsNotification(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	users := new(mocks.UserRepository)
	requests.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(requests, users, new(mocks.DonationRepository), nil)
	_, err := svc.CreateRequest(context.Background(), &model.CreateDonationRequestRequest{
		HospitalName:  "City General",
		Location:      "Springfield",
		BloodGroup:    "O-",
		UnitsNeeded:   1,
		UrgencyLevel:  model.UrgencyLow,
		ContactNumber: "555-0100",
	})
	require.NoError(t, err)
	users.AssertNotCalled(t, "ListDonorsByBloodGroup", mock.Anything, mock.Anything)
}

func TestCreateRequestInvalidBloodGroup(t *testing.T) {
	svc := newTestService(new(mocks.DonationRequestRepository), new(mocks.UserRepository), new(mocks.DonationRepository), nil)
	_, err := svc.CreateRequest(context.Background(), &model.CreateDonationRequestRequest{
		HospitalName:  "City General",
		Location:      "Springfield",
		BloodGroup:    "Z+",
		UnitsNeeded:   1,
		ContactNumber: "555-0100",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestApproveRequestConflictOnNonPending(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	id := uuid.New()

	requests.On("ApproveIfPending", mock.Anything, id, (*string)(nil), mock.Anything).Return(int64(0), nil)
	approved := activeRequest("O+", nil)
	approved.Status = model.RequestStatusApproved
	requests.On("Get", mock.Anything, id).Return(approved, nil)

	svc := newTestService(requests, new(mocks.UserRepository), new(mocks.DonationRepository), nil)
	_, err := svc.ApproveRequest(context.Background(), id, nil)

	require.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), `"approved"`)
}

func TestApproveRequestNotFound(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	id := uuid.New()

	requests.On("ApproveIfPending", mock.Anything, id, (*string)(nil), mock.Anything).Return(int64(0), nil)
	requests.On("Get", mock.Anything, id).Return(nil, sql.ErrNoRows)

	svc := newTestService(requests, new(mocks.UserRepository), new(mocks.DonationRepository), nil)
	_, err := svc.ApproveRequest(context.Background(), id, nil)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestApproveRequestSuccess(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	id := uuid.New()
	notes := strPtr("verified with hospital")

	requests.On("ApproveIfPending", mock.Anything, id, notes, mock.Anything).Return(int64(1), nil)
	approved := activeRequest("O+", nil)
	approved.Base.ID = id
	approved.Status = model.RequestStatusApproved
	now := time.Now()
	approved.ApprovedAt = &now
	requests.On("Get", mock.Anything, id).Return(approved, nil)

	svc := newTestService(requests, new(mocks.UserRepository), new(mocks.DonationRepository), nil)
	result, err := svc.ApproveRequest(context.Background(), id, notes)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusApproved, result.Status)
	assert.NotNil(t, result.ApprovedAt)
}

func TestRejectRequestRequiresReason(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)

	svc := newTestService(requests, new(mocks.UserRepository), new(mocks.DonationRepository), nil)
	_, err := svc.RejectRequest(context.Background(), uuid.New(), "   ")

	require.True(t, apperrors.IsValidation(err))
	// The reason check happens before any storage access.
	requests.AssertNotCalled(t, "RejectIfPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	requests.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRejectRequestConflictOnSecondAttempt(t *testing.T) {
	requests := new(mocks.DonationRequestRepository)
	id := uuid.New()

	rejected := activeRequest("O+", nil)
	rejected.Base.ID = id
	rejected.Status = model.RequestStatusRejected

	requests.On("RejectIfPending", mock.Anything, id, "expired paperwork", mock.Anything).Return(int64(0), nil).Once()
	requests.On("Get", mock.Anything, id).Return(rejected, nil)

	svc := newTestService(requests, new(mocks.UserRepository), new(mocks.DonationRepository), nil)
	_, err := svc.RejectRequest(context.Background(), id, "expired paperwork")

	require.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "reject")
	assert.Contains(t, err.Error(), `"rejected"`)
}

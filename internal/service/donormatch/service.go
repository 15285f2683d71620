package donormatch

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
	"github.com/medicare-platform/admin-api/pkg/logger"
	"github.com/medicare-platform/admin-api/pkg/metrics"
)

// DefaultDonorLimit bounds find-donors results when no valid limit is given
const DefaultDonorLimit = 10

type Service interface {
	CreateRequest(ctx context.Context, req *model.CreateDonationRequestRequest) (*model.DonationRequest, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error)
	ListRequests(ctx context.Context, p *model.Pagination) ([]*model.DonationRequest, int, error)
	FindSuitableDonors(ctx context.Context, requestID uuid.UUID, limit int) (*model.DonorSearchResult, error)
	NotifyDonors(ctx context.Context, requestID uuid.UUID) (*model.NotifyDonorsResult, error)
	ApproveRequest(ctx context.Context, id uuid.UUID, notes *string) (*model.DonationRequest, error)
	RejectRequest(ctx context.Context, id uuid.UUID, reason string) (*model.DonationRequest, error)
}

type service struct {
	requests      repository.DonationRequestRepository
	users         repository.UserRepository
	donations     repository.DonationRepository
	notifications repository.NotificationRepository
	outbox        repository.OutboxRepository
	logger        *logger.Logger
	metrics       *metrics.Metrics
}

func NewService(
	requests repository.DonationRequestRepository,
	users repository.UserRepository,
	donations repository.DonationRepository,
	notifications repository.NotificationRepository,
	outbox repository.OutboxRepository,
	log *logger.Logger,
	m *metrics.Metrics,
) Service {
	return &service{
		requests:      requests,
		users:         users,
		donations:     donations,
		notifications: notifications,
		outbox:        outbox,
		logger:        log,
		metrics:       m,
	}
}

func (s *service) CreateRequest(ctx context.Context, req *model.CreateDonationRequestRequest) (*model.DonationRequest, error) {
	if missing := missingRequestFields(req); len(missing) > 0 {
		return nil, apperrors.Validation("missing required fields: " + strings.Join(missing, ", "))
	}
	if !model.IsValidBloodGroup(req.BloodGroup) {
		return nil, apperrors.Validation(fmt.Sprintf("invalid blood group %q", req.BloodGroup))
	}

	urgency := req.UrgencyLevel
	if urgency == "" {
		urgency = model.UrgencyMedium
	}
	if !model.IsValidUrgencyLevel(urgency) {
		return nil, apperrors.Validation(fmt.Sprintf("invalid urgency level %q", urgency))
	}

	request := &model.DonationRequest{
		Base:          model.Base{ID: uuid.New()},
		RequesterID:   req.RequesterID,
		HospitalName:  req.HospitalName,
		Location:      req.Location,
		BloodGroup:    req.BloodGroup,
		UnitsNeeded:   req.UnitsNeeded,
		UrgencyLevel:  urgency,
		ContactNumber: req.ContactNumber,
		Notes:         req.Notes,
		Status:        model.RequestStatusActive,
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.Internal("failed to create donation request", err)
	}

	s.recordEvent(ctx, model.EventDonationRequestCreated, request)

	// High and Critical requests trigger the donor fan-out immediately.
	// Unlike the explicit notify endpoint this is best effort: a request
	// with no matching donors is still created successfully.
	if urgency.RequiresNotification() {
		if _, err := s.notifyDonors(ctx, request); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"request_id":  request.ID,
				"blood_group": request.BloodGroup,
			}).Error(err, "automatic donor notification skipped")
		}
	}

	return request, nil
}

func (s *service) GetRequest(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error) {
	request, err := s.requests.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("donation request", err)
		}
		return nil, apperrors.Internal("failed to fetch donation request", err)
	}
	return request, nil
}

func (s *service) ListRequests(ctx context.Context, p *model.Pagination) ([]*model.DonationRequest, int, error) {
	p.Normalize(DefaultDonorLimit)
	requests, total, err := s.requests.List(ctx, p)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list donation requests", err)
	}
	return requests, total, nil
}

// FindSuitableDonors ranks active donors for a request: donors in the
// requesting patient's city first, then by completed donation count.
// The sort is stable so donors tied on both keys keep their original
// relative order.
func (s *service) FindSuitableDonors(ctx context.Context, requestID uuid.UUID, limit int) (*model.DonorSearchResult, error) {
	if limit <= 0 {
		limit = DefaultDonorLimit
	}

	request, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	patientCity := ""
	if request.RequesterID != nil {
		requester, err := s.users.Get(ctx, *request.RequesterID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Internal("failed to fetch requesting patient", err)
		}
		if requester != nil && requester.City != nil {
			patientCity = *requester.City
		}
	}

	donors, err := s.users.ListActiveDonors(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list donors", err)
	}

	// Enrichment reads are independent per donor; fan out and join,
	// failing the whole search if any read fails so the ranking never
	// carries mismatched derived fields.
	candidates := make([]*model.SuitableDonor, len(donors))
	g, gctx := errgroup.WithContext(ctx)
	for i, donor := range donors {
		i, donor := i, donor
		g.Go(func() error {
			completed, err := s.donations.CompletedCount(gctx, donor.ID)
			if err != nil {
				return err
			}
			last, err := s.donations.LastDonationDate(gctx, donor.ID)
			if err != nil {
				return err
			}
			candidates[i] = &model.SuitableDonor{
				ID:             donor.ID,
				Name:           donor.Name,
				Email:          donor.Email,
				BloodGroup:     donor.BloodGroup,
				City:           donor.City,
				TotalDonations: completed,
				LastDonation:   last,
				SameCity:       sameCity(donor.City, patientCity),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal("failed to load donor history", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].SameCity != candidates[j].SameCity {
			return candidates[i].SameCity
		}
		return candidates[i].TotalDonations > candidates[j].TotalDonations
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	if s.metrics != nil {
		s.metrics.DonorSearches.Inc()
	}

	return &model.DonorSearchResult{
		Request:        request,
		SuitableDonors: candidates,
		Total:          len(candidates),
	}, nil
}

// NotifyDonors creates one notification per donor whose blood group
// matches the request. Zero matching donors is reported as not found,
// not as a silent no-op.
func (s *service) NotifyDonors(ctx context.Context, requestID uuid.UUID) (*model.NotifyDonorsResult, error) {
	request, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.notifyDonors(ctx, request)
}

func (s *service) notifyDonors(ctx context.Context, request *model.DonationRequest) (*model.NotifyDonorsResult, error) {
	donors, err := s.users.ListDonorsByBloodGroup(ctx, request.BloodGroup)
	if err != nil {
		return nil, apperrors.Internal("failed to list donors", err)
	}
	if len(donors) == 0 {
		return nil, apperrors.NotFoundMsg(fmt.Sprintf("no donors found with blood group %s", request.BloodGroup))
	}

	message := donorMessage(request)
	notifications := make([]*model.Notification, len(donors))
	summaries := make([]*model.UserSummary, len(donors))
	for i, donor := range donors {
		notifications[i] = &model.Notification{
			ID:      uuid.New(),
			UserID:  donor.ID,
			Type:    model.NotificationTypeDonationRequest,
			Message: message,
		}
		summaries[i] = &model.UserSummary{ID: donor.ID, Name: donor.Name, Email: donor.Email}
	}

	if err := s.notifications.BulkCreate(ctx, notifications); err != nil {
		return nil, apperrors.Internal("failed to create notifications", err)
	}

	if s.metrics != nil {
		s.metrics.NotificationsCreated.Add(float64(len(notifications)))
	}

	s.recordEvent(ctx, model.EventDonorsNotified, &model.DonorsNotifiedPayload{
		RequestID:    request.ID,
		HospitalName: request.HospitalName,
		BloodGroup:   request.BloodGroup,
		UrgencyLevel: string(request.UrgencyLevel),
		DonorIDs:     donorIDs(donors),
		DonorEmails:  donorEmails(donors),
		Message:      message,
	})

	return &model.NotifyDonorsResult{
		NotifiedCount: len(donors),
		Donors:        summaries,
	}, nil
}

// ApproveRequest transitions a pending request to approved. The guard
// is a conditional update so two admins racing on the same request
// cannot both succeed.
func (s *service) ApproveRequest(ctx context.Context, id uuid.UUID, notes *string) (*model.DonationRequest, error) {
	rows, err := s.requests.ApproveIfPending(ctx, id, notes, time.Now())
	if err != nil {
		return nil, apperrors.Internal("failed to approve donation request", err)
	}
	if rows == 0 {
		return nil, s.transitionConflict(ctx, id, "approve")
	}
	return s.GetRequest(ctx, id)
}

// RejectRequest transitions a pending request to rejected. A reason is
// required regardless of the request's state.
func (s *service) RejectRequest(ctx context.Context, id uuid.UUID, reason string) (*model.DonationRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.Validation("rejection reason is required")
	}

	rows, err := s.requests.RejectIfPending(ctx, id, reason, time.Now())
	if err != nil {
		return nil, apperrors.Internal("failed to reject donation request", err)
	}
	if rows == 0 {
		return nil, s.transitionConflict(ctx, id, "reject")
	}
	return s.GetRequest(ctx, id)
}

// transitionConflict explains a failed conditional update: either the
// request is gone or it already left the pending state.
func (s *service) transitionConflict(ctx context.Context, id uuid.UUID, action string) error {
	request, err := s.requests.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("donation request", err)
		}
		return apperrors.Internal("failed to fetch donation request", err)
	}
	return apperrors.Conflict(fmt.Sprintf("cannot %s request with status %q", action, request.Status))
}

func (s *service) recordEvent(ctx context.Context, eventType string, payload interface{}) {
	if s.outbox == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(err, "failed to marshal outbox payload")
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{EventType: eventType, Payload: data}); err != nil {
		s.logger.Error(err, "failed to record outbox event")
	}
}

func missingRequestFields(req *model.CreateDonationRequestRequest) []string {
	var missing []string
	if strings.TrimSpace(req.HospitalName) == "" {
		missing = append(missing, "hospital_name")
	}
	if strings.TrimSpace(req.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(req.BloodGroup) == "" {
		missing = append(missing, "blood_group")
	}
	if req.UnitsNeeded <= 0 {
		missing = append(missing, "units_needed")
	}
	if strings.TrimSpace(req.ContactNumber) == "" {
		missing = append(missing, "contact_number")
	}
	return missing
}

func sameCity(donorCity *string, patientCity string) bool {
	if donorCity == nil || patientCity == "" {
		return false
	}
	return *donorCity == patientCity
}

func donorMessage(request *model.DonationRequest) string {
	return fmt.Sprintf(
		"%s urgently needs %d unit(s) of %s blood. Urgency: %s. Location: %s. Contact: %s",
		request.HospitalName,
		request.UnitsNeeded,
		request.BloodGroup,
		request.UrgencyLevel,
		request.Location,
		request.ContactNumber,
	)
}

func donorIDs(donors []*model.User) []uuid.UUID {
	ids := make([]uuid.UUID, len(donors))
	for i, d := range donors {
		ids[i] = d.ID
	}
	return ids
}

func donorEmails(donors []*model.User) []string {
	emails := make([]string, len(donors))
	for i, d := range donors {
		emails[i] = d.Email
	}
	return emails
}

package workflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/clock"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/kafka"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
)

// StatusSource resolves request statuses and tags from the lookup
// tables. lookups.Repository satisfies it.
type StatusSource interface {
	GetRequestStatus(ctx context.Context, id uuid.UUID) (models.RequestStatus, error)
	GetRequestTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.RequestTag, error)
}

// ContactSource resolves external-organization contacts so an action's
// linked contact can be checked against its organization.
// directory.Repository satisfies it.
type ContactSource interface {
	GetContact(ctx context.Context, id uuid.UUID) (models.Contact, error)
}

type Service struct {
	repo     *Repository
	statuses StatusSource
	contacts ContactSource
	events   *kafka.Producer
	clock    clock.Clock
}

func NewService(repo *Repository, statuses StatusSource, contacts ContactSource, events *kafka.Producer, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System()
	}
	return &Service{repo: repo, statuses: statuses, contacts: contacts, events: events, clock: clk}
}

// RequestView decorates a request with its derived read-only fields.
type RequestView struct {
	models.Request
	DaysOpen                int    `json:"days_open"`
	IsOverdue               bool   `json:"is_overdue"`
	EstimatedDurationDays   *int   `json:"estimated_duration_days,omitempty"`
	RequiresExternalContact bool   `json:"requires_external_contact"`
	StatusName              string `json:"status_name,omitempty"`
	StatusColor             string `json:"status_color,omitempty"`
}

func (s *Service) project(ctx context.Context, req models.Request) RequestView {
	view := RequestView{
		Request:                 req,
		EstimatedDurationDays:   req.EstimatedDurationDays(),
		RequiresExternalContact: req.RequiresExternalContact(),
	}
	today := clock.Today(s.clock)
	view.DaysOpen = req.DaysOpen(today)
	if status, err := s.statuses.GetRequestStatus(ctx, req.StatusID); err == nil {
		view.IsOverdue = req.IsOverdue(today, status)
		view.StatusName = status.Name
		view.StatusColor = status.ColorCode
	}
	return view
}

// CreateRequest validates the request, resolves its tags, derives the
// primary category by tag majority when the caller left it blank, and
// applies the closed-status side effects before persisting.
func (s *Service) CreateRequest(ctx context.Context, req models.Request, tagIDs []uuid.UUID, actor string) (RequestView, error) {
	if err := ValidateRequest(req); err != nil {
		return RequestView{}, err
	}
	status, err := s.statuses.GetRequestStatus(ctx, req.StatusID)
	if err != nil {
		var v validation.Violations
		v.Add("status_id", validation.KindConsistency, "unknown request status")
		return RequestView{}, v.Err()
	}
	tags, err := s.statuses.GetRequestTagsByIDs(ctx, tagIDs)
	if err != nil {
		return RequestView{}, err
	}

	if req.PrimaryCategory == "" {
		req.PrimaryCategory = DerivePrimaryCategory(tags)
	}
	today := clock.Today(s.clock)
	if req.SubmissionDate == nil {
		req.SubmissionDate = &today
	}
	req.ClosedDate = TransitionClosedDate(status, req.ClosedDate, today)
	if req.Priority == 0 {
		req.Priority = models.PriorityMedium
	}
	req.NumberOfActions = 0

	created, err := s.repo.CreateRequest(ctx, req, tagIDs)
	if err != nil {
		return RequestView{}, err
	}
	s.publish(ctx, "request.created", "request", created.ID, actor, map[string]interface{}{
		"person_id":        created.PersonID.String(),
		"primary_category": created.PrimaryCategory,
	})
	return s.project(ctx, created), nil
}

// UpdateRequest applies the status-transition rules: entering a closed
// status stamps closed_date once, and leaving a closed status clears it.
func (s *Service) UpdateRequest(ctx context.Context, req models.Request, tagIDs []uuid.UUID, actor string) (RequestView, error) {
	if err := ValidateRequest(req); err != nil {
		return RequestView{}, err
	}
	existing, err := s.repo.GetRequest(ctx, req.ID)
	if err != nil {
		return RequestView{}, err
	}
	status, err := s.statuses.GetRequestStatus(ctx, req.StatusID)
	if err != nil {
		var v validation.Violations
		v.Add("status_id", validation.KindConsistency, "unknown request status")
		return RequestView{}, v.Err()
	}
	tags, err := s.statuses.GetRequestTagsByIDs(ctx, tagIDs)
	if err != nil {
		return RequestView{}, err
	}

	today := clock.Today(s.clock)
	req.ClosedDate = TransitionClosedDate(status, existing.ClosedDate, today)
	if req.PrimaryCategory == "" {
		req.PrimaryCategory = DerivePrimaryCategory(tags)
	}
	req.UpdateDate = &today

	updated, err := s.repo.UpdateRequest(ctx, req, tagIDs)
	if err != nil {
		return RequestView{}, err
	}
	s.publish(ctx, "request.updated", "request", updated.ID, actor, map[string]interface{}{
		"status_id": updated.StatusID.String(),
		"closed":    status.IsClosed,
	})
	return s.project(ctx, updated), nil
}

func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (RequestView, error) {
	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return RequestView{}, err
	}
	return s.project(ctx, req), nil
}

func (s *Service) ListRequests(ctx context.Context, filter RequestFilter) ([]RequestView, error) {
	requests, err := s.repo.ListRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]RequestView, 0, len(requests))
	for _, req := range requests {
		views = append(views, s.project(ctx, req))
	}
	return views, nil
}

func (s *Service) DeleteRequest(ctx context.Context, id uuid.UUID, actor string) error {
	if err := s.repo.DeleteRequest(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "request.deleted", "request", id, actor, nil)
	return nil
}

// CreateAction validates the action, checks a linked contact against its
// organization, and lets the repository insert row and counter bump
// atomically.
func (s *Service) CreateAction(ctx context.Context, a models.Action, actor string) (models.Action, error) {
	if a.ActionDate.IsZero() {
		a.ActionDate = clock.Today(s.clock)
	}
	if err := ValidateAction(a); err != nil {
		return models.Action{}, err
	}
	if err := s.checkContactOrganization(ctx, a); err != nil {
		return models.Action{}, err
	}

	created, err := s.repo.CreateAction(ctx, a)
	if err != nil {
		return models.Action{}, err
	}
	s.publish(ctx, "action.created", "action", created.ID, actor, map[string]interface{}{
		"request_id":  created.RequestID.String(),
		"action_type": created.ActionType,
	})
	return created, nil
}

func (s *Service) UpdateAction(ctx context.Context, a models.Action, actor string) (models.Action, error) {
	if err := ValidateAction(a); err != nil {
		return models.Action{}, err
	}
	if err := s.checkContactOrganization(ctx, a); err != nil {
		return models.Action{}, err
	}
	updated, err := s.repo.UpdateAction(ctx, a)
	if err != nil {
		return models.Action{}, err
	}
	s.publish(ctx, "action.updated", "action", updated.ID, actor, nil)
	return updated, nil
}

func (s *Service) GetAction(ctx context.Context, id uuid.UUID) (models.Action, error) {
	return s.repo.GetAction(ctx, id)
}

func (s *Service) ListActions(ctx context.Context, requestID uuid.UUID) ([]models.Action, error) {
	return s.repo.ListActions(ctx, requestID)
}

func (s *Service) DeleteAction(ctx context.Context, id uuid.UUID, actor string) error {
	if err := s.repo.DeleteAction(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "action.deleted", "action", id, actor, nil)
	return nil
}

func (s *Service) WorkloadStats(ctx context.Context) (models.WorkloadStats, error) {
	return s.repo.WorkloadStats(ctx, clock.Today(s.clock))
}

// checkContactOrganization rejects an action whose linked contact belongs
// to a different organization than the one named on the action.
func (s *Service) checkContactOrganization(ctx context.Context, a models.Action) error {
	if a.ContactID == nil || a.ExternalOrgID == nil || s.contacts == nil {
		return nil
	}
	contact, err := s.contacts.GetContact(ctx, *a.ContactID)
	if err != nil {
		var v validation.Violations
		v.Add("contact_id", validation.KindConsistency, "unknown contact")
		return v.Err()
	}
	if contact.OrganizationID != *a.ExternalOrgID {
		var v validation.Violations
		v.Add("contact_id", validation.KindConsistency, "contact does not belong to the selected organization")
		return v.Err()
	}
	return nil
}

func (s *Service) publish(ctx context.Context, eventType, entity string, id uuid.UUID, actor string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	_ = s.events.PublishEvent(ctx, eventType, entity, id.String(), actor, data)
}

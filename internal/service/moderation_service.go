// Package service implements the application's business logic.
package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"devvault/internal/models"
	"devvault/internal/observability"
	"devvault/internal/policy"
	"devvault/internal/repository"
)

// DecisionOutcome is the admin's verdict on a pending submission.
type DecisionOutcome string

const (
	OutcomeApprove DecisionOutcome = "approve"
	OutcomeReject  DecisionOutcome = "reject"
)

const (
	maxTitleLen = 300
	maxBodyLen  = 50000 // 50K characters
)

// SubmitInput is the payload for creating a submission of any kind.
type SubmitInput struct {
	Kind     models.SubmissionKind
	Title    string
	Body     string
	Category string
	Link     string
}

// ListInput holds the shared filter and pagination parameters for listings.
type ListInput struct {
	Kind   models.SubmissionKind
	Limit  int
	Offset int
}

// ModerationService is the generic pending -> approved/rejected workflow
// shared by all submission kinds.
type ModerationService struct {
	subs repository.SubmissionRepository
}

// NewModerationService returns a new ModerationService.
func NewModerationService(subs repository.SubmissionRepository) *ModerationService {
	return &ModerationService{subs: subs}
}

// Submit creates a new pending submission owned by actor.
func (s *ModerationService) Submit(ctx context.Context, actor *models.User, in SubmitInput) (*models.Submission, error) {
	if !policy.CanCreate(actor) {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	if !in.Kind.Valid() {
		return nil, models.NewValidationError("Invalid submission kind")
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Body) > maxBodyLen {
		return nil, models.NewValidationError("Body too long (max 50000 characters)")
	}

	if in.Kind.RequiresLink() {
		if in.Link == "" {
			return nil, models.NewValidationError("link is required for " + string(in.Kind) + " submissions")
		}
	}
	if in.Link != "" {
		if _, err := url.ParseRequestURI(in.Link); err != nil {
			return nil, models.NewValidationError("link must be a valid URL")
		}
	}

	sub := &models.Submission{
		Kind:     in.Kind,
		Title:    in.Title,
		Body:     in.Body,
		Category: strings.TrimSpace(in.Category),
		Link:     in.Link,
		OwnerID:  actor.ID,
		Status:   models.StatusPending,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	observability.SubmissionsCreated.WithLabelValues(string(sub.Kind)).Inc()
	return sub, nil
}

// Decide applies an admin verdict to a pending submission. A submission is
// decided at most once: a second call fails with InvalidState and leaves the
// audit fields (decided_at, decided_by) untouched.
func (s *ModerationService) Decide(ctx context.Context, actor *models.User, id uint, outcome DecisionOutcome, notes string) (*models.Submission, error) {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor == nil || !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Admin access required")
	}
	if !policy.CanDecide(actor, sub) {
		return nil, models.NewInvalidStateError("submission is not pending")
	}

	var status models.SubmissionStatus
	switch outcome {
	case OutcomeApprove:
		status = models.StatusApproved
	case OutcomeReject:
		if sub.Kind.TwoState() {
			// Issues and content reports only move pending -> reviewed.
			return nil, models.NewValidationError(string(sub.Kind) + " submissions cannot be rejected")
		}
		status = models.StatusRejected
	default:
		return nil, models.NewValidationError("Invalid decision outcome")
	}

	updated, err := s.subs.UpdateStatus(ctx, id, status, actor.ID, time.Now().UTC(), strings.TrimSpace(notes))
	if err != nil {
		// The conditional write lost to a concurrent decision.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeInvalidState {
			observability.ModerationConflicts.Inc()
		}
		return nil, err
	}

	observability.ModerationDecisions.WithLabelValues(string(updated.Kind), string(outcome)).Inc()
	return updated, nil
}

// Get returns a single submission, distinguishing missing (NotFound) from
// existing-but-hidden (Forbidden).
func (s *ModerationService) Get(ctx context.Context, actor *models.User, id uint) (*models.Submission, error) {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(actor, sub) {
		return nil, models.NewForbiddenError("You are not allowed to view this submission")
	}
	return sub, nil
}

// ListOwn returns the actor's own submissions in any status.
func (s *ModerationService) ListOwn(ctx context.Context, actor *models.User, in ListInput) ([]*models.Submission, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.subs.ListByOwner(ctx, actor.ID, in.Kind, in.Limit, in.Offset)
}

// ListPublic returns approved submissions, newest first.
func (s *ModerationService) ListPublic(ctx context.Context, in ListInput) ([]*models.Submission, error) {
	return s.subs.ListApproved(ctx, in.Kind, in.Limit, in.Offset)
}

// ListPending returns the moderation queue. Admin only.
func (s *ModerationService) ListPending(ctx context.Context, actor *models.User, in ListInput) ([]*models.Submission, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Admin access required")
	}
	return s.subs.ListByStatus(ctx, models.StatusPending, in.Kind, in.Limit, in.Offset)
}

// StatusBreakdown returns submission counts grouped by kind and status for
// the admin dashboard. Admin only.
func (s *ModerationService) StatusBreakdown(ctx context.Context, actor *models.User) ([]repository.KindStatusCount, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Admin access required")
	}
	return s.subs.CountByKindAndStatus(ctx)
}

package repository

import (
	"context"
	"errors"
	"time"

	"devvault/internal/cache"
	"devvault/internal/models"

	"gorm.io/gorm"
)

// KindStatusCount is one row of the admin stats breakdown.
type KindStatusCount struct {
	Kind   models.SubmissionKind   `json:"kind"`
	Status models.SubmissionStatus `json:"status"`
	Count  int64                   `json:"count"`
}

// SubmissionRepository defines persistence operations for submissions.
// It is the only component permitted to read or write submission rows.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.Submission) error
	GetByID(ctx context.Context, id uint) (*models.Submission, error)
	ListByOwner(ctx context.Context, ownerID uint, kind models.SubmissionKind, limit, offset int) ([]*models.Submission, error)
	ListByStatus(ctx context.Context, status models.SubmissionStatus, kind models.SubmissionKind, limit, offset int) ([]*models.Submission, error)
	ListApproved(ctx context.Context, kind models.SubmissionKind, limit, offset int) ([]*models.Submission, error)
	UpdateStatus(ctx context.Context, id uint, status models.SubmissionStatus, decidedBy uint, decidedAt time.Time, notes string) (*models.Submission, error)
	CountByKindAndStatus(ctx context.Context) ([]KindStatusCount, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository returns a new SubmissionRepository implementation.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateApprovedLists(ctx)
	return nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	var sub models.Submission
	key := cache.SubmissionKey(id)

	err := cache.Aside(ctx, key, &sub, cache.SubmissionTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Owner").
			First(&sub, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Submission", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) ListByOwner(ctx context.Context, ownerID uint, kind models.SubmissionKind, limit, offset int) ([]*models.Submission, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	return r.list(q, kind, "created_at DESC", limit, offset)
}

func (r *submissionRepository) ListByStatus(ctx context.Context, status models.SubmissionStatus, kind models.SubmissionKind, limit, offset int) ([]*models.Submission, error) {
	q := r.db.WithContext(ctx).Preload("Owner").Where("status = ?", status)
	return r.list(q, kind, "created_at DESC", limit, offset)
}

func (r *submissionRepository) ListApproved(ctx context.Context, kind models.SubmissionKind, limit, offset int) ([]*models.Submission, error) {
	var subs []*models.Submission
	key := cache.ApprovedListKey(string(kind), limit, offset)

	err := cache.Aside(ctx, key, &subs, cache.ApprovedListTTL, func() error {
		q := r.db.WithContext(ctx).Preload("Owner").Where("status = ?", models.StatusApproved)
		fetched, err := r.list(q, kind, "created_at DESC", limit, offset)
		if err != nil {
			return err
		}
		subs = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// list applies the shared kind filter, ordering, and pagination.
func (r *submissionRepository) list(q *gorm.DB, kind models.SubmissionKind, order string, limit, offset int) ([]*models.Submission, error) {
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var subs []*models.Submission
	if err := q.
		Order(order).
		Limit(limit).
		Offset(offset).
		Find(&subs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return subs, nil
}

// UpdateStatus performs the decision write. The UPDATE is conditioned on the
// current status still being pending, so two concurrent decisions cannot both
// succeed: the loser observes zero affected rows and gets InvalidState.
func (r *submissionRepository) UpdateStatus(ctx context.Context, id uint, status models.SubmissionStatus, decidedBy uint, decidedAt time.Time, notes string) (*models.Submission, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]any{
			"status":             status,
			"decided_by_user_id": decidedBy,
			"decided_at":         decidedAt,
			"review_notes":       notes,
		})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}

	if res.RowsAffected == 0 {
		// Either the row is gone or it was already decided. Distinguish so the
		// caller can report NotFound vs InvalidState.
		var existing models.Submission
		if err := r.db.WithContext(ctx).First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Submission", id)
			}
			return nil, models.NewInternalError(err)
		}
		return nil, models.NewInvalidStateError("submission is not pending")
	}

	cache.InvalidateSubmission(ctx, id)
	cache.InvalidateApprovedLists(ctx)

	var updated models.Submission
	if err := r.db.WithContext(ctx).Preload("Owner").Preload("DecidedBy").First(&updated, id).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &updated, nil
}

func (r *submissionRepository) CountByKindAndStatus(ctx context.Context) ([]KindStatusCount, error) {
	var rows []KindStatusCount
	if err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Select("kind, status, COUNT(*) as count").
		Group("kind").
		Group("status").
		Order("kind").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

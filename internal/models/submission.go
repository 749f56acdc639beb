package models

import (
	"time"

	"gorm.io/gorm"
)

// SubmissionKind discriminates the content variants subject to moderation.
type SubmissionKind string

const (
	KindResource          SubmissionKind = "resource"
	KindTutorial          SubmissionKind = "tutorial"
	KindDiscussion        SubmissionKind = "discussion"
	KindFeatureSuggestion SubmissionKind = "feature_suggestion"
	KindDocImprovement    SubmissionKind = "doc_improvement"
	KindIssue             SubmissionKind = "issue"
	KindContentReport     SubmissionKind = "content_report"
)

// Kinds lists every submission kind the platform accepts.
var Kinds = []SubmissionKind{
	KindResource,
	KindTutorial,
	KindDiscussion,
	KindFeatureSuggestion,
	KindDocImprovement,
	KindIssue,
	KindContentReport,
}

// Valid reports whether k is a known submission kind.
func (k SubmissionKind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// TwoState reports whether the kind uses the reduced review workflow.
// Issues and content reports are only ever marked reviewed (stored as
// approved); they cannot be rejected.
func (k SubmissionKind) TwoState() bool {
	return k == KindIssue || k == KindContentReport
}

// RequiresLink reports whether the kind must carry an external URL.
func (k SubmissionKind) RequiresLink() bool {
	return k == KindResource || k == KindTutorial
}

// SubmissionStatus defines lifecycle states for moderated submissions.
type SubmissionStatus string

const (
	// StatusPending indicates the submission is awaiting review.
	StatusPending SubmissionStatus = "pending"
	// StatusApproved indicates the submission was accepted and is publicly visible.
	StatusApproved SubmissionStatus = "approved"
	// StatusRejected indicates the submission was denied.
	StatusRejected SubmissionStatus = "rejected"
)

// Submission is a user-created content item subject to admin moderation.
// All seven content variants share this shape; Kind discriminates them.
type Submission struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	Kind     SubmissionKind `gorm:"type:varchar(30);not null;index" json:"kind"`
	Title    string         `gorm:"size:300;not null" json:"title"`
	Body     string         `gorm:"type:text" json:"body"`
	Category string         `gorm:"size:60" json:"category"`
	Link     string         `gorm:"size:2048" json:"link,omitempty"`

	OwnerID uint  `gorm:"not null;index" json:"owner_id"`
	Owner   *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Status          SubmissionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DecidedByUserID *uint            `json:"decided_by_user_id,omitempty"`
	DecidedBy       *User            `gorm:"foreignKey:DecidedByUserID" json:"decided_by,omitempty"`
	DecidedAt       *time.Time       `json:"decided_at,omitempty"`
	ReviewNotes     string           `gorm:"type:text" json:"review_notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Decided reports whether the submission has left the pending state.
func (s *Submission) Decided() bool {
	return s.Status != StatusPending
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus drives which mutations a performance review still accepts.
type ReviewStatus string

const (
	ReviewDraft     ReviewStatus = "DRAFT"
	ReviewSubmitted ReviewStatus = "SUBMITTED"
	ReviewCompleted ReviewStatus = "COMPLETED"
)

const (
	MinReviewScore = 1
	MaxReviewScore = 5
)

// PerformanceReview belongs to one employee and is usually driven by their manager.
type PerformanceReview struct {
	ID              uuid.UUID
	EmployeeID      uuid.UUID    // EmployeeProfile under review.
	ManagerID       *uuid.UUID   // EmployeeProfile of the reviewing manager.
	Status          ReviewStatus
	ManagerComment  string
	EmployeeComment string
	OverallScore    *float64     // Mean of item scores; nil without items.
	SubmittedAt     *time.Time
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []ReviewItem
}

// ReviewItem is one scored criterion of a review.
type ReviewItem struct {
	ID        uuid.UUID
	ReviewID  uuid.UUID
	Criteria  string
	Score     int       // 1..5
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsManagedBy reports whether managerProfileID is the review's manager.
func (r *PerformanceReview) IsManagedBy(managerProfileID uuid.UUID) bool {
	return r.ManagerID != nil && *r.ManagerID == managerProfileID
}

// Submit moves a draft to SUBMITTED.
func (r *PerformanceReview) Submit(now time.Time) bool {
	if r.Status != ReviewDraft {
		return false
	}
	r.Status = ReviewSubmitted
	r.SubmittedAt = &now
	r.UpdatedAt = now

	return true
}

// Acknowledge moves a submitted review to COMPLETED.
func (r *PerformanceReview) Acknowledge(now time.Time) bool {
	if r.Status != ReviewSubmitted {
		return false
	}
	r.Status = ReviewCompleted
	r.CompletedAt = &now
	r.UpdatedAt = now

	return true
}

// RecalculateScore sets OverallScore to the mean of items.
func (r *PerformanceReview) RecalculateScore(items []ReviewItem) {
	if len(items) == 0 {
		r.OverallScore = nil

		return
	}
	total := 0
	for _, item := range items {
		total += item.Score
	}
	mean := float64(total) / float64(len(items))
	r.OverallScore = &mean
}

// ValidScore reports whether score is inside the 1..5 scale.
func ValidScore(score int) bool {
	return score >= MinReviewScore && score <= MaxReviewScore
}

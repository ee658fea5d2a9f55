package handler

import (
	"time"

	"smarthr/internal/domain/entity"

	"github.com/google/uuid"
)

type accountResponse struct {
	ID              uuid.UUID     `json:"id"`
	Email           string        `json:"email"`
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name"`
	Role            entity.Role   `json:"role"`
	Groups          entity.Groups `json:"groups"`
	IsActive        bool          `json:"is_active"`
	IsEmailVerified bool          `json:"is_email_verified"`
}

func newAccountResponse(a *entity.Account) *accountResponse {
	return &accountResponse{
		ID:              a.ID,
		Email:           a.Email,
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		Role:            a.Role,
		Groups:          a.Groups,
		IsActive:        a.IsActive,
		IsEmailVerified: a.IsEmailVerified,
	}
}

func newAccountResponses(accounts []*entity.Account) []*accountResponse {
	out := make([]*accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, newAccountResponse(a))
	}

	return out
}

type tokensResponse struct {
	Access           string     `json:"access"`
	Refresh          string     `json:"refresh,omitempty"`
	AccessExpiresAt  time.Time  `json:"access_expires_at"`
	RefreshExpiresAt *time.Time `json:"refresh_expires_at,omitempty"`
}

func newTokensResponse(pair *entity.TokenPair, withRefresh bool) *tokensResponse {
	out := &tokensResponse{
		Access:          pair.AccessToken,
		AccessExpiresAt: pair.AccessExpiresAt,
	}
	if withRefresh && pair.RefreshToken != "" {
		out.Refresh = pair.RefreshToken
		expires := pair.RefreshExpiresAt
		out.RefreshExpiresAt = &expires
	}

	return out
}

type authResponse struct {
	User   *accountResponse `json:"user"`
	Tokens *tokensResponse  `json:"tokens"`
}

type activityResponse struct {
	ID         string                `json:"id"`
	Action     entity.ActivityAction `json:"action"`
	Success    bool                  `json:"success"`
	OccurredAt time.Time             `json:"occurred_at"`
	IPAddress  string                `json:"ip_address,omitempty"`
	UserAgent  string                `json:"user_agent,omitempty"`
	Extra      map[string]any        `json:"extra,omitempty"`
}

func newActivityResponses(records []*entity.ActivityRecord) []*activityResponse {
	out := make([]*activityResponse, 0, len(records))
	for _, r := range records {
		out = append(out, &activityResponse{
			ID:         r.ID,
			Action:     r.Action,
			Success:    r.Success,
			OccurredAt: r.OccurredAt,
			IPAddress:  r.IPAddress,
			UserAgent:  r.UserAgent,
			Extra:      r.Extra,
		})
	}

	return out
}

type employeeResponse struct {
	ID         uuid.UUID  `json:"id"`
	AccountID  uuid.UUID  `json:"account_id"`
	ManagerID  *uuid.UUID `json:"manager_id"`
	JobTitle   string     `json:"job_title"`
	Department string     `json:"department"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func newEmployeeResponse(p *entity.EmployeeProfile) *employeeResponse {
	return &employeeResponse{
		ID:         p.ID,
		AccountID:  p.AccountID,
		ManagerID:  p.ManagerID,
		JobTitle:   p.JobTitle,
		Department: p.Department,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

type reviewItemResponse struct {
	ID       uuid.UUID `json:"id"`
	ReviewID uuid.UUID `json:"review_id"`
	Criteria string    `json:"criteria"`
	Score    int       `json:"score"`
	Comment  string    `json:"comment"`
}

func newReviewItemResponse(item *entity.ReviewItem) *reviewItemResponse {
	return &reviewItemResponse{
		ID:       item.ID,
		ReviewID: item.ReviewID,
		Criteria: item.Criteria,
		Score:    item.Score,
		Comment:  item.Comment,
	}
}

func newReviewItemResponses(items []entity.ReviewItem) []*reviewItemResponse {
	out := make([]*reviewItemResponse, 0, len(items))
	for i := range items {
		out = append(out, newReviewItemResponse(&items[i]))
	}

	return out
}

type reviewResponse struct {
	ID              uuid.UUID             `json:"id"`
	EmployeeID      uuid.UUID             `json:"employee_id"`
	ManagerID       *uuid.UUID            `json:"manager_id"`
	Status          entity.ReviewStatus   `json:"status"`
	ManagerComment  string                `json:"manager_comment"`
	EmployeeComment string                `json:"employee_comment"`
	OverallScore    *float64              `json:"overall_score"`
	SubmittedAt     *time.Time            `json:"submitted_at"`
	CompletedAt     *time.Time            `json:"completed_at"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	Items           []*reviewItemResponse `json:"items"`
}

func newReviewResponse(r *entity.PerformanceReview) *reviewResponse {
	return &reviewResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		ManagerID:       r.ManagerID,
		Status:          r.Status,
		ManagerComment:  r.ManagerComment,
		EmployeeComment: r.EmployeeComment,
		OverallScore:    r.OverallScore,
		SubmittedAt:     r.SubmittedAt,
		CompletedAt:     r.CompletedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Items:           newReviewItemResponses(r.Items),
	}
}

package impl

import (
	"context"
	"testing"

	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestReviewService_Create(t *testing.T) {
	env := newTestEnv()
	srv := env.reviewService()
	org := seedOrgChart(env)
	ctx := context.Background()

	_, err := srv.Create(ctx, env.principalFor(org.report), org.reportProfile.ID)
	require.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	_, err = srv.Create(ctx, env.principalFor(org.outsider), org.reportProfile.ID)
	require.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	_, err = srv.Create(ctx, env.principalFor(org.report), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound, "a missing employee is reported before the permission check")

	review, err := srv.Create(ctx, env.principalFor(org.manager), org.reportProfile.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewDraft, review.Status)
	require.NotNil(t, review.ManagerID)
	assert.Equal(t, org.managerProfile.ID, *review.ManagerID)

	byHR, err := srv.Create(ctx, env.principalFor(org.hr), org.reportProfile.ID)
	require.NoError(t, err)
	assert.Equal(t, org.managerProfile.ID, *byHR.ManagerID)
}

func TestReviewService_ItemsDriveScore(t *testing.T) {
	env := newTestEnv()
	srv := env.reviewService()
	org := seedOrgChart(env)
	manager := env.principalFor(org.manager)
	ctx := context.Background()

	review, err := srv.Create(ctx, manager, org.reportProfile.ID)
	require.NoError(t, err)

	_, err = srv.AddItem(ctx, manager, review.ID, &usecase.ReviewItemInput{Criteria: "Delivery", Score: ptr(6)})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.AddItem(ctx, manager, review.ID, &usecase.ReviewItemInput{Criteria: "  ", Score: ptr(3)})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	first, err := srv.AddItem(ctx, manager, review.ID, &usecase.ReviewItemInput{Criteria: "Delivery", Score: ptr(4)})
	require.NoError(t, err)
	_, err = srv.AddItem(ctx, manager, review.ID, &usecase.ReviewItemInput{Criteria: "Teamwork", Score: ptr(5), Comment: ptr("great")})
	require.NoError(t, err)

	got, err := srv.Get(ctx, manager, review.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.OverallScore)
	assert.InDelta(t, 4.5, *got.OverallScore, 1e-9)

	_, err = srv.UpdateItem(ctx, manager, first.ID, &usecase.ReviewItemInput{Score: ptr(2)})
	require.NoError(t, err)
	got, err = srv.Get(ctx, manager, review.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, *got.OverallScore, 1e-9)

	require.NoError(t, srv.DeleteItem(ctx, manager, first.ID))
	got, err = srv.Get(ctx, manager, review.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, *got.OverallScore, 1e-9)

	require.ErrorIs(t, srv.DeleteItem(ctx, manager, first.ID), domainerrors.ErrNotFound)

	items, err := srv.ListItems(ctx, env.principalFor(org.report), review.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NoError(t, srv.DeleteItem(ctx, manager, items[0].ID))

	got, err = srv.Get(ctx, manager, review.ID)
	require.NoError(t, err)
	assert.Nil(t, got.OverallScore)
}

func TestReviewService_Lifecycle(t *testing.T) {
	env := newTestEnv()
	srv := env.reviewService()
	org := seedOrgChart(env)
	manager := env.principalFor(org.manager)
	employee := env.principalFor(org.report)
	hr := env.principalFor(org.hr)
	ctx := context.Background()

	review, err := srv.Create(ctx, manager, org.reportProfile.ID)
	require.NoError(t, err)

	// The employee may only write their own comment.
	updated, err := srv.Update(ctx, employee, review.ID, &usecase.UpdateReviewInput{
		ManagerComment:  ptr("self praise"),
		EmployeeComment: ptr("looking forward"),
	})
	require.NoError(t, err)
	assert.Empty(t, updated.ManagerComment)
	assert.Equal(t, "looking forward", updated.EmployeeComment)

	_, err = srv.Acknowledge(ctx, employee, review.ID, nil)
	require.ErrorIs(t, err, domainerrors.ErrInvalidStateTransition)

	_, err = srv.Submit(ctx, employee, review.ID, nil)
	require.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	submitted, err := srv.Submit(ctx, manager, review.ID, ptr("solid year"))
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewSubmitted, submitted.Status)
	assert.Equal(t, "solid year", submitted.ManagerComment)
	require.NotNil(t, submitted.SubmittedAt)

	_, err = srv.Submit(ctx, manager, review.ID, nil)
	require.ErrorIs(t, err, domainerrors.ErrInvalidStateTransition)

	_, err = srv.AddItem(ctx, manager, review.ID, &usecase.ReviewItemInput{Criteria: "Late", Score: ptr(3)})
	require.ErrorIs(t, err, domainerrors.ErrInvalidStateTransition)

	_, err = srv.Update(ctx, manager, review.ID, &usecase.UpdateReviewInput{ManagerComment: ptr("edit")})
	require.ErrorIs(t, err, domainerrors.ErrInvalidStateTransition)

	// HR may still correct a submitted review.
	_, err = srv.AddItem(ctx, hr, review.ID, &usecase.ReviewItemInput{Criteria: "Calibration", Score: ptr(3)})
	require.NoError(t, err)

	_, err = srv.Acknowledge(ctx, manager, review.ID, nil)
	require.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	done, err := srv.Acknowledge(ctx, employee, review.ID, ptr("thanks"))
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewCompleted, done.Status)
	assert.Equal(t, "thanks", done.EmployeeComment)
	require.NotNil(t, done.CompletedAt)
	require.Len(t, done.Items, 1)

	_, err = srv.Acknowledge(ctx, employee, review.ID, nil)
	require.ErrorIs(t, err, domainerrors.ErrInvalidStateTransition)
}

func TestReviewService_Visibility(t *testing.T) {
	env := newTestEnv()
	srv := env.reviewService()
	org := seedOrgChart(env)
	auditor := env.store.seedAccount("auditor@example.com", entity.RoleEmployee, entity.GroupAuditor)
	ctx := context.Background()

	review, err := srv.Create(ctx, env.principalFor(org.manager), org.reportProfile.ID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		caller  *entity.Account
		wantErr error
	}{
		{name: "employee", caller: org.report},
		{name: "manager", caller: org.manager},
		{name: "hr", caller: org.hr},
		{name: "auditor", caller: auditor},
		{name: "other manager", caller: org.outsider, wantErr: domainerrors.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.Get(ctx, env.principalFor(tt.caller), review.ID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
		})
	}

	_, err = srv.Get(ctx, env.principalFor(org.outsider), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestReviewService_ReviewManagerKeepsAccessAfterReassignment(t *testing.T) {
	env := newTestEnv()
	srv := env.reviewService()
	org := seedOrgChart(env)
	ctx := context.Background()

	review, err := srv.Create(ctx, env.principalFor(org.manager), org.reportProfile.ID)
	require.NoError(t, err)

	env.store.mu.Lock()
	rp := env.store.employees[org.reportProfile.ID]
	rp.ManagerID = &org.outsiderProf.ID
	env.store.employees[rp.ID] = rp
	env.store.mu.Unlock()

	_, err = srv.Get(ctx, env.principalFor(org.manager), review.ID)
	require.NoError(t, err)

	_, err = srv.Get(ctx, env.principalFor(org.outsider), review.ID)
	require.NoError(t, err)

	_, err = srv.AddItem(ctx, env.principalFor(org.outsider), review.ID, &usecase.ReviewItemInput{Criteria: "x", Score: ptr(3)})
	require.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

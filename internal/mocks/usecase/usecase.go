// Package mocks holds testify mocks of the usecase interfaces for transport tests.
package mocks

import (
	"context"

	"smarthr/internal/domain/entity"
	"smarthr/internal/domain/policy"
	"smarthr/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// cleanupT is the part of testing.T the constructors need.
type cleanupT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t cleanupT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockAuthUsecase mocks usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

var _ usecase.AuthUsecase = (*MockAuthUsecase)(nil)

func NewMockAuthUsecase(t cleanupT) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	register(&m.Mock, t)

	return m
}

func (m *MockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.AuthOutput)

	return out, args.Error(1)
}

func (m *MockAuthUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.AuthOutput)

	return out, args.Error(1)
}

func (m *MockAuthUsecase) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	args := m.Called(ctx, refreshToken)
	out, _ := args.Get(0).(*usecase.RefreshOutput)

	return out, args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthUsecase) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthUsecase) Me(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, accountID)
	out, _ := args.Get(0).(*entity.Account)

	return out, args.Error(1)
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, accessToken string) (*policy.Principal, error) {
	args := m.Called(ctx, accessToken)
	out, _ := args.Get(0).(*policy.Principal)

	return out, args.Error(1)
}

// MockRecoveryUsecase mocks usecase.RecoveryUsecase.
type MockRecoveryUsecase struct {
	mock.Mock
}

var _ usecase.RecoveryUsecase = (*MockRecoveryUsecase)(nil)

func NewMockRecoveryUsecase(t cleanupT) *MockRecoveryUsecase {
	m := &MockRecoveryUsecase{}
	register(&m.Mock, t)

	return m
}

func (m *MockRecoveryUsecase) RequestPasswordReset(ctx context.Context, email string) (*usecase.EphemeralRequestOutput, error) {
	args := m.Called(ctx, email)
	out, _ := args.Get(0).(*usecase.EphemeralRequestOutput)

	return out, args.Error(1)
}

func (m *MockRecoveryUsecase) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *MockRecoveryUsecase) RequestEmailVerification(ctx context.Context, email string) (*usecase.EphemeralRequestOutput, error) {
	args := m.Called(ctx, email)
	out, _ := args.Get(0).(*usecase.EphemeralRequestOutput)

	return out, args.Error(1)
}

func (m *MockRecoveryUsecase) ConfirmEmailVerification(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// MockAccountUsecase mocks usecase.AccountUsecase.
type MockAccountUsecase struct {
	mock.Mock
}

var _ usecase.AccountUsecase = (*MockAccountUsecase)(nil)

func NewMockAccountUsecase(t cleanupT) *MockAccountUsecase {
	m := &MockAccountUsecase{}
	register(&m.Mock, t)

	return m
}

func (m *MockAccountUsecase) List(ctx context.Context, caller policy.Principal) ([]*entity.Account, error) {
	args := m.Called(ctx, caller)
	out, _ := args.Get(0).([]*entity.Account)

	return out, args.Error(1)
}

func (m *MockAccountUsecase) ChangeRole(ctx context.Context, caller policy.Principal, accountID uuid.UUID, role entity.Role) (*entity.Account, error) {
	args := m.Called(ctx, caller, accountID, role)
	out, _ := args.Get(0).(*entity.Account)

	return out, args.Error(1)
}

func (m *MockAccountUsecase) AddGroup(ctx context.Context, caller policy.Principal, accountID uuid.UUID, group entity.Group) (*entity.Account, error) {
	args := m.Called(ctx, caller, accountID, group)
	out, _ := args.Get(0).(*entity.Account)

	return out, args.Error(1)
}

func (m *MockAccountUsecase) RemoveGroup(ctx context.Context, caller policy.Principal, accountID uuid.UUID, group entity.Group) (*entity.Account, error) {
	args := m.Called(ctx, caller, accountID, group)
	out, _ := args.Get(0).(*entity.Account)

	return out, args.Error(1)
}

func (m *MockAccountUsecase) Unlock(ctx context.Context, caller policy.Principal, accountID uuid.UUID) error {
	return m.Called(ctx, caller, accountID).Error(0)
}

// MockActivityUsecase mocks usecase.ActivityUsecase.
type MockActivityUsecase struct {
	mock.Mock
}

var _ usecase.ActivityUsecase = (*MockActivityUsecase)(nil)

func NewMockActivityUsecase(t cleanupT) *MockActivityUsecase {
	m := &MockActivityUsecase{}
	register(&m.Mock, t)

	return m
}

func (m *MockActivityUsecase) ListOwn(ctx context.Context, caller policy.Principal, limit int) ([]*entity.ActivityRecord, error) {
	args := m.Called(ctx, caller, limit)
	out, _ := args.Get(0).([]*entity.ActivityRecord)

	return out, args.Error(1)
}

func (m *MockActivityUsecase) ListForAccount(ctx context.Context, caller policy.Principal, accountID uuid.UUID, limit int) ([]*entity.ActivityRecord, error) {
	args := m.Called(ctx, caller, accountID, limit)
	out, _ := args.Get(0).([]*entity.ActivityRecord)

	return out, args.Error(1)
}

// MockEmployeeUsecase mocks usecase.EmployeeUsecase.
type MockEmployeeUsecase struct {
	mock.Mock
}

var _ usecase.EmployeeUsecase = (*MockEmployeeUsecase)(nil)

func NewMockEmployeeUsecase(t cleanupT) *MockEmployeeUsecase {
	m := &MockEmployeeUsecase{}
	register(&m.Mock, t)

	return m
}

func (m *MockEmployeeUsecase) Create(ctx context.Context, caller policy.Principal, input *usecase.CreateEmployeeInput) (*entity.EmployeeProfile, error) {
	args := m.Called(ctx, caller, input)
	out, _ := args.Get(0).(*entity.EmployeeProfile)

	return out, args.Error(1)
}

func (m *MockEmployeeUsecase) Get(ctx context.Context, caller policy.Principal, profileID uuid.UUID) (*entity.EmployeeProfile, error) {
	args := m.Called(ctx, caller, profileID)
	out, _ := args.Get(0).(*entity.EmployeeProfile)

	return out, args.Error(1)
}

func (m *MockEmployeeUsecase) SetManager(ctx context.Context, caller policy.Principal, profileID uuid.UUID, managerID *uuid.UUID) (*entity.EmployeeProfile, error) {
	args := m.Called(ctx, caller, profileID, managerID)
	out, _ := args.Get(0).(*entity.EmployeeProfile)

	return out, args.Error(1)
}

// MockReviewUsecase mocks usecase.ReviewUsecase.
type MockReviewUsecase struct {
	mock.Mock
}

var _ usecase.ReviewUsecase = (*MockReviewUsecase)(nil)

func NewMockReviewUsecase(t cleanupT) *MockReviewUsecase {
	m := &MockReviewUsecase{}
	register(&m.Mock, t)

	return m
}

func (m *MockReviewUsecase) Create(ctx context.Context, caller policy.Principal, employeeID uuid.UUID) (*entity.PerformanceReview, error) {
	args := m.Called(ctx, caller, employeeID)
	out, _ := args.Get(0).(*entity.PerformanceReview)

	return out, args.Error(1)
}

func (m *MockReviewUsecase) Get(ctx context.Context, caller policy.Principal, reviewID uuid.UUID) (*entity.PerformanceReview, error) {
	args := m.Called(ctx, caller, reviewID)
	out, _ := args.Get(0).(*entity.PerformanceReview)

	return out, args.Error(1)
}

func (m *MockReviewUsecase) Update(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, input *usecase.UpdateReviewInput) (*entity.PerformanceReview, error) {
	args := m.Called(ctx, caller, reviewID, input)
	out, _ := args.Get(0).(*entity.PerformanceReview)

	return out, args.Error(1)
}

func (m *MockReviewUsecase) Submit(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, managerComment *string) (*entity.PerformanceReview, error) {
	args := m.Called(ctx, caller, reviewID, managerComment)
	out, _ := args.Get(0).(*entity.PerformanceReview)

	return out, args.Error(1)
}

func (m *MockReviewUsecase) Acknowledge(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, employeeComment *string) (*entity.PerformanceReview, error) {
	args := m.Called(ctx, caller, reviewID, employeeComment)
	out, _ := args.Get(0).(*entity.PerformanceReview)

	return out, args.Error(1)
}

func (m *MockReviewUsecase) ListItems(ctx context.Context, caller policy.Principal, reviewID uuid.UUID) ([]entity.ReviewItem, error) {
	args := m.Called(ctx, caller, reviewID)
	out, _ := args.Get(0).([]entity.ReviewItem)

	return out, args.Error(1)
}

func (m *MockReviewUsecase) AddItem(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, input *usecase.ReviewItemInput) (*entity.ReviewItem, error) {
	args := m.Called(ctx, caller, reviewID, input)
	out, _ := args.Get(0).(*entity.ReviewItem)

	return out, args.Error(1)
}

func (m *MockReviewUsecase) UpdateItem(ctx context.Context, caller policy.Principal, itemID uuid.UUID, input *usecase.ReviewItemInput) (*entity.ReviewItem, error) {
	args := m.Called(ctx, caller, itemID, input)
	out, _ := args.Get(0).(*entity.ReviewItem)

	return out, args.Error(1)
}

func (m *MockReviewUsecase) DeleteItem(ctx context.Context, caller policy.Principal, itemID uuid.UUID) error {
	return m.Called(ctx, caller, itemID).Error(0)
}

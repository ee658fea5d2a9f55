package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "smarthr/internal/delivery/context"
	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/policy"
	"smarthr/internal/domain/repository"
	"smarthr/internal/domain/service"
	"smarthr/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager repository.TransactionManager
	clock     service.Clock
	logger    *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Clock     service.Clock
	Logger    *slog.Logger
}

func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager: params.TxManager,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// loadedReview pairs a review with the ownership facts the policy needs.
type loadedReview struct {
	review  *entity.PerformanceReview
	subject policy.ReviewSubject
}

// load fetches the review and its employee. A missing review is reported
// before any permission decision is made.
func (srv *reviewService) load(ctx context.Context, f repository.RepositoryFactory, reviewID uuid.UUID, forUpdate bool) (*loadedReview, error) {
	repo := f.ReviewRepo()

	find := repo.FindByID
	if forUpdate {
		find = repo.FindByIDForUpdate
	}
	review, err := find(ctx, reviewID)
	if err != nil {
		return nil, notFound(err, "review")
	}

	employee, err := f.EmployeeRepo().FindByID(ctx, review.EmployeeID)
	if err != nil {
		return nil, notFound(err, "employee")
	}

	return &loadedReview{
		review: review,
		subject: policy.ReviewSubject{
			Owner:     policy.Ownership{SubjectAccountID: employee.AccountID, ManagerProfileID: employee.ManagerID},
			ManagerID: review.ManagerID,
			Status:    review.Status,
		},
	}, nil
}

// Create opens a DRAFT review. A manager becomes the review's manager; HR
// and ADMIN hand it to the employee's current manager.
func (srv *reviewService) Create(ctx context.Context, caller policy.Principal, employeeID uuid.UUID) (*entity.PerformanceReview, error) {
	var review *entity.PerformanceReview
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		employee, err := f.EmployeeRepo().FindByID(ctx, employeeID)
		if err != nil {
			return notFound(err, "employee")
		}

		own := policy.Ownership{SubjectAccountID: employee.AccountID, ManagerProfileID: employee.ManagerID}
		decision := policy.CanCreateReview(caller, own)
		if err := decisionError(decision); err != nil {
			return err
		}

		managerID := employee.ManagerID
		if decision.Reason == policy.ReasonDirectManager {
			managerID = caller.ProfileID
		}

		now := srv.clock.Now()
		review = &entity.PerformanceReview{
			EmployeeID: employee.ID,
			ManagerID:  managerID,
			Status:     entity.ReviewDraft,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		return f.ReviewRepo().Create(ctx, review)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Performance review created", slog.Any("reviewID", review.ID), slog.Any("employeeID", employeeID))

	return review, nil
}

func (srv *reviewService) Get(ctx context.Context, caller policy.Principal, reviewID uuid.UUID) (*entity.PerformanceReview, error) {
	var review *entity.PerformanceReview
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		loaded, err := srv.load(ctx, f, reviewID, false)
		if err != nil {
			return err
		}
		if err := decisionError(policy.CanViewReview(caller, loaded.subject)); err != nil {
			return err
		}

		review = loaded.review
		review.Items, err = f.ReviewRepo().ListItems(ctx, reviewID)

		return err
	})

	return review, err
}

// Update applies comment changes within the caller's scope. The employee's
// attempt to set the manager comment is dropped, not rejected.
func (srv *reviewService) Update(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, input *usecase.UpdateReviewInput) (*entity.PerformanceReview, error) {
	return srv.mutate(ctx, reviewID, func(f repository.RepositoryFactory, loaded *loadedReview) error {
		scope, decision := policy.CanUpdateReview(caller, loaded.subject)
		if err := decisionError(decision); err != nil {
			return err
		}

		review := loaded.review
		if input.EmployeeComment != nil {
			review.EmployeeComment = *input.EmployeeComment
		}
		if scope == policy.ScopeAll && input.ManagerComment != nil {
			review.ManagerComment = *input.ManagerComment
		}
		review.UpdatedAt = srv.clock.Now()

		return f.ReviewRepo().Update(ctx, review)
	})
}

func (srv *reviewService) Submit(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, managerComment *string) (*entity.PerformanceReview, error) {
	return srv.mutate(ctx, reviewID, func(f repository.RepositoryFactory, loaded *loadedReview) error {
		if err := decisionError(policy.CanSubmitReview(caller, loaded.subject)); err != nil {
			return err
		}

		review := loaded.review
		if managerComment != nil {
			review.ManagerComment = *managerComment
		}
		if !review.Submit(srv.clock.Now()) {
			return domainerrors.ErrInvalidStateTransition
		}

		return f.ReviewRepo().Update(ctx, review)
	})
}

func (srv *reviewService) Acknowledge(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, employeeComment *string) (*entity.PerformanceReview, error) {
	return srv.mutate(ctx, reviewID, func(f repository.RepositoryFactory, loaded *loadedReview) error {
		if err := decisionError(policy.CanAcknowledgeReview(caller, loaded.subject)); err != nil {
			return err
		}

		review := loaded.review
		if employeeComment != nil {
			review.EmployeeComment = *employeeComment
		}
		if !review.Acknowledge(srv.clock.Now()) {
			return domainerrors.ErrInvalidStateTransition
		}

		return f.ReviewRepo().Update(ctx, review)
	})
}

// mutate locks the review row for the duration of fn and returns the review
// with its items.
func (srv *reviewService) mutate(ctx context.Context, reviewID uuid.UUID, fn func(repository.RepositoryFactory, *loadedReview) error) (*entity.PerformanceReview, error) {
	var review *entity.PerformanceReview
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		loaded, err := srv.load(ctx, f, reviewID, true)
		if err != nil {
			return err
		}
		if err := fn(f, loaded); err != nil {
			return err
		}

		review = loaded.review
		review.Items, err = f.ReviewRepo().ListItems(ctx, reviewID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (srv *reviewService) ListItems(ctx context.Context, caller policy.Principal, reviewID uuid.UUID) ([]entity.ReviewItem, error) {
	review, err := srv.Get(ctx, caller, reviewID)
	if err != nil {
		return nil, err
	}

	return review.Items, nil
}

func (srv *reviewService) AddItem(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, input *usecase.ReviewItemInput) (*entity.ReviewItem, error) {
	var item *entity.ReviewItem
	err := srv.editItems(ctx, caller, reviewID, func(repo repository.ReviewRepository) error {
		criteria := strings.TrimSpace(input.Criteria)
		if criteria == "" {
			return itemValidationError("criteria", "criteria is required")
		}
		if input.Score == nil || !entity.ValidScore(*input.Score) {
			return itemValidationError("score", "score must be between 1 and 5")
		}

		now := srv.clock.Now()
		item = &entity.ReviewItem{
			ReviewID:  reviewID,
			Criteria:  criteria,
			Score:     *input.Score,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if input.Comment != nil {
			item.Comment = *input.Comment
		}

		return repo.CreateItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (srv *reviewService) UpdateItem(ctx context.Context, caller policy.Principal, itemID uuid.UUID, input *usecase.ReviewItemInput) (*entity.ReviewItem, error) {
	item, err := srv.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	err = srv.editItems(ctx, caller, item.ReviewID, func(repo repository.ReviewRepository) error {
		if criteria := strings.TrimSpace(input.Criteria); criteria != "" {
			item.Criteria = criteria
		}
		if input.Score != nil {
			if !entity.ValidScore(*input.Score) {
				return itemValidationError("score", "score must be between 1 and 5")
			}
			item.Score = *input.Score
		}
		if input.Comment != nil {
			item.Comment = *input.Comment
		}
		item.UpdatedAt = srv.clock.Now()

		return notFound(repo.UpdateItem(ctx, item), "review item")
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (srv *reviewService) DeleteItem(ctx context.Context, caller policy.Principal, itemID uuid.UUID) error {
	item, err := srv.findItem(ctx, itemID)
	if err != nil {
		return err
	}

	return srv.editItems(ctx, caller, item.ReviewID, func(repo repository.ReviewRepository) error {
		return notFound(repo.DeleteItem(ctx, itemID), "review item")
	})
}

func (srv *reviewService) findItem(ctx context.Context, itemID uuid.UUID) (*entity.ReviewItem, error) {
	var item *entity.ReviewItem
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		var err error
		item, err = f.ReviewRepo().FindItem(ctx, itemID)

		return notFound(err, "review item")
	})

	return item, err
}

// editItems gates an item write on the review and recomputes the overall
// score from the items left after the write.
func (srv *reviewService) editItems(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, fn func(repository.ReviewRepository) error) error {
	return srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		loaded, err := srv.load(ctx, f, reviewID, true)
		if err != nil {
			return err
		}
		if err := decisionError(policy.CanEditReviewItems(caller, loaded.subject)); err != nil {
			return err
		}

		repo := f.ReviewRepo()
		if err := fn(repo); err != nil {
			return err
		}

		items, err := repo.ListItems(ctx, reviewID)
		if err != nil {
			return err
		}
		review := loaded.review
		review.RecalculateScore(items)
		review.UpdatedAt = srv.clock.Now()

		return repo.Update(ctx, review)
	})
}

func itemValidationError(field, msg string) error {
	return domainerrors.ErrValidationFailed.WithPublicDetails(map[string]string{field: msg})
}

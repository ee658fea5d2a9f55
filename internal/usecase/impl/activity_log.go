package impl

import (
	"context"
	"log/slog"

	deliverycontext "smarthr/internal/delivery/context"
	"smarthr/internal/domain/entity"
	"smarthr/internal/domain/policy"
	"smarthr/internal/domain/repository"
	"smarthr/internal/domain/service"
	"smarthr/internal/errors"
	"smarthr/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// activityRecorder appends audit rows through the caller's transaction so an
// activity entry commits together with the lockout change it describes.
type activityRecorder struct {
	clock service.Clock
}

func (r activityRecorder) record(
	ctx context.Context,
	repo repository.ActivityRepository,
	accountID uuid.UUID,
	action entity.ActivityAction,
	success bool,
	client entity.ClientInfo,
	extra map[string]any,
) error {
	err := repo.Append(ctx, &entity.ActivityRecord{
		AccountID:  accountID,
		Action:     action,
		Success:    success,
		OccurredAt: r.clock.Now(),
		IPAddress:  client.IPAddress,
		UserAgent:  client.UserAgent,
		Extra:      extra,
	})

	return errors.Wrap(err, "failed to append activity record")
}

// activityService implements the ActivityUsecase interface.
type activityService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// ActivityServiceParams holds dependencies for ActivityService, injected by Fx.
type ActivityServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

func NewActivityService(params ActivityServiceParams) usecase.ActivityUsecase {
	return &activityService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *activityService) ListOwn(ctx context.Context, caller policy.Principal, limit int) ([]*entity.ActivityRecord, error) {
	return srv.list(ctx, caller.AccountID, limit)
}

// ListForAccount is open to HR/ADMIN, auditors and security admins.
func (srv *activityService) ListForAccount(ctx context.Context, caller policy.Principal, accountID uuid.UUID, limit int) ([]*entity.ActivityRecord, error) {
	if !policy.RequireHR(caller, policy.Read).Allowed() && !policy.IsSecurityAdmin(caller) {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Warn("Activity access denied",
			slog.Any("callerID", caller.AccountID), slog.Any("accountID", accountID))

		return nil, permissionDenied()
	}

	return srv.list(ctx, accountID, limit)
}

func (srv *activityService) list(ctx context.Context, accountID uuid.UUID, limit int) ([]*entity.ActivityRecord, error) {
	if limit <= 0 || limit > usecase.MaxActivityLimit {
		limit = usecase.MaxActivityLimit
	}

	var records []*entity.ActivityRecord
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		var err error
		records, err = f.ActivityRepo().ListByAccount(ctx, accountID, limit)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list activity")
	}

	return records, nil
}

package ban

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/event"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/logger"
	"github.com/ignatzorin/classifieds-backend/internal/metrics"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type BanUserUseCase struct {
	userRepo repository.UserRepository
	notifier event.Notifier
	now      func() time.Time
}

func NewBanUserUseCase(userRepo repository.UserRepository, notifier event.Notifier) *BanUserUseCase {
	return &BanUserUseCase{userRepo: userRepo, notifier: notifier, now: time.Now}
}

func (uc *BanUserUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// Execute блокирует пользователя. durationDays == nil означает бессрочно.
// Повторный бан перезаписывает предыдущий.
func (uc *BanUserUseCase) Execute(ctx context.Context, userID uuid.UUID, admin entity.Actor, reason string, durationDays *int) (*entity.User, error) {
	if !admin.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	if userID == admin.UserID {
		return nil, apperror.Validation("нельзя заблокировать самого себя")
	}

	ban, err := entity.NewBan(admin.UserID, reason, durationDays, uc.now())
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateBan(ctx, userID, ban); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось заблокировать пользователя")
	}
	user.Ban = ban

	entry := logger.Moderation(admin.UserID, "user", userID, "ban").WithField("reason", *ban.Reason)
	if ban.Until != nil {
		entry = entry.WithField("until", ban.Until.Format(time.RFC3339))
	}
	entry.Info("user banned")
	metrics.RecordModeration("user", "ban")

	if uc.notifier != nil {
		if err := uc.notifier.Notify(ctx, userID, event.UserBanned, map[string]any{
			"reason": *ban.Reason,
			"until":  ban.Until,
		}); err != nil {
			logger.Log.WithError(err).Warn("failed to notify banned user")
		}
	}

	return user, nil
}

type UnbanUserUseCase struct {
	userRepo repository.UserRepository
	notifier event.Notifier
}

func NewUnbanUserUseCase(userRepo repository.UserRepository, notifier event.Notifier) *UnbanUserUseCase {
	return &UnbanUserUseCase{userRepo: userRepo, notifier: notifier}
}

// Execute снимает блокировку и очищает все её поля. Повторный вызов безопасен.
func (uc *UnbanUserUseCase) Execute(ctx context.Context, userID uuid.UUID, admin entity.Actor) (*entity.User, error) {
	if !admin.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	wasBanned := user.Ban.IsBanned

	if err := uc.userRepo.UpdateBan(ctx, userID, entity.Ban{}); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось разблокировать пользователя")
	}
	user.Ban = entity.Ban{}

	logger.Moderation(admin.UserID, "user", userID, "unban").Info("user unbanned")
	metrics.RecordModeration("user", "unban")

	if wasBanned && uc.notifier != nil {
		if err := uc.notifier.Notify(ctx, userID, event.UserUnbanned, nil); err != nil {
			logger.Log.WithError(err).Warn("failed to notify unbanned user")
		}
	}

	return user, nil
}

type SetVerifiedUseCase struct {
	userRepo repository.UserRepository
}

func NewSetVerifiedUseCase(userRepo repository.UserRepository) *SetVerifiedUseCase {
	return &SetVerifiedUseCase{userRepo: userRepo}
}

func (uc *SetVerifiedUseCase) Execute(ctx context.Context, userID uuid.UUID, admin entity.Actor, verified bool) (*entity.User, error) {
	if !admin.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.SetVerified(ctx, userID, verified); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить верификацию")
	}
	user.IsVerified = verified

	action := "verify"
	if !verified {
		action = "unverify"
	}
	logger.Moderation(admin.UserID, "user", userID, action).Info("seller verification changed")
	metrics.RecordModeration("user", action)

	return user, nil
}

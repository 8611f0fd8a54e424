package ban

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type BanStatus struct {
	IsBanned    bool       `json:"is_banned"`
	IsPermanent bool       `json:"is_permanent"`
	Reason      *string    `json:"reason,omitempty"`
	Until       *time.Time `json:"until,omitempty"`
	BannedAt    *time.Time `json:"banned_at,omitempty"`
}

// BanStatusUseCase отвечает на вопрос «заблокирован ли пользователь сейчас».
// Все действия, закрытые для забаненных, обращаются только сюда.
type BanStatusUseCase struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewBanStatusUseCase(userRepo repository.UserRepository) *BanStatusUseCase {
	return &BanStatusUseCase{userRepo: userRepo, now: time.Now}
}

func (uc *BanStatusUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// IsCurrentlyBanned: истёкший бан не действует, даже если флаг ещё стоит.
// Неизвестный пользователь считается незаблокированным.
func (uc *BanStatusUseCase) IsCurrentlyBanned(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return user.Ban.ActiveAt(uc.now()), nil
}

// EnsureNotBanned возвращает ErrBanned для заблокированного пользователя.
func (uc *BanStatusUseCase) EnsureNotBanned(ctx context.Context, userID uuid.UUID) error {
	banned, err := uc.IsCurrentlyBanned(ctx, userID)
	if err != nil {
		return err
	}
	if banned {
		return apperror.ErrBanned
	}
	return nil
}

func (uc *BanStatusUseCase) GetBanStatus(ctx context.Context, userID uuid.UUID) (BanStatus, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return BanStatus{}, nil
		}
		return BanStatus{}, err
	}

	if !user.Ban.ActiveAt(uc.now()) {
		return BanStatus{}, nil
	}
	return BanStatus{
		IsBanned:    true,
		IsPermanent: user.Ban.IsPermanent(),
		Reason:      user.Ban.Reason,
		Until:       user.Ban.Until,
		BannedAt:    user.Ban.BannedAt,
	}, nil
}

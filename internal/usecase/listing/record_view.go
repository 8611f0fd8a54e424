package listing

import (
	"context"
	"encoding/hex"
	"net"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/logger"
	"github.com/ignatzorin/classifieds-backend/internal/metrics"
)

// ViewDeduplicator отсекает повторные просмотры до обращения к базе.
// Решение кэша не окончательное: уникальность гарантирует база.
type ViewDeduplicator interface {
	FirstSeen(ctx context.Context, listingID uuid.UUID, viewerKey string) (bool, error)
	// Release снимает отметку, если просмотр так и не попал в базу.
	Release(ctx context.Context, listingID uuid.UUID, viewerKey string) error
}

type RecordViewInput struct {
	ListingID    uuid.UUID
	ViewerUserID *uuid.UUID
	ViewerIP     string
}

type RecordViewUseCase struct {
	listingRepo repository.ListingRepository
	viewRepo    repository.ViewRepository
	dedup       ViewDeduplicator
}

func NewRecordViewUseCase(listingRepo repository.ListingRepository, viewRepo repository.ViewRepository, dedup ViewDeduplicator) *RecordViewUseCase {
	return &RecordViewUseCase{listingRepo: listingRepo, viewRepo: viewRepo, dedup: dedup}
}

// Execute возвращает true, только если просмотр новый и счётчик увеличен.
// Просмотры владельца не считаются.
func (uc *RecordViewUseCase) Execute(ctx context.Context, input RecordViewInput) (bool, error) {
	listing, err := uc.listingRepo.FindByID(ctx, input.ListingID)
	if err != nil {
		return false, err
	}
	if !listing.IsPubliclyVisible() {
		return false, nil
	}
	if input.ViewerUserID != nil && listing.IsOwnedBy(*input.ViewerUserID) {
		return false, nil
	}

	key := ViewerKey(input.ViewerUserID, input.ViewerIP)
	if key == "" {
		return false, nil
	}

	marked := false
	if uc.dedup != nil {
		first, err := uc.dedup.FirstSeen(ctx, listing.ID, key)
		if err != nil {
			logger.Log.WithError(err).Warn("view dedup cache unavailable, falling back to database")
		} else if !first {
			metrics.RecordListingView(false)
			return false, nil
		}
		marked = err == nil
	}

	recorded, err := uc.viewRepo.Record(ctx, listing.ID, key, input.ViewerUserID)
	if err != nil {
		if marked {
			if relErr := uc.dedup.Release(ctx, listing.ID, key); relErr != nil {
				logger.Log.WithError(relErr).Warn("failed to release view dedup mark")
			}
		}
		return false, err
	}
	metrics.RecordListingView(recorded)
	return recorded, nil
}

// ViewerKey строит ключ зрителя: id пользователя либо хэш IP. Сам IP не хранится.
func ViewerKey(userID *uuid.UUID, ip string) string {
	if userID != nil && *userID != uuid.Nil {
		return "u:" + userID.String()
	}
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return ""
	}
	if parsed := net.ParseIP(ip); parsed != nil {
		ip = parsed.String()
	}
	sum := blake2b.Sum256([]byte(ip))
	return "ip:" + hex.EncodeToString(sum[:16])
}

package listing_test

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type mockListingRepository struct {
	listings  map[uuid.UUID]*entity.Listing
	images    map[uuid.UUID][]entity.ListingImage
	badges    map[uuid.UUID]map[uuid.UUID]bool
	known     map[uuid.UUID]entity.Badge
	favorites map[uuid.UUID]map[uuid.UUID]bool
	updates   int
}

func newMockListingRepository() *mockListingRepository {
	return &mockListingRepository{
		listings:  make(map[uuid.UUID]*entity.Listing),
		images:    make(map[uuid.UUID][]entity.ListingImage),
		badges:    make(map[uuid.UUID]map[uuid.UUID]bool),
		known:     make(map[uuid.UUID]entity.Badge),
		favorites: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (m *mockListingRepository) Create(ctx context.Context, l *entity.Listing) error {
	cp := *l
	m.listings[l.ID] = &cp
	return nil
}

func (m *mockListingRepository) Update(ctx context.Context, l *entity.Listing) error {
	if _, ok := m.listings[l.ID]; !ok {
		return apperror.ErrListingNotFound
	}
	cp := *l
	m.listings[l.ID] = &cp
	m.updates++
	return nil
}

func (m *mockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	l, ok := m.listings[id]
	if !ok {
		return nil, apperror.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *mockListingRepository) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	l, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Images = append([]entity.ListingImage(nil), m.images[id]...)
	for badgeID := range m.badges[id] {
		l.Badges = append(l.Badges, m.known[badgeID])
	}
	return l, nil
}

func (m *mockListingRepository) ListPublic(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, int, error) {
	var result []*entity.Listing
	for _, l := range m.listings {
		if l.IsPubliclyVisible() {
			result = append(result, l)
		}
	}
	return result, len(result), nil
}

func (m *mockListingRepository) ListForModeration(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, int, error) {
	var result []*entity.Listing
	for _, l := range m.listings {
		if filter.Status == "" || string(l.Status) == filter.Status {
			result = append(result, l)
		}
	}
	return result, len(result), nil
}

func (m *mockListingRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Listing, error) {
	var result []*entity.Listing
	for _, id := range ids {
		if l, ok := m.listings[id]; ok {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockListingRepository) DeleteCascade(ctx context.Context, id uuid.UUID) ([]entity.ListingImage, error) {
	if _, ok := m.listings[id]; !ok {
		return nil, apperror.ErrListingNotFound
	}
	removed := m.images[id]
	delete(m.images, id)
	delete(m.badges, id)
	for _, saved := range m.favorites {
		delete(saved, id)
	}
	delete(m.listings, id)
	return removed, nil
}

func (m *mockListingRepository) AddImage(ctx context.Context, image *entity.ListingImage) error {
	m.images[image.ListingID] = append(m.images[image.ListingID], *image)
	return nil
}

func (m *mockListingRepository) AttachBadge(ctx context.Context, listingID, badgeID uuid.UUID) error {
	if m.badges[listingID] == nil {
		m.badges[listingID] = make(map[uuid.UUID]bool)
	}
	m.badges[listingID][badgeID] = true
	return nil
}

func (m *mockListingRepository) DetachBadge(ctx context.Context, listingID, badgeID uuid.UUID) error {
	delete(m.badges[listingID], badgeID)
	return nil
}

func (m *mockListingRepository) BadgeExists(ctx context.Context, badgeID uuid.UUID) (bool, error) {
	_, ok := m.known[badgeID]
	return ok, nil
}

func (m *mockListingRepository) seed(ownerID uuid.UUID, status valueobject.ListingStatus) *entity.Listing {
	l := &entity.Listing{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		CategoryID: uuid.New(),
		Title:      "Велосипед",
		Status:     status,
		IsActive:   true,
	}
	l.Price, _ = valueobject.ParsePrice("1500.00")
	if status == valueobject.ListingStatusRejected {
		reason := "нет фото"
		l.RejectionReason = &reason
	}
	m.listings[l.ID] = l
	return l
}

type mockViewRepository struct {
	seen  map[string]bool
	calls int
	repo  *mockListingRepository
}

func newMockViewRepository(repo *mockListingRepository) *mockViewRepository {
	return &mockViewRepository{seen: make(map[string]bool), repo: repo}
}

func (m *mockViewRepository) Record(ctx context.Context, listingID uuid.UUID, viewerKey string, viewerUserID *uuid.UUID) (bool, error) {
	m.calls++
	k := listingID.String() + "|" + viewerKey
	if m.seen[k] {
		return false, nil
	}
	m.seen[k] = true
	m.repo.listings[listingID].ViewCount++
	return true, nil
}

type mockImageStore struct {
	mu      sync.Mutex
	saved   []string
	deleted []string
}

func (m *mockImageStore) Save(ctx context.Context, listingID uuid.UUID, originalName string, r io.Reader) (string, int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rel := listingID.String() + "/" + originalName
	m.saved = append(m.saved, rel)
	return rel, int64(len(data)), nil
}

func (m *mockImageStore) Delete(ctx context.Context, relativePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, relativePath)
	return nil
}

type recordedEvent struct {
	UserID uuid.UUID
	Name   string
}

type mockNotifier struct {
	events []recordedEvent
}

func (m *mockNotifier) Notify(ctx context.Context, userID uuid.UUID, name string, data any) error {
	m.events = append(m.events, recordedEvent{UserID: userID, Name: name})
	return nil
}

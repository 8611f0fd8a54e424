package persistence

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

func TestMapReportInsertError(t *testing.T) {
	assert.NoError(t, mapReportInsertError(nil))

	dup := &pq.Error{Code: "23505", Constraint: "uq_reports_listing_target"}
	assert.True(t, apperror.IsDuplicateReport(mapReportInsertError(dup)))

	self := &pq.Error{Code: "23514", Constraint: "reports_no_self_report"}
	assert.True(t, apperror.IsSelfReport(mapReportInsertError(self)))

	otherCheck := &pq.Error{Code: "23514", Constraint: "reports_listing_target"}
	err := mapReportInsertError(otherCheck)
	assert.False(t, apperror.IsSelfReport(err))
	assert.ErrorIs(t, err, otherCheck)

	plain := errors.New("connection reset")
	assert.ErrorIs(t, mapReportInsertError(plain), plain)
}

func TestBuildListingWhere_PublicIgnoresStatus(t *testing.T) {
	where, args := buildListingWhere(repository.ListingFilter{Status: "pending"}, true)

	assert.Equal(t, "WHERE status = 'approved' AND is_active", where)
	assert.Empty(t, args)
}

func TestBuildListingWhere_AllFilters(t *testing.T) {
	categoryID := uuid.New()
	where, args := buildListingWhere(repository.ListingFilter{
		Status:     "rejected",
		CategoryID: &categoryID,
		City:       "Campinas",
		State:      "sp",
		Search:     "50%_off",
	}, false)

	assert.Equal(t,
		"WHERE status = $1 AND category_id = $2 AND city ILIKE $3 AND state = $4 AND (title ILIKE $5 OR description ILIKE $5)",
		where)
	assert.Equal(t, []any{"rejected", categoryID, "Campinas", "SP", `%50\%\_off%`}, args)
}

func TestBuildListingWhere_Empty(t *testing.T) {
	where, args := buildListingWhere(repository.ListingFilter{}, false)

	assert.Empty(t, where)
	assert.Empty(t, args)
}

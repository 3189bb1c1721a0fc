package suppliers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
	"github.com/rasoilink/rasoilink-backend/pkg/pagination"
)

func setupSuppliersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT,
  role TEXT NOT NULL,
  business_name TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  address TEXT,
  specialties TEXT,
  description TEXT,
  verified INTEGER NOT NULL DEFAULT 0,
  rating_sum INTEGER NOT NULL DEFAULT 0,
  total_reviews INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(`DELETE FROM users`).Error)
	return db
}

func newSupplier(t *testing.T, db *gorm.DB, mutate func(*models.User)) *models.User {
	t.Helper()
	supplier := &models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("rl_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		Name:         "Test Supplier",
		Role:         enums.UserRoleSupplier,
		BusinessName: "Test Traders",
		Location:     "Mumbai",
		Specialties:  []string{"Vegetables"},
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if mutate != nil {
		mutate(supplier)
	}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func TestRepositoryListMatchesQueryCaseInsensitive(t *testing.T) {
	db := setupSuppliersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	match := newSupplier(t, db, func(u *models.User) {
		u.BusinessName = "Sharma Vegetable Mart"
	})
	bySpecialty := newSupplier(t, db, func(u *models.User) {
		u.BusinessName = "Gupta Traders"
		u.Specialties = []string{"Fresh Vegetables", "Fruits"}
	})
	newSupplier(t, db, func(u *models.User) {
		u.BusinessName = "Masala House"
		u.Specialties = []string{"Spices"}
	})

	rows, err := repo.List(ctx, SearchFilters{Query: "VEGETABLE"}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	got := map[uuid.UUID]bool{}
	for _, row := range rows {
		got[row.ID] = true
	}
	assert.True(t, got[match.ID])
	assert.True(t, got[bySpecialty.ID])
}

func TestRepositoryListFiltersAreConjunctive(t *testing.T) {
	db := setupSuppliersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	match := newSupplier(t, db, func(u *models.User) {
		u.Location = "Pune"
		u.Verified = true
		u.RatingSum = 9
		u.TotalReviews = 2
	})
	// right location, unverified
	newSupplier(t, db, func(u *models.User) {
		u.Location = "Pune"
		u.RatingSum = 10
		u.TotalReviews = 2
	})
	// verified but rated too low
	newSupplier(t, db, func(u *models.User) {
		u.Location = "Pune"
		u.Verified = true
		u.RatingSum = 6
		u.TotalReviews = 2
	})

	rows, err := repo.List(ctx, SearchFilters{
		Location:     "pune",
		VerifiedOnly: true,
		MinRating:    4,
	}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, match.ID, rows[0].ID)
}

func TestRepositoryListSkipsUnratedWhenMinRatingSet(t *testing.T) {
	db := setupSuppliersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	newSupplier(t, db, nil) // zero reviews

	rows, err := repo.List(ctx, SearchFilters{MinRating: 1}, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryListExcludesVendorsAndInactive(t *testing.T) {
	db := setupSuppliersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	supplier := newSupplier(t, db, nil)
	newSupplier(t, db, func(u *models.User) { u.Role = enums.UserRoleVendor })
	newSupplier(t, db, func(u *models.User) { u.IsActive = false })

	rows, err := repo.List(ctx, SearchFilters{}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, supplier.ID, rows[0].ID)
}

func TestRepositoryListPaginates(t *testing.T) {
	db := setupSuppliersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		newSupplier(t, db, func(u *models.User) { u.CreatedAt = created })
	}

	first, err := repo.List(ctx, SearchFilters{}, pagination.Params{Limit: 2})
	require.NoError(t, err)
	// limit+1 rows signal another page
	require.Len(t, first, 3)

	cursor := pagination.EncodeCursor(pagination.Cursor{
		CreatedAt: first[1].CreatedAt,
		ID:        first[1].ID,
	})
	second, err := repo.List(ctx, SearchFilters{}, pagination.Params{Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].CreatedAt.Before(first[1].CreatedAt))
}

func TestRepositoryFindByIDOnlySuppliers(t *testing.T) {
	db := setupSuppliersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	supplier := newSupplier(t, db, nil)
	vendor := newSupplier(t, db, func(u *models.User) { u.Role = enums.UserRoleVendor })

	found, err := repo.FindByID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, supplier.ID, found.ID)

	_, err = repo.FindByID(ctx, vendor.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

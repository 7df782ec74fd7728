package integration

import (
	"context"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreateCustomer(t *testing.T, repo crm.CustomerRepository, company, contact string) *crm.Customer {
	t.Helper()
	customer, err := crm.NewCustomer(company, contact)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), customer))
	return customer
}

func TestCustomerRepository_UniqueNamePair(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormCustomerRepository(tdb.DB)
	ctx := context.Background()

	first := mustCreateCustomer(t, repo, "Acme Corp", "Jane Doe")

	// A second non-deleted customer with the same pair hits the partial
	// unique index
	duplicate, err := crm.NewCustomer("Acme Corp", "Jane Doe")
	require.NoError(t, err)
	err = repo.Create(ctx, duplicate)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	// Different contact under the same company is fine
	mustCreateCustomer(t, repo, "Acme Corp", "John Smith")

	// Soft deleting the original frees the pair for reuse
	previous := first.UpdatedAt
	first.MarkDeleted()
	require.NoError(t, repo.SaveWithVersion(ctx, first, previous))

	reused, err := crm.NewCustomer("Acme Corp", "Jane Doe")
	require.NoError(t, err)
	assert.NoError(t, repo.Create(ctx, reused))
}

func TestCustomerRepository_SoftDeleteHidesFromReads(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormCustomerRepository(tdb.DB)
	ctx := context.Background()

	customer := mustCreateCustomer(t, repo, "Globex", "Hank Scorpio")

	previous := customer.UpdatedAt
	customer.MarkDeleted()
	require.NoError(t, repo.SaveWithVersion(ctx, customer, previous))

	_, err := repo.FindByID(ctx, customer.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// The row itself is still there
	found, err := repo.FindByIDIncludingDeleted(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, found.IsDeleted)

	customers, total, err := repo.Search(ctx, crm.CustomerSearch{Keyword: "Globex", Page: 1, PageSize: 20, SortBy: crm.SortByCreatedAt, SortDir: crm.SortAsc})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, customers)
}

func TestCustomerRepository_VersionedSave(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormCustomerRepository(tdb.DB)
	ctx := context.Background()

	customer := mustCreateCustomer(t, repo, "Initech", "Bill Lumbergh")

	// First writer wins
	previous := customer.UpdatedAt
	require.NoError(t, customer.SetStatus(crm.CustomerStatusContacted))
	require.NoError(t, repo.SaveWithVersion(ctx, customer, previous))

	// A second writer holding the old token is rejected
	stale, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	require.NoError(t, stale.SetStatus(crm.CustomerStatusQuoted))
	err = repo.SaveWithVersion(ctx, stale, previous)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	// The stored state is the first writer's
	current, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, crm.CustomerStatusContacted, current.Status)
}

func TestCustomerRepository_VersionSurvivesRoundTrip(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormCustomerRepository(tdb.DB)
	ctx := context.Background()

	customer := mustCreateCustomer(t, repo, "Hooli", "Gavin Belson")

	// The persisted token must compare equal to the in-memory one at
	// millisecond resolution, otherwise every second save would conflict
	loaded, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, shared.VersionEqual(customer.UpdatedAt, loaded.UpdatedAt))

	previous := loaded.UpdatedAt
	require.NoError(t, loaded.SetScore(80))
	require.NoError(t, repo.SaveWithVersion(ctx, loaded, previous))

	reloaded, err := repo.FindByID(ctx, loaded.ID)
	require.NoError(t, err)
	assert.True(t, shared.VersionEqual(loaded.UpdatedAt, reloaded.UpdatedAt))
	assert.Equal(t, 80, reloaded.Score)
}

func TestCustomerRepository_SearchKeywordAndSort(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormCustomerRepository(tdb.DB)
	ctx := context.Background()

	acme := mustCreateCustomer(t, repo, "Acme Corp", "Jane Doe")
	mustCreateCustomer(t, repo, "Globex", "John Acmeson")
	mustCreateCustomer(t, repo, "Initech", "Bill Lumbergh")

	// Keyword matches company OR contact name, case-insensitively
	customers, total, err := repo.Search(ctx, crm.CustomerSearch{
		Keyword: "aCmE", Page: 1, PageSize: 20,
		SortBy: crm.SortByCreatedAt, SortDir: crm.SortAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, customers, 2)
	assert.Equal(t, "Acme Corp", customers[0].CompanyName)
	assert.Equal(t, "Globex", customers[1].CompanyName)

	// Customers without interactions sort after those with one when
	// ordering by last interaction time descending
	when := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	previous := acme.UpdatedAt
	acme.ApplyInteractionTime(when)
	require.NoError(t, repo.SaveWithVersion(ctx, acme, previous))

	customers, total, err = repo.Search(ctx, crm.CustomerSearch{
		Page: 1, PageSize: 20,
		SortBy: crm.SortByLastInteractionAt, SortDir: crm.SortDesc,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, customers, 3)
	assert.Equal(t, acme.ID, customers[0].ID)
	assert.Nil(t, customers[1].LastInteractionAt)
	assert.Nil(t, customers[2].LastInteractionAt)
}

func TestCustomerRepository_SearchPaging(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormCustomerRepository(tdb.DB)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustCreateCustomer(t, repo, "Company "+string(rune('A'+i)), "Contact")
	}

	customers, total, err := repo.Search(ctx, crm.CustomerSearch{
		Page: 2, PageSize: 2,
		SortBy: crm.SortByCreatedAt, SortDir: crm.SortAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, customers, 2)
	assert.Equal(t, "Company C", customers[0].CompanyName)
	assert.Equal(t, "Company D", customers[1].CompanyName)

	// A page past the end is empty, not an error
	customers, total, err = repo.Search(ctx, crm.CustomerSearch{
		Page: 10, PageSize: 2,
		SortBy: crm.SortByCreatedAt, SortDir: crm.SortAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, customers)
}

func TestCustomerRepository_ExistsByName(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormCustomerRepository(tdb.DB)
	ctx := context.Background()

	customer := mustCreateCustomer(t, repo, "Acme Corp", "Jane Doe")

	exists, err := repo.ExistsByName(ctx, "Acme Corp", "Jane Doe", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	// Excluding the record itself reports no clash
	exists, err = repo.ExistsByName(ctx, "Acme Corp", "Jane Doe", customer.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByName(ctx, "Acme Corp", "Nobody", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

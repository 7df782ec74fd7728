package crm

import (
	"context"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInteractionService(customers *MockCustomerRepository, interactions *MockInteractionRepository) *InteractionService {
	uow := &fakeUnitOfWork{repos: crm.Repositories{
		Customers:    customers,
		Interactions: interactions,
	}}
	return NewInteractionService(uow, zap.NewNop())
}

func validInteractionRequest(happenedAt time.Time) CreateInteractionRequest {
	return CreateInteractionRequest{
		HappenedAt: happenedAt,
		Channel:    "phone",
		Title:      "Quarterly check-in",
		Summary:    "Discussed renewal terms",
		NextAction: "Send updated quote",
	}
}

func TestInteractionService_Create_RaisesLastInteractionAt(t *testing.T) {
	customers := new(MockCustomerRepository)
	interactions := new(MockInteractionRepository)
	service := newInteractionService(customers, interactions)

	customer, _ := crm.NewCustomer("Acme Corp", "Jane Smith")
	previous := customer.UpdatedAt
	happenedAt := time.Now().UTC().Add(-time.Hour)

	customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	interactions.On("Create", mock.Anything, mock.AnythingOfType("*crm.Interaction")).Return(nil)
	customers.On("SaveWithVersion", mock.Anything, mock.MatchedBy(func(c *crm.Customer) bool {
		return c.LastInteractionAt != nil && c.LastInteractionAt.Equal(happenedAt)
	}), previous).Return(nil)

	resp, err := service.Create(context.Background(), customer.ID, validInteractionRequest(happenedAt))

	require.NoError(t, err)
	assert.Equal(t, "phone", resp.Channel)
	assert.True(t, resp.HappenedAt.Equal(happenedAt))
	customers.AssertExpectations(t)
	interactions.AssertExpectations(t)
}

func TestInteractionService_Create_EarlierTimeKeepsMaximum(t *testing.T) {
	customers := new(MockCustomerRepository)
	interactions := new(MockInteractionRepository)
	service := newInteractionService(customers, interactions)

	latest := time.Now().UTC().Add(-time.Hour)
	customer, _ := crm.NewCustomer("Acme Corp", "Jane Smith")
	customer.LastInteractionAt = &latest
	previous := customer.UpdatedAt

	customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	interactions.On("Create", mock.Anything, mock.AnythingOfType("*crm.Interaction")).Return(nil)
	customers.On("SaveWithVersion", mock.Anything, mock.MatchedBy(func(c *crm.Customer) bool {
		return c.LastInteractionAt != nil && c.LastInteractionAt.Equal(latest)
	}), previous).Return(nil)

	earlier := latest.Add(-24 * time.Hour)
	_, err := service.Create(context.Background(), customer.ID, validInteractionRequest(earlier))

	require.NoError(t, err)
	customers.AssertExpectations(t)
	interactions.AssertExpectations(t)
}

func TestInteractionService_Create_CustomerNotFound(t *testing.T) {
	customers := new(MockCustomerRepository)
	interactions := new(MockInteractionRepository)
	service := newInteractionService(customers, interactions)

	customerID := uuid.New()
	customers.On("FindByID", mock.Anything, customerID).Return(nil, shared.ErrNotFound)

	resp, err := service.Create(context.Background(), customerID, validInteractionRequest(time.Now().UTC()))

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	interactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	customers.AssertExpectations(t)
}

func TestInteractionService_Create_InvalidChannel(t *testing.T) {
	customers := new(MockCustomerRepository)
	interactions := new(MockInteractionRepository)
	service := newInteractionService(customers, interactions)

	customer, _ := crm.NewCustomer("Acme Corp", "Jane Smith")
	customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

	req := validInteractionRequest(time.Now().UTC())
	req.Channel = "fax"

	resp, err := service.Create(context.Background(), customer.ID, req)

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CHANNEL", domainErr.Code)
	interactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInteractionService_ListByCustomer_ClampsPaging(t *testing.T) {
	customers := new(MockCustomerRepository)
	interactions := new(MockInteractionRepository)
	service := newInteractionService(customers, interactions)

	customer, _ := crm.NewCustomer("Acme Corp", "Jane Smith")
	customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	interactions.On("ListByCustomer", mock.Anything, customer.ID, 1, 100).Return([]crm.Interaction{}, int64(0), nil)

	_, total, err := service.ListByCustomer(context.Background(), customer.ID, 0, 500)

	require.NoError(t, err)
	assert.Zero(t, total)
	interactions.AssertExpectations(t)
}

func TestInteractionService_Update_ReschedulingRecomputesOwner(t *testing.T) {
	customers := new(MockCustomerRepository)
	interactions := new(MockInteractionRepository)
	service := newInteractionService(customers, interactions)

	customer, _ := crm.NewCustomer("Acme Corp", "Jane Smith")
	oldTime := time.Now().UTC().Add(-time.Hour)
	customer.LastInteractionAt = &oldTime

	interaction, _ := crm.NewInteraction(customer.ID, oldTime, crm.InteractionChannelEmail, "Quarterly check-in")
	version := interaction.UpdatedAt

	remaining := oldTime.Add(-48 * time.Hour)
	newTime := oldTime.Add(-72 * time.Hour)

	interactions.On("FindByID", mock.Anything, interaction.ID).Return(interaction, nil)
	interactions.On("SaveWithVersion", mock.Anything, mock.AnythingOfType("*crm.Interaction"), version).Return(nil)
	customers.On("FindByIDIncludingDeleted", mock.Anything, customer.ID).Return(customer, nil)
	interactions.On("MaxHappenedAt", mock.Anything, customer.ID).Return(&remaining, nil)
	customers.On("SaveWithVersion", mock.Anything, mock.MatchedBy(func(c *crm.Customer) bool {
		return c.LastInteractionAt != nil && c.LastInteractionAt.Equal(remaining)
	}), mock.Anything).Return(nil)

	req := UpdateInteractionRequest{
		HappenedAt:        newTime,
		Channel:           "email",
		Title:             "Quarterly check-in",
		OriginalUpdatedAt: &version,
	}

	resp, err := service.Update(context.Background(), interaction.ID, req)

	require.NoError(t, err)
	assert.True(t, resp.HappenedAt.Equal(newTime))
	customers.AssertExpectations(t)
	interactions.AssertExpectations(t)
}

func TestInteractionService_Update_UnchangedTimeSkipsRecompute(t *testing.T) {
	customers := new(MockCustomerRepository)
	interactions := new(MockInteractionRepository)
	service := newInteractionService(customers, interactions)

	happenedAt := time.Now().UTC().Add(-time.Hour)
	interaction, _ := crm.NewInteraction(uuid.New(), happenedAt, crm.InteractionChannelPhone, "Quarterly check-in")
	version := interaction.UpdatedAt

	interactions.On("FindByID", mock.Anything, interaction.ID).Return(interaction, nil)
	interactions.On("SaveWithVersion", mock.Anything, mock.AnythingOfType("*crm.Interaction"), version).Return(nil)

	req := UpdateInteractionRequest{
		HappenedAt:        happenedAt,
		Channel:           "phone",
		Title:             "Quarterly check-in",
		Summary:           "Updated notes",
		OriginalUpdatedAt: &version,
	}

	_, err := service.Update(context.Background(), interaction.ID, req)

	require.NoError(t, err)
	customers.AssertNotCalled(t, "FindByIDIncludingDeleted", mock.Anything, mock.Anything)
	customers.AssertNotCalled(t, "SaveWithVersion", mock.Anything, mock.Anything, mock.Anything)
	interactions.AssertExpectations(t)
}

func TestInteractionService_Update_StaleVersion(t *testing.T) {
	customers := new(MockCustomerRepository)
	interactions := new(MockInteractionRepository)
	service := newInteractionService(customers, interactions)

	interaction, _ := crm.NewInteraction(uuid.New(), time.Now().UTC(), crm.InteractionChannelWechat, "Quarterly check-in")
	stale := interaction.UpdatedAt.Add(-10 * time.Millisecond)

	interactions.On("FindByID", mock.Anything, interaction.ID).Return(interaction, nil)

	req := UpdateInteractionRequest{
		HappenedAt:        interaction.HappenedAt,
		Channel:           "wechat",
		Title:             "Quarterly check-in",
		OriginalUpdatedAt: &stale,
	}

	resp, err := service.Update(context.Background(), interaction.ID, req)

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONCURRENCY_CONFLICT", domainErr.Code)
	assert.Equal(t, interaction.UpdatedAt.UTC().Format(shared.VersionTimeFormat), domainErr.Details["currentUpdatedAt"])
	interactions.AssertNotCalled(t, "SaveWithVersion", mock.Anything, mock.Anything, mock.Anything)
}

func TestInteractionService_Delete_RecomputesToNull(t *testing.T) {
	customers := new(MockCustomerRepository)
	interactions := new(MockInteractionRepository)
	service := newInteractionService(customers, interactions)

	customer, _ := crm.NewCustomer("Acme Corp", "Jane Smith")
	last := time.Now().UTC().Add(-time.Hour)
	customer.LastInteractionAt = &last

	interaction, _ := crm.NewInteraction(customer.ID, last, crm.InteractionChannelOffline, "Site visit")
	version := interaction.UpdatedAt

	interactions.On("FindByID", mock.Anything, interaction.ID).Return(interaction, nil)
	interactions.On("Delete", mock.Anything, interaction.ID).Return(nil)
	customers.On("FindByIDIncludingDeleted", mock.Anything, customer.ID).Return(customer, nil)
	interactions.On("MaxHappenedAt", mock.Anything, customer.ID).Return(nil, nil)
	customers.On("SaveWithVersion", mock.Anything, mock.MatchedBy(func(c *crm.Customer) bool {
		return c.LastInteractionAt == nil
	}), mock.Anything).Return(nil)

	err := service.Delete(context.Background(), interaction.ID, &version)

	require.NoError(t, err)
	customers.AssertExpectations(t)
	interactions.AssertExpectations(t)
}

func TestInteractionService_Delete_WithoutVersionProceeds(t *testing.T) {
	customers := new(MockCustomerRepository)
	interactions := new(MockInteractionRepository)
	service := newInteractionService(customers, interactions)

	customer, _ := crm.NewCustomer("Acme Corp", "Jane Smith")
	happenedAt := time.Now().UTC().Add(-time.Hour)
	interaction, _ := crm.NewInteraction(customer.ID, happenedAt, crm.InteractionChannelOther, "Intro call")

	interactions.On("FindByID", mock.Anything, interaction.ID).Return(interaction, nil)
	interactions.On("Delete", mock.Anything, interaction.ID).Return(nil)
	customers.On("FindByIDIncludingDeleted", mock.Anything, customer.ID).Return(customer, nil)
	interactions.On("MaxHappenedAt", mock.Anything, customer.ID).Return(nil, nil)
	customers.On("SaveWithVersion", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := service.Delete(context.Background(), interaction.ID, nil)

	require.NoError(t, err)
	interactions.AssertExpectations(t)
}

func TestInteractionService_Create_OwnerSaveConflictSurfacesCurrentVersion(t *testing.T) {
	customers := new(MockCustomerRepository)
	interactions := new(MockInteractionRepository)
	service := newInteractionService(customers, interactions)

	customer, _ := crm.NewCustomer("Acme Corp", "Jane Smith")
	previous := customer.UpdatedAt

	winner, _ := crm.NewCustomer("Acme Corp", "Jane Smith")
	winner.BaseEntity = customer.BaseEntity
	winner.UpdatedAt = previous.Add(20 * time.Millisecond)

	customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	interactions.On("Create", mock.Anything, mock.AnythingOfType("*crm.Interaction")).Return(nil)
	customers.On("SaveWithVersion", mock.Anything, mock.AnythingOfType("*crm.Customer"), previous).Return(shared.ErrConcurrencyConflict)
	customers.On("FindByIDIncludingDeleted", mock.Anything, customer.ID).Return(winner, nil)

	resp, err := service.Create(context.Background(), customer.ID, validInteractionRequest(time.Now().UTC()))

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONCURRENCY_CONFLICT", domainErr.Code)
	customers.AssertExpectations(t)
}

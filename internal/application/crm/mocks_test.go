package crm

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerRepository is a mock implementation of crm.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByName(ctx context.Context, companyName, contactName string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, companyName, contactName, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Search(ctx context.Context, search crm.CustomerSearch) ([]crm.Customer, int64, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]crm.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *crm.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveWithVersion(ctx context.Context, customer *crm.Customer, previous time.Time) error {
	args := m.Called(ctx, customer, previous)
	return args.Error(0)
}

// MockInteractionRepository is a mock implementation of crm.InteractionRepository
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Interaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Interaction), args.Error(1)
}

func (m *MockInteractionRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, page, pageSize int) ([]crm.Interaction, int64, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]crm.Interaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockInteractionRepository) MaxHappenedAt(ctx context.Context, customerID uuid.UUID) (*time.Time, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockInteractionRepository) Create(ctx context.Context, interaction *crm.Interaction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

func (m *MockInteractionRepository) SaveWithVersion(ctx context.Context, interaction *crm.Interaction, previous time.Time) error {
	args := m.Called(ctx, interaction, previous)
	return args.Error(0)
}

func (m *MockInteractionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeUnitOfWork hands the same mock repositories to every transaction
type fakeUnitOfWork struct {
	repos crm.Repositories
}

func (f *fakeUnitOfWork) Execute(_ context.Context, fn func(repos crm.Repositories) error) error {
	return fn(f.repos)
}

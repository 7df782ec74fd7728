package crm

import (
	"context"
	"errors"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer-related business operations. Updates and
// deletes run under optimistic concurrency: the caller's version token is
// compared at millisecond resolution, and the storage write is conditioned on
// the version loaded in this request.
type CustomerService struct {
	customerRepo crm.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo crm.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	// Friendly pre-check; the partial unique index remains the authority
	exists, err := s.customerRepo.ExistsByName(ctx, req.CompanyName, req.ContactName, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, duplicateNameError()
	}

	customer, err := crm.NewCustomer(req.CompanyName, req.ContactName)
	if err != nil {
		return nil, err
	}
	if err := applyCustomerFields(customer, req.Wechat, req.Phone, req.Email, req.Industry, req.Source, req.Status, req.Tags, req.Score); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost the race against a concurrent insert of the same pair
			return nil, duplicateNameError()
		}
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a non-deleted customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Search retrieves a page of customers matching the filters, plus the total
// match count over the whole filtered set
func (s *CustomerService) Search(ctx context.Context, req SearchCustomersRequest) ([]CustomerResponse, int64, error) {
	search := crm.CustomerSearch{
		Keyword:  req.Keyword,
		Status:   crm.CustomerStatus(req.Status),
		Industry: req.Industry,
		Source:   crm.CustomerSource(req.Source),
		SortBy:   req.SortBy,
		SortDir:  req.SortDir,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	search.Normalize()

	customers, total, err := s.customerRepo.Search(ctx, search)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}

	return responses, total, nil
}

// Update applies a full update to a customer under the uniqueness and
// optimistic concurrency guards
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := s.checkVersion(ctx, customer.UpdatedAt, req.OriginalUpdatedAt, "customer", customerID); err != nil {
		return nil, err
	}

	if req.CompanyName != customer.CompanyName || req.ContactName != customer.ContactName {
		exists, err := s.customerRepo.ExistsByName(ctx, req.CompanyName, req.ContactName, customerID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, duplicateNameError()
		}
	}

	previous := customer.UpdatedAt
	if err := customer.Rename(req.CompanyName, req.ContactName); err != nil {
		return nil, err
	}
	if err := applyCustomerFields(customer, req.Wechat, req.Phone, req.Email, req.Industry, req.Source, req.Status, req.Tags, req.Score); err != nil {
		return nil, err
	}

	if err := s.saveGuarded(ctx, customer, previous); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete soft-deletes a customer under the optimistic concurrency guard.
// Historical interactions keep referencing the row.
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID, originalUpdatedAt *time.Time) error {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}

	if err := s.checkVersion(ctx, customer.UpdatedAt, originalUpdatedAt, "customer", customerID); err != nil {
		return err
	}

	previous := customer.UpdatedAt
	customer.MarkDeleted()

	return s.saveGuarded(ctx, customer, previous)
}

// checkVersion compares the caller's expected version token against the
// current one at millisecond resolution. A missing token skips the check;
// that degraded mode permits lost updates and is logged as a warning.
func (s *CustomerService) checkVersion(ctx context.Context, current time.Time, expected *time.Time, entity string, id uuid.UUID) error {
	if expected == nil {
		s.logger.Warn("Update request without version token, concurrency check skipped",
			zap.String("entity", entity),
			zap.String("id", id.String()))
		return nil
	}
	if !shared.VersionEqual(current, *expected) {
		return shared.NewConcurrencyError(current)
	}
	return nil
}

// saveGuarded writes the customer conditioned on its previous version token
// and translates storage-level rejections into domain errors, re-reading the
// row so a concurrency failure always carries the current version.
func (s *CustomerService) saveGuarded(ctx context.Context, customer *crm.Customer, previous time.Time) error {
	err := s.customerRepo.SaveWithVersion(ctx, customer, previous)
	if err == nil {
		return nil
	}
	if errors.Is(err, shared.ErrAlreadyExists) {
		return duplicateNameError()
	}
	if errors.Is(err, shared.ErrConcurrencyConflict) {
		current, readErr := s.customerRepo.FindByIDIncludingDeleted(ctx, customer.ID)
		if readErr != nil {
			return shared.ErrConcurrencyConflict
		}
		return shared.NewConcurrencyError(current.UpdatedAt)
	}
	return err
}

func applyCustomerFields(customer *crm.Customer, wechat, phone, email, industry, source, status string, tags []string, score *int) error {
	if err := customer.SetContact(wechat, phone, email); err != nil {
		return err
	}
	if err := customer.SetIndustry(industry); err != nil {
		return err
	}
	if err := customer.SetSource(crm.CustomerSource(source)); err != nil {
		return err
	}
	if status != "" {
		if err := customer.SetStatus(crm.CustomerStatus(status)); err != nil {
			return err
		}
	}
	if err := customer.SetTags(tags); err != nil {
		return err
	}
	if score != nil {
		if err := customer.SetScore(*score); err != nil {
			return err
		}
	}
	return nil
}

func duplicateNameError() error {
	return shared.NewDomainError("ALREADY_EXISTS", "Customer with this company and contact name already exists").
		WithDetail("constraint", "uq_customers_company_contact")
}

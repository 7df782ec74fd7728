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

// InteractionService handles interaction-related business operations. Every
// write that changes a customer's interaction set also recomputes the derived
// Customer.LastInteractionAt inside the same storage transaction, so readers
// never observe a customer row inconsistent with its interactions.
type InteractionService struct {
	uow    crm.UnitOfWork
	logger *zap.Logger
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(uow crm.UnitOfWork, logger *zap.Logger) *InteractionService {
	return &InteractionService{
		uow:    uow,
		logger: logger,
	}
}

// Create records a new interaction for a customer. The customer's
// LastInteractionAt is max-merged with the new occurrence time; a full
// recomputation is unnecessary because an insert can only raise the maximum.
func (s *InteractionService) Create(ctx context.Context, customerID uuid.UUID, req CreateInteractionRequest) (*InteractionResponse, error) {
	var response InteractionResponse

	err := s.uow.Execute(ctx, func(repos crm.Repositories) error {
		customer, err := repos.Customers.FindByID(ctx, customerID)
		if err != nil {
			return err
		}

		interaction, err := crm.NewInteraction(customerID, req.HappenedAt, crm.InteractionChannel(req.Channel), req.Title)
		if err != nil {
			return err
		}
		if err := applyInteractionFields(interaction, req.Stage, req.Title, req.Summary, req.RawContent, req.NextAction, req.Attachments); err != nil {
			return err
		}

		if err := repos.Interactions.Create(ctx, interaction); err != nil {
			return err
		}

		previous := customer.UpdatedAt
		customer.ApplyInteractionTime(interaction.HappenedAt)
		if err := s.saveCustomer(ctx, repos, customer, previous); err != nil {
			return err
		}

		response = ToInteractionResponse(interaction)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// GetByID retrieves an interaction by ID
func (s *InteractionService) GetByID(ctx context.Context, interactionID uuid.UUID) (*InteractionResponse, error) {
	var response InteractionResponse

	err := s.uow.Execute(ctx, func(repos crm.Repositories) error {
		interaction, err := repos.Interactions.FindByID(ctx, interactionID)
		if err != nil {
			return err
		}
		response = ToInteractionResponse(interaction)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// ListByCustomer returns a customer's interactions ordered by occurrence time
// descending
func (s *InteractionService) ListByCustomer(ctx context.Context, customerID uuid.UUID, page, pageSize int) ([]InteractionResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var responses []InteractionResponse
	var total int64

	err := s.uow.Execute(ctx, func(repos crm.Repositories) error {
		if _, err := repos.Customers.FindByID(ctx, customerID); err != nil {
			return err
		}

		interactions, count, err := repos.Interactions.ListByCustomer(ctx, customerID, page, pageSize)
		if err != nil {
			return err
		}

		responses = make([]InteractionResponse, 0, len(interactions))
		for i := range interactions {
			responses = append(responses, ToInteractionResponse(&interactions[i]))
		}
		total = count
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return responses, total, nil
}

// Update applies a full update to an interaction. When the occurrence time
// moves, the owner's LastInteractionAt is recomputed over all remaining
// interactions: the edit may have lowered the previous maximum, so a
// max-merge is not enough.
func (s *InteractionService) Update(ctx context.Context, interactionID uuid.UUID, req UpdateInteractionRequest) (*InteractionResponse, error) {
	var response InteractionResponse

	err := s.uow.Execute(ctx, func(repos crm.Repositories) error {
		interaction, err := repos.Interactions.FindByID(ctx, interactionID)
		if err != nil {
			return err
		}

		if err := s.checkVersion(interaction.UpdatedAt, req.OriginalUpdatedAt, interactionID); err != nil {
			return err
		}

		happenedChanged := !interaction.HappenedAt.Equal(req.HappenedAt.UTC())

		previous := interaction.UpdatedAt
		if err := interaction.Reschedule(req.HappenedAt); err != nil {
			return err
		}
		if err := interaction.SetChannel(crm.InteractionChannel(req.Channel)); err != nil {
			return err
		}
		if err := applyInteractionFields(interaction, req.Stage, req.Title, req.Summary, req.RawContent, req.NextAction, req.Attachments); err != nil {
			return err
		}

		if err := repos.Interactions.SaveWithVersion(ctx, interaction, previous); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				return s.currentVersionError(ctx, repos, interactionID)
			}
			return err
		}

		if happenedChanged {
			if err := s.recomputeOwner(ctx, repos, interaction.CustomerID); err != nil {
				return err
			}
		}

		response = ToInteractionResponse(interaction)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Delete removes an interaction permanently and recomputes the owner's
// LastInteractionAt from the remaining interactions, possibly back to null
func (s *InteractionService) Delete(ctx context.Context, interactionID uuid.UUID, originalUpdatedAt *time.Time) error {
	return s.uow.Execute(ctx, func(repos crm.Repositories) error {
		interaction, err := repos.Interactions.FindByID(ctx, interactionID)
		if err != nil {
			return err
		}

		if err := s.checkVersion(interaction.UpdatedAt, originalUpdatedAt, interactionID); err != nil {
			return err
		}

		if err := repos.Interactions.Delete(ctx, interaction.ID); err != nil {
			return err
		}

		return s.recomputeOwner(ctx, repos, interaction.CustomerID)
	})
}

// recomputeOwner re-derives LastInteractionAt as the maximum occurrence time
// over all of the customer's interactions, as seen by this transaction. The
// owner may be soft-deleted; its derived field is still kept consistent.
func (s *InteractionService) recomputeOwner(ctx context.Context, repos crm.Repositories, customerID uuid.UUID) error {
	customer, err := repos.Customers.FindByIDIncludingDeleted(ctx, customerID)
	if err != nil {
		return err
	}

	latest, err := repos.Interactions.MaxHappenedAt(ctx, customerID)
	if err != nil {
		return err
	}

	previous := customer.UpdatedAt
	customer.SetLastInteractionTime(latest)

	return s.saveCustomer(ctx, repos, customer, previous)
}

func (s *InteractionService) saveCustomer(ctx context.Context, repos crm.Repositories, customer *crm.Customer, previous time.Time) error {
	err := repos.Customers.SaveWithVersion(ctx, customer, previous)
	if err == nil {
		return nil
	}
	if errors.Is(err, shared.ErrConcurrencyConflict) {
		current, readErr := repos.Customers.FindByIDIncludingDeleted(ctx, customer.ID)
		if readErr != nil {
			return shared.ErrConcurrencyConflict
		}
		return shared.NewConcurrencyError(current.UpdatedAt)
	}
	return err
}

func (s *InteractionService) currentVersionError(ctx context.Context, repos crm.Repositories, interactionID uuid.UUID) error {
	current, err := repos.Interactions.FindByID(ctx, interactionID)
	if err != nil {
		return shared.ErrConcurrencyConflict
	}
	return shared.NewConcurrencyError(current.UpdatedAt)
}

func (s *InteractionService) checkVersion(current time.Time, expected *time.Time, id uuid.UUID) error {
	if expected == nil {
		s.logger.Warn("Update request without version token, concurrency check skipped",
			zap.String("entity", "interaction"),
			zap.String("id", id.String()))
		return nil
	}
	if !shared.VersionEqual(current, *expected) {
		return shared.NewConcurrencyError(current)
	}
	return nil
}

func applyInteractionFields(interaction *crm.Interaction, stage, title, summary, rawContent, nextAction string, attachments []AttachmentDTO) error {
	if err := interaction.SetStage(crm.CustomerStatus(stage)); err != nil {
		return err
	}
	if err := interaction.SetContent(title, summary, rawContent, nextAction); err != nil {
		return err
	}
	return interaction.SetAttachments(toAttachmentList(attachments))
}

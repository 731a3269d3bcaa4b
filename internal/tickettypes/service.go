package tickettypes

import (
	"context"

	"github.com/google/uuid"

	"ticketly/internal/events"
	"ticketly/internal/shared/apperrors"
)

type Service interface {
	CreateTicketType(ctx context.Context, eventID uuid.UUID, req CreateTicketTypeRequest) (*Response, error)
	GetTicketType(ctx context.Context, id uuid.UUID) (*Response, error)
	ListForEvent(ctx context.Context, eventID uuid.UUID, includeInactive bool) ([]Response, error)
	UpdateTicketType(ctx context.Context, id uuid.UUID, req UpdateTicketTypeRequest) (*Response, error)
	DeleteTicketType(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo      Repository
	eventRepo events.Repository
}

func NewService(repo Repository, eventRepo events.Repository) Service {
	return &service{repo: repo, eventRepo: eventRepo}
}

func (s *service) CreateTicketType(ctx context.Context, eventID uuid.UUID, req CreateTicketTypeRequest) (*Response, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	minPurchase := req.MinPurchase
	if minPurchase == 0 {
		minPurchase = 1
	}
	maxPurchase := req.MaxPurchase
	if maxPurchase == 0 {
		maxPurchase = 10
	}
	if minPurchase > maxPurchase {
		return nil, apperrors.Validation("min purchase cannot exceed max purchase")
	}
	if req.Price.IsNegative() {
		return nil, apperrors.Validation("price cannot be negative")
	}
	if req.SaleStartsAt != nil && req.SaleEndsAt != nil && !req.SaleEndsAt.After(*req.SaleStartsAt) {
		return nil, apperrors.Validation("sale window must end after it starts")
	}

	// Total allocation across ticket types stays within the event capacity.
	existing, err := s.repo.ListByEvent(ctx, eventID, false)
	if err != nil {
		return nil, err
	}
	allocated := 0
	for i := range existing {
		allocated += existing[i].QuantityAvailable
	}
	if allocated+req.QuantityAvailable > event.TotalCapacity {
		return nil, apperrors.Validation("ticket type allocation exceeds event capacity of %d", event.TotalCapacity)
	}

	tt := &TicketType{
		EventID:           eventID,
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		QuantityAvailable: req.QuantityAvailable,
		MinPurchase:       minPurchase,
		MaxPurchase:       maxPurchase,
		SaleStartsAt:      req.SaleStartsAt,
		SaleEndsAt:        req.SaleEndsAt,
		Status:            StatusActive,
	}

	if err := s.repo.Create(ctx, tt); err != nil {
		return nil, err
	}

	resp := tt.ToResponse()
	return &resp, nil
}

func (s *service) GetTicketType(ctx context.Context, id uuid.UUID) (*Response, error) {
	tt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := tt.ToResponse()
	return &resp, nil
}

func (s *service) ListForEvent(ctx context.Context, eventID uuid.UUID, includeInactive bool) ([]Response, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByEvent(ctx, eventID, !includeInactive)
	if err != nil {
		return nil, err
	}

	items := make([]Response, len(list))
	for i := range list {
		items[i] = list[i].ToResponse()
	}
	return items, nil
}

func (s *service) UpdateTicketType(ctx context.Context, id uuid.UUID, req UpdateTicketTypeRequest) (*Response, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperrors.Validation("price cannot be negative")
		}
		updates["price"] = *req.Price
	}
	if req.QuantityAvailable != nil {
		if *req.QuantityAvailable < current.QuantitySold {
			return nil, apperrors.Validation("quantity cannot be below units already sold (%d)", current.QuantitySold)
		}
		updates["quantity_available"] = *req.QuantityAvailable

		// Reopen sales when headroom comes back.
		if current.Status == StatusSoldOut && *req.QuantityAvailable > current.QuantitySold {
			updates["status"] = StatusActive
		}
	}
	if req.MinPurchase != nil {
		updates["min_purchase"] = *req.MinPurchase
	}
	if req.MaxPurchase != nil {
		updates["max_purchase"] = *req.MaxPurchase
	}
	if req.SaleStartsAt != nil {
		updates["sale_starts_at"] = *req.SaleStartsAt
	}
	if req.SaleEndsAt != nil {
		updates["sale_ends_at"] = *req.SaleEndsAt
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		resp := current.ToResponse()
		return &resp, nil
	}

	tt, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	resp := tt.ToResponse()
	return &resp, nil
}

func (s *service) DeleteTicketType(ctx context.Context, id uuid.UUID) error {
	tt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tt.QuantitySold > 0 {
		return apperrors.Conflict("ticket type has sold units and cannot be deleted")
	}

	return s.repo.Delete(ctx, id)
}

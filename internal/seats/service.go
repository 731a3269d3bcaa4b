package seats

import (
	"context"

	"github.com/google/uuid"

	"ticketly/internal/events"
	"ticketly/internal/shared/apperrors"
	"ticketly/internal/shared/constants"
	"ticketly/pkg/cache"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	BulkCreateSeats(ctx context.Context, eventID uuid.UUID, req BulkCreateSeatsRequest) ([]Response, error)
	GetSeat(ctx context.Context, id uuid.UUID) (*Response, error)
	ListForEvent(ctx context.Context, eventID uuid.UUID, query ListQuery) ([]Response, error)
}

type service struct {
	repo         Repository
	eventRepo    events.Repository
	cacheService cache.Service
}

func NewService(repo Repository, eventRepo events.Repository) Service {
	return &service{repo: repo, eventRepo: eventRepo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) BulkCreateSeats(ctx context.Context, eventID uuid.UUID, req BulkCreateSeatsRequest) ([]Response, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, apperrors.Validation("price cannot be negative")
	}

	existing, err := s.repo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	newSeats := len(req.Rows) * req.SeatsPerRow
	if int(existing)+newSeats > event.TotalCapacity {
		return nil, apperrors.Validation("seat map would exceed event capacity of %d", event.TotalCapacity)
	}

	batch := make([]Seat, 0, newSeats)
	for _, row := range req.Rows {
		for n := 1; n <= req.SeatsPerRow; n++ {
			batch = append(batch, Seat{
				EventID:    eventID,
				Section:    req.Section,
				RowLabel:   row,
				SeatNumber: n,
				Price:      req.Price,
				Status:     StatusAvailable,
			})
		}
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_SEATS_ALL)
	}

	items := make([]Response, len(batch))
	for i := range batch {
		items[i] = batch[i].ToResponse()
	}
	return items, nil
}

func (s *service) GetSeat(ctx context.Context, id uuid.UUID) (*Response, error) {
	seat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := seat.ToResponse()
	return &resp, nil
}

func (s *service) ListForEvent(ctx context.Context, eventID uuid.UUID, query ListQuery) ([]Response, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	// Only the unfiltered views are cached, seat state moves quickly.
	cacheable := query.Status == ""
	key := constants.BuildSeatsByEventKey(eventID.String(), query.Section)

	if cacheable && s.cacheService != nil {
		var cached []Response
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	list, err := s.repo.ListByEvent(ctx, eventID, query)
	if err != nil {
		return nil, err
	}

	items := make([]Response, len(list))
	for i := range list {
		items[i] = list[i].ToResponse()
	}

	if cacheable && s.cacheService != nil {
		_ = s.cacheService.Set(ctx, key, items, constants.TTL_SEATS_BY_EVENT)
	}
	return items, nil
}

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"ticketly/internal/shared/apperrors"
	"ticketly/internal/shared/constants"
	"ticketly/internal/shared/utils/pagination"
	"ticketly/pkg/cache"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateEvent(ctx context.Context, organizerID uuid.UUID, req CreateEventRequest) (*Response, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*Response, error)
	GetEventBySlug(ctx context.Context, eventSlug string) (*Response, error)
	ListEvents(ctx context.Context, query ListQuery) (*pagination.Page[Response], error)
	GetUpcomingEvents(ctx context.Context, limit int) ([]Response, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*Response, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateEvent(ctx context.Context, organizerID uuid.UUID, req CreateEventRequest) (*Response, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperrors.Validation("event must end after it starts")
	}
	if req.StartsAt.Before(time.Now()) {
		return nil, apperrors.Validation("event must start in the future")
	}

	category := Category(req.Category)
	if req.Category == "" {
		category = CategoryOther
	}

	eventSlug, err := s.generateSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	event := &Event{
		Title:         req.Title,
		Slug:          eventSlug,
		Description:   req.Description,
		Category:      category,
		VenueName:     req.VenueName,
		VenueAddress:  req.VenueAddress,
		VenueCity:     req.VenueCity,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		ImageURL:      req.ImageURL,
		BannerURL:     req.BannerURL,
		IsFeatured:    req.IsFeatured,
		TotalCapacity: req.TotalCapacity,
		Status:        StatusDraft,
		OrganizerID:   organizerID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	key := constants.BuildEventDetailKey(id.String())

	var cached Response
	if s.cacheService != nil {
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := event.ToResponse()
	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, key, resp, constants.TTL_EVENT_DETAIL)
	}
	return &resp, nil
}

func (s *service) GetEventBySlug(ctx context.Context, eventSlug string) (*Response, error) {
	key := constants.BuildEventSlugKey(eventSlug)

	var cached Response
	if s.cacheService != nil {
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.repo.GetBySlug(ctx, eventSlug)
	if err != nil {
		return nil, err
	}

	resp := event.ToResponse()
	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, key, resp, constants.TTL_EVENT_DETAIL)
	}
	return &resp, nil
}

func (s *service) ListEvents(ctx context.Context, query ListQuery) (*pagination.Page[Response], error) {
	query.Normalize()

	list, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	items := make([]Response, len(list))
	for i := range list {
		items[i] = list[i].ToResponse()
	}

	page := pagination.NewPage(items, total, query.Params)
	return &page, nil
}

func (s *service) GetUpcomingEvents(ctx context.Context, limit int) ([]Response, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	key := fmt.Sprintf("%s:limit:%d", constants.CACHE_KEY_EVENT_UPCOMING, limit)

	var cached []Response
	if s.cacheService != nil {
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	list, err := s.repo.GetUpcoming(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]Response, len(list))
	for i := range list {
		items[i] = list[i].ToResponse()
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, key, items, constants.TTL_EVENT_UPCOMING)
	}
	return items, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*Response, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
		if *req.Title != current.Title {
			newSlug, err := s.generateSlug(ctx, *req.Title)
			if err != nil {
				return nil, err
			}
			updates["slug"] = newSlug
		}
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.VenueName != nil {
		updates["venue_name"] = *req.VenueName
	}
	if req.VenueAddress != nil {
		updates["venue_address"] = *req.VenueAddress
	}
	if req.VenueCity != nil {
		updates["venue_city"] = *req.VenueCity
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.BannerURL != nil {
		updates["banner_url"] = *req.BannerURL
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.TotalCapacity != nil {
		if *req.TotalCapacity < current.TicketsSold {
			return nil, apperrors.Validation("total capacity cannot be below tickets already sold (%d)", current.TicketsSold)
		}
		updates["total_capacity"] = *req.TotalCapacity
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		resp := current.ToResponse()
		return &resp, nil
	}

	startsAt := current.StartsAt
	if req.StartsAt != nil {
		startsAt = *req.StartsAt
	}
	endsAt := current.EndsAt
	if req.EndsAt != nil {
		endsAt = *req.EndsAt
	}
	if !endsAt.After(startsAt) {
		return nil, apperrors.Validation("event must end after it starts")
	}

	event, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.TicketsSold > 0 {
		return apperrors.Conflict("event has sold tickets and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// generateSlug derives a URL slug from the title, suffixing -2, -3, ... until
// it is unique.
func (s *service) generateSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	candidate := base

	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENTS_ALL)
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ADMIN_ALL)
}

package admin

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ticketly/internal/events"
	"ticketly/internal/orders"
	"ticketly/internal/shared/constants"
	"ticketly/internal/shared/utils/pagination"
	"ticketly/internal/users"
	"ticketly/pkg/cache"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetEventStats(ctx context.Context, eventID uuid.UUID) (*EventStats, error)
	ListAllOrders(ctx context.Context, query orders.ListQuery) (*pagination.Page[orders.Response], error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, req UpdateOrderStatusRequest) (*orders.Response, error)
	ListUsers(ctx context.Context, params pagination.Params) (*pagination.Page[users.Response], error)
}

type service struct {
	repo         Repository
	orderRepo    orders.Repository
	userRepo     users.Repository
	eventRepo    events.Repository
	cacheService cache.Service
}

func NewService(repo Repository, orderRepo orders.Repository, userRepo users.Repository, eventRepo events.Repository) Service {
	return &service{
		repo:      repo,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		eventRepo: eventRepo,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	if s.cacheService != nil {
		var cached DashboardStats
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_ADMIN_DASHBOARD, &cached); err == nil {
			return &cached, nil
		}
	}

	totalOrders, err := s.repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}

	totalRevenue, err := s.repo.SumCompletedRevenue(ctx)
	if err != nil {
		return nil, err
	}

	ticketsSold, err := s.repo.CountLiveTickets(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	ordersToday, err := s.repo.CountOrdersSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	revenueThisMonth, err := s.repo.SumCompletedRevenueSince(ctx, startOfMonth)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.eventRepo.GetUpcoming(ctx, 5)
	if err != nil {
		return nil, err
	}
	upcomingResponses := make([]events.Response, len(upcoming))
	for i := range upcoming {
		upcomingResponses[i] = upcoming[i].ToResponse()
	}

	recent, err := s.repo.RecentOrders(ctx, 10)
	if err != nil {
		return nil, err
	}
	recentResponses := make([]orders.Response, len(recent))
	for i := range recent {
		recentResponses[i] = recent[i].ToResponse(nil)
	}

	stats := &DashboardStats{
		TotalOrders:      totalOrders,
		TotalRevenue:     totalRevenue,
		TicketsSold:      ticketsSold,
		OrdersToday:      ordersToday,
		RevenueThisMonth: revenueThisMonth,
		UpcomingEvents:   upcomingResponses,
		RecentOrders:     recentResponses,
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, constants.CACHE_KEY_ADMIN_DASHBOARD, stats, constants.TTL_ADMIN_DASHBOARD)
	}
	return stats, nil
}

func (s *service) GetEventStats(ctx context.Context, eventID uuid.UUID) (*EventStats, error) {
	key := constants.BuildEventStatsKey(eventID.String())

	if s.cacheService != nil {
		var cached EventStats
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.repo.GetEventStats(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, key, stats, constants.TTL_ADMIN_EVENT_STATS)
	}
	return stats, nil
}

func (s *service) ListAllOrders(ctx context.Context, query orders.ListQuery) (*pagination.Page[orders.Response], error) {
	query.Normalize()

	list, total, err := s.orderRepo.ListAll(ctx, query)
	if err != nil {
		return nil, err
	}

	items := make([]orders.Response, len(list))
	for i := range list {
		items[i] = list[i].ToResponse(nil)
	}

	page := pagination.NewPage(items, total, query.Params)
	return &page, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, req UpdateOrderStatusRequest) (*orders.Response, error) {
	order, err := s.orderRepo.UpdateStatus(ctx, orderID, orders.OrderStatus(req.Status))
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ADMIN_ALL)
	}

	resp := order.ToResponse(nil)
	return &resp, nil
}

func (s *service) ListUsers(ctx context.Context, params pagination.Params) (*pagination.Page[users.Response], error) {
	params.Normalize()

	list, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]users.Response, len(list))
	for i := range list {
		items[i] = list[i].ToResponse()
	}

	page := pagination.NewPage(items, total, params)
	return &page, nil
}

package admin

import (
	"github.com/shopspring/decimal"

	"ticketly/internal/events"
	"ticketly/internal/orders"
)

type DashboardStats struct {
	TotalOrders      int64             `json:"total_orders"`
	TotalRevenue     decimal.Decimal   `json:"total_revenue"`
	TicketsSold      int64             `json:"tickets_sold"`
	OrdersToday      int64             `json:"orders_today"`
	RevenueThisMonth decimal.Decimal   `json:"revenue_this_month"`
	UpcomingEvents   []events.Response `json:"upcoming_events"`
	RecentOrders     []orders.Response `json:"recent_orders"`
}

type EventStats struct {
	EventID             string           `json:"event_id"`
	Title               string           `json:"title"`
	TotalCapacity       int              `json:"total_capacity"`
	TicketsSold         int              `json:"tickets_sold"`
	CapacityUtilization float64          `json:"capacity_utilization"`
	Revenue             decimal.Decimal  `json:"revenue"`
	TicketsByStatus     map[string]int64 `json:"tickets_by_status"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

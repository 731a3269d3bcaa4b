package orders

import (
	"context"

	"github.com/google/uuid"

	"ticketly/internal/shared/apperrors"
	"ticketly/internal/shared/utils/pagination"
	"ticketly/pkg/logger"
)

// Notifier publishes order lifecycle events. Delivery is best effort and must
// never block or fail a booking.
type Notifier interface {
	OrderCreated(ctx context.Context, order *Order)
	OrderConfirmed(ctx context.Context, order *Order)
}

type Service interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*Response, error)
	GetMyOrder(ctx context.Context, userID, orderID uuid.UUID) (*Response, error)
	GetMyOrderByNumber(ctx context.Context, userID uuid.UUID, number string) (*Response, error)
	ListMyOrders(ctx context.Context, userID uuid.UUID, query ListQuery) (*pagination.Page[Response], error)
	CancelMyOrder(ctx context.Context, userID, orderID uuid.UUID) error
	ConfirmMyPayment(ctx context.Context, userID, orderID uuid.UUID, req ConfirmPaymentRequest) (*Response, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	log      *logger.Logger
}

func NewService(repo Repository, notifier Notifier, log *logger.Logger) Service {
	return &service{repo: repo, notifier: notifier, log: log}
}

func (s *service) CreateOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*Response, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, apperrors.Validation("invalid event id")
	}

	lines, err := buildLines(req.Items)
	if err != nil {
		return nil, err
	}

	order := &Order{
		UserID:        userID,
		EventID:       eventID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	}

	issued, err := s.repo.CreateOrderWithInventory(ctx, order, lines)
	if err != nil {
		return nil, err
	}

	s.log.LogOrderCreated(ctx, order.ID.String(), order.EventID.String(), userID.String())

	if s.notifier != nil {
		go s.notifier.OrderCreated(context.WithoutCancel(ctx), order)
	}

	resp := order.ToResponse(issued)
	return &resp, nil
}

func (s *service) GetMyOrder(ctx context.Context, userID, orderID uuid.UUID) (*Response, error) {
	order, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	issued, err := s.repo.GetTicketsByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	resp := order.ToResponse(issued)
	return &resp, nil
}

func (s *service) GetMyOrderByNumber(ctx context.Context, userID uuid.UUID, number string) (*Response, error) {
	order, err := s.repo.GetByOrderNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("order not found")
	}

	issued, err := s.repo.GetTicketsByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	resp := order.ToResponse(issued)
	return &resp, nil
}

func (s *service) ListMyOrders(ctx context.Context, userID uuid.UUID, query ListQuery) (*pagination.Page[Response], error) {
	query.Normalize()

	list, total, err := s.repo.ListByUser(ctx, userID, query)
	if err != nil {
		return nil, err
	}

	items := make([]Response, len(list))
	for i := range list {
		items[i] = list[i].ToResponse(nil)
	}

	page := pagination.NewPage(items, total, query.Params)
	return &page, nil
}

func (s *service) CancelMyOrder(ctx context.Context, userID, orderID uuid.UUID) error {
	order, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return err
	}

	// Paid orders go through a refund flow, not plain cancellation.
	if order.IsPaid() {
		return apperrors.Conflict("paid orders cannot be cancelled")
	}

	if err := s.repo.CancelOrder(ctx, orderID); err != nil {
		return err
	}

	s.log.LogOrderCancelled(ctx, order.ID.String(), order.EventID.String())
	return nil
}

func (s *service) ConfirmMyPayment(ctx context.Context, userID, orderID uuid.UUID, req ConfirmPaymentRequest) (*Response, error) {
	if _, err := s.ownedOrder(ctx, userID, orderID); err != nil {
		return nil, err
	}

	order, err := s.repo.ConfirmPayment(ctx, orderID, req.TransactionID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go s.notifier.OrderConfirmed(context.WithoutCancel(ctx), order)
	}

	issued, err := s.repo.GetTicketsByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	resp := order.ToResponse(issued)
	return &resp, nil
}

// ownedOrder fetches the order and hides it from anyone but its owner.
func (s *service) ownedOrder(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("order not found")
	}
	return order, nil
}

func buildLines(items []OrderLineRequest) ([]BookingLine, error) {
	lines := make([]BookingLine, 0, len(items))

	for i, item := range items {
		switch item.Kind {
		case "ticket_type":
			if item.TicketTypeID == "" {
				return nil, apperrors.Validation("item %d: ticket_type_id is required", i)
			}
			if item.SeatID != "" {
				return nil, apperrors.Validation("item %d: a ticket type line cannot carry a seat", i)
			}
			id, err := uuid.Parse(item.TicketTypeID)
			if err != nil {
				return nil, apperrors.Validation("item %d: invalid ticket_type_id", i)
			}
			quantity := item.Quantity
			if quantity == 0 {
				quantity = 1
			}
			lines = append(lines, BookingLine{TicketTypeID: &id, Quantity: quantity})

		case "seat":
			if item.SeatID == "" {
				return nil, apperrors.Validation("item %d: seat_id is required", i)
			}
			if item.TicketTypeID != "" {
				return nil, apperrors.Validation("item %d: a seat line cannot carry a ticket type", i)
			}
			if item.Quantity > 1 {
				return nil, apperrors.Validation("item %d: a seat line is always a single unit", i)
			}
			id, err := uuid.Parse(item.SeatID)
			if err != nil {
				return nil, apperrors.Validation("item %d: invalid seat_id", i)
			}
			lines = append(lines, BookingLine{SeatID: &id, Quantity: 1})

		default:
			return nil, apperrors.Validation("item %d: unknown line kind %q", i, item.Kind)
		}
	}

	return lines, nil
}

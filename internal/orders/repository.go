package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ticketly/internal/events"
	"ticketly/internal/seats"
	"ticketly/internal/shared/apperrors"
	"ticketly/internal/tickets"
	"ticketly/internal/tickettypes"
)

type Repository interface {
	CreateOrderWithInventory(ctx context.Context, order *Order, lines []BookingLine) ([]tickets.Ticket, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) error
	ConfirmPayment(ctx context.Context, orderID uuid.UUID, transactionID string) (*Order, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetByOrderNumber(ctx context.Context, number string) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, query ListQuery) ([]Order, int64, error)
	ListAll(ctx context.Context, query ListQuery) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) (*Order, error)
	GetTicketsByOrder(ctx context.Context, orderID uuid.UUID) ([]tickets.Ticket, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateOrderWithInventory runs the whole booking in one transaction: price
// the lines, persist order, items and tickets, and mutate inventory through
// guarded conditional updates. A guard that matches zero rows means the stock
// was taken by a concurrent booking and the transaction rolls back.
func (r *repository) CreateOrderWithInventory(ctx context.Context, order *Order, lines []BookingLine) ([]tickets.Ticket, error) {
	var issued []tickets.Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event events.Event
		if err := tx.Where("id = ?", order.EventID).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("event not found")
			}
			return err
		}
		if event.Status != events.StatusPublished {
			return apperrors.Conflict("event is not open for booking")
		}

		if order.ID == uuid.Nil {
			order.ID = uuid.New()
		}

		number, err := generateOrderNumber()
		if err != nil {
			return err
		}
		order.OrderNumber = number
		order.Status = OrderStatusPending
		order.PaymentStatus = PaymentStatusPending

		now := time.Now()
		subtotal := decimal.Zero
		totalQuantity := 0
		order.Items = order.Items[:0]
		issued = issued[:0]

		for _, line := range lines {
			switch {
			case line.TicketTypeID != nil:
				var tt tickettypes.TicketType
				err := tx.Where("id = ? AND event_id = ?", *line.TicketTypeID, order.EventID).First(&tt).Error
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return apperrors.NotFound("ticket type not found for this event")
					}
					return err
				}

				if tt.Status == tickettypes.StatusInactive {
					return apperrors.Conflict("ticket type %q is not on sale", tt.Name)
				}
				if tt.SaleStartsAt != nil && now.Before(*tt.SaleStartsAt) {
					return apperrors.Conflict("ticket type %q is not on sale yet", tt.Name)
				}
				if tt.SaleEndsAt != nil && now.After(*tt.SaleEndsAt) {
					return apperrors.Conflict("ticket type %q sale has ended", tt.Name)
				}
				if line.Quantity < tt.MinPurchase || line.Quantity > tt.MaxPurchase {
					return apperrors.Validation("ticket type %q allows between %d and %d units per order",
						tt.Name, tt.MinPurchase, tt.MaxPurchase)
				}
				if tt.Remaining() < line.Quantity {
					return apperrors.Conflict("only %d units of %q remaining", tt.Remaining(), tt.Name)
				}

				res := tx.Model(&tickettypes.TicketType{}).
					Where("id = ? AND quantity_available - quantity_sold >= ?", tt.ID, line.Quantity).
					Update("quantity_sold", gorm.Expr("quantity_sold + ?", line.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return apperrors.Conflict("ticket type %q sold out while booking", tt.Name)
				}

				// Flip to sold_out exactly at the boundary.
				if err := tx.Model(&tickettypes.TicketType{}).
					Where("id = ? AND quantity_sold >= quantity_available", tt.ID).
					Update("status", tickettypes.StatusSoldOut).Error; err != nil {
					return err
				}

				lineSubtotal := tt.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
				item := OrderItem{
					ID:           uuid.New(),
					OrderID:      order.ID,
					TicketTypeID: &tt.ID,
					Description:  tt.Name,
					Quantity:     line.Quantity,
					UnitPrice:    tt.Price,
					Subtotal:     lineSubtotal,
				}
				order.Items = append(order.Items, item)

				for n := 0; n < line.Quantity; n++ {
					code, err := generateTicketCode()
					if err != nil {
						return err
					}
					issued = append(issued, tickets.Ticket{
						TicketCode:     code,
						OrderID:        order.ID,
						OrderItemID:    item.ID,
						UserID:         order.UserID,
						EventID:        order.EventID,
						TicketTypeName: tt.Name,
						Price:          tt.Price,
						Status:         tickets.StatusActive,
					})
				}

				subtotal = subtotal.Add(lineSubtotal)
				totalQuantity += line.Quantity

			case line.SeatID != nil:
				var seat seats.Seat
				err := tx.Where("id = ? AND event_id = ?", *line.SeatID, order.EventID).First(&seat).Error
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return apperrors.NotFound("seat not found for this event")
					}
					return err
				}
				if seat.Status != seats.StatusAvailable {
					return apperrors.Conflict("seat %s is not available", seat.Label())
				}

				res := tx.Model(&seats.Seat{}).
					Where("id = ? AND status = ?", seat.ID, seats.StatusAvailable).
					Updates(map[string]interface{}{
						"status":    seats.StatusBooked,
						"order_id":  order.ID,
						"booked_at": now,
					})
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return apperrors.Conflict("seat %s was taken while booking", seat.Label())
				}

				item := OrderItem{
					ID:          uuid.New(),
					OrderID:     order.ID,
					SeatID:      &seat.ID,
					Description: seat.Label(),
					Quantity:    1,
					UnitPrice:   seat.Price,
					Subtotal:    seat.Price,
				}
				order.Items = append(order.Items, item)

				code, err := generateTicketCode()
				if err != nil {
					return err
				}
				issued = append(issued, tickets.Ticket{
					TicketCode:  code,
					OrderID:     order.ID,
					OrderItemID: item.ID,
					UserID:      order.UserID,
					EventID:     order.EventID,
					SeatInfo:    seat.Label(),
					Price:       seat.Price,
					Status:      tickets.StatusActive,
				})

				subtotal = subtotal.Add(seat.Price)
				totalQuantity++

			default:
				return apperrors.Validation("order line carries neither a ticket type nor a seat")
			}
		}

		res := tx.Model(&events.Event{}).
			Where("id = ? AND total_capacity - tickets_sold >= ?", order.EventID, totalQuantity).
			Update("tickets_sold", gorm.Expr("tickets_sold + ?", totalQuantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("event capacity exhausted")
		}

		order.Subtotal = subtotal
		order.TotalAmount = subtotal

		if err := tx.Create(order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Conflict("order number collision, please retry")
			}
			return err
		}
		if err := tx.Create(&issued).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Conflict("ticket code collision, please retry")
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return issued, nil
}

// CancelOrder rolls every effect of the booking back in one transaction.
func (r *repository) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order Order
		err := tx.Preload("Items").Where("id = ?", orderID).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("order not found")
			}
			return err
		}
		if order.IsCancelled() {
			return apperrors.Conflict("order is already cancelled")
		}

		if err := tx.Model(&tickets.Ticket{}).
			Where("order_id = ?", orderID).
			Update("status", tickets.StatusCancelled).Error; err != nil {
			return err
		}

		if err := tx.Model(&seats.Seat{}).
			Where("order_id = ?", orderID).
			Updates(map[string]interface{}{
				"status":    seats.StatusAvailable,
				"order_id":  nil,
				"booked_at": nil,
			}).Error; err != nil {
			return err
		}

		totalQuantity := 0
		for i := range order.Items {
			item := &order.Items[i]
			totalQuantity += item.Quantity

			if item.TicketTypeID == nil {
				continue
			}

			res := tx.Model(&tickettypes.TicketType{}).
				Where("id = ? AND quantity_sold >= ?", *item.TicketTypeID, item.Quantity).
				Update("quantity_sold", gorm.Expr("quantity_sold - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.Internal(nil, "ticket type counter out of sync")
			}

			if err := tx.Model(&tickettypes.TicketType{}).
				Where("id = ? AND status = ? AND quantity_sold < quantity_available",
					*item.TicketTypeID, tickettypes.StatusSoldOut).
				Update("status", tickettypes.StatusActive).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&events.Event{}).
			Where("id = ? AND tickets_sold >= ?", order.EventID, totalQuantity).
			Update("tickets_sold", gorm.Expr("tickets_sold - ?", totalQuantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Internal(nil, "event counter out of sync")
		}

		return tx.Model(&Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"status":         OrderStatusCancelled,
				"payment_status": PaymentStatusCancelled,
			}).Error
	})
}

func (r *repository) ConfirmPayment(ctx context.Context, orderID uuid.UUID, transactionID string) (*Order, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order Order
		err := tx.Where("id = ?", orderID).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("order not found")
			}
			return err
		}
		if order.IsCancelled() {
			return apperrors.Conflict("order is cancelled")
		}
		if order.IsPaid() {
			return apperrors.Conflict("order is already paid")
		}

		now := time.Now()
		return tx.Model(&Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"payment_status": PaymentStatusCompleted,
				"transaction_id": transactionID,
				"paid_at":        now,
				"status":         OrderStatusConfirmed,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, orderID)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) GetByOrderNumber(ctx context.Context, number string) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).Preload("Items").Where("order_number = ?", number).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, query ListQuery) ([]Order, int64, error) {
	base := r.db.WithContext(ctx).Model(&Order{}).Where("user_id = ?", userID)
	return r.list(base, query)
}

func (r *repository) ListAll(ctx context.Context, query ListQuery) ([]Order, int64, error) {
	base := r.db.WithContext(ctx).Model(&Order{})
	return r.list(base, query)
}

func (r *repository) list(base *gorm.DB, query ListQuery) ([]Order, int64, error) {
	var list []Order
	var total int64

	if query.Status != "" {
		base = base.Where("status = ?", query.Status)
	}
	if query.PaymentStatus != "" {
		base = base.Where("payment_status = ?", query.PaymentStatus)
	}
	if query.EventID != "" {
		if eventID, err := uuid.Parse(query.EventID); err == nil {
			base = base.Where("event_id = ?", eventID)
		}
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.Preload("Items").
		Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.Size).
		Find(&list).Error

	return list, total, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) (*Order, error) {
	res := r.db.WithContext(ctx).Model(&Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("order not found")
	}
	return r.GetByID(ctx, id)
}

func (r *repository) GetTicketsByOrder(ctx context.Context, orderID uuid.UUID) ([]tickets.Ticket, error) {
	var list []tickets.Ticket
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC").Find(&list).Error
	return list, err
}

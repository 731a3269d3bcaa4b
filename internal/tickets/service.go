package tickets

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ticketly/internal/shared/apperrors"
	"ticketly/internal/shared/utils/pagination"
	"ticketly/pkg/logger"
)

type Service interface {
	GetMyTicket(ctx context.Context, userID uuid.UUID, code string) (*Response, error)
	ListMyTickets(ctx context.Context, userID uuid.UUID, params pagination.Params) (*pagination.Page[Response], error)
	VerifyTicket(ctx context.Context, code string) (*VerifyResponse, error)
	CheckIn(ctx context.Context, code string) (*Response, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) GetMyTicket(ctx context.Context, userID uuid.UUID, code string) (*Response, error) {
	ticket, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, apperrors.NotFound("ticket not found")
	}

	resp := ticket.ToResponse()
	return &resp, nil
}

func (s *service) ListMyTickets(ctx context.Context, userID uuid.UUID, params pagination.Params) (*pagination.Page[Response], error) {
	params.Normalize()

	list, total, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	items := make([]Response, len(list))
	for i := range list {
		items[i] = list[i].ToResponse()
	}

	page := pagination.NewPage(items, total, params)
	return &page, nil
}

func (s *service) VerifyTicket(ctx context.Context, code string) (*VerifyResponse, error) {
	ticket, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return &VerifyResponse{Valid: false, Reason: "ticket not found"}, nil
		}
		return nil, err
	}

	resp := ticket.ToResponse()
	if ticket.Status != StatusActive {
		return &VerifyResponse{
			Valid:  false,
			Reason: fmt.Sprintf("ticket is %s", ticket.Status),
			Ticket: &resp,
		}, nil
	}

	return &VerifyResponse{Valid: true, Ticket: &resp}, nil
}

func (s *service) CheckIn(ctx context.Context, code string) (*Response, error) {
	ticket, err := s.repo.CheckIn(ctx, code)
	if err != nil {
		return nil, err
	}

	s.log.LogTicketCheckedIn(ctx, ticket.TicketCode)

	resp := ticket.ToResponse()
	return &resp, nil
}

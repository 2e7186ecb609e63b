package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	GetOrder(ctx context.Context, customerID uuid.UUID, orderID string) (*response.OrderResponse, error)
	ListOrders(ctx context.Context, customerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)

	// AddSnack adds a snack line to a pending order, or increments the
	// existing line for the same snack. The line keeps the price it was
	// first added at.
	AddSnack(ctx context.Context, customerID uuid.UUID, orderID string, req *request.AddSnackRequest) (*response.OrderResponse, error)

	// ConfirmPayment moves a pending order and its reserved tickets to
	// PAID. PAID is terminal.
	ConfirmPayment(ctx context.Context, customerID uuid.UUID, orderID string, req *request.ConfirmPaymentRequest) (*response.OrderResponse, error)

	// Cancel moves a pending order to CANCELED and releases its seats.
	Cancel(ctx context.Context, customerID uuid.UUID, orderID string) error
}

type orderService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

func (s *orderService) GetOrder(ctx context.Context, customerID uuid.UUID, orderID string) (*response.OrderResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID format %s: %w", orderID, err)
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if order.CustomerID != customerID {
		return nil, ErrForbidden
	}

	return s.buildOrderResponse(ctx, order)
}

func (s *orderService) ListOrders(ctx context.Context, customerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindByCustomerID(ctx, customerID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Order.CountByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resps := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		resp, err := s.buildOrderResponse(ctx, order)
		if err != nil {
			return nil, err
		}
		resps[i] = *resp
	}

	return response.NewPaginatedResponse(resps, req.Page, req.PerPage, total), nil
}

func (s *orderService) AddSnack(ctx context.Context, customerID uuid.UUID, orderID string, req *request.AddSnackRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add snack validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.Qty < 1 {
		return nil, ErrInvalidQuantity
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID format %s: %w", orderID, err)
	}

	snackID, err := uuid.Parse(req.SnackID)
	if err != nil {
		return nil, fmt.Errorf("invalid snack ID format %s: %w", req.SnackID, err)
	}

	var order *entity.Order

	err = database.WithTx(ctx, s.db, func(tx database.DBTX) error {
		order, err = s.repo.Order.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		if order.CustomerID != customerID {
			return ErrForbidden
		}
		if order.Status != entity.OrderStatusPending {
			return fmt.Errorf("order is %s: %w", order.Status, ErrInvalidTransition)
		}

		snack, err := s.repo.Snack.FindByIDTx(ctx, tx, snackID)
		if err != nil {
			return err
		}
		if snack == nil || !snack.IsAvailable {
			return fmt.Errorf("snack %s: %w", req.SnackID, ErrNotFound)
		}

		line := &entity.OrderSnack{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			OrderID: id,
			SnackID: snackID,
			Qty:     req.Qty,
			Price:   snack.Price,
		}

		if err := s.repo.OrderSnack.UpsertLineTx(ctx, tx, line); err != nil {
			return err
		}

		total, err := s.repo.Order.RecomputeTotalTx(ctx, tx, id)
		if err != nil {
			return err
		}
		order.TotalAmount = total

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Snack added to order",
		zap.String("order_id", orderID),
		zap.String("snack_id", req.SnackID),
		zap.Int("qty", req.Qty),
		zap.Float64("total", order.TotalAmount))

	return s.buildOrderResponse(ctx, order)
}

func (s *orderService) ConfirmPayment(ctx context.Context, customerID uuid.UUID, orderID string, req *request.ConfirmPaymentRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID format %s: %w", orderID, err)
	}

	method := entity.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, fmt.Errorf("unknown payment method %s", req.PaymentMethod)
	}

	var order *entity.Order

	err = database.WithTx(ctx, s.db, func(tx database.DBTX) error {
		order, err = s.repo.Order.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		if order.CustomerID != customerID {
			return ErrForbidden
		}

		paidAt := time.Now()
		ok, err := s.repo.Order.MarkPaidTx(ctx, tx, id, method, paidAt)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("order is %s: %w", order.Status, ErrInvalidTransition)
		}

		if err := s.repo.Ticket.MarkPaidByOrderTx(ctx, tx, id); err != nil {
			return err
		}

		total, err := s.repo.Order.RecomputeTotalTx(ctx, tx, id)
		if err != nil {
			return err
		}

		order.Status = entity.OrderStatusPaid
		order.PaymentMethod = &method
		order.PaidAt = &paidAt
		order.TotalAmount = total

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Order paid",
		zap.String("order_id", orderID),
		zap.String("customer_id", customerID.String()),
		zap.String("payment_method", req.PaymentMethod),
		zap.Float64("total", order.TotalAmount))

	return s.buildOrderResponse(ctx, order)
}

func (s *orderService) Cancel(ctx context.Context, customerID uuid.UUID, orderID string) error {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return fmt.Errorf("invalid order ID format %s: %w", orderID, err)
	}

	err = database.WithTx(ctx, s.db, func(tx database.DBTX) error {
		order, err := s.repo.Order.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		if order.CustomerID != customerID {
			return ErrForbidden
		}

		ok, err := s.repo.Order.MarkCanceledTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("order is %s: %w", order.Status, ErrInvalidTransition)
		}

		// Cancel the tickets first (the links locate them), then drop the
		// links so the seats are fully released from this order.
		if err := s.repo.Ticket.CancelByOrderTx(ctx, tx, id); err != nil {
			return err
		}
		if err := s.repo.Order.DetachTicketsTx(ctx, tx, id); err != nil {
			return err
		}

		if _, err := s.repo.Order.RecomputeTotalTx(ctx, tx, id); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Order canceled",
		zap.String("order_id", orderID),
		zap.String("customer_id", customerID.String()))

	return nil
}

// buildOrderResponse assembles the full aggregate view: tickets with seat
// labels, snack lines with names, and QR artifacts for paid tickets.
func (s *orderService) buildOrderResponse(ctx context.Context, order *entity.Order) (*response.OrderResponse, error) {
	tickets, err := s.repo.Ticket.FindByOrderTx(ctx, s.db, order.ID)
	if err != nil {
		return nil, err
	}

	ticketResps := make([]response.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		seat, err := s.repo.Seat.FindByID(ctx, ticket.SeatID)
		if err != nil {
			return nil, err
		}

		ticketResps[i] = response.TicketToResponse(ticket, seat)

		if order.Status == entity.OrderStatusPaid && ticket.Status == entity.TicketStatusPaid {
			payload := fmt.Sprintf("TICKET|%s|%s|%s",
				ticket.ID.String(), ticket.ShowtimeID.String(), ticket.SeatID.String())
			qr, err := utils.GenerateTicketQR(payload)
			if err != nil {
				s.log.Warn("Failed to generate ticket QR",
					zap.Error(err), zap.String("ticket_id", ticket.ID.String()))
				continue
			}
			ticketResps[i].QRCode = qr
		}
	}

	lines, err := s.repo.OrderSnack.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	snackResps := make([]response.OrderSnackResponse, len(lines))
	for i, line := range lines {
		snack, err := s.repo.Snack.FindByID(ctx, line.SnackID)
		if err != nil {
			return nil, err
		}
		snackResps[i] = response.OrderSnackToResponse(line, snack)
	}

	return response.OrderToResponse(order, ticketResps, snackResps), nil
}

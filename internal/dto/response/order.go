package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type TicketResponse struct {
	ID         string  `json:"id"`
	ShowtimeID string  `json:"showtime_id"`
	SeatID     string  `json:"seat_id"`
	SeatLabel  string  `json:"seat_label,omitempty"`
	Status     string  `json:"status"`
	Price      float64 `json:"price"`
	QRCode     string  `json:"qr_code,omitempty"` // base64 PNG, paid tickets only
}

type OrderSnackResponse struct {
	SnackID   string  `json:"snack_id"`
	Name      string  `json:"name,omitempty"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	LineTotal float64 `json:"line_total"`
}

type OrderResponse struct {
	ID            string               `json:"id"`
	CustomerID    string               `json:"customer_id"`
	Status        string               `json:"status"`
	PaymentMethod string               `json:"payment_method,omitempty"`
	TotalAmount   float64              `json:"total_amount"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
	Tickets       []TicketResponse     `json:"tickets"`
	Snacks        []OrderSnackResponse `json:"snacks"`
	CreatedAt     time.Time            `json:"created_at"`
}

func TicketToResponse(ticket *entity.Ticket, seat *entity.Seat) TicketResponse {
	resp := TicketResponse{
		ID:         ticket.ID.String(),
		ShowtimeID: ticket.ShowtimeID.String(),
		SeatID:     ticket.SeatID.String(),
		Status:     string(ticket.Status),
		Price:      ticket.Price,
	}

	if seat != nil {
		resp.SeatLabel = SeatLabel(seat.Row, seat.Col)
	}

	return resp
}

func OrderSnackToResponse(line *entity.OrderSnack, snack *entity.SnackItem) OrderSnackResponse {
	resp := OrderSnackResponse{
		SnackID:   line.SnackID.String(),
		Qty:       line.Qty,
		Price:     line.Price,
		LineTotal: line.LineTotal(),
	}

	if snack != nil {
		resp.Name = snack.Name
	}

	return resp
}

func OrderToResponse(order *entity.Order, tickets []TicketResponse, snacks []OrderSnackResponse) *OrderResponse {
	resp := &OrderResponse{
		ID:          order.ID.String(),
		CustomerID:  order.CustomerID.String(),
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		PaidAt:      order.PaidAt,
		Tickets:     tickets,
		Snacks:      snacks,
		CreatedAt:   order.CreatedAt,
	}

	if order.PaymentMethod != nil {
		resp.PaymentMethod = string(*order.PaymentMethod)
	}

	if resp.Tickets == nil {
		resp.Tickets = []TicketResponse{}
	}
	if resp.Snacks == nil {
		resp.Snacks = []OrderSnackResponse{}
	}

	return resp
}

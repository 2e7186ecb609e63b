package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusPaid     OrderStatus = "PAID"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// Terminal reports whether the order admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCanceled
}

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodWallet PaymentMethod = "WALLET"
	PaymentMethodPoints PaymentMethod = "POINTS"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodWallet, PaymentMethodPoints:
		return true
	}
	return false
}

// Order aggregates tickets and snack lines under one payment lifecycle.
// TotalAmount is derived; it is recomputed inside every mutating transaction
// and never left stale. PaymentMethod and PaidAt are set exactly once, when
// the order transitions PENDING -> PAID.
type Order struct {
	Base
	CustomerID    uuid.UUID      `db:"customer_id"`
	Status        OrderStatus    `db:"status"`
	PaymentMethod *PaymentMethod `db:"payment_method"`
	TotalAmount   float64        `db:"total_amount"`
	PaidAt        *time.Time     `db:"paid_at"`
}

// OrderTicket links a ticket to the order that owns it. The ticket side is
// unique: one ticket belongs to at most one order.
type OrderTicket struct {
	BaseSimple
	OrderID  uuid.UUID `db:"order_id"`
	TicketID uuid.UUID `db:"ticket_id"`
}

// OrderSnack is a snack line: unique per (order, snack), quantity >= 1,
// price snapshotted when the line is first added.
type OrderSnack struct {
	BaseSimple
	OrderID uuid.UUID `db:"order_id"`
	SnackID uuid.UUID `db:"snack_id"`
	Qty     int       `db:"qty"`
	Price   float64   `db:"price"`
}

func (l *OrderSnack) LineTotal() float64 {
	return float64(l.Qty) * l.Price
}

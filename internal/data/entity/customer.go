package entity

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	Base
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Phone        string `db:"phone"`
	LoyaltyPts   int    `db:"loyalty_pts"`
	Role         string `db:"role"` // customer or admin
}

type Session struct {
	BaseSimple
	CustomerID uuid.UUID `db:"customer_id"`
	Token      uuid.UUID `db:"token"`
	ExpiresAt  time.Time `db:"expires_at"`
}

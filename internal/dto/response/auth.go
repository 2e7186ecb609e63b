package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type AuthResponse struct {
	CustomerID string    `json:"customer_id"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
}

type CustomerResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	LoyaltyPts int       `json:"loyalty_pts"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

func CustomerToResponse(customer *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         customer.ID.String(),
		Name:       customer.Name,
		Email:      customer.Email,
		Phone:      customer.Phone,
		LoyaltyPts: customer.LoyaltyPts,
		Role:       customer.Role,
		CreatedAt:  customer.CreatedAt,
	}
}

func AuthToResponse(customer *entity.Customer, session *entity.Session) AuthResponse {
	resp := AuthResponse{
		CustomerID: customer.ID.String(),
		Name:       customer.Name,
		Email:      customer.Email,
		Role:       customer.Role,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}

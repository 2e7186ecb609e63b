package request

// Qty is range-checked by the service so a bad quantity surfaces as a
// distinct error instead of a generic validation failure.
type AddSnackRequest struct {
	SnackID string `json:"snack_id" validate:"required,uuid4"`
	Qty     int    `json:"qty"`
}

type ConfirmPaymentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=CASH CARD WALLET POINTS"`
}

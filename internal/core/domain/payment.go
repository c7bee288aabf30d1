package domain

import (
	"errors"
	"time"
)

const (
	PaymentSuccess = "success"
	PaymentFailed  = "failed"
)

var ErrPaymentNotFound = errors.New("payment not found")

// Payment records a settled challan. TransactionRef is unique and is echoed
// back onto the violation so the two records can always be cross-referenced.
type Payment struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	UserID         string    `json:"user_id" bson:"user_id"`
	ViolationID    string    `json:"violation_id" bson:"violation_id"`
	Amount         float64   `json:"amount" bson:"amount"`
	TransactionRef string    `json:"transaction_ref" bson:"transaction_ref"`
	PaymentDate    time.Time `json:"payment_date" bson:"payment_date"`
	Status         string    `json:"status" bson:"status"`
}

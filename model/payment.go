package model

import (
	"time"

	"gorm.io/datatypes"
)

// Payment intent statuses.
const (
	StatusPending               = "pending"
	StatusSucceeded             = "succeeded"
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusCanceled              = "canceled"
)

type PaymentIntent struct {
	TransactionID string    `gorm:"primaryKey" json:"transaction_id"` // processor-assigned pi_... id
	Status        string    `json:"status"`                           // pending | succeeded | requires_payment_method | canceled
	Amount        int64     `json:"amount"`                           // minor units snapshot
	Currency      string    `json:"currency"`
	Email         string    `json:"email"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// WebhookEvent is a receipt log of verified deliveries. The state
// machine never reads it; transitions stay idempotent on their own.
type WebhookEvent struct {
	EventID       string         `gorm:"primaryKey" json:"event_id"` // processor evt_... id
	Type          string         `json:"type"`
	TransactionID string         `gorm:"index" json:"transaction_id"`
	Payload       datatypes.JSON `json:"payload"`
	ReceivedAt    time.Time      `json:"received_at"`
}

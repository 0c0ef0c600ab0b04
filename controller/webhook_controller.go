package controller

import (
	"context"
	"log"
	"time"

	"github.com/AnshumanShah69/webhooks-prod/cache"
	"github.com/AnshumanShah69/webhooks-prod/metrics"
	"github.com/AnshumanShah69/webhooks-prod/model"
	"github.com/AnshumanShah69/webhooks-prod/stripe"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// statusForEventType maps a processor event type to the status it
// carries. ok=false means acknowledge and ignore.
func statusForEventType(eventType string) (string, bool) {
	switch eventType {
	case stripe.EventPaymentIntentSucceeded:
		return model.StatusSucceeded, true
	case stripe.EventPaymentIntentFailed:
		return model.StatusRequiresPaymentMethod, true
	case stripe.EventPaymentIntentCanceled:
		return model.StatusCanceled, true
	default:
		return "", false
	}
}

// Webhook ingests a processor event delivery. Verification runs over
// the exact raw body bytes; this route must never be fed re-encoded
// JSON. After a verified event, the response is always 200 so the
// processor stops redelivering — idempotent overwrites absorb retries.
func (pc *PaymentController) Webhook(c *fiber.Ctx) error {
	payload := c.Body()
	sigHeader := c.Get("Stripe-Signature")

	event, err := stripe.ConstructEvent(payload, sigHeader, pc.WebhookSecret)
	if err != nil {
		metrics.WebhookSignatureFailures.Inc()
		log.Printf("webhook rejected: %v", err)
		return c.Status(400).JSON(fiber.Map{"error": "invalid signature"})
	}

	metrics.WebhookEvents.WithLabelValues(event.Type).Inc()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pc.recordDelivery(ctx, event, payload)

	newStatus, ok := statusForEventType(event.Type)
	if !ok {
		log.Printf("ignoring event %s (%s)", event.ID, event.Type)
		return c.JSON(fiber.Map{"received": true})
	}

	transactionID := event.Data.Object.ID

	res := pc.DB.WithContext(ctx).
		Model(&model.PaymentIntent{}).
		Where("transaction_id = ?", transactionID).
		Update("status", newStatus)
	if res.Error != nil {
		// store write failed; the processor will redeliver and the
		// overwrite converges then
		log.Printf("failed update intent %s: %v", transactionID, res.Error)
		return c.JSON(fiber.Map{"received": true})
	}
	if res.RowsAffected == 0 {
		log.Printf("event %s for unknown intent %s, skipped", event.ID, transactionID)
		return c.JSON(fiber.Map{"received": true})
	}

	cache.InvalidateStatus(ctx, pc.Redis, transactionID)

	if pc.Producer != nil {
		pc.Producer.PublishStatusChangedEvent(map[string]interface{}{
			"event_type": "payment.status_changed",
			"data": map[string]interface{}{
				"transaction_id": transactionID,
				"status":         newStatus,
				"source_event":   event.ID,
			},
		})
	}

	log.Printf("intent %s marked %s (event=%s)", transactionID, newStatus, event.ID)
	return c.JSON(fiber.Map{"received": true})
}

// recordDelivery upserts the receipt log row. Best effort; duplicate
// event ids from at-least-once delivery are expected.
func (pc *PaymentController) recordDelivery(ctx context.Context, event stripe.Event, payload []byte) {
	if event.ID == "" {
		return
	}
	row := model.WebhookEvent{
		EventID:       event.ID,
		Type:          event.Type,
		TransactionID: event.Data.Object.ID,
		Payload:       datatypes.JSON(payload),
		ReceivedAt:    time.Now(),
	}
	if err := pc.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		log.Printf("failed to record event %s: %v", event.ID, err)
	}
}

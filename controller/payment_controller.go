package controller

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/AnshumanShah69/webhooks-prod/cache"
	"github.com/AnshumanShah69/webhooks-prod/kafka"
	"github.com/AnshumanShah69/webhooks-prod/metrics"
	"github.com/AnshumanShah69/webhooks-prod/model"
	"github.com/AnshumanShah69/webhooks-prod/stripe"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type PaymentController struct {
	DB            *gorm.DB
	Redis         *redis.Client
	Stripe        *stripe.Client
	Producer      *kafka.Producer
	WebhookSecret string
}

func NewPaymentController(db *gorm.DB, rdb *redis.Client, sc *stripe.Client, producer *kafka.Producer, webhookSecret string) *PaymentController {
	return &PaymentController{
		DB:            db,
		Redis:         rdb,
		Stripe:        sc,
		Producer:      producer,
		WebhookSecret: webhookSecret,
	}
}

// Create mints a payment intent at the processor and records it as
// pending. The client finishes the payment with the returned
// clientSecret; confirmation arrives later through the webhook.
func (pc *PaymentController) Create(c *fiber.Ctx) error {
	var body struct {
		Name   string  `json:"name"`
		Email  string  `json:"email"`
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Amount <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "amount must be positive"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// major units in, minor units out
	amountMinor := int64(math.Round(body.Amount * 100))

	intent, err := pc.Stripe.CreatePaymentIntent(ctx, stripe.CreateIntentParams{
		AmountMinor:  amountMinor,
		Currency:     "usd",
		Description:  "Payment for " + body.Name,
		ReceiptEmail: body.Email,
	})
	if err != nil {
		log.Printf("create intent failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "payment creation failed"})
	}

	record := model.PaymentIntent{
		TransactionID: intent.ID,
		Status:        model.StatusPending,
		Amount:        amountMinor,
		Currency:      "usd",
		Email:         body.Email,
		Description:   "Payment for " + body.Name,
	}
	if err := pc.DB.WithContext(ctx).Create(&record).Error; err != nil {
		// intent exists at the processor with no local record; flagged
		// for reconciliation, not compensated here
		log.Printf("persist intent %s failed: %v", intent.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "payment creation failed"})
	}

	metrics.PaymentsCreated.Inc()

	return c.JSON(fiber.Map{
		"clientSecret":  intent.ClientSecret,
		"transactionId": intent.ID,
	})
}

// Status reports the current status for a transaction id. Unknown ids
// read as pending so a client polling right after creation never sees
// an error or a false terminal state.
func (pc *PaymentController) Status(c *fiber.Ctx) error {
	id := c.Params("id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cached := cache.GetStatus(ctx, pc.Redis, id); cached != "" {
		return c.JSON(fiber.Map{"status": cached})
	}

	var record model.PaymentIntent
	err := pc.DB.WithContext(ctx).First(&record, "transaction_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"status": model.StatusPending})
	}
	if err != nil {
		log.Printf("status lookup %s failed: %v", id, err)
		return c.JSON(fiber.Map{"status": model.StatusPending})
	}

	cache.SetStatus(ctx, pc.Redis, id, record.Status)
	return c.JSON(fiber.Map{"status": record.Status})
}

// ListAll returns every tracked intent, newest first. Admin only.
func (pc *PaymentController) ListAll(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var intents []model.PaymentIntent
	if err := pc.DB.WithContext(ctx).Order("created_at desc").Find(&intents).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "query failed"})
	}
	if intents == nil {
		intents = []model.PaymentIntent{}
	}
	return c.JSON(intents)
}

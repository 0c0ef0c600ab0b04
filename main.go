package main

import (
	"log"

	"github.com/AnshumanShah69/webhooks-prod/cache"
	"github.com/AnshumanShah69/webhooks-prod/config"
	"github.com/AnshumanShah69/webhooks-prod/controller"
	kafkax "github.com/AnshumanShah69/webhooks-prod/kafka"
	"github.com/AnshumanShah69/webhooks-prod/middleware"
	"github.com/AnshumanShah69/webhooks-prod/model"
	"github.com/AnshumanShah69/webhooks-prod/routes"
	"github.com/AnshumanShah69/webhooks-prod/stripe"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ======================
// INIT DATABASE
// ======================
func initDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect payment db:", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(&model.PaymentIntent{}, &model.WebhookEvent{}); err != nil {
		log.Fatal(err)
	}

	return db
}

func main() {
	cfg := config.Load()

	db := initDB(cfg)

	// kafka producer
	producer := kafkax.NewProducer(cfg.KafkaBroker)

	// redis
	rdb := cache.Connect(cfg.RedisAddr)

	// processor client
	sc := stripe.NewClient(cfg.StripeBaseURL, cfg.StripeSecretKey)

	pc := controller.NewPaymentController(db, rdb, sc, producer, cfg.StripeWebhookSecret)

	app := fiber.New()
	app.Use(logger.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.RegisterPaymentRoutes(app, pc, middleware.AuthRequired(cfg.JWTSecret))

	log.Println("HTTP server running on port " + cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("fiber error:", err)
	}
}

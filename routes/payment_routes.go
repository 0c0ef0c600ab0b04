package routes

import (
	"github.com/AnshumanShah69/webhooks-prod/controller"
	"github.com/AnshumanShah69/webhooks-prod/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterPaymentRoutes(app *fiber.App, pc *controller.PaymentController, authMiddleware fiber.Handler) {
	api := app.Group("/api")
	p := api.Group("/payments")

	// =========================
	// CLIENT ROUTES
	// =========================
	p.Post("/", authMiddleware, pc.Create)
	p.Get("/:id/status", authMiddleware, pc.Status)

	// =========================
	// PROCESSOR ROUTE
	// =========================
	// no JWT here: the delivery authenticates itself via signature,
	// and the handler needs the raw body untouched
	p.Post("/webhook", pc.Webhook)

	// =========================
	// ADMIN ROUTE
	// =========================
	p.Get(
		"/all",
		authMiddleware,
		middleware.RoleRequired("admin"),
		pc.ListAll,
	)
}

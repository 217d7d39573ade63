// Package main is a sample checkout backend exercising the SDK end to end:
// it exposes tokenize, balance, and capture endpoints backed by the shared
// forage instance.
package main

import (
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"forage"
	"forage/card"
	"forage/internal/config"
	"forage/internal/service"
	"forage/model"
	"forage/vault"
)

func main() {
	config.LoadEnv()

	slogger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	err := forage.Setup(forage.Config{
		MerchantID:   config.GetEnv("FORAGE_MERCHANT_ID", ""),
		SessionToken: config.GetEnv("FORAGE_SESSION_TOKEN", ""),
		Logger:       slogger,
		Flags: vault.StaticFlags{
			BasisTheory: config.GetEnv("FORAGE_VAULT", "vgs") == "basis_theory",
		},
		Poll: service.PollConfig{
			Interval:    config.GetDurationEnv("FORAGE_POLL_INTERVAL", time.Second),
			MaxAttempts: config.GetIntEnv("FORAGE_POLL_MAX_ATTEMPTS", 10),
		},
	})
	if err != nil {
		log.Fatalf("forage setup failed: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:5173",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// EBT processors rate limit aggressively; keep the demo polite.
	app.Use("/api", limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"environment": forage.Shared().Environment(),
		})
	})

	app.Post("/api/tokenize", handleTokenize)
	app.Post("/api/balance", handleBalance)
	app.Post("/api/capture", handleCapture)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}

type tokenizeRequest struct {
	CardNumber string `json:"card_number"`
	CustomerID string `json:"customer_id"`
	Reusable   bool   `json:"reusable"`
}

func handleTokenize(c *fiber.Ctx) error {
	var req tokenizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	pan := forage.Shared().NewPANField()
	state := pan.SetText(req.CardNumber)
	if !state.IsValid || !state.IsComplete {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "card number is not a complete EBT card number",
		})
	}

	pm, err := forage.Shared().TokenizeCard(c.Context(), forage.TokenizeRequest{
		PAN:        pan,
		CustomerID: req.CustomerID,
		Reusable:   req.Reusable,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pm)
}

type balanceRequest struct {
	PaymentMethodRef string `json:"payment_method_ref"`
	PIN              string `json:"pin"`
}

func handleBalance(c *fiber.Ctx) error {
	var req balanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	pin := card.NewPINField()
	pin.SetText(req.PIN)

	balance, err := forage.Shared().CheckBalance(c.Context(), forage.BalanceRequest{
		PaymentMethodRef: req.PaymentMethodRef,
		PIN:              pin,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(balance)
}

type captureRequest struct {
	PaymentRef string `json:"payment_ref"`
	PIN        string `json:"pin"`
}

func handleCapture(c *fiber.Ctx) error {
	var req captureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	pin := card.NewPINField()
	pin.SetText(req.PIN)

	payment, err := forage.Shared().CapturePayment(c.Context(), forage.CaptureRequest{
		PaymentRef: req.PaymentRef,
		PIN:        pin,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(payment)
}

// renderError surfaces the SDK's error taxonomy to HTTP clients, keeping
// the processor's status code when there is one.
func renderError(c *fiber.Ctx, err error) error {
	var fe *model.ForageError
	if errors.As(err, &fe) {
		status := fe.Status
		if status == 0 {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fe)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

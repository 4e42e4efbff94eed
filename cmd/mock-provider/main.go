package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang-sms-dispatch/internal/adapters/provider/mock"
	"golang-sms-dispatch/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/google/uuid"
)

// mockSendRequest mirrors what clicksend.Client posts to /sms/send.
type mockSendRequest struct {
	Messages []struct {
		Body   string `json:"body"`
		To     string `json:"to"`
		From   string `json:"from"`
		Source string `json:"source"`
	} `json:"messages"`
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	addr := getenv("HTTP_ADDR", ":9090")
	username := getenv("CLICKSEND_USERNAME", "user")
	apiKey := getenv("CLICKSEND_API_KEY", "key")
	version := getenv("CLICKSEND_VERSION", "v3")

	fiberApp := fiber.New(fiber.Config{AppName: "mock-provider"})
	api := fiberApp.Group("/"+version, basicauth.New(basicauth.Config{
		Users: map[string]string{username: apiKey},
	}))

	// POST /v3/sms/send accepts one or more messages; a malformed "to"
	// fails the whole request with 400 like the real API.
	api.Post("/sms/send", func(c *fiber.Ctx) error {
		var req mockSendRequest
		if err := c.BodyParser(&req); err != nil || len(req.Messages) == 0 {
			return c.Status(fiber.StatusBadRequest).SendString("invalid body")
		}

		for _, m := range req.Messages {
			if err := domain.ValidateE164(m.To); err != nil {
				return c.Status(fiber.StatusBadRequest).SendString("bad number")
			}
		}

		for _, m := range req.Messages {
			log.Info("mock provider received message",
				"message_id", uuid.NewString(),
				"to", m.To,
				"from", m.From,
				"source", m.Source,
			)
		}
		return c.JSON(fiber.Map{"http_code": 200, "response_code": "SUCCESS"})
	})

	api.Get("/own-numbers", func(c *fiber.Ctx) error {
		data := make([]fiber.Map, 0, len(mock.VerifiedNumbers))
		for _, n := range mock.VerifiedNumbers {
			data = append(data, fiber.Map{"phone_number": n})
		}
		return c.JSON(fiber.Map{"http_code": 200, "data": data})
	})

	api.Get("/numbers", func(c *fiber.Ctx) error {
		data := make([]fiber.Map, 0, len(mock.DedicatedNumbers))
		for _, n := range mock.DedicatedNumbers {
			data = append(data, fiber.Map{"dedicated_number": n})
		}
		return c.JSON(fiber.Map{"http_code": 200, "data": fiber.Map{"total": len(data), "data": data}})
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("mock-provider listening", "addr", addr, "version", version)
		if err := fiberApp.Listen(addr); err != nil {
			log.Error("fiber listen", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down mock-provider")
	_ = fiberApp.Shutdown()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

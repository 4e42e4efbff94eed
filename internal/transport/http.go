package transport

import (
	"log/slog"

	"golang-sms-dispatch/internal/domain"
	"golang-sms-dispatch/internal/metrics"
	"golang-sms-dispatch/internal/ports"

	"github.com/gofiber/fiber/v2"
)

// Handler holds the HTTP handlers for the SMS gateway. The gateway only ever
// queues; delivery happens in the worker.
type Handler struct {
	queue   ports.Queuer
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewHandler wires up a Handler with its dependencies.
func NewHandler(queue ports.Queuer, m *metrics.Metrics, log *slog.Logger) *Handler {
	return &Handler{queue: queue, metrics: m, log: log}
}

// Register mounts the send routes onto router behind auth. auth runs before
// any body parsing.
func (h *Handler) Register(router fiber.Router, auth fiber.Handler) {
	router.Post("/send", auth, h.Send)
	router.Post("/send_sms", auth, h.Send)
}

type sendRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

type apiResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (h *Handler) respond(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(apiResponse{Status: status, Message: message})
}

// Send validates the request locally and queues it for delivery.
//
// POST /send
// Body: { "phone_number": "+...", "message": "..." }
func (h *Handler) Send(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		h.metrics.GatewayRequest(metrics.OutcomeRejected)
		return h.respond(c, fiber.StatusBadRequest, "Malformed request")
	}

	if err := domain.ValidateE164(req.PhoneNumber); err != nil {
		h.metrics.GatewayRequest(metrics.OutcomeRejected)
		return h.respond(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Message == "" {
		h.metrics.GatewayRequest(metrics.OutcomeRejected)
		return h.respond(c, fiber.StatusBadRequest, "message is required")
	}

	if err := h.queue.Enqueue(c.UserContext(), req.PhoneNumber, req.Message); err != nil {
		h.metrics.GatewayRequest(metrics.OutcomeFailed)
		h.log.Error("enqueue message", "to", req.PhoneNumber, "err", err)
		return h.respond(c, fiber.StatusInternalServerError, "Failed to queue the message")
	}

	h.metrics.GatewayRequest(metrics.OutcomeQueued)
	h.log.Info("message queued", "to", req.PhoneNumber, "request_id", c.Locals("request_id"))
	return h.respond(c, fiber.StatusOK, "Message queued")
}

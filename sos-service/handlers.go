package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the contact and alert endpoints.
type Handler struct {
	contacts     *ContactStore
	sender       Sender
	providerName string
	events       *EventPublisher
	metrics      *Metrics
	log          *slog.Logger
}

func NewHandler(
	contacts *ContactStore,
	sender Sender,
	providerName string,
	events *EventPublisher,
	metrics *Metrics,
	log *slog.Logger,
) *Handler {
	return &Handler{
		contacts:     contacts,
		sender:       sender,
		providerName: providerName,
		events:       events,
		metrics:      metrics,
		log:          log,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.index)
	e.GET("/healthz", h.healthz)
	e.POST("/set-contact", h.setContact)
	e.POST("/send-sos", h.sendSOS)
}

func (h *Handler) index(c echo.Context) error {
	return c.String(http.StatusOK, "SOS Alert Backend is running")
}

func (h *Handler) healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) setContact(c echo.Context) error {
	ctx := c.Request().Context()

	var req SetContactRequest
	if err := c.Bind(&req); err != nil {
		h.metrics.ContactUpdates.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid phone number format!"})
	}

	if err := h.contacts.Set(req.Phone); err != nil {
		h.log.InfoContext(ctx, "Rejected emergency contact", "phone", req.Phone, "error", err)
		h.metrics.ContactUpdates.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid phone number format!"})
	}

	h.log.InfoContext(ctx, "Emergency contact set", "phone", req.Phone)
	h.metrics.ContactUpdates.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Emergency contact saved successfully!",
		"contact": req.Phone,
	})
}

func (h *Handler) sendSOS(c echo.Context) error {
	ctx := c.Request().Context()

	contact, ok := h.contacts.Get()
	if !ok {
		h.metrics.Alerts.WithLabelValues("contact_not_set").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Emergency contact not set! Please set it first."})
	}

	var req SendSOSRequest
	if err := c.Bind(&req); err != nil || !req.Complete() {
		h.metrics.Alerts.WithLabelValues("missing_location").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Location data is required!"})
	}

	body := buildAlertMessage(req.Location)
	h.log.InfoContext(ctx, "Sending SOS", "to", contact, "body", body)

	startTime := time.Now()
	sid, err := h.sender.Send(ctx, contact, body)
	h.metrics.ProviderSeconds.WithLabelValues(h.providerName).Observe(time.Since(startTime).Seconds())

	h.events.PublishAlert(ctx, contact, req.Location, sid, err)

	if err != nil {
		h.log.ErrorContext(ctx, "Failed to send SMS", "to", contact, "error", err)
		h.metrics.Alerts.WithLabelValues(alertStatusFailed).Inc()
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": providerMessage(err)})
	}

	h.log.InfoContext(ctx, "SMS sent successfully", "to", contact, "sid", sid)
	h.metrics.Alerts.WithLabelValues(alertStatusSent).Inc()

	return c.JSON(http.StatusOK, map[string]string{
		"message": "SOS alert sent successfully!",
		"sid":     sid,
	})
}

package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"invitepush/internal/delivery/http/helpers"
	"invitepush/internal/domain"
	"invitepush/internal/metrics"
)

// WebhookController handles the database webhook endpoint and the health check.
type WebhookController struct {
	Logger    *slog.Logger
	Forwarder domain.ForwarderService
	Table     string
}

// NewWebhookController creates a WebhookController watching the given table.
func NewWebhookController(logger *slog.Logger, forwarder domain.ForwarderService, table string) *WebhookController {
	return &WebhookController{
		Logger:    logger,
		Forwarder: forwarder,
		Table:     table,
	}
}

// Handle dispatches on method: GET answers the liveness probe immediately,
// everything else runs the full webhook pipeline. Unexpected methods are not
// rejected here; they fail payload validation with a 400 like the webhook
// sender would.
func (c *WebhookController) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		c.HealthCheck(w, r)
		return
	}
	c.HandleWebhook(w, r)
}

// HealthCheck godoc
// @Summary Liveness probe
// @Produce json
// @Success 200 {object} helpers.MessageResponse
// @Router / [get]
func (c *WebhookController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, helpers.MessageResponse{Message: "Health check OK. Function is live!"})
}

// HandleWebhook godoc
// @Summary Forward an event-invite insert as a push notification
// @Description Accepts the database trigger payload. Inserts on the watched table are forwarded to FCM; other tables and change types are acknowledged and ignored. FCM rejections are relayed with their original status and body.
// @Tags webhook
// @Accept json
// @Produce json
// @Param body body domain.WebhookPayload true "Database webhook payload"
// @Success 200 {object} helpers.ForwardSuccessResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 429 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router / [post]
func (c *WebhookController) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	// Last-resort boundary: whatever goes wrong below, the trigger always
	// gets a well-formed JSON response.
	defer func() {
		if rec := recover(); rec != nil {
			c.Logger.Error("panic in webhook handler", "panic", rec)
			helpers.WriteJSON(w, http.StatusInternalServerError,
				helpers.ErrorResponse{Error: "Internal Server Error", Message: "unexpected failure"})
		}
	}()

	// Decoding into a pointer distinguishes a JSON null body from an
	// empty object; both "no body" and "null" are invalid here.
	var payload *domain.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
		c.Logger.Warn("invalid webhook payload", "error", err)
		helpers.WriteJSON(w, http.StatusBadRequest, helpers.ErrorResponse{Error: "Invalid payload"})
		return
	}

	if payload.Table != c.Table || payload.Type != domain.WebhookInsert {
		c.Logger.Info("ignoring webhook delivery", "table", payload.Table, "type", payload.Type)
		metrics.WebhooksIgnored.Inc()
		helpers.WriteJSON(w, http.StatusOK, helpers.MessageResponse{Message: "Ignored"})
		return
	}

	if !payload.HasCompleteRecord() {
		c.Logger.Warn("webhook record missing required fields", "table", payload.Table)
		helpers.WriteJSON(w, http.StatusBadRequest, helpers.ErrorResponse{Error: "Incomplete record data"})
		return
	}

	result, err := c.Forwarder.Forward(r.Context(), payload.Record)
	if err != nil {
		c.writeForwardError(w, r, payload.Record, err)
		return
	}

	if !result.OK() {
		c.Logger.Warn("fcm rejected push",
			"invite_id", payload.Record.ID, "fcm_status", result.StatusCode)
		metrics.WebhooksFailed.WithLabelValues("fcm_rejected").Inc()
		helpers.WriteRaw(w, result.StatusCode, result.Body)
		return
	}

	body := result.Body
	if len(body) == 0 {
		body = json.RawMessage("null")
	}
	metrics.WebhooksForwarded.Inc()
	helpers.WriteJSON(w, http.StatusOK, helpers.ForwardSuccessResponse{
		Success:     true,
		FCMResponse: body,
	})
}

func (c *WebhookController) writeForwardError(w http.ResponseWriter, r *http.Request, invite *domain.EventInvite, err error) {
	switch {
	case errors.Is(err, domain.ErrMisconfigured):
		c.Logger.Error("push credentials missing", "invite_id", invite.ID)
		metrics.WebhooksFailed.WithLabelValues("misconfigured").Inc()
		helpers.WriteJSON(w, http.StatusInternalServerError, helpers.ErrorResponse{Error: "Server configuration error"})
	case errors.Is(err, domain.ErrTokenNotFound):
		metrics.WebhooksFailed.WithLabelValues("token_not_found").Inc()
		helpers.WriteJSON(w, http.StatusNotFound, helpers.ErrorResponse{Error: "FCM token not found"})
	case errors.Is(err, domain.ErrDatabase):
		c.Logger.Error("profile lookup failed", "invite_id", invite.ID, "error", err)
		metrics.WebhooksFailed.WithLabelValues("database").Inc()
		helpers.WriteJSON(w, http.StatusInternalServerError, helpers.ErrorResponse{Error: "Database error", Details: err.Error()})
	default:
		c.Logger.ErrorContext(r.Context(), "webhook forwarding failed", "invite_id", invite.ID, "error", err)
		metrics.WebhooksFailed.WithLabelValues("internal").Inc()
		helpers.WriteJSON(w, http.StatusInternalServerError, helpers.ErrorResponse{Error: "Internal Server Error", Message: err.Error()})
	}
}

package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"cmdbot/appctx"
	"cmdbot/core"
	"cmdbot/core/log"
	"cmdbot/models"
)

// maxBodyBytes caps the webhook body. Longer bodies are truncated and fail verification.
const maxBodyBytes = 1 << 20

// WebhookDispatcher turns one webhook request into a response
type WebhookDispatcher interface {
	HandleRequest(ctx context.Context, req models.IncomingRequest) models.HTTPResponse
}

type WebhookHandler struct {
	dispatcher WebhookDispatcher
	path       string
}

func NewWebhookHandler(dispatcher WebhookDispatcher, path string) *WebhookHandler {
	return &WebhookHandler{
		dispatcher: dispatcher,
		path:       path,
	}
}

func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	requestID := core.NewID("req")
	log.Info("⚡ Webhook received", "request_id", requestID, "remote_addr", r.RemoteAddr)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		log.Warn("❌ Failed to read request body", "request_id", requestID, "error", err)
		body = nil
	}

	ctx := appctx.SetRequestID(r.Context(), requestID)
	resp := h.dispatcher.HandleRequest(ctx, models.IncomingRequest{
		Headers: r.Header.Clone(),
		RawBody: body,
	})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write([]byte(resp.Body)); err != nil {
		log.Error("❌ Failed to write webhook response", "request_id", requestID, "error", err)
		return
	}

	log.Info("✅ Webhook response sent", "request_id", requestID, "status", resp.StatusCode)
}

func (h *WebhookHandler) SetupEndpoints(router *mux.Router) {
	log.Info("🚀 Registering webhook endpoint", "path", h.path)
	// Any method reaches the dispatcher, which answers 401 to unsigned requests
	router.HandleFunc(h.path, h.HandleWebhook)
	log.Info("✅ Webhook endpoint registered successfully", "path", h.path)
}

// HandleHealth reports that the process is serving
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		log.Error("❌ Failed to write health check response", "error", err)
	}
}

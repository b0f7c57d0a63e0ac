// Package handler holds the HTTP surface of imagegate: the generation
// endpoint, the health probe and the router tying them together.
package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/basel-ax/imagegate/internal/domain"
	"github.com/basel-ax/imagegate/internal/logging"
)

// maxBodyBytes bounds the inbound JSON body
const maxBodyBytes = 1 << 20

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	ImageURL string `json:"imageUrl"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GenerateHandler serves the image generation endpoint
type GenerateHandler struct {
	service domain.ImageGenerationService
}

// NewGenerateHandler creates a handler backed by svc
func NewGenerateHandler(svc domain.ImageGenerationService) *GenerateHandler {
	return &GenerateHandler{service: svc}
}

// ServeHTTP implements http.Handler
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-Id", requestID)
	log := logging.With("request_id", requestID)

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.fail(w, log, domain.MethodNotAllowed(r.Method))
		return
	}

	prompt, err := decodePrompt(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.fail(w, log, domain.MissingPrompt(err))
		return
	}

	log.Debug("generating image", "prompt_length", len(prompt))

	resp, err := h.service.GenerateImage(r.Context(), domain.ImageGenerationRequest{
		RequestID: requestID,
		Prompt:    prompt,
	})
	if err != nil {
		h.fail(w, log, err)
		return
	}

	log.Info("image generated")
	writeJSON(w, http.StatusOK, generateResponse{ImageURL: resp.ImageURL})
}

func (h *GenerateHandler) fail(w http.ResponseWriter, log *slog.Logger, err error) {
	kind := domain.KindOf(err)
	status, message := StatusFor(kind)

	if status >= http.StatusInternalServerError {
		log.Error("generation failed",
			"kind", kind.String(),
			"upstream_status", domain.UpstreamStatusOf(err),
			"error", err)
	} else {
		log.Info("request rejected", "kind", kind.String(), "error", err)
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func decodePrompt(body io.Reader) (string, error) {
	var req generateRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return "", fmt.Errorf("failed to decode body: %w", err)
	}
	if req.Prompt == "" {
		return "", fmt.Errorf("prompt is empty")
	}
	return req.Prompt, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to encode response", "error", err)
	}
}

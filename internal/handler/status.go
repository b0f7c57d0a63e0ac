package handler

import (
	"net/http"

	"github.com/basel-ax/imagegate/internal/domain"
)

const (
	msgMethodNotAllowed = "Method not allowed"
	msgPromptRequired   = "Prompt is required"
	msgGenerationFailed = "Failed to generate image."
)

// StatusFor maps a failure kind to the status and message sent to the client.
// Only the two request-level rejections are distinguishable; everything
// else collapses into one opaque 500.
func StatusFor(kind domain.FailureKind) (int, string) {
	switch kind {
	case domain.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed, msgMethodNotAllowed
	case domain.KindValidation:
		return http.StatusBadRequest, msgPromptRequired
	default:
		return http.StatusInternalServerError, msgGenerationFailed
	}
}

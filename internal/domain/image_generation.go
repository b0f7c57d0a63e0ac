package domain

import (
	"context"
)

// DataURIPrefix is prepended to the upstream base64 payload to build an inline PNG.
const DataURIPrefix = "data:image/png;base64,"

// ImageGenerationRequest represents a validated inbound generation request
type ImageGenerationRequest struct {
	RequestID string
	Prompt    string
}

// ImageGenerationResponse represents a successful generation
type ImageGenerationResponse struct {
	ImageURL string
}

// ImageGenerationService defines the interface for image generation operations
type ImageGenerationService interface {
	// GenerateImage makes exactly one upstream call for the request prompt
	GenerateImage(ctx context.Context, req ImageGenerationRequest) (*ImageGenerationResponse, error)
}

// Predictor is the upstream image model. It returns the base64 payload of the
// first prediction.
type Predictor interface {
	Predict(ctx context.Context, apiKey, prompt string) (string, error)
}

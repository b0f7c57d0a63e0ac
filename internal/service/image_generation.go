package service

import (
	"context"
	"fmt"
	"time"

	"github.com/basel-ax/imagegate/internal/domain"
	"github.com/basel-ax/imagegate/internal/logging"
)

// Recorder persists the outcome of a generation request
type Recorder interface {
	Record(ctx context.Context, g domain.Generation) error
}

// ImageGenerationService implements the domain.ImageGenerationService interface
type ImageGenerationService struct {
	predictor domain.Predictor
	apiKey    string
	recorder  Recorder
	now       func() time.Time
}

// NewImageGenerationService creates a new image generation service. The
// recorder may be nil, in which case outcomes are only logged.
func NewImageGenerationService(apiKey string, predictor domain.Predictor, recorder Recorder) *ImageGenerationService {
	return &ImageGenerationService{
		predictor: predictor,
		apiKey:    apiKey,
		recorder:  recorder,
		now:       time.Now,
	}
}

// GenerateImage asks the upstream for one image and returns it as a data URI
func (s *ImageGenerationService) GenerateImage(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageGenerationResponse, error) {
	resp, err := s.generate(ctx, req)
	s.record(ctx, req, err)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}
	return resp, nil
}

func (s *ImageGenerationService) generate(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageGenerationResponse, error) {
	if s.apiKey == "" {
		return nil, domain.ConfigFault()
	}

	payload, err := s.predictor.Predict(ctx, s.apiKey, req.Prompt)
	if err != nil {
		return nil, err
	}

	return &domain.ImageGenerationResponse{
		ImageURL: domain.DataURIPrefix + payload,
	}, nil
}

func (s *ImageGenerationService) record(ctx context.Context, req domain.ImageGenerationRequest, genErr error) {
	if s.recorder == nil {
		return
	}

	outcome := domain.OutcomeSuccess
	if genErr != nil {
		outcome = domain.KindOf(genErr).String()
	}

	g := domain.Generation{
		ID:             req.RequestID,
		Prompt:         req.Prompt,
		Outcome:        outcome,
		UpstreamStatus: domain.UpstreamStatusOf(genErr),
		CreatedAt:      s.now(),
	}
	if genErr == nil {
		g.UpstreamStatus = 200
	}

	if err := s.recorder.Record(ctx, g); err != nil {
		logging.Warn("failed to record generation", "request_id", req.RequestID, "error", err)
	}
}

package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basel-ax/imagegate/internal/domain"
)

func TestImageGenerationService_GenerateImage(t *testing.T) {
	ctx := context.Background()
	req := domain.ImageGenerationRequest{RequestID: "req-1", Prompt: "a dog surfing"}

	t.Run("success builds a PNG data URI", func(t *testing.T) {
		predictor := &mockPredictor{
			predictFunc: func(ctx context.Context, apiKey, prompt string) (string, error) {
				assert.Equal(t, "test-key", apiKey)
				assert.Equal(t, "a dog surfing", prompt)
				return "AAAA", nil
			},
		}
		svc := NewImageGenerationService("test-key", predictor, nil)

		resp, err := svc.GenerateImage(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,AAAA", resp.ImageURL)
		assert.Equal(t, 1, predictor.calls)
	})

	t.Run("missing key never calls the upstream", func(t *testing.T) {
		predictor := &mockPredictor{}
		svc := NewImageGenerationService("", predictor, nil)

		_, err := svc.GenerateImage(ctx, req)
		require.Error(t, err)
		assert.Equal(t, domain.KindConfig, domain.KindOf(err))
		assert.Zero(t, predictor.calls)
	})

	t.Run("upstream errors keep their kind through wrapping", func(t *testing.T) {
		predictor := &mockPredictor{
			predictFunc: func(ctx context.Context, apiKey, prompt string) (string, error) {
				return "", domain.UpstreamFailure(http.StatusBadGateway, errors.New("body: bad gateway"))
			},
		}
		svc := NewImageGenerationService("test-key", predictor, nil)

		_, err := svc.GenerateImage(ctx, req)
		require.Error(t, err)
		assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
		assert.Contains(t, err.Error(), "failed to generate image")
	})

	t.Run("repeated requests give the same result", func(t *testing.T) {
		predictor := &mockPredictor{
			predictFunc: func(ctx context.Context, apiKey, prompt string) (string, error) {
				return "", domain.InvalidShape(http.StatusOK, errors.New("no predictions"))
			},
		}
		svc := NewImageGenerationService("test-key", predictor, nil)

		for i := 0; i < 3; i++ {
			_, err := svc.GenerateImage(ctx, req)
			assert.Equal(t, domain.KindShape, domain.KindOf(err))
		}
		assert.Equal(t, 3, predictor.calls)
	})
}

func TestImageGenerationService_Records(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		recorder := &mockRecorder{}
		predictor := &mockPredictor{
			predictFunc: func(ctx context.Context, apiKey, prompt string) (string, error) { return "AAAA", nil },
		}
		svc := NewImageGenerationService("test-key", predictor, recorder)
		svc.now = func() time.Time { return fixed }

		_, err := svc.GenerateImage(ctx, domain.ImageGenerationRequest{RequestID: "req-1", Prompt: "p"})
		require.NoError(t, err)

		require.Len(t, recorder.records, 1)
		assert.Equal(t, domain.Generation{
			ID:             "req-1",
			Prompt:         "p",
			Outcome:        domain.OutcomeSuccess,
			UpstreamStatus: 200,
			CreatedAt:      fixed,
		}, recorder.records[0])
	})

	t.Run("failure records kind and upstream status", func(t *testing.T) {
		recorder := &mockRecorder{}
		predictor := &mockPredictor{
			predictFunc: func(ctx context.Context, apiKey, prompt string) (string, error) {
				return "", domain.UpstreamFailure(http.StatusTooManyRequests, nil)
			},
		}
		svc := NewImageGenerationService("test-key", predictor, recorder)

		_, err := svc.GenerateImage(ctx, domain.ImageGenerationRequest{RequestID: "req-2", Prompt: "p"})
		require.Error(t, err)

		require.Len(t, recorder.records, 1)
		assert.Equal(t, "upstream", recorder.records[0].Outcome)
		assert.Equal(t, http.StatusTooManyRequests, recorder.records[0].UpstreamStatus)
	})

	t.Run("recorder failure does not change the result", func(t *testing.T) {
		recorder := &mockRecorder{err: errors.New("connection refused")}
		predictor := &mockPredictor{
			predictFunc: func(ctx context.Context, apiKey, prompt string) (string, error) { return "AAAA", nil },
		}
		svc := NewImageGenerationService("test-key", predictor, recorder)

		resp, err := svc.GenerateImage(ctx, domain.ImageGenerationRequest{RequestID: "req-3", Prompt: "p"})
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,AAAA", resp.ImageURL)
	})
}

// Package extraction implements the call transcript extraction pipeline:
// prompt composition, the model call, result normalization, and industry
// rule classification. Callers own persistence and delivery.
package extraction

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/flynnai/extraction/internal/llm"
	"github.com/flynnai/extraction/internal/metrics"
	"github.com/flynnai/extraction/internal/models"
	"github.com/flynnai/extraction/internal/rules"
)

type Service struct {
	Gateway              llm.Gateway
	Logger               zerolog.Logger
	Metrics              *metrics.Metrics
	ReviewThreshold      float64
	AutoConfirmThreshold float64
}

type Input struct {
	Transcription string
	Industry      string
	CallerInfo    *models.CallerInfo
	Context       *models.ExtractionContext
}

// Process runs the full pipeline for one call recording. The only blocking
// operation is the gateway call; cancellation of ctx stops any in-flight
// retry loop. Invocations are independent, so concurrent calls need no
// coordination.
func (s *Service) Process(ctx context.Context, in Input) (*models.ExtractionResult, error) {
	start := time.Now()
	industry := models.ParseIndustry(in.Industry)

	req, err := BuildRequest(in.Transcription, industry, in.CallerInfo, in.Context)
	if err != nil {
		s.observe(industry, "invalid_input", start, 0)
		return nil, err
	}

	raw, err := s.Gateway.Extract(ctx, req.SystemPrompt, req.UserPrompt)
	if err != nil {
		s.observe(industry, "gateway_error", start, 0)
		return nil, err
	}

	result, err := ValidateResult(raw)
	if err != nil {
		// schema drift between prompt and model output, not a transient fault
		s.Logger.Error().Err(err).Str("industry", string(industry)).Msg("model response failed validation")
		s.observe(industry, "malformed_result", start, 0)
		return nil, err
	}

	r := rules.ForIndustry(industry)
	for i := range result.Events {
		cls := rules.Classify(result.Events[i], r, s.ReviewThreshold)
		result.Events[i].Urgency = cls.Urgency
		result.Events[i].NeedsReview = cls.NeedsReview
		result.Events[i].ReviewReasons = cls.Reasons
		result.Events[i].AutoConfirmable = !cls.NeedsReview && result.Events[i].ConfidenceScore >= s.AutoConfirmThreshold
		if result.Events[i].DurationMinutes == nil && r.AverageDurationMinutes > 0 {
			avg := r.AverageDurationMinutes
			result.Events[i].DurationMinutes = &avg
		}
	}

	if result.IndustryDetected == nil && industry != models.IndustryGeneral {
		detected := string(industry)
		result.IndustryDetected = &detected
	}
	result.ProcessingTimeMs = time.Since(start).Milliseconds()

	s.observe(industry, "ok", start, len(result.Events))
	s.Logger.Info().
		Str("industry", string(industry)).
		Int("events", len(result.Events)).
		Float64("total_confidence", result.TotalConfidence).
		Int64("elapsed_ms", result.ProcessingTimeMs).
		Msg("extraction complete")
	return result, nil
}

func (s *Service) observe(industry models.Industry, outcome string, start time.Time, events int) {
	if s.Metrics != nil {
		s.Metrics.ObserveExtraction(string(industry), outcome, time.Since(start), events)
	}
}

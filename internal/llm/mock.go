package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flynnai/extraction/internal/utils"
)

// MockGateway produces deterministic extraction payloads without any network
// call. Used when no API key is configured and in tests.
type MockGateway struct {
	ModelVersion string
}

func (m MockGateway) Extract(ctx context.Context, systemPrompt, userPrompt string) (json.RawMessage, error) {
	h := utils.HashStringToUint64(userPrompt)

	types := []string{"appointment", "service_call", "consultation", "follow_up"}
	urgencies := []string{"low", "medium", "high"}
	confidences := []float64{0.62, 0.75, 0.88}

	snippet := userPrompt
	if idx := strings.Index(snippet, "\n"); idx > 0 {
		snippet = snippet[:idx]
	}
	// Truncate on a rune boundary so a multi-byte character is never split.
	if runes := []rune(snippet); len(runes) > 80 {
		snippet = string(runes[:80])
	}

	payload := map[string]any{
		"events": []map[string]any{
			{
				"type":             types[int(h)%len(types)],
				"title":            fmt.Sprintf("Mock event (%s)", m.ModelVersion),
				"description":      snippet,
				"proposed_date":    "tomorrow",
				"proposed_time":    nil,
				"duration_minutes": 60,
				"urgency":          urgencies[int(h/7)%len(urgencies)],
				"customer_name":    nil,
				"customer_phone":   nil,
				"customer_email":   nil,
				"service_address":  nil,
				"service_type":     nil,
				"estimated_price":  nil,
				"confidence_score": confidences[int(h/13)%len(confidences)],
				"extraction_notes": "deterministic mock output",
			},
		},
		"call_summary":      "Mock summary: " + snippet,
		"call_topic":        "mock",
		"industry_detected": nil,
	}
	b, _ := json.Marshal(payload)
	return json.RawMessage(b), nil
}

package extraction

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/flynnai/extraction/internal/models"
)

const defaultConfidence = 0.7

// ValidateResult normalizes raw model JSON into a typed ExtractionResult.
// Missing optional fields get defaults, confidence scores are clamped into
// [0,1], and total_confidence is the mean over all events (0 when empty).
// Pure given its input; no I/O.
func ValidateResult(raw json.RawMessage) (*models.ExtractionResult, error) {
	var top struct {
		Events           json.RawMessage `json:"events"`
		CallSummary      string          `json:"call_summary"`
		CallTopic        string          `json:"call_topic"`
		IndustryDetected *string         `json:"industry_detected"`
	}
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, &MalformedResultError{Reason: "response is not a JSON object"}
	}
	if len(top.Events) == 0 || string(top.Events) == "null" {
		return nil, &MalformedResultError{Reason: "events field is missing"}
	}

	var rawEvents []map[string]json.RawMessage
	if err := json.Unmarshal(top.Events, &rawEvents); err != nil {
		return nil, &MalformedResultError{Reason: "events is not an array of objects"}
	}

	events := make([]models.ExtractedEvent, 0, len(rawEvents))
	total := 0.0
	for _, re := range rawEvents {
		ev := normalizeEvent(re)
		total += ev.ConfidenceScore
		events = append(events, ev)
	}

	result := &models.ExtractionResult{
		ID:               uuid.NewString(),
		Events:           events,
		CallSummary:      top.CallSummary,
		CallTopic:        top.CallTopic,
		IndustryDetected: top.IndustryDetected,
	}
	if len(events) > 0 {
		result.TotalConfidence = total / float64(len(events))
	}
	return result, nil
}

func normalizeEvent(fields map[string]json.RawMessage) models.ExtractedEvent {
	ev := models.ExtractedEvent{
		ID:              asString(fields["id"]),
		Type:            models.EventType(asString(fields["type"])),
		Title:           asString(fields["title"]),
		Description:     asString(fields["description"]),
		ProposedDate:    asStringPtr(fields["proposed_date"]),
		ProposedTime:    asStringPtr(fields["proposed_time"]),
		DurationMinutes: asIntPtr(fields["duration_minutes"]),
		Urgency:         models.Urgency(asString(fields["urgency"])),
		CustomerName:    asStringPtr(fields["customer_name"]),
		CustomerPhone:   asStringPtr(fields["customer_phone"]),
		CustomerEmail:   asStringPtr(fields["customer_email"]),
		ServiceAddress:  asStringPtr(fields["service_address"]),
		ServiceType:     asStringPtr(fields["service_type"]),
		EstimatedPrice:  asFloatPtr(fields["estimated_price"]),
		ExtractionNotes: asString(fields["extraction_notes"]),
	}

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if !ev.Type.Valid() {
		ev.Type = models.EventAppointment
	}
	if !ev.Urgency.Valid() {
		ev.Urgency = models.UrgencyMedium
	}

	if conf, ok := asFloat(fields["confidence_score"]); ok {
		ev.ConfidenceScore = clamp01(conf)
	} else {
		ev.ConfidenceScore = defaultConfidence
	}
	return ev
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func asString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

func asStringPtr(raw json.RawMessage) *string {
	s := strings.TrimSpace(asString(raw))
	if s == "" {
		return nil
	}
	return &s
}

func asFloat(raw json.RawMessage) (float64, bool) {
	// Unmarshal of a literal null into a float64 succeeds without writing,
	// so null must be treated as absent before decoding.
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	return 0, false
}

func asFloatPtr(raw json.RawMessage) *float64 {
	if f, ok := asFloat(raw); ok {
		return &f
	}
	return nil
}

func asIntPtr(raw json.RawMessage) *int {
	if f, ok := asFloat(raw); ok {
		n := int(f)
		return &n
	}
	return nil
}

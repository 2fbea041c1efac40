package extraction

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/flynnai/extraction/internal/models"
)

func TestValidateResult_MissingEvents(t *testing.T) {
	for _, raw := range []string{
		`{"call_summary":"no events field"}`,
		`{"events":null}`,
		`{"events":"not an array"}`,
		`not json at all`,
	} {
		_, err := ValidateResult(json.RawMessage(raw))
		var malformedErr *MalformedResultError
		if !errors.As(err, &malformedErr) {
			t.Errorf("raw %q: expected MalformedResultError, got %v", raw, err)
		}
	}
}

func TestValidateResult_EmptyEventsIsValid(t *testing.T) {
	result, err := ValidateResult(json.RawMessage(`{"events":[],"call_summary":"nothing scheduled"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Events) != 0 {
		t.Fatalf("expected no events")
	}
	if result.TotalConfidence != 0 {
		t.Fatalf("expected total_confidence 0, got %f", result.TotalConfidence)
	}
}

func TestValidateResult_Defaults(t *testing.T) {
	result, err := ValidateResult(json.RawMessage(`{"events":[{"title":"Visit"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ev := result.Events[0]
	if ev.ID == "" {
		t.Errorf("expected a generated id")
	}
	if ev.Type != models.EventAppointment {
		t.Errorf("expected default type appointment, got %s", ev.Type)
	}
	if ev.Urgency != models.UrgencyMedium {
		t.Errorf("expected default urgency medium, got %s", ev.Urgency)
	}
	if ev.ConfidenceScore != 0.7 {
		t.Errorf("expected default confidence 0.7, got %f", ev.ConfidenceScore)
	}
}

func TestValidateResult_ConfidenceClamping(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`-5`, 0},
		{`1.7`, 1},
		{`0.42`, 0.42},
		{`"high"`, 0.7},
		{`null`, 0.7},
	}
	for _, tc := range cases {
		raw := json.RawMessage(`{"events":[{"title":"x","confidence_score":` + tc.raw + `}]}`)
		result, err := ValidateResult(raw)
		if err != nil {
			t.Fatalf("confidence %s: unexpected error: %v", tc.raw, err)
		}
		got := result.Events[0].ConfidenceScore
		if got != tc.want {
			t.Errorf("confidence %s: expected %f, got %f", tc.raw, tc.want, got)
		}
	}
}

func TestValidateResult_NullOptionalFieldsStayNil(t *testing.T) {
	raw := json.RawMessage(`{"events":[{
		"title":"Estimate visit",
		"estimated_price":null,
		"duration_minutes":null,
		"proposed_date":null,
		"customer_name":null
	}]}`)
	result, err := ValidateResult(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ev := result.Events[0]
	if ev.EstimatedPrice != nil {
		t.Errorf("expected nil estimated_price, got %v", *ev.EstimatedPrice)
	}
	if ev.DurationMinutes != nil {
		t.Errorf("expected nil duration_minutes, got %v", *ev.DurationMinutes)
	}
	if ev.ProposedDate != nil {
		t.Errorf("expected nil proposed_date, got %q", *ev.ProposedDate)
	}
	if ev.CustomerName != nil {
		t.Errorf("expected nil customer_name, got %q", *ev.CustomerName)
	}
}

func TestValidateResult_TotalConfidenceIsMean(t *testing.T) {
	raw := json.RawMessage(`{"events":[
		{"title":"a","confidence_score":0.2},
		{"title":"b","confidence_score":0.8}
	]}`)
	result, err := ValidateResult(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(result.TotalConfidence-0.5) > 1e-9 {
		t.Fatalf("expected mean 0.5, got %f", result.TotalConfidence)
	}
}

func TestValidateResult_FullEvent(t *testing.T) {
	raw := json.RawMessage(`{"events":[{
		"type":"service_call",
		"title":"Water heater repair",
		"description":"No hot water since Monday",
		"proposed_date":"tomorrow",
		"proposed_time":"2pm",
		"duration_minutes":90,
		"urgency":"high",
		"customer_name":"Pat Lee",
		"customer_phone":"+15550001111",
		"service_address":"42 Birch Rd",
		"service_type":"water heater",
		"estimated_price":250.0,
		"confidence_score":0.91,
		"extraction_notes":"explicit request"
	}],"call_summary":"repair call","call_topic":"water heater","industry_detected":"plumbing"}`)
	result, err := ValidateResult(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ev := result.Events[0]
	if ev.Type != models.EventServiceCall || ev.Urgency != models.UrgencyHigh {
		t.Fatalf("typed fields not carried through: %+v", ev)
	}
	if ev.DurationMinutes == nil || *ev.DurationMinutes != 90 {
		t.Fatalf("duration not parsed")
	}
	if ev.EstimatedPrice == nil || *ev.EstimatedPrice != 250.0 {
		t.Fatalf("price not parsed")
	}
	if result.IndustryDetected == nil || *result.IndustryDetected != "plumbing" {
		t.Fatalf("industry_detected not carried through")
	}
}

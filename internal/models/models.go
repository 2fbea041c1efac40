package models

import "strings"

type EventType string

const (
	EventAppointment  EventType = "appointment"
	EventServiceCall  EventType = "service_call"
	EventMeeting      EventType = "meeting"
	EventConsultation EventType = "consultation"
	EventQuote        EventType = "quote"
	EventFollowUp     EventType = "follow_up"
)

func (t EventType) Valid() bool {
	switch t {
	case EventAppointment, EventServiceCall, EventMeeting, EventConsultation, EventQuote, EventFollowUp:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}

type Industry string

const (
	IndustryGeneral    Industry = "general"
	IndustryPlumbing   Industry = "plumbing"
	IndustryLegal      Industry = "legal"
	IndustryMedical    Industry = "medical"
	IndustryRealEstate Industry = "real_estate"
)

// ParseIndustry maps free-form industry tags onto the supported set.
// Unknown values fall back to IndustryGeneral so callers always get the
// universal prompt rather than an error.
func ParseIndustry(value string) Industry {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "plumbing", "plumber", "hvac":
		return IndustryPlumbing
	case "legal", "law", "attorney":
		return IndustryLegal
	case "medical", "healthcare", "dental":
		return IndustryMedical
	case "real_estate", "real estate", "realestate", "realtor":
		return IndustryRealEstate
	default:
		return IndustryGeneral
	}
}

type ExtractedEvent struct {
	ID              string    `json:"id"`
	Type            EventType `json:"type"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ProposedDate    *string   `json:"proposed_date"`
	ProposedTime    *string   `json:"proposed_time"`
	DurationMinutes *int      `json:"duration_minutes"`
	Urgency         Urgency   `json:"urgency"`
	CustomerName    *string   `json:"customer_name"`
	CustomerPhone   *string   `json:"customer_phone"`
	CustomerEmail   *string   `json:"customer_email"`
	ServiceAddress  *string   `json:"service_address"`
	ServiceType     *string   `json:"service_type"`
	EstimatedPrice  *float64  `json:"estimated_price"`
	ConfidenceScore float64   `json:"confidence_score"`
	ExtractionNotes string    `json:"extraction_notes"`
	NeedsReview     bool      `json:"needs_review"`
	AutoConfirmable bool      `json:"auto_confirmable"`
	ReviewReasons   []string  `json:"review_reasons,omitempty"`
}

type ExtractionResult struct {
	ID               string           `json:"id"`
	Events           []ExtractedEvent `json:"events"`
	CallSummary      string           `json:"call_summary"`
	CallTopic        string           `json:"call_topic"`
	IndustryDetected *string          `json:"industry_detected"`
	ProcessingTimeMs int64            `json:"processing_time_ms"`
	TotalConfidence  float64          `json:"total_confidence"`
}

type CallerInfo struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ExtractionContext parameterizes prompt construction only; it is never
// persisted.
type ExtractionContext struct {
	UserTimezone        string   `json:"user_timezone,omitempty"`
	UserLocation        string   `json:"user_location,omitempty"`
	PreviousCalls       []string `json:"previous_calls,omitempty"`
	BusinessHours       string   `json:"business_hours,omitempty"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

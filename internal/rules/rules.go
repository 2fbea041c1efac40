// Package rules applies industry-specific validation policy to extracted
// events: emergency keyword overrides, review flagging, and auto-confirm
// gating. Rule tables are static and never mutated at runtime.
package rules

import (
	"strings"

	"github.com/flynnai/extraction/internal/models"
)

type ValidationRules struct {
	Industry                models.Industry
	RequiredFields          []string
	HighValueFields         []string
	EmergencyKeywords       []string
	ConfidentialityRequired bool
	DefaultBusinessHours    string
	AverageDurationMinutes  int
}

type Classification struct {
	Urgency     models.Urgency
	NeedsReview bool
	Reasons     []string
}

// ForIndustry returns the rule set for an industry. Every industry has rules;
// unknown values resolve to the general set.
func ForIndustry(industry models.Industry) ValidationRules {
	if r, ok := industryRules[industry]; ok {
		return r
	}
	return industryRules[models.IndustryGeneral]
}

// Classify assigns the final urgency and review flag for one event.
// reviewThreshold is external configuration; events scoring below it are
// flagged for a human.
//
// Emergency keyword matches override the model's own urgency. Under-classifying
// a burst pipe or a chest-pain call is far more costly than over-classifying,
// so the keyword check always wins.
func Classify(event models.ExtractedEvent, r ValidationRules, reviewThreshold float64) Classification {
	out := Classification{Urgency: event.Urgency}
	if !out.Urgency.Valid() {
		out.Urgency = models.UrgencyMedium
	}

	haystack := strings.ToLower(event.Title + " " + event.Description + " " + event.ExtractionNotes)
	for _, kw := range r.EmergencyKeywords {
		if strings.Contains(haystack, kw) {
			out.Urgency = models.UrgencyEmergency
			out.Reasons = append(out.Reasons, "emergency keyword: "+kw)
			break
		}
	}

	if event.ConfidenceScore < reviewThreshold {
		out.NeedsReview = true
		out.Reasons = append(out.Reasons, "confidence below review threshold")
	}

	if r.ConfidentialityRequired && hasCustomerPII(event) {
		out.NeedsReview = true
		out.Reasons = append(out.Reasons, "confidential industry with customer PII")
	}

	for _, field := range r.RequiredFields {
		if !fieldPopulated(event, field) {
			out.NeedsReview = true
			out.Reasons = append(out.Reasons, "missing required field: "+field)
		}
	}

	// Once an event is headed for review, list the high-value fields the
	// model failed to capture so the reviewer knows what to chase.
	if out.NeedsReview {
		for _, field := range r.HighValueFields {
			if !fieldPopulated(event, field) {
				out.Reasons = append(out.Reasons, "missing high-value field: "+field)
			}
		}
	}

	return out
}

func hasCustomerPII(event models.ExtractedEvent) bool {
	return strPopulated(event.CustomerName) || strPopulated(event.CustomerPhone) || strPopulated(event.CustomerEmail)
}

func fieldPopulated(event models.ExtractedEvent, field string) bool {
	switch field {
	case "title":
		return strings.TrimSpace(event.Title) != ""
	case "proposed_date":
		return strPopulated(event.ProposedDate)
	case "proposed_time":
		return strPopulated(event.ProposedTime)
	case "customer_name":
		return strPopulated(event.CustomerName)
	case "customer_phone":
		return strPopulated(event.CustomerPhone)
	case "service_address":
		return strPopulated(event.ServiceAddress)
	case "service_type":
		return strPopulated(event.ServiceType)
	case "estimated_price":
		return event.EstimatedPrice != nil
	default:
		return true
	}
}

func strPopulated(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

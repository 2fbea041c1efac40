// Package prompts holds the per-industry prompt templates for call event
// extraction. Everything here is static text plus string composition; the
// same inputs always produce the same prompt.
package prompts

import (
	"fmt"
	"strings"

	"github.com/flynnai/extraction/internal/models"
)

const basePrompt = `You are an AI assistant that extracts calendar-worthy events from business phone call transcripts.

Your job:
1. Identify every appointment, service call, meeting, consultation, quote request, or follow-up discussed in the call.
2. For each one, capture the who/what/when/where as precisely as the transcript allows.
3. Never invent details. If a field is not mentioned, leave it null.
4. Dates and times may be relative ("tomorrow afternoon", "next Tuesday"); record them as spoken.
5. Assign each event a confidence score between 0.0 and 1.0 reflecting how certain you are the event is real and correctly captured.
6. Classify urgency as low, medium, high, or emergency based on the caller's language and situation.

Rules:
- Extract events only from what was actually said. Do not infer commitments that were not made.
- A call can contain zero events. An empty events list is a valid answer.
- Phone numbers and email addresses must be copied verbatim from the transcript.
- Put your reasoning for each event in extraction_notes, briefly.`

const responseTemplate = `Respond with a single JSON object and nothing else, using exactly this shape:
{
  "events": [
    {
      "type": "appointment|service_call|meeting|consultation|quote|follow_up",
      "title": "short human-readable title",
      "description": "what was agreed or requested",
      "proposed_date": "ISO date or relative text, or null",
      "proposed_time": "time or relative text, or null",
      "duration_minutes": 60,
      "urgency": "low|medium|high|emergency",
      "customer_name": "name or null",
      "customer_phone": "phone or null",
      "customer_email": "email or null",
      "service_address": "address or null",
      "service_type": "type of service or null",
      "estimated_price": 150.0,
      "confidence_score": 0.85,
      "extraction_notes": "brief rationale"
    }
  ],
  "call_summary": "2-3 sentence summary of the call",
  "call_topic": "short topic label",
  "industry_detected": "industry you believe the business operates in, or null"
}`

// BuildPrompt composes the system prompt for one extraction. Unrecognized
// industries get the base prompt only; that fallback is policy, not an error.
func BuildPrompt(industry models.Industry, ctx *models.ExtractionContext) string {
	parts := []string{basePrompt}

	if section, ok := industrySections[industry]; ok {
		parts = append(parts, section)
	}

	if ctxSection := contextSection(ctx); ctxSection != "" {
		parts = append(parts, ctxSection)
	}

	parts = append(parts, responseTemplate)
	return strings.Join(parts, "\n\n")
}

func contextSection(ctx *models.ExtractionContext) string {
	if ctx == nil {
		return ""
	}
	var lines []string
	if ctx.UserTimezone != "" {
		lines = append(lines, fmt.Sprintf("- Business timezone: %s", ctx.UserTimezone))
	}
	if ctx.UserLocation != "" {
		lines = append(lines, fmt.Sprintf("- Business location: %s", ctx.UserLocation))
	}
	if ctx.BusinessHours != "" {
		lines = append(lines, fmt.Sprintf("- Business hours: %s", ctx.BusinessHours))
	}
	if len(ctx.PreviousCalls) > 0 {
		lines = append(lines, fmt.Sprintf("- Prior calls from this customer: %s", strings.Join(ctx.PreviousCalls, "; ")))
	}
	if ctx.SpecialInstructions != "" {
		lines = append(lines, fmt.Sprintf("- Special instructions: %s", ctx.SpecialInstructions))
	}
	if len(lines) == 0 {
		return ""
	}
	return "Business context:\n" + strings.Join(lines, "\n")
}

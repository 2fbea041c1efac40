package extraction

import (
	"fmt"
	"strings"

	"github.com/flynnai/extraction/internal/models"
	"github.com/flynnai/extraction/internal/prompts"
	"github.com/flynnai/extraction/internal/rules"
)

type Request struct {
	SystemPrompt string
	UserPrompt   string
}

// BuildRequest composes the system and user prompts for one extraction.
// Caller metadata is appended as informational context only; the model is
// told not to treat it as authoritative event data.
func BuildRequest(transcription string, industry models.Industry, caller *models.CallerInfo, ctx *models.ExtractionContext) (Request, error) {
	if strings.TrimSpace(transcription) == "" {
		return Request{}, &InvalidInputError{Reason: "transcription is empty"}
	}

	var b strings.Builder
	b.WriteString("Call transcript:\n")
	b.WriteString(transcription)

	if caller != nil && (caller.From != "" || caller.To != "") {
		b.WriteString("\n\nCall metadata (context only, not authoritative event data):")
		if caller.From != "" {
			fmt.Fprintf(&b, "\n- Caller number: %s", caller.From)
		}
		if caller.To != "" {
			fmt.Fprintf(&b, "\n- Business number: %s", caller.To)
		}
	}

	if hours := rules.ForIndustry(industry).DefaultBusinessHours; hours != "" {
		fmt.Fprintf(&b, "\n\nTypical business hours for this kind of business: %s. Use them when inferring vague appointment times.", hours)
	}

	return Request{
		SystemPrompt: prompts.BuildPrompt(industry, ctx),
		UserPrompt:   b.String(),
	}, nil
}

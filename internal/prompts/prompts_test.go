package prompts

import (
	"strings"
	"testing"

	"github.com/flynnai/extraction/internal/models"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	ctx := &models.ExtractionContext{
		UserTimezone:  "America/Chicago",
		BusinessHours: "Mon-Fri 8:00-17:00",
		PreviousCalls: []string{"quote request last Tuesday"},
	}
	first := BuildPrompt(models.IndustryPlumbing, ctx)
	second := BuildPrompt(models.IndustryPlumbing, ctx)
	if first != second {
		t.Fatalf("identical inputs produced different prompts")
	}
}

func TestBuildPrompt_IndustrySections(t *testing.T) {
	cases := []struct {
		industry models.Industry
		marker   string
	}{
		{models.IndustryPlumbing, "Industry: PLUMBING"},
		{models.IndustryLegal, "Industry: LEGAL"},
		{models.IndustryMedical, "Industry: MEDICAL"},
		{models.IndustryRealEstate, "Industry: REAL ESTATE"},
	}
	for _, tc := range cases {
		p := BuildPrompt(tc.industry, nil)
		if !strings.Contains(p, tc.marker) {
			t.Errorf("%s prompt missing marker %q", tc.industry, tc.marker)
		}
	}
}

func TestBuildPrompt_UnknownIndustryFallsBackToBase(t *testing.T) {
	p := BuildPrompt(models.ParseIndustry("underwater basket weaving"), nil)
	if strings.Contains(p, "Industry:") {
		t.Fatalf("unknown industry should get the base prompt only")
	}
	if !strings.Contains(p, "Respond with a single JSON object") {
		t.Fatalf("base prompt must always carry the response template")
	}
}

func TestBuildPrompt_ContextSection(t *testing.T) {
	withCtx := BuildPrompt(models.IndustryGeneral, &models.ExtractionContext{UserLocation: "Austin, TX"})
	if !strings.Contains(withCtx, "Austin, TX") {
		t.Fatalf("context location not included in prompt")
	}

	empty := BuildPrompt(models.IndustryGeneral, &models.ExtractionContext{})
	noCtx := BuildPrompt(models.IndustryGeneral, nil)
	if empty != noCtx {
		t.Fatalf("empty context should not change the prompt")
	}
}

package rules

import "github.com/flynnai/extraction/internal/models"

var industryRules = map[models.Industry]ValidationRules{
	models.IndustryGeneral: {
		Industry:               models.IndustryGeneral,
		RequiredFields:         []string{"title"},
		HighValueFields:        []string{"customer_phone", "proposed_date"},
		EmergencyKeywords:      []string{"emergency", "urgent", "asap", "right away", "immediately"},
		DefaultBusinessHours:   "Mon-Fri 9:00-17:00",
		AverageDurationMinutes: 60,
	},
	models.IndustryPlumbing: {
		Industry:        models.IndustryPlumbing,
		RequiredFields:  []string{"title", "service_address"},
		HighValueFields: []string{"customer_phone", "service_type", "proposed_date"},
		EmergencyKeywords: []string{
			"emergency", "burst pipe", "burst", "flooding", "flood", "water everywhere",
			"no water", "gas leak", "gas smell", "sewage", "sewer backup", "overflow",
			"no heat", "no hot water",
		},
		DefaultBusinessHours:   "Mon-Sat 7:00-19:00",
		AverageDurationMinutes: 90,
	},
	models.IndustryLegal: {
		Industry:        models.IndustryLegal,
		RequiredFields:  []string{"title", "customer_name"},
		HighValueFields: []string{"service_type", "proposed_date"},
		EmergencyKeywords: []string{
			"arrest", "arrested", "in custody", "court tomorrow", "court date",
			"deadline", "statute of limitations", "restraining order", "subpoena",
			"emergency",
		},
		ConfidentialityRequired: true,
		DefaultBusinessHours:    "Mon-Fri 9:00-18:00",
		AverageDurationMinutes:  45,
	},
	models.IndustryMedical: {
		Industry:        models.IndustryMedical,
		RequiredFields:  []string{"title", "customer_name"},
		HighValueFields: []string{"customer_phone", "proposed_date", "proposed_time"},
		EmergencyKeywords: []string{
			"emergency", "severe pain", "bleeding", "can't breathe", "cannot breathe",
			"chest pain", "allergic reaction", "unconscious", "overdose", "911",
		},
		ConfidentialityRequired: true,
		DefaultBusinessHours:    "Mon-Fri 8:00-17:00",
		AverageDurationMinutes:  30,
	},
	models.IndustryRealEstate: {
		Industry:        models.IndustryRealEstate,
		RequiredFields:  []string{"title", "service_address"},
		HighValueFields: []string{"customer_phone", "proposed_date", "estimated_price"},
		EmergencyKeywords: []string{
			"offer deadline", "closing tomorrow", "closing date", "competing offer",
			"about to sign", "urgent",
		},
		DefaultBusinessHours:   "Mon-Sun 9:00-20:00",
		AverageDurationMinutes: 45,
	},
}

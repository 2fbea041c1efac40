package prompts

import "github.com/flynnai/extraction/internal/models"

// industrySections is a closed set keyed by the Industry enum. General has no
// section on purpose: it means "base prompt only".
var industrySections = map[models.Industry]string{
	models.IndustryPlumbing:   plumbingSection,
	models.IndustryLegal:      legalSection,
	models.IndustryMedical:    medicalSection,
	models.IndustryRealEstate: realEstateSection,
}

const plumbingSection = `Industry: PLUMBING / HVAC

This business handles plumbing and HVAC service calls. Pay attention to:
- Emergency language: "burst pipe", "flooding", "no water", "gas leak", "sewage backup", "no heat". These are emergencies regardless of how calm the caller sounds.
- Most calls are service_call events, not appointments. A request to "come take a look" is a service call.
- The service address is critical for dispatch. Capture full street addresses whenever spoken.
- Callers often describe the problem in detail ("water heater making noise", "slow drain in the kitchen"); record that as service_type and description.
- Price discussions are usually rough quotes ("probably runs $200-$400"); record the low end as estimated_price.
- Typical job duration is 60-90 minutes unless the caller or business says otherwise.`

const legalSection = `Industry: LEGAL

This business is a law practice. Pay attention to:
- Calls are almost always consultation events. Initial consultations are typically 30-60 minutes.
- Urgency cues: court dates, filing deadlines, statute of limitations, arrests, restraining orders. A caller mentioning an imminent court date or arrest is high or emergency urgency.
- Confidentiality: do not expand on case details beyond what is needed to schedule. Keep descriptions factual and minimal.
- Capture the matter type (family law, criminal defense, personal injury, estate planning) as service_type.
- Callers may be reluctant to give details on the phone; low detail does not mean low confidence in the scheduling intent itself.`

const medicalSection = `Industry: MEDICAL

This business is a medical or dental practice. Pay attention to:
- Urgent symptom language: "severe pain", "bleeding", "can't breathe", "chest pain", "allergic reaction". These force emergency urgency and the caller should be directed to emergency services by the practice.
- Calls are appointment or consultation events. New-patient visits run longer than follow-ups.
- HIPAA: capture only what scheduling requires. Note symptoms in the description only as spoken, without elaboration or diagnosis.
- Capture whether the caller is a new or returning patient when stated.
- Insurance questions are common but are not events unless a visit is being scheduled.`

const realEstateSection = `Industry: REAL ESTATE

This business is a real estate brokerage. Pay attention to:
- Showing requests are appointment events; listing consultations and buyer consultations are consultation events.
- The property address is the service_address. Capture it in full.
- Urgency cues: offer deadlines, closing dates, competing offers, "the open house is this weekend". Time-boxed situations are high urgency.
- Capture price range, bedrooms, neighborhoods mentioned in the description; they matter for follow-up.
- Open-ended "just browsing" calls with no concrete property or time are follow_up events at low confidence.`

package convert

import (
	"strings"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// AllergyToFHIR converts a flat allergy row to an AllergyIntolerance
// document. The flat schema carries at most two reaction slots.
func AllergyToFHIR(a synthea.Allergy, ov Overrides) fhir.Resource {
	r := fhir.Resource{"resourceType": "AllergyIntolerance"}

	put(r, "id", SyntheticID(a.Patient, a.Start, a.Code))
	r["clinicalStatus"] = fhir.ClinicalStatus(a.Stop == "", fhirmodels.SystemAllergyClinical)
	r["verificationStatus"] = fhir.VerificationStatus("confirmed", fhirmodels.SystemAllergyVerStatus)

	if a.Type != "" {
		code := strings.ToLower(a.Type)
		r["type"] = map[string]interface{}{
			"coding": []interface{}{fhir.Coding(fhirmodels.SystemAllergyType, code, capitalize(code))},
		}
	}
	if a.Category != "" {
		r["category"] = []interface{}{synthea.NormalizeAllergyCategory(a.Category)}
	}

	put(r, "code", fhir.CodeableConcept(a.System, a.Code, a.Description, a.Description))
	put(r, "patient", fhir.Ref("Patient", effectiveID(ov.Patient, a.Patient)))
	put(r, "encounter", fhir.Ref("Encounter", a.Encounter))
	put(r, "recordedDate", fhir.FormatDateTime(a.Start))
	put(r, "onsetDateTime", fhir.FormatDateTime(a.Start))
	put(r, "lastOccurrence", fhir.FormatDateTime(a.Stop))

	var reactions []interface{}
	for _, slot := range []struct{ code, description, severity string }{
		{a.Reaction1, a.Description1, a.Severity1},
		{a.Reaction2, a.Description2, a.Severity2},
	} {
		if slot.code == "" {
			continue
		}
		reaction := map[string]interface{}{
			"manifestation": []interface{}{map[string]interface{}{
				"concept": map[string]interface{}{
					"coding": []interface{}{fhir.Coding(fhirmodels.SystemSNOMED, slot.code, slot.description)},
				},
			}},
		}
		put(reaction, "description", slot.description)
		put(reaction, "severity", strings.ToLower(slot.severity))
		reactions = append(reactions, reaction)
	}
	if reactions != nil {
		r["reaction"] = reactions
	}

	return r
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// AllergyFromFHIR converts an AllergyIntolerance document back to a flat
// row. Reactions beyond the second are dropped with a warning.
func AllergyFromFHIR(r fhir.Resource) (synthea.Allergy, error) {
	if err := checkKind(r, "AllergyIntolerance"); err != nil {
		return synthea.Allergy{}, err
	}

	start, _ := fhir.GetString(r, "recordedDate")
	if start == "" {
		start, _ = fhir.GetString(r, "onsetDateTime")
	}
	stop, _ := fhir.GetString(r, "lastOccurrence")

	code, _ := fhir.GetMap(r, "code")

	a := synthea.Allergy{
		Start:       fhir.FlatDateTime(start),
		Stop:        fhir.FlatDateTime(stop),
		Patient:     fhir.RefIDAt(r, "patient"),
		Encounter:   fhir.RefIDAt(r, "encounter"),
		Code:        fhir.Code(code, fhirmodels.SystemSNOMED, fhirmodels.SystemRxNorm),
		System:      fhir.SystemAt(r, "code"),
		Description: fhir.Display(code),
		Type:        allergyType(r),
	}

	if categories, ok := fhir.GetArray(r, "category"); ok && len(categories) > 0 {
		if s, ok := categories[0].(string); ok {
			a.Category = s
		}
	}

	reactions := mapArray(r, "reaction")
	if len(reactions) > 2 {
		warn().Int("count", len(reactions)).Msg("allergy has extra reactions; only first two preserved")
		reactions = reactions[:2]
	}
	for i, reaction := range reactions {
		code := reactionCode(reaction)
		description, _ := fhir.GetString(reaction, "description")
		severity, _ := fhir.GetString(reaction, "severity")
		severity = strings.ToUpper(severity)
		if i == 0 {
			a.Reaction1, a.Description1, a.Severity1 = code, description, severity
		} else {
			a.Reaction2, a.Description2, a.Severity2 = code, description, severity
		}
	}

	return a, nil
}

func allergyType(r fhir.Resource) string {
	if concept, ok := fhir.GetMap(r, "type"); ok {
		return strings.ToLower(fhir.Code(concept))
	}
	if s, ok := fhir.GetString(r, "type"); ok {
		return strings.ToLower(s)
	}
	return ""
}

// reactionCode reads the manifestation code from either the R4B
// CodeableReference shape or the R4 concept list.
func reactionCode(reaction map[string]interface{}) string {
	manifestations := mapArray(reaction, "manifestation")
	if len(manifestations) == 0 {
		return ""
	}
	if concept, ok := fhir.GetMap(manifestations[0], "concept"); ok {
		return fhir.Code(concept, fhirmodels.SystemSNOMED)
	}
	return fhir.Code(manifestations[0], fhirmodels.SystemSNOMED)
}

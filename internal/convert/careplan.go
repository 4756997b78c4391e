package convert

import (
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// CarePlanToFHIR converts a flat care plan row to a CarePlan document.
func CarePlanToFHIR(c synthea.CarePlan, ov Overrides) fhir.Resource {
	r := fhir.Resource{"resourceType": "CarePlan"}

	id := c.ID
	if id == "" {
		id = SyntheticID(c.Patient, c.Start, c.Code)
	}
	put(r, "id", id)

	if c.Stop != "" {
		r["status"] = "completed"
	} else {
		r["status"] = "active"
	}
	r["intent"] = "plan"
	put(r, "title", c.Description)
	put(r, "description", c.Description)

	if c.Code != "" {
		r["category"] = []interface{}{map[string]interface{}{
			"coding": []interface{}{fhir.Coding(fhirmodels.SystemSNOMED, c.Code, "")},
		}}
	}

	put(r, "subject", fhir.Ref("Patient", effectiveID(ov.Patient, c.Patient)))
	put(r, "encounter", fhir.Ref("Encounter", effectiveID(ov.Encounter, c.Encounter)))
	put(r, "period", fhir.Period(fhir.FormatDateTime(c.Start), fhir.FormatDateTime(c.Stop)))

	if concept := codedConcept(fhirmodels.SystemSNOMED, c.ReasonCode, c.ReasonDescription); concept != nil {
		r["addresses"] = []interface{}{map[string]interface{}{"concept": concept}}
	}

	return r
}

// CarePlanFromFHIR converts a CarePlan document back to a flat row.
// Extra categories are dropped with a warning.
func CarePlanFromFHIR(r fhir.Resource) (synthea.CarePlan, error) {
	if err := checkKind(r, "CarePlan"); err != nil {
		return synthea.CarePlan{}, err
	}

	categories := mapArray(r, "category")
	if len(categories) > 1 {
		warn().Int("count", len(categories)).Msg("care plan has extra categories; only first preserved")
	}
	code := "unknown"
	if len(categories) > 0 {
		if c := fhir.Code(categories[0], fhirmodels.SystemSNOMED); c != "" {
			code = c
		}
	}

	description := stringAt(r, "description")
	if description == "" {
		description = stringAt(r, "title")
	}

	period, _ := fhir.GetMap(r, "period")

	c := synthea.CarePlan{
		ID:          r.ID(),
		Start:       fhir.FormatDate(stringAt(period, "start")),
		Stop:        fhir.FormatDate(stringAt(period, "end")),
		Patient:     fhir.RefIDAt(r, "subject"),
		Encounter:   fhir.RefIDAt(r, "encounter"),
		Code:        code,
		Description: synthea.Default(description, "Unknown care plan"),
	}
	c.ReasonCode, c.ReasonDescription = carePlanReason(r)

	return c, nil
}

// carePlanReason reads the first addresses entry in either the R4B
// CodeableReference shape or the R4 concept shape, falling back to
// reasonCode.
func carePlanReason(r fhir.Resource) (code, description string) {
	if addresses := mapArray(r, "addresses"); len(addresses) > 0 {
		entry := addresses[0]
		if concept, ok := fhir.GetMap(entry, "concept"); ok {
			entry = concept
		}
		return fhir.Code(entry, fhirmodels.SystemSNOMED), fhir.Display(entry)
	}
	if reasons := mapArray(r, "reasonCode"); len(reasons) > 0 {
		return fhir.Code(reasons[0], fhirmodels.SystemSNOMED), fhir.Display(reasons[0])
	}
	return "", ""
}

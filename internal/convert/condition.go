package convert

import (
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// ConditionToFHIR converts a flat condition row to a Condition document.
func ConditionToFHIR(c synthea.Condition, ov Overrides) fhir.Resource {
	r := fhir.Resource{"resourceType": "Condition"}

	put(r, "id", SyntheticID(c.Patient, c.Start, c.Code))
	r["clinicalStatus"] = fhir.ClinicalStatus(c.Stop == "", fhirmodels.SystemConditionClinical)
	r["verificationStatus"] = fhir.VerificationStatus("confirmed", fhirmodels.SystemConditionVerStatus)
	r["category"] = []interface{}{map[string]interface{}{
		"coding": []interface{}{fhir.Coding(fhirmodels.SystemConditionCategory, "encounter-diagnosis", "Encounter Diagnosis")},
	}}
	put(r, "code", fhir.CodeableConcept(fhirmodels.SystemSNOMED, c.Code, c.Description, c.Description))
	put(r, "subject", fhir.Ref("Patient", effectiveID(ov.Patient, c.Patient)))
	put(r, "encounter", fhir.Ref("Encounter", effectiveID(ov.Encounter, c.Encounter)))
	put(r, "onsetDateTime", fhir.FormatDateTime(c.Start))
	put(r, "abatementDateTime", fhir.FormatDateTime(c.Stop))

	return r
}

// ConditionFromFHIR converts a Condition document back to a flat row.
// Extra categories are dropped with a warning.
func ConditionFromFHIR(r fhir.Resource) (synthea.Condition, error) {
	if err := checkKind(r, "Condition"); err != nil {
		return synthea.Condition{}, err
	}

	if categories := mapArray(r, "category"); len(categories) > 1 {
		warn().Int("count", len(categories)).Msg("condition has extra categories; only first preserved")
	}

	code, _ := fhir.GetMap(r, "code")

	c := synthea.Condition{
		Start:       flatDate(r, "onsetDateTime"),
		Stop:        flatDate(r, "abatementDateTime"),
		Patient:     fhir.RefIDAt(r, "subject"),
		Encounter:   fhir.RefIDAt(r, "encounter"),
		Code:        synthea.Default(fhir.Code(code, fhirmodels.SystemSNOMED), "unknown"),
		Description: synthea.Default(fhir.Display(code), "Unknown condition"),
	}
	return c, nil
}

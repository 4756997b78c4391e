package convert

import (
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// ImmunizationToFHIR converts a flat immunization row to an Immunization
// document.
func ImmunizationToFHIR(i synthea.Immunization, ov Overrides) fhir.Resource {
	r := fhir.Resource{"resourceType": "Immunization"}

	put(r, "id", SyntheticID(i.Patient, i.Date, i.Code))
	r["status"] = "completed"
	put(r, "vaccineCode", fhir.CodeableConcept(fhirmodels.SystemCVX, i.Code, i.Description, i.Description))
	put(r, "patient", fhir.Ref("Patient", effectiveID(ov.Patient, i.Patient)))
	put(r, "encounter", fhir.Ref("Encounter", effectiveID(ov.Encounter, i.Encounter)))
	put(r, "occurrenceDateTime", fhir.FormatDateTime(i.Date))

	put(r, "extension", fhir.Extensions(
		fhir.Extension(fhirmodels.ExtImmunizationCost, "valueDecimal", fhir.Decimal(i.BaseCost)),
	))

	return r
}

// ImmunizationFromFHIR converts an Immunization document back to a flat
// row.
func ImmunizationFromFHIR(r fhir.Resource) (synthea.Immunization, error) {
	if err := checkKind(r, "Immunization"); err != nil {
		return synthea.Immunization{}, err
	}

	vaccine, _ := fhir.GetMap(r, "vaccineCode")

	i := synthea.Immunization{
		Date:        fhir.FlatDateTime(stringAt(r, "occurrenceDateTime")),
		Patient:     fhir.RefIDAt(r, "patient"),
		Encounter:   fhir.RefIDAt(r, "encounter"),
		Code:        synthea.Default(fhir.Code(vaccine, fhirmodels.SystemCVX), "unknown"),
		Description: synthea.Default(fhir.Display(vaccine), "Unknown immunization"),
		BaseCost:    fhir.ExtValue(r, fhirmodels.ExtImmunizationCost, "valueDecimal", ""),
	}
	return i, nil
}

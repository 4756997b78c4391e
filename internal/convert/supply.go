package convert

import (
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// SupplyToFHIR converts a flat supply row to a SupplyDelivery document.
// The encounter link rides in an extension since the target schema has no
// native field for it.
func SupplyToFHIR(s synthea.Supply, ov Overrides) fhir.Resource {
	r := fhir.Resource{"resourceType": "SupplyDelivery"}

	r["id"] = "supply-" + SyntheticID(s.Patient, s.Date, s.Code)
	r["status"] = "completed"
	put(r, "occurrenceDateTime", fhir.FormatDateTime(s.Date))

	patientRef := ov.Patient
	if patientRef == "" {
		patientRef = fhir.RefString("Patient", s.Patient)
	}
	if patientRef != "" {
		r["patient"] = map[string]interface{}{"reference": patientRef}
	}

	put(r, "extension", fhir.Extensions(
		refExtension(fhirmodels.ExtResourceEncounter, "Encounter", s.Encounter),
	))

	item := map[string]interface{}{}
	put(item, "itemCodeableConcept", codedConcept(fhirmodels.SystemSNOMED, s.Code, s.Description))
	if quantity := fhir.Quantity(s.Quantity); quantity != nil {
		item["quantity"] = quantity
	}
	if len(item) > 0 {
		r["suppliedItem"] = item
	}

	return r
}

// SupplyFromFHIR converts a SupplyDelivery document back to a flat row.
func SupplyFromFHIR(r fhir.Resource) (synthea.Supply, error) {
	if err := checkKind(r, "SupplyDelivery"); err != nil {
		return synthea.Supply{}, err
	}

	date, _ := fhir.GetString(r, "occurrenceDateTime")
	if date == "" {
		if period, ok := fhir.GetMap(r, "occurrencePeriod"); ok {
			date = stringAt(period, "start")
		}
	}

	s := synthea.Supply{
		Date:      fhir.FlatDateTime(date),
		Patient:   fhir.RefIDAt(r, "patient"),
		Encounter: fhir.ExtRef(r, fhirmodels.ExtResourceEncounter),
	}

	item, _ := fhir.GetMap(r, "suppliedItem")
	if concept, ok := fhir.GetMap(item, "itemCodeableConcept"); ok {
		s.Code = fhir.Code(concept, fhirmodels.SystemSNOMED)
		s.Description = fhir.Display(concept)
	}
	s.Code = synthea.Default(s.Code, "unknown")
	s.Description = synthea.Default(s.Description, "Unknown supply")
	if quantity, ok := fhir.GetMap(item, "quantity"); ok {
		s.Quantity, _ = fhir.GetNumber(quantity, "value")
	}

	return s, nil
}

package convert

import (
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
)

// PatientBundle assembles a collection Bundle for one patient, wiring the
// patient reference into every child document. Condition encounter
// references resolve through the converted encounters, keyed by flat
// encounter ID.
func PatientBundle(patient synthea.Patient, encounters []synthea.Encounter, conditions []synthea.Condition, allergies []synthea.Allergy) fhir.Resource {
	var entries []interface{}

	entry := func(r fhir.Resource) {
		entries = append(entries, map[string]interface{}{
			"fullUrl":  "urn:uuid:" + r.ID(),
			"resource": r,
		})
	}

	fhirPatient := PatientToFHIR(patient)
	patientRef := fhir.RefString("Patient", fhirPatient.ID())
	entry(fhirPatient)

	encounterRefs := make(map[string]string, len(encounters))
	for _, e := range encounters {
		fhirEncounter := EncounterToFHIR(e, Overrides{Patient: patientRef})
		encounterRefs[e.ID] = fhir.RefString("Encounter", fhirEncounter.ID())
		entry(fhirEncounter)
	}

	for _, c := range conditions {
		ov := Overrides{Patient: patientRef}
		if c.Encounter != "" {
			ov.Encounter = encounterRefs[c.Encounter]
		}
		entry(ConditionToFHIR(c, ov))
	}

	// Allergies carry their own patient and encounter links.
	for _, a := range allergies {
		entry(AllergyToFHIR(a, Overrides{}))
	}

	bundle := fhir.Resource{
		"resourceType": "Bundle",
		"type":         "collection",
	}
	if entries != nil {
		bundle["entry"] = entries
	}
	return bundle
}

// Tables holds flat record lists recovered from a Bundle.
type Tables struct {
	Patients   []synthea.Patient
	Encounters []synthea.Encounter
	Conditions []synthea.Condition
	Allergies  []synthea.Allergy
}

// ExtractTables partitions a Bundle's entries into flat record lists by
// resource type. Unrecognized resource types are skipped.
func ExtractTables(bundle fhir.Resource) (Tables, error) {
	var tables Tables
	if err := checkKind(bundle, "Bundle"); err != nil {
		return tables, err
	}

	for _, e := range mapArray(bundle, "entry") {
		resource, ok := fhir.GetMap(e, "resource")
		if !ok {
			continue
		}
		r := fhir.Resource(resource)
		switch r.Type() {
		case "Patient":
			p, err := PatientFromFHIR(r)
			if err != nil {
				return tables, err
			}
			tables.Patients = append(tables.Patients, p)
		case "Encounter":
			enc, err := EncounterFromFHIR(r)
			if err != nil {
				return tables, err
			}
			tables.Encounters = append(tables.Encounters, enc)
		case "Condition":
			c, err := ConditionFromFHIR(r)
			if err != nil {
				return tables, err
			}
			tables.Conditions = append(tables.Conditions, c)
		case "AllergyIntolerance":
			a, err := AllergyFromFHIR(r)
			if err != nil {
				return tables, err
			}
			tables.Allergies = append(tables.Allergies, a)
		}
	}
	return tables, nil
}

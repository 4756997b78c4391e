package convert

import (
	"testing"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
)

func TestMedicationToFHIR(t *testing.T) {
	r := MedicationToFHIR(synthea.Medication{
		Start:       "2020-01-01",
		Patient:     "p1",
		Payer:       "pay1",
		Encounter:   "e1",
		Code:        "310965",
		Description: "Ibuprofen 200 MG",
		Dispenses:   "3",
	}, Overrides{})

	if r.Type() != "MedicationRequest" {
		t.Fatalf("resourceType = %s", r.Type())
	}
	if r["status"] != "active" || r["intent"] != "order" {
		t.Errorf("status/intent = %v/%v", r["status"], r["intent"])
	}
	wrapper, _ := fhir.GetMap(r, "medication")
	concept, ok := fhir.GetMap(wrapper, "concept")
	if !ok || fhir.Code(concept) != "310965" {
		t.Errorf("medication concept = %v", wrapper)
	}
	insurances := mapArray(r, "insurance")
	if len(insurances) != 1 {
		t.Fatalf("insurance = %v", insurances)
	}
	if ref, _ := fhir.GetString(insurances[0], "reference"); ref != "Coverage/pay1" {
		t.Errorf("insurance reference = %q", ref)
	}
	dispense, _ := fhir.GetMap(r, "dispenseRequest")
	if n, _ := fhir.GetNumber(dispense, "numberOfRepeatsAllowed"); n != "3" {
		t.Errorf("numberOfRepeatsAllowed = %q", n)
	}
}

func TestMedicationToFHIR_StopCompletes(t *testing.T) {
	r := MedicationToFHIR(synthea.Medication{Patient: "p1", Code: "c", Stop: "2021-01-01"}, Overrides{})
	if r["status"] != "completed" {
		t.Errorf("status = %v, want completed", r["status"])
	}
}

func TestMedicationFromFHIR_R4ConceptShape(t *testing.T) {
	m, err := MedicationFromFHIR(fhir.Resource{
		"resourceType": "MedicationRequest",
		"medicationCodeableConcept": map[string]interface{}{
			"coding": []interface{}{map[string]interface{}{
				"system":  "http://www.nlm.nih.gov/research/umls/rxnorm",
				"code":    "860975",
				"display": "Metformin",
			}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Code != "860975" || m.Description != "Metformin" {
		t.Errorf("code/description = %q/%q", m.Code, m.Description)
	}
}

func TestMedicationFromFHIR_OccurrencePeriod(t *testing.T) {
	m, err := MedicationFromFHIR(fhir.Resource{
		"resourceType": "MedicationRequest",
		"occurrencePeriod": map[string]interface{}{
			"start": "2020-01-01T00:00:00+00:00",
			"end":   "2020-06-01T00:00:00+00:00",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Start != "2020-01-01" || m.Stop != "2020-06-01" {
		t.Errorf("start/stop = %q/%q", m.Start, m.Stop)
	}
	if m.Code != "unknown" || m.Description != "Unknown medication" {
		t.Errorf("defaults = %q/%q", m.Code, m.Description)
	}
}

func TestMedicationRoundTrip(t *testing.T) {
	in := synthea.Medication{
		Start:             "2020-01-01",
		Patient:           "p1",
		Payer:             "pay1",
		Encounter:         "e1",
		Code:              "310965",
		Description:       "Ibuprofen 200 MG",
		BaseCost:          "12.50",
		PayerCoverage:     "10.00",
		TotalCost:         "37.50",
		Dispenses:         "3",
		ReasonCode:        "44054006",
		ReasonDescription: "Diabetes",
	}
	out, err := MedicationFromFHIR(MedicationToFHIR(in, Overrides{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

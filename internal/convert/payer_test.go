package convert

import (
	"testing"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

func TestPayerToFHIR_InsuranceTyped(t *testing.T) {
	r := PayerToFHIR(synthea.Payer{ID: "pay1", Name: "Acme Insurance"})

	if r.Type() != "Organization" {
		t.Fatalf("resourceType = %s", r.Type())
	}
	types := mapArray(r, "type")
	if len(types) != 1 || fhir.Code(types[0]) != "ins" {
		t.Errorf("type = %v", types)
	}
}

func TestPayerToFHIR_Stats(t *testing.T) {
	r := PayerToFHIR(synthea.Payer{
		ID:              "pay1",
		Name:            "Acme Insurance",
		AmountCovered:   "5000.25",
		Revenue:         "90000.00",
		UniqueCustomers: "120",
	})
	if got := fhir.NestedExtValue(r, fhirmodels.ExtPayerStats, "amountCovered", "valueDecimal", ""); got != "5000.25" {
		t.Errorf("amountCovered = %q", got)
	}
	if got := fhir.NestedExtValue(r, fhirmodels.ExtPayerStats, "uniqueCustomers", "valueInteger", ""); got != "120" {
		t.Errorf("uniqueCustomers = %q", got)
	}
}

func TestPayerFromFHIR_NameDefault(t *testing.T) {
	p, err := PayerFromFHIR(fhir.Resource{"resourceType": "Organization"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Unknown Payer" {
		t.Errorf("name = %q", p.Name)
	}
}

func TestPayerRoundTrip(t *testing.T) {
	in := synthea.Payer{
		ID:                     "pay1",
		Name:                   "Acme Insurance",
		Address:                "9 Elm St",
		City:                   "Hartford",
		StateHeadquartered:     "CT",
		Zip:                    "06101",
		Phone:                  "555-0199",
		AmountCovered:          "5000.25",
		AmountUncovered:        "120.00",
		Revenue:                "90000.00",
		CoveredEncounters:      "40",
		UncoveredEncounters:    "2",
		CoveredMedications:     "15",
		UncoveredMedications:   "1",
		CoveredProcedures:      "9",
		UncoveredProcedures:    "0",
		CoveredImmunizations:   "7",
		UncoveredImmunizations: "0",
		UniqueCustomers:        "120",
		QOLSAvg:                "0.87",
		MemberMonths:           "1440",
	}
	out, err := PayerFromFHIR(PayerToFHIR(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

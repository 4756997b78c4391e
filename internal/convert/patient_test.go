package convert

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
)

func TestPatientToFHIR(t *testing.T) {
	p := synthea.Patient{
		ID:        "p1",
		First:     "Jane",
		Last:      "Doe",
		Gender:    "F",
		BirthDate: "1990-01-01",
	}
	r := PatientToFHIR(p)

	if r.Type() != "Patient" || r.ID() != "p1" {
		t.Errorf("type/id = %s/%s", r.Type(), r.ID())
	}
	if gender, _ := fhir.GetString(r, "gender"); gender != "female" {
		t.Errorf("gender = %q, want female", gender)
	}
	if bd, _ := fhir.GetString(r, "birthDate"); bd != "1990-01-01" {
		t.Errorf("birthDate = %q", bd)
	}

	names := mapArray(r, "name")
	if len(names) != 1 {
		t.Fatalf("names = %d, want 1", len(names))
	}
	if family, _ := fhir.GetString(names[0], "family"); family != "Doe" {
		t.Errorf("family = %q, want Doe", family)
	}
	given, _ := fhir.GetArray(names[0], "given")
	if len(given) != 1 || given[0] != "Jane" {
		t.Errorf("given = %v, want [Jane]", given)
	}

	// No death date means an explicit deceasedBoolean false.
	if v, ok := r["deceasedBoolean"]; !ok || v != false {
		t.Errorf("deceasedBoolean = %v", v)
	}
}

func TestPatientToFHIR_OmitsEmptySubstructures(t *testing.T) {
	r := PatientToFHIR(synthea.Patient{ID: "p1"})

	for _, key := range []string{"name", "address", "maritalStatus", "extension", "gender", "birthDate"} {
		if _, ok := r[key]; ok {
			t.Errorf("%s present on empty input: %v", key, r[key])
		}
	}
	// The MRN identifier is always built from the row id.
	identifiers := mapArray(r, "identifier")
	if len(identifiers) != 1 {
		t.Errorf("identifiers = %d, want 1", len(identifiers))
	}
}

func TestPatientToFHIR_Identifiers(t *testing.T) {
	r := PatientToFHIR(synthea.Patient{
		ID:       "p1",
		SSN:      "999-12-3456",
		Drivers:  "S99912345",
		Passport: "X999123",
	})
	identifiers := mapArray(r, "identifier")
	if len(identifiers) != 4 {
		t.Fatalf("identifiers = %d, want 4", len(identifiers))
	}
	if got := identifierByType(identifiers, "SS"); got != "999-12-3456" {
		t.Errorf("SSN = %q", got)
	}
	if got := identifierByType(identifiers, "DL"); got != "S99912345" {
		t.Errorf("drivers = %q", got)
	}
	if got := identifierByType(identifiers, "PPN"); got != "X999123" {
		t.Errorf("passport = %q", got)
	}
}

func TestPatientFromFHIR_RoundTrip(t *testing.T) {
	in := synthea.Patient{
		ID:                 "p1",
		BirthDate:          "1990-01-01",
		SSN:                "999-12-3456",
		First:              "Jane",
		Last:               "Doe",
		Maiden:             "Smith",
		Marital:            "M",
		Race:               "white",
		Ethnicity:          "nonhispanic",
		Gender:             "F",
		BirthPlace:         "Boston",
		Address:            "1 Main St",
		City:               "Boston",
		State:              "MA",
		County:             "Suffolk",
		Zip:                "02101",
		Lat:                "42.36",
		Lon:                "-71.06",
		HealthcareExpenses: "0",
		HealthcareCoverage: "0",
	}

	out, err := PatientFromFHIR(PatientToFHIR(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestPatientFromFHIR_Defaults(t *testing.T) {
	p, err := PatientFromFHIR(fhir.Resource{"resourceType": "Patient"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.First != "Unknown" || p.Last != "Unknown" {
		t.Errorf("name = %q %q, want Unknown", p.First, p.Last)
	}
	if p.SSN != "000-00-0000" {
		t.Errorf("SSN = %q", p.SSN)
	}
	if p.Gender != "M" {
		t.Errorf("gender = %q, want M fallback", p.Gender)
	}
	if p.Race != "unknown" || p.Ethnicity != "unknown" {
		t.Errorf("race/ethnicity = %q/%q", p.Race, p.Ethnicity)
	}
	if p.HealthcareExpenses != "0" || p.HealthcareCoverage != "0" {
		t.Errorf("expenses/coverage = %q/%q", p.HealthcareExpenses, p.HealthcareCoverage)
	}
}

func TestPatientFromFHIR_ExtraNamesAndAddresses(t *testing.T) {
	var truncations int
	SetTruncationHook(func() { truncations++ })
	defer SetTruncationHook(nil)

	p, err := PatientFromFHIR(fhir.Resource{
		"resourceType": "Patient",
		"name": []interface{}{
			map[string]interface{}{"use": "official", "given": []interface{}{"Jane"}, "family": "Doe"},
			map[string]interface{}{"use": "maiden", "family": "Smith"},
			map[string]interface{}{"use": "nickname", "given": []interface{}{"JJ"}},
		},
		"address": []interface{}{
			map[string]interface{}{"city": "Boston"},
			map[string]interface{}{"city": "Salem"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.First != "Jane" || p.Last != "Doe" || p.Maiden != "Smith" {
		t.Errorf("names = %q/%q/%q, want Jane/Doe/Smith", p.First, p.Last, p.Maiden)
	}
	if p.City != "Boston" {
		t.Errorf("city = %q, want Boston", p.City)
	}
	if truncations != 2 {
		t.Errorf("truncations = %d, want 2 (extra name and extra address)", truncations)
	}
}

func TestPatientFromFHIR_WrongKind(t *testing.T) {
	_, err := PatientFromFHIR(fhir.Resource{"resourceType": "Observation"})
	if err == nil {
		t.Fatal("expected error for mismatched resourceType")
	}
}

func TestPatientToFHIR_Deterministic(t *testing.T) {
	p := synthea.Patient{ID: "p1", First: "Jane", Last: "Doe", Gender: "F", Marital: "M", Lat: "1.5", Lon: "2.5"}
	a, err := json.Marshal(PatientToFHIR(p))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(PatientToFHIR(p))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("conversion is not deterministic:\n%s\n%s", a, b)
	}
}

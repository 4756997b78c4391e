package convert

import (
	"testing"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
)

func TestCarePlanToFHIR(t *testing.T) {
	r := CarePlanToFHIR(synthea.CarePlan{
		ID:          "cp1",
		Start:       "2020-01-01",
		Patient:     "p1",
		Encounter:   "e1",
		Code:        "734163000",
		Description: "Care plan",
	}, Overrides{})

	if r.ID() != "cp1" || r["status"] != "active" || r["intent"] != "plan" {
		t.Fatalf("id/status/intent = %q/%v/%v", r.ID(), r["status"], r["intent"])
	}
	if r["title"] != "Care plan" || r["description"] != "Care plan" {
		t.Errorf("title/description = %v/%v", r["title"], r["description"])
	}
	categories := mapArray(r, "category")
	if len(categories) != 1 || fhir.Code(categories[0]) != "734163000" {
		t.Errorf("category = %v", categories)
	}
}

func TestCarePlanToFHIR_SyntheticIDWhenMissing(t *testing.T) {
	r := CarePlanToFHIR(synthea.CarePlan{Patient: "p1", Start: "2020-01-01", Code: "999"}, Overrides{})
	if r.ID() != "p1-2020-01-01-999" {
		t.Errorf("id = %q", r.ID())
	}
}

func TestCarePlanFromFHIR_ReasonShapes(t *testing.T) {
	r4b, err := CarePlanFromFHIR(fhir.Resource{
		"resourceType": "CarePlan",
		"addresses": []interface{}{map[string]interface{}{
			"concept": map[string]interface{}{
				"coding": []interface{}{map[string]interface{}{
					"system": "http://snomed.info/sct", "code": "44054006", "display": "Diabetes",
				}},
			},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r4b.ReasonCode != "44054006" || r4b.ReasonDescription != "Diabetes" {
		t.Errorf("r4b reason = %q/%q", r4b.ReasonCode, r4b.ReasonDescription)
	}

	r4, err := CarePlanFromFHIR(fhir.Resource{
		"resourceType": "CarePlan",
		"reasonCode": []interface{}{map[string]interface{}{
			"coding": []interface{}{map[string]interface{}{
				"system": "http://snomed.info/sct", "code": "44054006", "display": "Diabetes",
			}},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r4.ReasonCode != "44054006" || r4.ReasonDescription != "Diabetes" {
		t.Errorf("r4 reason = %q/%q", r4.ReasonCode, r4.ReasonDescription)
	}
}

func TestCarePlanFromFHIR_TitleFallback(t *testing.T) {
	c, err := CarePlanFromFHIR(fhir.Resource{"resourceType": "CarePlan", "title": "Asthma self management"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Description != "Asthma self management" {
		t.Errorf("description = %q", c.Description)
	}
	if c.Code != "unknown" {
		t.Errorf("code default = %q", c.Code)
	}
}

func TestCarePlanRoundTrip(t *testing.T) {
	in := synthea.CarePlan{
		ID:                "cp1",
		Start:             "2020-01-01",
		Stop:              "2021-01-01",
		Patient:           "p1",
		Encounter:         "e1",
		Code:              "734163000",
		Description:       "Care plan",
		ReasonCode:        "44054006",
		ReasonDescription: "Diabetes",
	}
	out, err := CarePlanFromFHIR(CarePlanToFHIR(in, Overrides{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

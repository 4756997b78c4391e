package convert

import (
	"testing"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

func TestAllergyToFHIR(t *testing.T) {
	a := synthea.Allergy{
		Start:        "2015-03-01",
		Patient:      "p1",
		Encounter:    "e1",
		Code:         "91935009",
		System:       fhirmodels.SystemSNOMED,
		Description:  "Allergy to peanuts",
		Type:         "allergy",
		Category:     "food",
		Reaction1:    "271807003",
		Description1: "Eruption of skin",
		Severity1:    "MILD",
	}
	r := AllergyToFHIR(a, Overrides{})

	if r.Type() != "AllergyIntolerance" {
		t.Fatalf("resourceType = %s", r.Type())
	}
	// Active: no stop date.
	cs, _ := fhir.GetMap(r, "clinicalStatus")
	if got := fhir.Code(cs); got != "active" {
		t.Errorf("clinicalStatus = %q, want active", got)
	}

	reactions := mapArray(r, "reaction")
	if len(reactions) != 1 {
		t.Fatalf("reactions = %d, want 1", len(reactions))
	}
	if sev, _ := fhir.GetString(reactions[0], "severity"); sev != "mild" {
		t.Errorf("severity = %q, want mild", sev)
	}

	categories, _ := fhir.GetArray(r, "category")
	if len(categories) != 1 || categories[0] != "food" {
		t.Errorf("category = %v", categories)
	}
}

func TestAllergyToFHIR_DrugCategoryBecomesMedication(t *testing.T) {
	r := AllergyToFHIR(synthea.Allergy{Patient: "p1", Code: "1191", Category: "drug"}, Overrides{})
	categories, _ := fhir.GetArray(r, "category")
	if len(categories) != 1 || categories[0] != "medication" {
		t.Errorf("category = %v, want [medication]", categories)
	}
}

func TestAllergyToFHIR_StopMeansResolved(t *testing.T) {
	r := AllergyToFHIR(synthea.Allergy{Patient: "p1", Code: "c", Stop: "2020-01-01"}, Overrides{})
	cs, _ := fhir.GetMap(r, "clinicalStatus")
	if got := fhir.Code(cs); got != "resolved" {
		t.Errorf("clinicalStatus = %q, want resolved", got)
	}
}

func TestAllergyFromFHIR_TruncatesReactions(t *testing.T) {
	reaction := func(code string) interface{} {
		return map[string]interface{}{
			"manifestation": []interface{}{map[string]interface{}{
				"concept": map[string]interface{}{
					"coding": []interface{}{map[string]interface{}{"code": code}},
				},
			}},
		}
	}
	a, err := AllergyFromFHIR(fhir.Resource{
		"resourceType": "AllergyIntolerance",
		"reaction":     []interface{}{reaction("1"), reaction("2"), reaction("3")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Reaction1 != "1" || a.Reaction2 != "2" {
		t.Errorf("reactions = %q/%q, want 1/2", a.Reaction1, a.Reaction2)
	}
}

func TestAllergyFromFHIR_R4ManifestationShape(t *testing.T) {
	a, err := AllergyFromFHIR(fhir.Resource{
		"resourceType": "AllergyIntolerance",
		"reaction": []interface{}{map[string]interface{}{
			"manifestation": []interface{}{map[string]interface{}{
				"coding": []interface{}{map[string]interface{}{"code": "271807003"}},
			}},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Reaction1 != "271807003" {
		t.Errorf("reaction = %q", a.Reaction1)
	}
}

func TestAllergyRoundTrip(t *testing.T) {
	in := synthea.Allergy{
		Start:        "2015-03-01T09:00:00Z",
		Patient:      "p1",
		Encounter:    "e1",
		Code:         "91935009",
		System:       fhirmodels.SystemSNOMED,
		Description:  "Allergy to peanuts",
		Type:         "allergy",
		Category:     "food",
		Reaction1:    "271807003",
		Description1: "Eruption of skin",
		Severity1:    "MILD",
		Reaction2:    "39579001",
		Description2: "Anaphylaxis",
		Severity2:    "SEVERE",
	}

	out, err := AllergyFromFHIR(AllergyToFHIR(in, Overrides{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

package convert

import (
	"testing"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
)

func TestPatientBundle(t *testing.T) {
	bundle := PatientBundle(
		synthea.Patient{ID: "p1", First: "Jane", Last: "Doe", Gender: "F"},
		[]synthea.Encounter{{ID: "e1", Start: "2020-01-01T10:00:00Z", Patient: "p1", Code: "185345009"}},
		[]synthea.Condition{{Start: "2020-01-01", Patient: "p1", Encounter: "e1", Code: "44054006", Description: "Diabetes"}},
		[]synthea.Allergy{{Start: "2019-01-01", Patient: "p1", Encounter: "e1", Code: "91930004", Description: "Allergy to eggs"}},
	)

	if bundle.Type() != "Bundle" || bundle["type"] != "collection" {
		t.Fatalf("type = %s/%v", bundle.Type(), bundle["type"])
	}
	entries := mapArray(bundle, "entry")
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}
	if url, _ := fhir.GetString(entries[0], "fullUrl"); url != "urn:uuid:p1" {
		t.Errorf("patient fullUrl = %q", url)
	}

	condition, _ := fhir.GetMap(entries[2], "resource")
	if got := fhir.RefIDAt(condition, "subject"); got != "p1" {
		t.Errorf("condition subject = %q", got)
	}
	encounter, _ := fhir.GetMap(entries[1], "resource")
	encounterID, _ := fhir.GetString(encounter, "id")
	if got := fhir.RefIDAt(condition, "encounter"); got != encounterID {
		t.Errorf("condition encounter = %q, want bundle encounter id %q", got, encounterID)
	}
}

func TestPatientBundle_PatientOnly(t *testing.T) {
	bundle := PatientBundle(synthea.Patient{ID: "p1"}, nil, nil, nil)
	entries := mapArray(bundle, "entry")
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
}

func TestExtractTables(t *testing.T) {
	bundle := PatientBundle(
		synthea.Patient{ID: "p1", First: "Jane", Last: "Doe", Gender: "F"},
		[]synthea.Encounter{{ID: "e1", Start: "2020-01-01T10:00:00Z", Patient: "p1", Code: "185345009"}},
		[]synthea.Condition{{Start: "2020-01-01", Patient: "p1", Encounter: "e1", Code: "44054006", Description: "Diabetes"}},
		nil,
	)

	tables, err := ExtractTables(bundle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tables.Patients) != 1 || len(tables.Encounters) != 1 || len(tables.Conditions) != 1 {
		t.Fatalf("tables = %+v", tables)
	}
	if tables.Patients[0].First != "Jane" || tables.Patients[0].Gender != "F" {
		t.Errorf("patient = %+v", tables.Patients[0])
	}
	if tables.Conditions[0].Code != "44054006" {
		t.Errorf("condition = %+v", tables.Conditions[0])
	}
}

func TestExtractTables_SkipsUnknownResourceTypes(t *testing.T) {
	tables, err := ExtractTables(fhir.Resource{
		"resourceType": "Bundle",
		"type":         "collection",
		"entry": []interface{}{
			map[string]interface{}{"resource": map[string]interface{}{"resourceType": "Basic"}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tables.Patients)+len(tables.Encounters)+len(tables.Conditions)+len(tables.Allergies) != 0 {
		t.Errorf("tables = %+v, want empty", tables)
	}
}

func TestExtractTables_NotABundle(t *testing.T) {
	if _, err := ExtractTables(fhir.Resource{"resourceType": "Patient"}); err == nil {
		t.Error("expected resourceType error")
	}
}

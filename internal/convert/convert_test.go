package convert

import (
	"testing"

	"github.com/synfhir/synfhir/internal/fhir"
)

func TestSyntheticID(t *testing.T) {
	cases := []struct {
		parts []string
		want  string
	}{
		{[]string{"p1", "2020-01-01T10:00:00Z", "185345009"}, "p1-2020-01-01T10-00-00Z-185345009"},
		{[]string{"p 1", "a:b"}, "p-1-a-b"},
		{[]string{""}, ""},
	}
	for _, tc := range cases {
		if got := SyntheticID(tc.parts...); got != tc.want {
			t.Errorf("SyntheticID(%v) = %q, want %q", tc.parts, got, tc.want)
		}
	}
}

func TestEffectiveID(t *testing.T) {
	if got := effectiveID("Patient/real", "flat"); got != "real" {
		t.Errorf("override = %q, want real", got)
	}
	if got := effectiveID("", "flat"); got != "flat" {
		t.Errorf("fallback = %q, want flat", got)
	}
}

func TestCheckKind(t *testing.T) {
	if err := checkKind(fhir.Resource{"resourceType": "Patient"}, "Patient"); err != nil {
		t.Errorf("matching kind: %v", err)
	}
	// An untyped document is accepted rather than rejected.
	if err := checkKind(fhir.Resource{}, "Patient"); err != nil {
		t.Errorf("untyped document: %v", err)
	}
	if err := checkKind(fhir.Resource{"resourceType": "Encounter"}, "Patient"); err == nil {
		t.Error("mismatched kind accepted")
	}
}

func TestPut(t *testing.T) {
	r := fhir.Resource{}
	put(r, "empty", "")
	put(r, "nilValue", nil)
	put(r, "nilMap", map[string]interface{}(nil))
	put(r, "emptySlice", []interface{}{})
	put(r, "kept", "value")
	put(r, "keptSlice", []interface{}{"x"})

	if len(r) != 2 {
		t.Fatalf("resource = %v, want only kept keys", r)
	}
	if r["kept"] != "value" {
		t.Errorf("kept = %v", r["kept"])
	}
}

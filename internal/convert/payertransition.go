package convert

import (
	"strings"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// PayerTransitionToFHIR converts a flat payer transition row to a
// Coverage document. Years expand to full calendar-year bounds.
func PayerTransitionToFHIR(t synthea.PayerTransition, ov Overrides) fhir.Resource {
	r := fhir.Resource{"resourceType": "Coverage"}

	put(r, "id", SyntheticID(t.Patient, t.Payer, t.StartYear))
	if t.EndYear != "" {
		r["status"] = "cancelled"
	} else {
		r["status"] = "active"
	}
	r["kind"] = "insurance"

	patientRef := ov.Patient
	if patientRef == "" {
		patientRef = fhir.RefString("Patient", t.Patient)
	}
	if patientRef != "" {
		r["beneficiary"] = map[string]interface{}{"reference": patientRef}
		r["subscriber"] = map[string]interface{}{"reference": patientRef}
	}
	put(r, "subscriberId", t.MemberID)

	if code, display, ok := subscriberRelationship(t.Ownership); ok {
		r["relationship"] = map[string]interface{}{
			"coding": []interface{}{fhir.Coding(fhirmodels.SystemSubscriberRel, code, display)},
		}
	}

	period := map[string]interface{}{}
	if t.StartYear != "" {
		period["start"] = t.StartYear + "-01-01"
	}
	if t.EndYear != "" {
		period["end"] = t.EndYear + "-12-31"
	}
	if len(period) > 0 {
		r["period"] = period
	}

	put(r, "insurer", fhir.Ref("Organization", t.Payer))

	exts := fhir.Extensions(
		refExtension(fhirmodels.ExtSecondaryPayer, "Organization", t.SecondaryPayer),
		fhir.Extension(fhirmodels.ExtOwnerName, "valueString", t.OwnerName),
	)
	put(r, "extension", exts)

	return r
}

func subscriberRelationship(ownership string) (code, display string, ok bool) {
	switch strings.ToLower(strings.TrimSpace(ownership)) {
	case "self":
		return "self", "Self", true
	case "spouse":
		return "spouse", "Spouse", true
	case "child":
		return "child", "Child", true
	case "guardian":
		return "parent", "Parent", true
	}
	return "", "", false
}

// PayerTransitionFromFHIR converts a Coverage document back to a flat
// row. The R4 payor list is honored when the R4B insurer field is absent.
func PayerTransitionFromFHIR(r fhir.Resource) (synthea.PayerTransition, error) {
	if err := checkKind(r, "Coverage"); err != nil {
		return synthea.PayerTransition{}, err
	}

	memberID := stringAt(r, "subscriberId")
	if memberID == "" {
		if identifiers := mapArray(r, "identifier"); len(identifiers) > 0 {
			memberID = stringAt(identifiers[0], "value")
		}
	}

	period, _ := fhir.GetMap(r, "period")

	payors := mapArray(r, "payor")
	payer := fhir.RefIDAt(r, "insurer")
	if payer == "" && len(payors) > 0 {
		payer = fhir.RefID(stringAt(payors[0], "reference"))
	}
	secondary := ""
	if len(payors) > 1 {
		secondary = fhir.RefID(stringAt(payors[1], "reference"))
	}
	if secondary == "" {
		secondary = fhir.ExtRef(r, fhirmodels.ExtSecondaryPayer)
	}

	t := synthea.PayerTransition{
		Patient:        fhir.RefIDAt(r, "beneficiary"),
		MemberID:       memberID,
		StartYear:      fhir.Year(stringAt(period, "start")),
		EndYear:        fhir.Year(stringAt(period, "end")),
		Payer:          payer,
		SecondaryPayer: secondary,
		Ownership:      ownershipFrom(r),
		OwnerName:      fhir.ExtValue(r, fhirmodels.ExtOwnerName, "valueString", ""),
	}
	return t, nil
}

func ownershipFrom(r fhir.Resource) string {
	relationship, ok := fhir.GetMap(r, "relationship")
	if !ok {
		return ""
	}
	if codings, ok := fhir.GetArray(relationship, "coding"); ok {
		for _, entry := range codings {
			coding, ok := fhir.AsMap(entry)
			if !ok {
				continue
			}
			switch stringAt(coding, "code") {
			case "self":
				return "Self"
			case "spouse":
				return "Spouse"
			case "child":
				return "Child"
			case "parent":
				return "Guardian"
			}
		}
	}
	if stringAt(relationship, "text") == "Guardian" {
		return "Guardian"
	}
	return ""
}

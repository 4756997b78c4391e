package convert

import (
	"encoding/json"
	"strconv"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// ClaimToFHIR converts a flat claim row to a Claim document. The eight
// numbered diagnosis slots become sequenced diagnosis entries and the
// billing dates become typed events.
func ClaimToFHIR(c synthea.Claim) fhir.Resource {
	r := fhir.Resource{"resourceType": "Claim"}

	put(r, "id", c.ID)
	r["status"] = "active"
	r["use"] = "claim"
	if c.ID != "" {
		r["identifier"] = []interface{}{fhir.Identifier(fhirmodels.IdentifierSystemClaim, c.ID)}
	}
	put(r, "patient", fhir.Ref("Patient", c.PatientID))
	put(r, "provider", fhir.Ref("Practitioner", c.ProviderID))

	var insurance []interface{}
	if ref := fhir.Ref("Coverage", c.PrimaryPatientInsuranceID); ref != nil {
		insurance = append(insurance, map[string]interface{}{
			"sequence": json.Number("1"), "focal": true, "coverage": ref,
		})
	}
	if ref := fhir.Ref("Coverage", c.SecondaryPatientInsuranceID); ref != nil {
		insurance = append(insurance, map[string]interface{}{
			"sequence": json.Number("2"), "focal": false, "coverage": ref,
		})
	}
	if insurance != nil {
		r["insurance"] = insurance
	}

	exts := fhir.Extensions(
		fhir.Extension(fhirmodels.ExtDepartmentID, "valueString", c.DepartmentID),
		fhir.Extension(fhirmodels.ExtPatientDepartmentID, "valueString", c.PatientDepartmentID),
	)
	put(r, "extension", exts)

	var diagnoses []interface{}
	diagnosisSlots := []string{
		c.Diagnosis1, c.Diagnosis2, c.Diagnosis3, c.Diagnosis4,
		c.Diagnosis5, c.Diagnosis6, c.Diagnosis7, c.Diagnosis8,
	}
	for i, code := range diagnosisSlots {
		if code == "" {
			continue
		}
		diagnoses = append(diagnoses, map[string]interface{}{
			"sequence": json.Number(strconv.Itoa(i + 1)),
			"diagnosisCodeableConcept": map[string]interface{}{
				"coding": []interface{}{fhir.Coding(fhirmodels.SystemSNOMED, code, "")},
			},
		})
	}
	if diagnoses != nil {
		r["diagnosis"] = diagnoses
	}

	if ref := fhir.Ref("Encounter", c.AppointmentID); ref != nil {
		r["item"] = []interface{}{map[string]interface{}{
			"sequence":         json.Number("1"),
			"productOrService": map[string]interface{}{"text": "Encounter"},
			"encounter":        []interface{}{ref},
		}}
	}

	if serviced := fhir.FormatDateTime(c.ServiceDate); serviced != "" {
		r["billablePeriod"] = map[string]interface{}{"start": serviced, "end": serviced}
	}

	if ref := fhir.Ref("Practitioner", c.SupervisingProviderID); ref != nil {
		r["careTeam"] = []interface{}{map[string]interface{}{
			"sequence": json.Number("1"),
			"provider": ref,
			"role":     map[string]interface{}{"text": "supervising"},
		}}
	}

	r["type"] = claimType(c.HealthcareClaimTypeID1)
	if c.HealthcareClaimTypeID2 != "" {
		r["subType"] = map[string]interface{}{
			"coding": []interface{}{fhir.Coding(fhirmodels.SystemClaimType, c.HealthcareClaimTypeID2, "")},
		}
	}

	var events []interface{}
	for _, ev := range []struct{ date, code string }{
		{c.LastBilledDate1, "bill-primary"},
		{c.LastBilledDate2, "bill-secondary"},
		{c.LastBilledDateP, "bill-patient"},
		{c.CurrentIllnessDate, "onset"},
	} {
		if event := billingEvent(ev.date, ev.code); event != nil {
			events = append(events, event)
		}
	}
	if events != nil {
		r["event"] = events
	}

	var notes []interface{}
	for _, status := range []string{c.Status1, c.Status2, c.StatusP} {
		if status != "" {
			notes = append(notes, map[string]interface{}{"text": status})
		}
	}
	for _, outstanding := range []string{c.Outstanding1, c.Outstanding2, c.OutstandingP} {
		if outstanding != "" {
			notes = append(notes, map[string]interface{}{"text": "Outstanding: " + outstanding})
		}
	}
	if notes != nil {
		r["note"] = notes
	}

	r["priority"] = map[string]interface{}{
		"coding": []interface{}{fhir.Coding(fhirmodels.SystemProcessPriority, "normal", "")},
	}

	return r
}

func claimType(typeID string) map[string]interface{} {
	switch typeID {
	case "1":
		return map[string]interface{}{
			"coding": []interface{}{fhir.Coding(fhirmodels.SystemClaimType, "professional", "Professional")},
		}
	case "2":
		return map[string]interface{}{
			"coding": []interface{}{fhir.Coding(fhirmodels.SystemClaimType, "institutional", "Institutional")},
		}
	}
	return map[string]interface{}{
		"coding": []interface{}{fhir.Coding(fhirmodels.SystemClaimType, "professional", "")},
	}
}

func billingEvent(date, code string) map[string]interface{} {
	when := fhir.FormatDateTime(date)
	if when == "" {
		return nil
	}
	return map[string]interface{}{
		"type": map[string]interface{}{
			"coding": []interface{}{fhir.Coding(fhirmodels.SystemClaimEvent, code, "")},
		},
		"whenDateTime": when,
	}
}

// ClaimFromFHIR converts a Claim document back to a flat row. Diagnoses
// beyond the eighth are dropped with a warning; status and outstanding
// notes are not recoverable and stay empty.
func ClaimFromFHIR(r fhir.Resource) (synthea.Claim, error) {
	if err := checkKind(r, "Claim"); err != nil {
		return synthea.Claim{}, err
	}

	diagnoses := mapArray(r, "diagnosis")
	if len(diagnoses) > 8 {
		warn().Int("count", len(diagnoses)).Msg("claim has extra diagnoses; only first eight preserved")
		diagnoses = diagnoses[:8]
	}
	var codes [8]string
	for i, diagnosis := range diagnoses {
		concept, _ := fhir.GetMap(diagnosis, "diagnosisCodeableConcept")
		codes[i] = fhir.Code(concept, fhirmodels.SystemSNOMED)
	}

	primary, secondary := claimInsurance(r)
	typeID1, typeID2 := claimTypeIDs(r)

	period, _ := fhir.GetMap(r, "billablePeriod")
	serviceDate := fhir.FormatDate(stringAt(period, "start"))
	if serviceDate == "" {
		serviceDate = fhir.FormatDate(stringAt(period, "end"))
	}

	appointmentID := ""
	if items := mapArray(r, "item"); len(items) > 0 {
		if encounters := mapArray(items[0], "encounter"); len(encounters) > 0 {
			appointmentID = fhir.RefID(stringAt(encounters[0], "reference"))
		}
	}

	events := mapArray(r, "event")

	c := synthea.Claim{
		ID:                          r.ID(),
		PatientID:                   fhir.RefIDAt(r, "patient"),
		ProviderID:                  fhir.RefIDAt(r, "provider"),
		PrimaryPatientInsuranceID:   primary,
		SecondaryPatientInsuranceID: secondary,
		DepartmentID:                fhir.ExtValue(r, fhirmodels.ExtDepartmentID, "valueString", ""),
		PatientDepartmentID:         fhir.ExtValue(r, fhirmodels.ExtPatientDepartmentID, "valueString", ""),
		Diagnosis1:                  codes[0],
		Diagnosis2:                  codes[1],
		Diagnosis3:                  codes[2],
		Diagnosis4:                  codes[3],
		Diagnosis5:                  codes[4],
		Diagnosis6:                  codes[5],
		Diagnosis7:                  codes[6],
		Diagnosis8:                  codes[7],
		AppointmentID:               appointmentID,
		CurrentIllnessDate:          eventDate(events, "onset"),
		ServiceDate:                 serviceDate,
		SupervisingProviderID:       supervisingProvider(r),
		LastBilledDate1:             eventDate(events, "bill-primary"),
		LastBilledDate2:             eventDate(events, "bill-secondary"),
		LastBilledDateP:             eventDate(events, "bill-patient"),
		HealthcareClaimTypeID1:      typeID1,
		HealthcareClaimTypeID2:      typeID2,
	}
	return c, nil
}

func claimInsurance(r fhir.Resource) (primary, secondary string) {
	insurances := mapArray(r, "insurance")
	if len(insurances) > 2 {
		insurances = insurances[:2]
	}
	for _, insurance := range insurances {
		coverage, ok := fhir.GetMap(insurance, "coverage")
		if !ok {
			continue
		}
		coverageID := fhir.RefID(stringAt(coverage, "reference"))
		sequence, _ := fhir.GetNumber(insurance, "sequence")
		focal, hasFocal := fhir.GetBool(insurance, "focal")
		if !hasFocal {
			focal = sequence == "1"
		}
		switch {
		case sequence == "1" || focal:
			primary = coverageID
		case sequence == "2" || !focal:
			secondary = coverageID
		}
	}
	return primary, secondary
}

func supervisingProvider(r fhir.Resource) string {
	for _, member := range mapArray(r, "careTeam") {
		role, _ := fhir.GetMap(member, "role")
		if stringAt(role, "text") != "supervising" {
			continue
		}
		if provider, ok := fhir.GetMap(member, "provider"); ok {
			return fhir.RefID(stringAt(provider, "reference"))
		}
	}
	return ""
}

func claimTypeIDs(r fhir.Resource) (typeID1, typeID2 string) {
	if typ, ok := fhir.GetMap(r, "type"); ok {
		switch fhir.Code(typ) {
		case "professional":
			typeID1 = "1"
		case "institutional":
			typeID1 = "2"
		}
	}
	if subType, ok := fhir.GetMap(r, "subType"); ok {
		typeID2 = fhir.Code(subType)
	}
	return typeID1, typeID2
}

func eventDate(events []map[string]interface{}, code string) string {
	for _, event := range events {
		typ, _ := fhir.GetMap(event, "type")
		found := false
		for _, entry := range mapArray(typ, "coding") {
			if stringAt(entry, "code") == code {
				found = true
				break
			}
		}
		if !found {
			continue
		}
		if when := fhir.FormatDate(stringAt(event, "whenDateTime")); when != "" {
			return when
		}
	}
	return ""
}

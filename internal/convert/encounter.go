package convert

import (
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// EncounterToFHIR converts a flat encounter row to an Encounter document.
// Parent references may be overridden during group assembly.
func EncounterToFHIR(e synthea.Encounter, ov Overrides) fhir.Resource {
	r := fhir.Resource{"resourceType": "Encounter"}

	id := e.ID
	if id == "" {
		if synthetic := SyntheticID(e.Patient, e.Start, e.Code); synthetic != "--" {
			id = synthetic
		}
	}
	put(r, "id", id)

	if e.Stop != "" {
		r["status"] = "completed"
	} else {
		r["status"] = "in-progress"
	}

	if code, display, ok := synthea.EncounterClassToFHIR(e.EncounterClass); ok {
		r["class"] = []interface{}{map[string]interface{}{
			"coding": []interface{}{fhir.Coding(fhirmodels.SystemActCode, code, display)},
		}}
	}

	if typ := fhir.CodeableConcept(fhirmodels.SystemSNOMED, e.Code, e.Description, e.Description); typ != nil {
		r["type"] = []interface{}{typ}
	}

	put(r, "subject", fhir.Ref("Patient", effectiveID(ov.Patient, e.Patient)))

	providerRef := ov.Provider
	if providerRef == "" {
		providerRef = fhir.RefString("Practitioner", e.Provider)
	}
	if providerRef != "" {
		r["participant"] = []interface{}{map[string]interface{}{
			"actor": map[string]interface{}{"reference": providerRef},
		}}
	}

	put(r, "serviceProvider", fhir.Ref("Organization", effectiveID(ov.Organization, e.Organization)))
	put(r, "actualPeriod", fhir.Period(fhir.FormatDateTime(e.Start), fhir.FormatDateTime(e.Stop)))
	put(r, "reason", codeableReference(e.ReasonCode, e.ReasonDescription))

	exts := fhir.Extensions(
		refExtension(fhirmodels.ExtEncounterPayer, "Organization", e.Payer),
		fhir.Extension(fhirmodels.ExtEncounterBaseCost, "valueDecimal", fhir.Decimal(e.BaseEncounterCost)),
		fhir.Extension(fhirmodels.ExtEncounterTotalCost, "valueDecimal", fhir.Decimal(e.TotalClaimCost)),
		fhir.Extension(fhirmodels.ExtEncounterPayerCoverage, "valueDecimal", fhir.Decimal(e.PayerCoverage)),
	)
	put(r, "extension", exts)

	return r
}

// codeableReference builds the R4B reason shape: a concept wrapped in a
// value list.
func codeableReference(code, description string) []interface{} {
	concept := fhir.CodeableConcept(fhirmodels.SystemSNOMED, code, description, description)
	if concept == nil {
		return nil
	}
	return []interface{}{map[string]interface{}{
		"value": []interface{}{map[string]interface{}{"concept": concept}},
	}}
}

// reasonConcept builds the plainer reason shape used by MedicationRequest,
// Procedure and CarePlan: concept entries without the value wrapper.
func reasonConcept(code, description string) []interface{} {
	concept := fhir.CodeableConcept(fhirmodels.SystemSNOMED, code, description, description)
	if concept == nil {
		return nil
	}
	return []interface{}{map[string]interface{}{"concept": concept}}
}

func refExtension(url, kind, id string) map[string]interface{} {
	ref := fhir.Ref(kind, id)
	if ref == nil {
		return nil
	}
	return map[string]interface{}{"url": url, "valueReference": ref}
}

// EncounterFromFHIR converts an Encounter document back to a flat row.
// Participants beyond the first are dropped with a warning; an
// unrecognized class falls back to "ambulatory".
func EncounterFromFHIR(r fhir.Resource) (synthea.Encounter, error) {
	if err := checkKind(r, "Encounter"); err != nil {
		return synthea.Encounter{}, err
	}

	period, ok := fhir.GetMap(r, "actualPeriod")
	if !ok {
		period, _ = fhir.GetMap(r, "period")
	}
	start, _ := fhir.GetString(period, "start")
	stop, _ := fhir.GetString(period, "end")

	participants := mapArray(r, "participant")
	if len(participants) > 1 {
		warn().Int("count", len(participants)).Msg("encounter has extra participants; only first preserved")
	}
	provider := ""
	if len(participants) > 0 {
		actor, ok := fhir.GetMap(participants[0], "actor")
		if !ok {
			actor, ok = fhir.GetMap(participants[0], "individual")
		}
		if ok {
			ref, _ := fhir.GetString(actor, "reference")
			provider = fhir.RefID(ref)
		}
	}

	typeCode := "unknown"
	typeDescription := "Unknown"
	if types := mapArray(r, "type"); len(types) > 0 {
		if c := fhir.Code(types[0], fhirmodels.SystemSNOMED); c != "" {
			typeCode = c
		}
		if d := fhir.Display(types[0]); d != "" {
			typeDescription = d
		}
	}

	reasonCode, reasonDescription := reverseReason(r)

	e := synthea.Encounter{
		ID:                r.ID(),
		Start:             fhir.FlatDateTime(start),
		Stop:              fhir.FlatDateTime(stop),
		Patient:           fhir.RefIDAt(r, "subject"),
		Organization:      fhir.RefIDAt(r, "serviceProvider"),
		Provider:          provider,
		Payer:             fhir.ExtRef(r, fhirmodels.ExtEncounterPayer),
		EncounterClass:    synthea.ValidateEncounterClass(encounterClassOf(r)),
		Code:              typeCode,
		Description:       typeDescription,
		BaseEncounterCost: fhir.ExtValue(r, fhirmodels.ExtEncounterBaseCost, "valueDecimal", "0"),
		TotalClaimCost:    fhir.ExtValue(r, fhirmodels.ExtEncounterTotalCost, "valueDecimal", "0"),
		PayerCoverage:     fhir.ExtValue(r, fhirmodels.ExtEncounterPayerCoverage, "valueDecimal", "0"),
		ReasonCode:        reasonCode,
		ReasonDescription: reasonDescription,
	}
	return e, nil
}

// encounterClassOf reads the class act code from either the R4B list shape
// or the R4 single-concept shape.
func encounterClassOf(r fhir.Resource) string {
	var concept map[string]interface{}
	if classes := mapArray(r, "class"); len(classes) > 0 {
		concept = classes[0]
	} else if c, ok := fhir.GetMap(r, "class"); ok {
		concept = c
	}
	if concept == nil {
		return ""
	}
	return synthea.EncounterClassFromFHIR(fhir.Code(concept), fhir.Display(concept))
}

// reverseReason reads a reason from either the R4B CodeableReference shape
// or the R4 reasonCode list.
func reverseReason(r fhir.Resource) (code, description string) {
	if reasons := mapArray(r, "reason"); len(reasons) > 0 {
		entry := reasons[0]
		if values := mapArray(entry, "value"); len(values) > 0 {
			entry = values[0]
		}
		if concept, ok := fhir.GetMap(entry, "concept"); ok {
			return fhir.Code(concept, fhirmodels.SystemSNOMED), fhir.Display(concept)
		}
		return fhir.Code(entry, fhirmodels.SystemSNOMED), fhir.Display(entry)
	}
	if reasons := mapArray(r, "reasonCode"); len(reasons) > 0 {
		return fhir.Code(reasons[0], fhirmodels.SystemSNOMED), fhir.Display(reasons[0])
	}
	return "", ""
}

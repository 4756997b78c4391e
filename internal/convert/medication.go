package convert

import (
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// MedicationToFHIR converts a flat medication row to a MedicationRequest
// document.
func MedicationToFHIR(m synthea.Medication, ov Overrides) fhir.Resource {
	r := fhir.Resource{"resourceType": "MedicationRequest"}

	put(r, "id", SyntheticID(m.Patient, m.Start, m.Code))
	if m.Stop != "" {
		r["status"] = "completed"
	} else {
		r["status"] = "active"
	}
	r["intent"] = "order"

	if concept := fhir.CodeableConcept(fhirmodels.SystemRxNorm, m.Code, m.Description, m.Description); concept != nil {
		r["medication"] = map[string]interface{}{"concept": concept}
	}

	put(r, "subject", fhir.Ref("Patient", effectiveID(ov.Patient, m.Patient)))
	put(r, "encounter", fhir.Ref("Encounter", effectiveID(ov.Encounter, m.Encounter)))
	put(r, "authoredOn", fhir.FormatDateTime(m.Start))

	if m.Payer != "" {
		r["insurance"] = []interface{}{map[string]interface{}{
			"reference": fhir.RefString("Coverage", m.Payer),
		}}
	}
	if dispenses := fhir.Integer(m.Dispenses); dispenses != nil {
		r["dispenseRequest"] = map[string]interface{}{"numberOfRepeatsAllowed": dispenses}
	}

	put(r, "reason", reasonConcept(m.ReasonCode, m.ReasonDescription))

	exts := fhir.Extensions(
		fhir.Extension(fhirmodels.ExtMedicationBaseCost, "valueDecimal", fhir.Decimal(m.BaseCost)),
		fhir.Extension(fhirmodels.ExtMedicationPayerCoverage, "valueDecimal", fhir.Decimal(m.PayerCoverage)),
		fhir.Extension(fhirmodels.ExtMedicationTotalCost, "valueDecimal", fhir.Decimal(m.TotalCost)),
	)
	put(r, "extension", exts)

	return r
}

// MedicationFromFHIR converts a MedicationRequest document back to a flat
// row.
func MedicationFromFHIR(r fhir.Resource) (synthea.Medication, error) {
	if err := checkKind(r, "MedicationRequest"); err != nil {
		return synthea.Medication{}, err
	}

	start := flatDate(r, "authoredOn")
	stop := ""
	if period, ok := fhir.GetMap(r, "occurrencePeriod"); ok {
		if start == "" {
			if s, ok := fhir.GetString(period, "start"); ok {
				start = fhir.FormatDate(s)
			}
		}
		if e, ok := fhir.GetString(period, "end"); ok {
			stop = fhir.FormatDate(e)
		}
	}

	concept := medicationConcept(r)
	reasonCode, reasonDescription := reverseReason(r)

	m := synthea.Medication{
		Start:             start,
		Stop:              stop,
		Patient:           fhir.RefIDAt(r, "subject"),
		Payer:             medicationPayer(r),
		Encounter:         fhir.RefIDAt(r, "encounter"),
		Code:              synthea.Default(fhir.Code(concept, fhirmodels.SystemRxNorm), "unknown"),
		Description:       synthea.Default(fhir.Display(concept), "Unknown medication"),
		BaseCost:          fhir.ExtValue(r, fhirmodels.ExtMedicationBaseCost, "valueDecimal", ""),
		PayerCoverage:     fhir.ExtValue(r, fhirmodels.ExtMedicationPayerCoverage, "valueDecimal", ""),
		TotalCost:         fhir.ExtValue(r, fhirmodels.ExtMedicationTotalCost, "valueDecimal", ""),
		Dispenses:         medicationDispenses(r),
		ReasonCode:        reasonCode,
		ReasonDescription: reasonDescription,
	}
	return m, nil
}

// medicationConcept reads the drug concept from either the R4B medication
// wrapper or the R4 medicationCodeableConcept field.
func medicationConcept(r fhir.Resource) map[string]interface{} {
	if wrapper, ok := fhir.GetMap(r, "medication"); ok {
		if concept, ok := fhir.GetMap(wrapper, "concept"); ok {
			return concept
		}
		return wrapper
	}
	concept, _ := fhir.GetMap(r, "medicationCodeableConcept")
	return concept
}

func medicationPayer(r fhir.Resource) string {
	insurances := mapArray(r, "insurance")
	if len(insurances) == 0 {
		return ""
	}
	if coverage, ok := fhir.GetMap(insurances[0], "coverage"); ok {
		ref, _ := fhir.GetString(coverage, "reference")
		return fhir.RefID(ref)
	}
	ref, _ := fhir.GetString(insurances[0], "reference")
	return fhir.RefID(ref)
}

func medicationDispenses(r fhir.Resource) string {
	dispense, ok := fhir.GetMap(r, "dispenseRequest")
	if !ok {
		return ""
	}
	n, _ := fhir.GetNumber(dispense, "numberOfRepeatsAllowed")
	return n
}

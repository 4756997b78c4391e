package convert

import (
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// ProcedureToFHIR converts a flat procedure row to a Procedure document.
func ProcedureToFHIR(p synthea.Procedure, ov Overrides) fhir.Resource {
	r := fhir.Resource{"resourceType": "Procedure"}

	put(r, "id", SyntheticID(p.Patient, p.Start, p.Code))
	r["status"] = "completed"
	put(r, "code", fhir.CodeableConcept(fhirmodels.SystemSNOMED, p.Code, p.Description, p.Description))
	put(r, "subject", fhir.Ref("Patient", effectiveID(ov.Patient, p.Patient)))
	put(r, "encounter", fhir.Ref("Encounter", effectiveID(ov.Encounter, p.Encounter)))

	if p.Start != "" && p.Stop != "" {
		r["occurrencePeriod"] = fhir.Period(fhir.FormatDateTime(p.Start), fhir.FormatDateTime(p.Stop))
	} else if p.Start != "" {
		r["occurrenceDateTime"] = fhir.FormatDateTime(p.Start)
	}

	put(r, "reason", reasonConcept(p.ReasonCode, p.ReasonDescription))

	if cost := fhir.Money(p.BaseCost); cost != nil {
		r["extension"] = []interface{}{
			fhir.Extension(fhirmodels.ExtProcedureBaseCost, "valueMoney", cost),
		}
	}

	return r
}

// ProcedureFromFHIR converts a Procedure document back to a flat procedure
// row.
func ProcedureFromFHIR(r fhir.Resource) (synthea.Procedure, error) {
	if err := checkKind(r, "Procedure"); err != nil {
		return synthea.Procedure{}, err
	}

	code, _ := fhir.GetMap(r, "code")

	p := synthea.Procedure{
		Patient:     fhir.RefIDAt(r, "subject"),
		Encounter:   fhir.RefIDAt(r, "encounter"),
		Code:        synthea.Default(fhir.Code(code, fhirmodels.SystemSNOMED), "unknown"),
		Description: synthea.Default(fhir.Display(code), "Unknown procedure"),
	}

	if period, ok := fhir.GetMap(r, "occurrencePeriod"); ok {
		if start, ok := fhir.GetString(period, "start"); ok {
			p.Start = fhir.FlatDateTime(start)
		}
		if end, ok := fhir.GetString(period, "end"); ok {
			p.Stop = fhir.FlatDateTime(end)
		}
	} else if when, ok := fhir.GetString(r, "occurrenceDateTime"); ok {
		p.Start = fhir.FlatDateTime(when)
	}

	if cost, ok := fhir.FindExtension(r, fhirmodels.ExtProcedureBaseCost); ok {
		if money, ok := fhir.GetMap(cost, "valueMoney"); ok {
			p.BaseCost = fhir.Number(money["value"])
		}
	}
	p.BaseCost = synthea.Default(p.BaseCost, "0")

	p.ReasonCode, p.ReasonDescription = reverseReason(r)

	return p, nil
}

package convert

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

var observationCategories = map[string]string{
	"vital-signs":    "Vital Signs",
	"laboratory":     "Laboratory",
	"survey":         "Survey",
	"social-history": "Social History",
	"imaging":        "Imaging",
	"procedure":      "Procedure",
}

// ObservationToFHIR converts a flat observation row to an Observation
// document. Numeric values become quantities, true/false become booleans
// and anything else is carried as a string.
func ObservationToFHIR(o synthea.Observation, ov Overrides) fhir.Resource {
	r := fhir.Resource{"resourceType": "Observation"}

	put(r, "id", SyntheticID(o.Patient, o.Date, o.Code))
	r["status"] = "final"
	put(r, "code", fhir.CodeableConcept(fhirmodels.SystemLOINC, o.Code, o.Description, o.Description))

	if display, ok := observationCategories[strings.ToLower(strings.TrimSpace(o.Type))]; ok {
		code := strings.ToLower(strings.TrimSpace(o.Type))
		r["category"] = []interface{}{map[string]interface{}{
			"coding": []interface{}{fhir.Coding(fhirmodels.SystemObsCategory, code, display)},
		}}
	}

	put(r, "subject", fhir.Ref("Patient", effectiveID(ov.Patient, o.Patient)))
	put(r, "encounter", fhir.Ref("Encounter", effectiveID(ov.Encounter, o.Encounter)))
	put(r, "effectiveDateTime", fhir.FormatDateTime(o.Date))

	switch {
	case o.Value == "":
	case isNumeric(o.Value):
		quantity := map[string]interface{}{"value": json.Number(o.Value)}
		if o.Units != "" {
			quantity["unit"] = o.Units
			quantity["code"] = o.Units
			quantity["system"] = fhirmodels.SystemUCUM
		}
		r["valueQuantity"] = quantity
	case strings.EqualFold(o.Value, "true"), strings.EqualFold(o.Value, "false"):
		r["valueBoolean"] = strings.EqualFold(o.Value, "true")
	default:
		r["valueString"] = o.Value
	}

	return r
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// ObservationFromFHIR converts an Observation document back to a flat
// observation row. The value kind (quantity, boolean or string) collapses
// into the textual value column, with units preserved from a quantity.
func ObservationFromFHIR(r fhir.Resource) (synthea.Observation, error) {
	if err := checkKind(r, "Observation"); err != nil {
		return synthea.Observation{}, err
	}

	code, _ := fhir.GetMap(r, "code")

	when, _ := fhir.GetString(r, "effectiveDateTime")

	o := synthea.Observation{
		Date:        fhir.FlatDateTime(when),
		Patient:     fhir.RefIDAt(r, "subject"),
		Encounter:   fhir.RefIDAt(r, "encounter"),
		Code:        synthea.Default(fhir.Code(code, fhirmodels.SystemLOINC), "unknown"),
		Description: synthea.Default(fhir.Display(code), "Unknown observation"),
	}

	if categories := mapArray(r, "category"); len(categories) > 0 {
		o.Type = fhir.Code(categories[0])
	}

	switch {
	case r["valueQuantity"] != nil:
		if quantity, ok := fhir.GetMap(r, "valueQuantity"); ok {
			o.Value = fhir.Number(quantity["value"])
			o.Units = stringAt(quantity, "unit")
			o.Type = synthea.Default(o.Type, "numeric")
		}
	case r["valueBoolean"] != nil:
		if b, ok := r["valueBoolean"].(bool); ok {
			o.Value = strconv.FormatBool(b)
		}
	default:
		if s, ok := fhir.GetString(r, "valueString"); ok {
			o.Value = s
			o.Type = synthea.Default(o.Type, "text")
		}
	}

	return o, nil
}

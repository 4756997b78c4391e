package convert

import (
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// DeviceToFHIR converts a flat device row to a Device document. The use
// period and the patient/encounter links ride in extensions since the
// target schema has no native fields for them.
func DeviceToFHIR(d synthea.Device, ov Overrides) fhir.Resource {
	r := fhir.Resource{"resourceType": "Device"}

	put(r, "id", SyntheticID(d.Patient, d.Start, d.Code))
	if d.Stop != "" {
		r["status"] = "inactive"
	} else {
		r["status"] = "active"
	}

	patientRef := ov.Patient
	if patientRef == "" {
		patientRef = fhir.RefString("Patient", d.Patient)
	}
	var patientExt map[string]interface{}
	if patientRef != "" {
		patientExt = map[string]interface{}{
			"url":            fhirmodels.ExtResourcePatient,
			"valueReference": map[string]interface{}{"reference": patientRef},
		}
	}
	var periodExt map[string]interface{}
	if period := fhir.Period(fhir.FormatDateTime(d.Start), fhir.FormatDateTime(d.Stop)); period != nil {
		periodExt = map[string]interface{}{
			"url":         fhirmodels.ExtDeviceUsePeriod,
			"valuePeriod": period,
		}
	}
	exts := fhir.Extensions(
		periodExt,
		refExtension(fhirmodels.ExtResourceEncounter, "Encounter", d.Encounter),
		patientExt,
	)
	put(r, "extension", exts)

	if typ := fhir.CodeableConcept(fhirmodels.SystemSNOMED, d.Code, d.Description, d.Description); typ != nil {
		r["type"] = []interface{}{typ}
	}
	if d.UDI != "" {
		r["udiCarrier"] = []interface{}{map[string]interface{}{
			"deviceIdentifier": d.UDI,
			"carrierHRF":       d.UDI,
		}}
	}

	return r
}

// DeviceFromFHIR converts a Device document back to a flat row.
func DeviceFromFHIR(r fhir.Resource) (synthea.Device, error) {
	if err := checkKind(r, "Device"); err != nil {
		return synthea.Device{}, err
	}

	start, stop := "", ""
	if ext, ok := fhir.FindExtension(r, fhirmodels.ExtDeviceUsePeriod); ok {
		if period, ok := fhir.GetMap(ext, "valuePeriod"); ok {
			if s, ok := fhir.GetString(period, "start"); ok {
				start = fhir.FormatDate(s)
			}
			if e, ok := fhir.GetString(period, "end"); ok {
				stop = fhir.FormatDate(e)
			}
		}
	}

	typ := deviceType(r)

	d := synthea.Device{
		Start:       start,
		Stop:        stop,
		Patient:     fhir.ExtRef(r, fhirmodels.ExtResourcePatient),
		Encounter:   fhir.ExtRef(r, fhirmodels.ExtResourceEncounter),
		Code:        synthea.Default(fhir.Code(typ, fhirmodels.SystemSNOMED), "unknown"),
		Description: synthea.Default(fhir.Display(typ), "Unknown device"),
		UDI:         deviceUDI(r),
	}
	return d, nil
}

// deviceType reads the type concept from either the R5 list shape or the
// R4 single-concept shape.
func deviceType(r fhir.Resource) map[string]interface{} {
	if types := mapArray(r, "type"); len(types) > 0 {
		return types[0]
	}
	typ, _ := fhir.GetMap(r, "type")
	return typ
}

func deviceUDI(r fhir.Resource) string {
	carriers := mapArray(r, "udiCarrier")
	if len(carriers) == 0 {
		return ""
	}
	if udi, ok := fhir.GetString(carriers[0], "deviceIdentifier"); ok && udi != "" {
		return udi
	}
	udi, _ := fhir.GetString(carriers[0], "carrierHRF")
	return udi
}

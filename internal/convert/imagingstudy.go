package convert

import (
	"strings"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// ImagingStudyToFHIR converts a flat imaging row to an ImagingStudy
// document with a single series holding a single instance.
func ImagingStudyToFHIR(s synthea.ImagingStudy, ov Overrides) fhir.Resource {
	r := fhir.Resource{"resourceType": "ImagingStudy"}

	r["id"] = sanitizeID(strings.Join([]string{"imaging", s.Patient, sanitizeID(s.Date), s.SeriesUID, s.InstanceUID}, "-"))
	r["status"] = "available"
	if s.ID != "" {
		r["identifier"] = []interface{}{fhir.Identifier(fhirmodels.IdentifierSystemImaging, s.ID)}
	}
	put(r, "started", fhir.FormatDateTime(s.Date))
	put(r, "subject", fhir.Ref("Patient", effectiveID(ov.Patient, s.Patient)))
	put(r, "encounter", fhir.Ref("Encounter", effectiveID(ov.Encounter, s.Encounter)))

	if s.ProcedureCode != "" {
		r["procedureCode"] = []interface{}{map[string]interface{}{
			"coding": []interface{}{fhir.Coding(fhirmodels.SystemSNOMED, s.ProcedureCode, "")},
		}}
	}

	if series := imagingSeries(s); series != nil {
		r["series"] = []interface{}{series}
	}

	return r
}

func imagingSeries(s synthea.ImagingStudy) map[string]interface{} {
	instance := imagingInstance(s)
	series := map[string]interface{}{}

	put(series, "uid", s.SeriesUID)
	put(series, "bodySite", codedConcept(fhirmodels.SystemSNOMED, s.BodySiteCode, s.BodySiteDescription))
	put(series, "modality", codedConcept(fhirmodels.SystemDICOM, s.ModalityCode, s.ModalityDescription))
	if instance != nil {
		series["instance"] = []interface{}{instance}
	}

	if len(series) == 0 {
		return nil
	}
	return series
}

func imagingInstance(s synthea.ImagingStudy) map[string]interface{} {
	instance := map[string]interface{}{}
	put(instance, "uid", s.InstanceUID)
	put(instance, "sopClass", codedConcept(fhirmodels.SystemURNIETF, synthea.SOPCodeWithPrefix(s.SOPCode), s.SOPDescription))
	if len(instance) == 0 {
		return nil
	}
	return instance
}

// codedConcept builds a concept keeping the description both as the
// coding display and as free text.
func codedConcept(system, code, description string) map[string]interface{} {
	if code == "" && description == "" {
		return nil
	}
	concept := map[string]interface{}{}
	if code != "" {
		concept["coding"] = []interface{}{fhir.Coding(system, code, description)}
	}
	if description != "" {
		concept["text"] = description
	}
	return concept
}

// ImagingStudyFromFHIR expands an ImagingStudy document into flat rows,
// one per series-instance pair. A series without instances yields one row
// and a study without series yields a single fallback row.
func ImagingStudyFromFHIR(r fhir.Resource) ([]synthea.ImagingStudy, error) {
	if err := checkKind(r, "ImagingStudy"); err != nil {
		return nil, err
	}

	base := synthea.ImagingStudy{
		Date:      fhir.FlatDateTime(stringAt(r, "started")),
		Patient:   fhir.RefIDAt(r, "subject"),
		Encounter: fhir.RefIDAt(r, "encounter"),
	}
	if identifiers := mapArray(r, "identifier"); len(identifiers) > 0 {
		base.ID = stringAt(identifiers[0], "value")
	}
	if procedures := mapArray(r, "procedureCode"); len(procedures) > 0 {
		base.ProcedureCode = fhir.Code(procedures[0], fhirmodels.SystemSNOMED)
	}

	var rows []synthea.ImagingStudy
	for _, series := range mapArray(r, "series") {
		row := base
		row.SeriesUID = stringAt(series, "uid")
		if bodySite, ok := fhir.GetMap(series, "bodySite"); ok {
			row.BodySiteCode = fhir.Code(bodySite, fhirmodels.SystemSNOMED)
			row.BodySiteDescription = fhir.Display(bodySite)
		}
		if modality, ok := fhir.GetMap(series, "modality"); ok {
			row.ModalityCode, row.ModalityDescription = modalityCoding(modality)
		}

		instances := mapArray(series, "instance")
		if len(instances) == 0 {
			rows = append(rows, row)
			continue
		}
		for _, instance := range instances {
			entry := row
			entry.InstanceUID = stringAt(instance, "uid")
			if sopClass, ok := fhir.GetMap(instance, "sopClass"); ok {
				entry.SOPCode, entry.SOPDescription = sopCoding(sopClass)
			}
			rows = append(rows, entry)
		}
	}

	if rows == nil {
		rows = append(rows, base)
	}
	return rows, nil
}

// modalityCoding prefers the DICOM coding and falls back to the first.
func modalityCoding(modality map[string]interface{}) (code, description string) {
	codings := mapArray(modality, "coding")
	for _, coding := range codings {
		if strings.Contains(stringAt(coding, "system"), "dicom.nema.org") {
			return stringAt(coding, "code"), stringAt(coding, "display")
		}
	}
	if len(codings) > 0 {
		return stringAt(codings[0], "code"), stringAt(codings[0], "display")
	}
	return "", ""
}

func sopCoding(sopClass map[string]interface{}) (code, description string) {
	if codings := mapArray(sopClass, "coding"); len(codings) > 0 {
		return synthea.SOPCode(stringAt(codings[0], "code")), stringAt(codings[0], "display")
	}
	if text := stringAt(sopClass, "text"); text != "" {
		return synthea.SOPCode(text), ""
	}
	return "", ""
}

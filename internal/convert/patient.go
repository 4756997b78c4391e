package convert

import (
	"strings"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// PatientToFHIR converts a flat patient row to a Patient document.
func PatientToFHIR(p synthea.Patient) fhir.Resource {
	r := fhir.Resource{"resourceType": "Patient"}
	put(r, "id", p.ID)

	identifiers := fhir.Extensions(
		fhir.Identifier(fhirmodels.IdentifierSystemMRN, p.ID),
		fhir.TypedIdentifier(p.SSN, fhirmodels.SystemIdentifierType, "SS", "Social Security Number"),
		fhir.TypedIdentifier(p.Drivers, fhirmodels.SystemIdentifierType, "DL", "Driver's License"),
		fhir.TypedIdentifier(p.Passport, fhirmodels.SystemIdentifierType, "PPN", "Passport Number"),
	)
	put(r, "identifier", identifiers)

	names := fhir.Extensions(officialName(p), maidenName(p.Maiden))
	put(r, "name", names)

	put(r, "gender", synthea.GenderToFHIR(p.Gender))
	put(r, "birthDate", fhir.FormatDate(p.BirthDate))
	if p.DeathDate != "" {
		put(r, "deceasedDateTime", fhir.FormatDateTime(p.DeathDate))
	} else {
		r["deceasedBoolean"] = false
	}

	if display := synthea.MaritalDisplay(p.Marital); display != "" {
		r["maritalStatus"] = map[string]interface{}{
			"coding": []interface{}{
				fhir.Coding(fhirmodels.SystemMaritalStatus, strings.ToUpper(strings.TrimSpace(p.Marital)), display),
			},
			"text": display,
		}
	}

	if addr := patientAddress(p); addr != nil {
		r["address"] = []interface{}{addr}
	}

	exts := fhir.Extensions(
		textExtension(fhirmodels.ExtUSCoreRace, p.Race),
		textExtension(fhirmodels.ExtUSCoreEthnicity, p.Ethnicity),
		birthPlaceExtension(p.BirthPlace),
	)
	put(r, "extension", exts)

	return r
}

func officialName(p synthea.Patient) map[string]interface{} {
	if p.First == "" && p.Last == "" && p.Prefix == "" && p.Suffix == "" {
		return nil
	}
	n := map[string]interface{}{"use": "official"}
	if p.Last != "" {
		n["family"] = p.Last
	}
	if p.First != "" {
		n["given"] = []interface{}{p.First}
	}
	if p.Prefix != "" {
		n["prefix"] = []interface{}{p.Prefix}
	}
	if p.Suffix != "" {
		n["suffix"] = []interface{}{p.Suffix}
	}
	return n
}

func maidenName(maiden string) map[string]interface{} {
	if maiden == "" {
		return nil
	}
	return map[string]interface{}{"use": "maiden", "family": maiden}
}

func textExtension(url, text string) map[string]interface{} {
	if text == "" {
		return nil
	}
	return fhir.NestedExtension(url, fhir.Extension("text", "valueString", text))
}

func birthPlaceExtension(birthplace string) map[string]interface{} {
	if birthplace == "" {
		return nil
	}
	return map[string]interface{}{
		"url":          fhirmodels.ExtBirthPlace,
		"valueAddress": map[string]interface{}{"text": birthplace},
	}
}

func geolocationExtension(lat, lon string) map[string]interface{} {
	if lat == "" || lon == "" {
		return nil
	}
	return fhir.NestedExtension(fhirmodels.ExtGeolocation,
		fhir.Extension("latitude", "valueDecimal", fhir.Decimal(lat)),
		fhir.Extension("longitude", "valueDecimal", fhir.Decimal(lon)),
	)
}

func patientAddress(p synthea.Patient) map[string]interface{} {
	hasGeo := p.Lat != "" && p.Lon != ""
	if p.Address == "" && p.City == "" && p.State == "" && p.County == "" && p.Zip == "" && !hasGeo {
		return nil
	}
	addr := map[string]interface{}{"use": "home"}
	if p.Address != "" {
		addr["line"] = []interface{}{p.Address}
	}
	if p.City != "" {
		addr["city"] = p.City
	}
	if p.State != "" {
		addr["state"] = p.State
	}
	if p.County != "" {
		addr["district"] = p.County
	}
	if p.Zip != "" {
		addr["postalCode"] = p.Zip
	}
	if geo := geolocationExtension(p.Lat, p.Lon); geo != nil {
		addr["extension"] = []interface{}{geo}
	}
	return addr
}

// PatientFromFHIR converts a Patient document back to a flat row. Names
// beyond official and maiden and addresses beyond the first are dropped
// with a warning.
func PatientFromFHIR(r fhir.Resource) (synthea.Patient, error) {
	if err := checkKind(r, "Patient"); err != nil {
		return synthea.Patient{}, err
	}

	names := mapArray(r, "name")
	addresses := mapArray(r, "address")
	identifiers := mapArray(r, "identifier")

	if len(names) > 2 {
		warn().Int("count", len(names)).Msg("patient has extra names; only official and maiden preserved")
	}
	if len(addresses) > 1 {
		warn().Int("count", len(addresses)).Msg("patient has extra addresses; only first preserved")
	}

	lat, lon := addressGeolocation(addresses)

	p := synthea.Patient{
		ID:                 r.ID(),
		BirthDate:          flatDate(r, "birthDate"),
		DeathDate:          flatDate(r, "deceasedDateTime"),
		SSN:                synthea.Default(identifierByType(identifiers, "SS"), "000-00-0000"),
		Drivers:            identifierByType(identifiers, "DL"),
		Passport:           identifierByType(identifiers, "PPN"),
		Prefix:             namePart(names, "official", "prefix"),
		First:              synthea.Default(namePart(names, "official", "given"), "Unknown"),
		Last:               synthea.Default(namePart(names, "official", "family"), "Unknown"),
		Suffix:             namePart(names, "official", "suffix"),
		Maiden:             maidenFrom(names),
		Marital:            maritalFrom(r),
		Race:               synthea.Default(extensionText(r, fhirmodels.ExtUSCoreRace), "unknown"),
		Ethnicity:          synthea.Default(extensionText(r, fhirmodels.ExtUSCoreEthnicity), "unknown"),
		Gender:             genderFrom(r),
		BirthPlace:         synthea.Default(birthPlaceFrom(r), "Unknown"),
		Address:            synthea.Default(addressPart(addresses, "line"), "Unknown"),
		City:               synthea.Default(addressPart(addresses, "city"), "Unknown"),
		State:              synthea.Default(addressPart(addresses, "state"), "Unknown"),
		County:             addressPart(addresses, "district"),
		Zip:                addressPart(addresses, "postalCode"),
		Lat:                lat,
		Lon:                lon,
		HealthcareExpenses: "0",
		HealthcareCoverage: "0",
	}
	return p, nil
}

func mapArray(m map[string]interface{}, key string) []map[string]interface{} {
	arr, ok := fhir.GetArray(m, key)
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(arr))
	for _, v := range arr {
		if e, ok := fhir.AsMap(v); ok {
			out = append(out, e)
		}
	}
	return out
}

func flatDate(r fhir.Resource, key string) string {
	s, _ := fhir.GetString(r, key)
	return fhir.FormatDate(s)
}

func identifierByType(identifiers []map[string]interface{}, typeCode string) string {
	for _, ident := range identifiers {
		typ, ok := fhir.GetMap(ident, "type")
		if !ok {
			continue
		}
		if fhir.Code(typ) == typeCode {
			value, _ := fhir.GetString(ident, "value")
			return value
		}
	}
	return ""
}

func namePart(names []map[string]interface{}, use, part string) string {
	var target map[string]interface{}
	for _, n := range names {
		if u, _ := fhir.GetString(n, "use"); u == use {
			target = n
			break
		}
	}
	if target == nil && len(names) > 0 {
		target = names[0]
	}
	if target == nil {
		return ""
	}
	switch part {
	case "given", "prefix", "suffix":
		arr, _ := fhir.GetArray(target, part)
		if len(arr) > 0 {
			if s, ok := arr[0].(string); ok {
				return s
			}
		}
		return ""
	}
	s, _ := fhir.GetString(target, part)
	return s
}

func maidenFrom(names []map[string]interface{}) string {
	for _, n := range names {
		if u, _ := fhir.GetString(n, "use"); u == "maiden" {
			family, _ := fhir.GetString(n, "family")
			return family
		}
	}
	return ""
}

func maritalFrom(r fhir.Resource) string {
	ms, ok := fhir.GetMap(r, "maritalStatus")
	if !ok {
		return ""
	}
	return synthea.MaritalFromCode(fhir.Code(ms))
}

func genderFrom(r fhir.Resource) string {
	g, _ := fhir.GetString(r, "gender")
	return synthea.GenderFromFHIR(g)
}

func extensionText(r fhir.Resource, url string) string {
	ext, ok := fhir.FindExtension(r, url)
	if !ok {
		return ""
	}
	if text := fhir.ExtValue(ext, "text", "valueString", ""); text != "" {
		return text
	}
	s, _ := fhir.GetString(ext, "valueString")
	return s
}

func birthPlaceFrom(r fhir.Resource) string {
	ext, ok := fhir.FindExtension(r, fhirmodels.ExtBirthPlace)
	if !ok {
		return ""
	}
	addr, ok := fhir.GetMap(ext, "valueAddress")
	if !ok {
		return ""
	}
	text, _ := fhir.GetString(addr, "text")
	return text
}

func addressPart(addresses []map[string]interface{}, part string) string {
	if len(addresses) == 0 {
		return ""
	}
	addr := addresses[0]
	if part == "line" {
		arr, _ := fhir.GetArray(addr, "line")
		if len(arr) > 0 {
			if s, ok := arr[0].(string); ok {
				return s
			}
		}
		return ""
	}
	s, _ := fhir.GetString(addr, part)
	return s
}

func addressGeolocation(addresses []map[string]interface{}) (lat, lon string) {
	if len(addresses) == 0 {
		return "", ""
	}
	ext, ok := fhir.FindExtension(addresses[0], fhirmodels.ExtGeolocation)
	if !ok {
		return "", ""
	}
	return fhir.ExtValue(ext, "latitude", "valueDecimal", ""),
		fhir.ExtValue(ext, "longitude", "valueDecimal", "")
}

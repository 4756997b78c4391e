package convert

import (
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// OrganizationToFHIR converts a flat organization row to an Organization
// document. Revenue and utilization ride in a stats extension.
func OrganizationToFHIR(o synthea.Organization) fhir.Resource {
	r := fhir.Resource{"resourceType": "Organization"}

	put(r, "id", o.ID)
	put(r, "name", o.Name)

	if address := facilityAddress(o.Address, o.City, o.State, o.Zip, o.Lat, o.Lon); address != nil {
		r["address"] = []interface{}{address}
	}

	if phones := synthea.SplitPhones(o.Phone); len(phones) > 0 {
		telecom := make([]interface{}, 0, len(phones))
		for _, phone := range phones {
			telecom = append(telecom, map[string]interface{}{"system": "phone", "value": phone})
		}
		r["telecom"] = telecom
	}

	stats := fhir.NestedExtension(fhirmodels.ExtOrganizationStats,
		fhir.Extension("revenue", "valueDecimal", fhir.Decimal(o.Revenue)),
		fhir.Extension("utilization", "valueInteger", fhir.Integer(o.Utilization)),
	)
	put(r, "extension", fhir.Extensions(stats))

	return r
}

// facilityAddress builds a facility address with an embedded geolocation
// extension when coordinates are present.
func facilityAddress(line, city, state, zip, lat, lon string) map[string]interface{} {
	address := map[string]interface{}{}
	if line != "" {
		address["line"] = []interface{}{line}
	}
	put(address, "city", city)
	put(address, "state", state)
	put(address, "postalCode", zip)

	put(address, "extension", fhir.Extensions(geolocationExtension(lat, lon)))

	if len(address) == 0 {
		return nil
	}
	return address
}

// OrganizationFromFHIR converts an Organization document back to a flat
// row. Extra addresses are dropped with a warning.
func OrganizationFromFHIR(r fhir.Resource) (synthea.Organization, error) {
	if err := checkKind(r, "Organization"); err != nil {
		return synthea.Organization{}, err
	}

	addresses := mapArray(r, "address")
	if len(addresses) > 1 {
		warn().Int("count", len(addresses)).Msg("organization has extra addresses; only first preserved")
	}
	var address map[string]interface{}
	if len(addresses) > 0 {
		address = addresses[0]
	}
	lat, lon := addressGeolocation(addresses)

	o := synthea.Organization{
		ID:          r.ID(),
		Name:        synthea.Default(stringAt(r, "name"), "Unknown Organization"),
		Address:     addressLine(address),
		City:        stringAt(address, "city"),
		State:       stringAt(address, "state"),
		Zip:         stringAt(address, "postalCode"),
		Lat:         lat,
		Lon:         lon,
		Phone:       synthea.JoinPhones(telecomPhones(r)),
		Revenue:     fhir.NestedExtValue(r, fhirmodels.ExtOrganizationStats, "revenue", "valueDecimal", ""),
		Utilization: fhir.NestedExtValue(r, fhirmodels.ExtOrganizationStats, "utilization", "valueInteger", ""),
	}
	return o, nil
}

func stringAt(m map[string]interface{}, key string) string {
	s, _ := fhir.GetString(m, key)
	return s
}

func addressLine(address map[string]interface{}) string {
	lines, ok := fhir.GetArray(address, "line")
	if !ok || len(lines) == 0 {
		return ""
	}
	s, _ := lines[0].(string)
	return s
}

func telecomPhones(r fhir.Resource) []string {
	var phones []string
	for _, entry := range mapArray(r, "telecom") {
		if system, _ := fhir.GetString(entry, "system"); system != "" && system != "phone" {
			continue
		}
		if value, ok := fhir.GetString(entry, "value"); ok && value != "" {
			phones = append(phones, value)
		}
	}
	return phones
}

package convert

import (
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
)

// ProviderToFHIR converts a flat provider row to a Practitioner document.
func ProviderToFHIR(p synthea.Provider) fhir.Resource {
	r := fhir.Resource{"resourceType": "Practitioner"}

	put(r, "id", p.ID)

	if p.Name != "" {
		given, family := synthea.SplitName(p.Name)
		name := map[string]interface{}{"use": "official"}
		if given != "" {
			name["given"] = []interface{}{given}
		}
		put(name, "family", family)
		r["name"] = []interface{}{name}
	}

	put(r, "gender", synthea.GenderToFHIR(p.Gender))

	if address := facilityAddress(p.Address, p.City, p.State, p.Zip, p.Lat, p.Lon); address != nil {
		r["address"] = []interface{}{address}
	}

	return r
}

// ProviderFromFHIR converts a Practitioner document back to a flat row.
func ProviderFromFHIR(r fhir.Resource) (synthea.Provider, error) {
	if err := checkKind(r, "Practitioner"); err != nil {
		return synthea.Provider{}, err
	}

	names := mapArray(r, "name")
	given := namePart(names, "official", "given")
	family := namePart(names, "official", "family")
	fullName := given
	if family != "" {
		if fullName != "" {
			fullName += " "
		}
		fullName += family
	}

	addresses := mapArray(r, "address")
	lat, lon := addressGeolocation(addresses)

	p := synthea.Provider{
		ID:      r.ID(),
		Name:    fullName,
		Gender:  synthea.GenderFromFHIR(stringAt(r, "gender")),
		Address: addressPart(addresses, "line"),
		City:    addressPart(addresses, "city"),
		State:   addressPart(addresses, "state"),
		Zip:     addressPart(addresses, "postalCode"),
		Lat:     lat,
		Lon:     lon,
	}
	return p, nil
}

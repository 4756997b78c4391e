package convert

import (
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// PayerToFHIR converts a flat payer row to an Organization document
// marked as an insurance company. Utilization statistics ride in a stats
// extension.
func PayerToFHIR(p synthea.Payer) fhir.Resource {
	r := fhir.Resource{"resourceType": "Organization"}

	put(r, "id", p.ID)
	put(r, "name", p.Name)
	r["type"] = []interface{}{map[string]interface{}{
		"coding": []interface{}{fhir.Coding(fhirmodels.SystemOrganizationType, "ins", "Insurance Company")},
	}}

	if address := facilityAddress(p.Address, p.City, p.StateHeadquartered, p.Zip, "", ""); address != nil {
		r["address"] = []interface{}{address}
	}

	if phones := synthea.SplitPhones(p.Phone); len(phones) > 0 {
		telecom := make([]interface{}, 0, len(phones))
		for _, phone := range phones {
			telecom = append(telecom, map[string]interface{}{"system": "phone", "value": phone})
		}
		r["telecom"] = telecom
	}

	stats := fhir.NestedExtension(fhirmodels.ExtPayerStats,
		fhir.Extension("amountCovered", "valueDecimal", fhir.Decimal(p.AmountCovered)),
		fhir.Extension("amountUncovered", "valueDecimal", fhir.Decimal(p.AmountUncovered)),
		fhir.Extension("revenue", "valueDecimal", fhir.Decimal(p.Revenue)),
		fhir.Extension("coveredEncounters", "valueInteger", fhir.Integer(p.CoveredEncounters)),
		fhir.Extension("uncoveredEncounters", "valueInteger", fhir.Integer(p.UncoveredEncounters)),
		fhir.Extension("coveredMedications", "valueInteger", fhir.Integer(p.CoveredMedications)),
		fhir.Extension("uncoveredMedications", "valueInteger", fhir.Integer(p.UncoveredMedications)),
		fhir.Extension("coveredProcedures", "valueInteger", fhir.Integer(p.CoveredProcedures)),
		fhir.Extension("uncoveredProcedures", "valueInteger", fhir.Integer(p.UncoveredProcedures)),
		fhir.Extension("coveredImmunizations", "valueInteger", fhir.Integer(p.CoveredImmunizations)),
		fhir.Extension("uncoveredImmunizations", "valueInteger", fhir.Integer(p.UncoveredImmunizations)),
		fhir.Extension("uniqueCustomers", "valueInteger", fhir.Integer(p.UniqueCustomers)),
		fhir.Extension("qolsAvg", "valueDecimal", fhir.Decimal(p.QOLSAvg)),
		fhir.Extension("memberMonths", "valueInteger", fhir.Integer(p.MemberMonths)),
	)
	put(r, "extension", fhir.Extensions(stats))

	return r
}

// PayerFromFHIR converts an insurance Organization document back to a
// flat payer row.
func PayerFromFHIR(r fhir.Resource) (synthea.Payer, error) {
	if err := checkKind(r, "Organization"); err != nil {
		return synthea.Payer{}, err
	}

	addresses := mapArray(r, "address")
	var address map[string]interface{}
	if len(addresses) > 0 {
		address = addresses[0]
	}

	stat := func(name, valueKey string) string {
		return fhir.NestedExtValue(r, fhirmodels.ExtPayerStats, name, valueKey, "")
	}

	p := synthea.Payer{
		ID:                     r.ID(),
		Name:                   synthea.Default(stringAt(r, "name"), "Unknown Payer"),
		Address:                addressLine(address),
		City:                   stringAt(address, "city"),
		StateHeadquartered:     stringAt(address, "state"),
		Zip:                    stringAt(address, "postalCode"),
		Phone:                  synthea.JoinPhones(telecomPhones(r)),
		AmountCovered:          stat("amountCovered", "valueDecimal"),
		AmountUncovered:        stat("amountUncovered", "valueDecimal"),
		Revenue:                stat("revenue", "valueDecimal"),
		CoveredEncounters:      stat("coveredEncounters", "valueInteger"),
		UncoveredEncounters:    stat("uncoveredEncounters", "valueInteger"),
		CoveredMedications:     stat("coveredMedications", "valueInteger"),
		UncoveredMedications:   stat("uncoveredMedications", "valueInteger"),
		CoveredProcedures:      stat("coveredProcedures", "valueInteger"),
		UncoveredProcedures:    stat("uncoveredProcedures", "valueInteger"),
		CoveredImmunizations:   stat("coveredImmunizations", "valueInteger"),
		UncoveredImmunizations: stat("uncoveredImmunizations", "valueInteger"),
		UniqueCustomers:        stat("uniqueCustomers", "valueInteger"),
		QOLSAvg:                stat("qolsAvg", "valueDecimal"),
		MemberMonths:           stat("memberMonths", "valueInteger"),
	}
	return p, nil
}

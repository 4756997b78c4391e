package convert

import (
	"encoding/json"
	"strings"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

// ClaimTransactionToClaim converts a flat transaction row to a skeleton
// Claim document carrying the charge line as a single item.
func ClaimTransactionToClaim(t synthea.ClaimTransaction) fhir.Resource {
	r := fhir.Resource{"resourceType": "Claim"}

	put(r, "id", t.ClaimID)
	r["status"] = "active"
	r["use"] = "claim"
	r["type"] = map[string]interface{}{
		"coding": []interface{}{fhir.Coding(fhirmodels.SystemClaimType, "professional", "")},
	}
	r["priority"] = map[string]interface{}{
		"coding": []interface{}{fhir.Coding(fhirmodels.SystemProcessPriority, "normal", "")},
	}
	put(r, "patient", fhir.Ref("Patient", t.PatientID))
	put(r, "provider", fhir.Ref("Practitioner", t.ProviderID))
	put(r, "facility", fhir.Ref("Organization", t.PlaceOfService))

	period := map[string]interface{}{}
	if start := fhir.FormatDateTime(t.FromDate); start != "" {
		period["start"] = start
	}
	if end := fhir.FormatDateTime(t.ToDate); end != "" {
		period["end"] = end
	}
	if len(period) > 0 {
		r["billablePeriod"] = period
	}

	if ref := fhir.Ref("Coverage", t.PatientInsuranceID); ref != nil {
		r["insurance"] = []interface{}{map[string]interface{}{
			"sequence": json.Number("1"), "focal": true, "coverage": ref,
		}}
	}
	if ref := fhir.Ref("Practitioner", t.SupervisingProviderID); ref != nil {
		r["careTeam"] = []interface{}{map[string]interface{}{
			"sequence": json.Number("1"),
			"provider": ref,
			"role":     map[string]interface{}{"text": "supervising"},
		}}
	}

	r["item"] = []interface{}{transactionItem(t)}

	var notes []interface{}
	if t.Notes != "" {
		notes = append(notes, map[string]interface{}{"text": t.Notes})
	}
	if t.LineNote != "" && t.ProcedureCode == "" {
		notes = append(notes, map[string]interface{}{"text": t.LineNote})
	}
	if notes != nil {
		r["note"] = notes
	}

	return r
}

func transactionItem(t synthea.ClaimTransaction) map[string]interface{} {
	item := map[string]interface{}{"sequence": json.Number("1")}
	if t.ChargeID != "" {
		item["sequence"] = json.Number(t.ChargeID)
	}

	if ref := fhir.Ref("Encounter", t.AppointmentID); ref != nil {
		item["encounter"] = []interface{}{ref}
	}

	if t.ProcedureCode != "" {
		item["productOrService"] = map[string]interface{}{
			"coding": []interface{}{fhir.Coding(fhirmodels.SystemSNOMED, t.ProcedureCode, t.LineNote)},
		}
	} else {
		item["productOrService"] = map[string]interface{}{"text": "Service"}
	}

	if t.Units != "" {
		item["quantity"] = map[string]interface{}{"value": json.Number(t.Units)}
	}
	if money := fhir.Money(t.UnitAmount); money != nil {
		item["unitPrice"] = money
	}
	if money := fhir.Money(t.Amount); money != nil {
		item["net"] = money
	}

	var sequences []interface{}
	for _, ref := range []string{t.DiagnosisRef1, t.DiagnosisRef2, t.DiagnosisRef3, t.DiagnosisRef4} {
		if ref != "" {
			sequences = append(sequences, json.Number(ref))
		}
	}
	if sequences != nil {
		item["diagnosisSequence"] = sequences
	}

	var notes []interface{}
	if t.DepartmentID != "" {
		notes = append(notes, map[string]interface{}{"text": "Department ID: " + t.DepartmentID})
	}
	if t.FeeScheduleID != "" {
		notes = append(notes, map[string]interface{}{"text": "Fee Schedule ID: " + t.FeeScheduleID})
	}
	if notes != nil {
		item["note"] = notes
	}

	if t.ID != "" {
		item["extension"] = []interface{}{
			fhir.Extension(fhirmodels.ExtTransactionID, "valueString", t.ID),
		}
	}

	return item
}

// ClaimTransactionToClaimResponse converts a flat transaction row to a
// ClaimResponse document with the financial movement expressed as
// adjudications.
func ClaimTransactionToClaimResponse(t synthea.ClaimTransaction) fhir.Resource {
	r := fhir.Resource{"resourceType": "ClaimResponse"}

	put(r, "id", t.ID)
	r["status"] = "active"
	r["use"] = "claim"
	r["type"] = map[string]interface{}{
		"coding": []interface{}{fhir.Coding(fhirmodels.SystemClaimType, "professional", "")},
	}
	r["outcome"] = "complete"
	put(r, "request", fhir.Ref("Claim", t.ClaimID))
	put(r, "patient", fhir.Ref("Patient", t.PatientID))
	r["insurer"] = map[string]interface{}{"display": "Unknown Insurer"}

	if ref := fhir.Ref("Coverage", t.PatientInsuranceID); ref != nil {
		r["insurance"] = []interface{}{map[string]interface{}{
			"sequence": json.Number("1"), "focal": true, "coverage": ref,
		}}
	}

	if t.ChargeID != "" {
		item := map[string]interface{}{
			"itemSequence": json.Number(t.ChargeID),
			"adjudication": transactionAdjudications(t),
		}
		if t.Outstanding != "" {
			item["note"] = []interface{}{map[string]interface{}{"text": "Outstanding: " + t.Outstanding}}
		}
		r["item"] = []interface{}{item}
	}

	if t.Type == fhirmodels.TransactionPayment && t.Payments != "" {
		payment := map[string]interface{}{"amount": fhir.Money(t.Payments)}
		if t.Method != "" {
			payment["type"] = map[string]interface{}{
				"coding": []interface{}{fhir.Coding(fhirmodels.SystemPaymentMethod, t.Method, "")},
			}
		}
		if date := fhir.FormatDateTime(t.ToDate); date != "" {
			payment["date"] = date
		}
		r["payment"] = payment
	}

	return r
}

var submittedAdjudication = map[string]interface{}{
	"category": map[string]interface{}{
		"coding": []interface{}{
			map[string]interface{}{"system": fhirmodels.SystemAdjudication, "code": "submitted"},
		},
	},
}

func transactionAdjudications(t synthea.ClaimTransaction) []interface{} {
	if t.Type == "" {
		return []interface{}{submittedAdjudication}
	}

	category := func(code string) map[string]interface{} {
		return map[string]interface{}{
			"coding": []interface{}{
				map[string]interface{}{"system": fhirmodels.SystemTransactionType, "code": code},
			},
		}
	}

	var adjudications []interface{}
	switch t.Type {
	case fhirmodels.TransactionPayment:
		if t.Payments != "" {
			adjudications = append(adjudications, map[string]interface{}{
				"category": category(t.Type),
				"amount":   fhir.Money(t.Payments),
			})
		}
	case fhirmodels.TransactionAdjustment:
		if t.Adjustments != "" {
			adjudications = append(adjudications, map[string]interface{}{
				"category": category("adjustment"),
				"amount":   fhir.Money(t.Adjustments),
			})
		}
	case fhirmodels.TransactionTransferIn, fhirmodels.TransactionTransferOut:
		if t.Transfers != "" {
			adjudication := map[string]interface{}{
				"category": category("transfer"),
				"amount":   fhir.Money(t.Transfers),
			}
			var reasons []string
			if t.TransferOutID != "" {
				reasons = append(reasons, "Transfer Out ID: "+t.TransferOutID)
			}
			if t.TransferType != "" {
				reasons = append(reasons, "Transfer Type: "+t.TransferType)
			}
			if len(reasons) > 0 {
				adjudication["reason"] = map[string]interface{}{"text": strings.Join(reasons, "; ")}
			}
			adjudications = append(adjudications, adjudication)
		}
	case fhirmodels.TransactionCharge:
		adjudications = append(adjudications, map[string]interface{}{"category": category(t.Type)})
	}

	if adjudications == nil {
		return []interface{}{submittedAdjudication}
	}
	return adjudications
}

// ClaimToTransactions expands a Claim document into flat transaction
// rows, one CHARGE per claim item. Items without a sequence are skipped.
func ClaimToTransactions(r fhir.Resource) ([]synthea.ClaimTransaction, error) {
	if err := checkKind(r, "Claim"); err != nil {
		return nil, err
	}

	claimID := r.ID()
	patientID := fhir.RefIDAt(r, "patient")
	placeOfService := fhir.RefIDAt(r, "facility")
	providerID := fhir.RefIDAt(r, "provider")

	period, _ := fhir.GetMap(r, "billablePeriod")
	fromDate := fhir.FormatDate(stringAt(period, "start"))
	toDate := fhir.FormatDate(stringAt(period, "end"))

	patientInsuranceID := ""
	if insurances := mapArray(r, "insurance"); len(insurances) > 0 {
		if coverage, ok := fhir.GetMap(insurances[0], "coverage"); ok {
			patientInsuranceID = fhir.RefID(stringAt(coverage, "reference"))
		}
	}

	var noteTexts []string
	for _, note := range mapArray(r, "note") {
		if text := stringAt(note, "text"); text != "" {
			noteTexts = append(noteTexts, text)
		}
	}
	notes := strings.Join(noteTexts, "; ")

	supervising := supervisingProvider(r)

	var transactions []synthea.ClaimTransaction
	for _, item := range mapArray(r, "item") {
		chargeID, ok := fhir.GetNumber(item, "sequence")
		if !ok || chargeID == "" {
			continue
		}

		tx := synthea.ClaimTransaction{
			ID:                    "txn-" + claimID + "-" + chargeID,
			ClaimID:               claimID,
			ChargeID:              chargeID,
			PatientID:             patientID,
			Type:                  fhirmodels.TransactionCharge,
			FromDate:              fromDate,
			ToDate:                toDate,
			PlaceOfService:        placeOfService,
			Notes:                 notes,
			PatientInsuranceID:    patientInsuranceID,
			ProviderID:            providerID,
			SupervisingProviderID: supervising,
		}

		if net, ok := fhir.GetMap(item, "net"); ok {
			tx.Amount, _ = fhir.GetNumber(net, "value")
		}
		if service, ok := fhir.GetMap(item, "productOrService"); ok {
			if codings := mapArray(service, "coding"); len(codings) > 0 {
				tx.ProcedureCode = stringAt(codings[0], "code")
				tx.LineNote = stringAt(codings[0], "display")
			}
		}
		if modifiers := mapArray(item, "modifier"); len(modifiers) > 0 {
			tx.Modifier1 = stringAt(modifiers[0], "code")
			if len(modifiers) > 1 {
				tx.Modifier2 = stringAt(modifiers[1], "code")
			}
		}
		if sequences, ok := fhir.GetArray(item, "diagnosisSequence"); ok {
			refs := []*string{&tx.DiagnosisRef1, &tx.DiagnosisRef2, &tx.DiagnosisRef3, &tx.DiagnosisRef4}
			for i, seq := range sequences {
				if i >= len(refs) {
					break
				}
				*refs[i] = fhir.Number(seq)
			}
		}
		if quantity, ok := fhir.GetMap(item, "quantity"); ok {
			tx.Units, _ = fhir.GetNumber(quantity, "value")
		}
		if price, ok := fhir.GetMap(item, "unitPrice"); ok {
			tx.UnitAmount, _ = fhir.GetNumber(price, "value")
		}
		if encounters := mapArray(item, "encounter"); len(encounters) > 0 {
			tx.AppointmentID = fhir.RefID(stringAt(encounters[0], "reference"))
		}
		for _, note := range mapArray(item, "note") {
			text := stringAt(note, "text")
			if strings.Contains(text, "Department ID:") {
				tx.DepartmentID = strings.TrimSpace(strings.ReplaceAll(text, "Department ID:", ""))
			} else if strings.Contains(text, "Fee Schedule ID:") {
				tx.FeeScheduleID = strings.TrimSpace(strings.ReplaceAll(text, "Fee Schedule ID:", ""))
			}
		}

		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// ClaimResponseToTransactions expands a ClaimResponse document into flat
// transaction rows, recovering the transaction kind from each item's
// adjudication category. A response with a payment but no items yields a
// single PAYMENT row.
func ClaimResponseToTransactions(r fhir.Resource) ([]synthea.ClaimTransaction, error) {
	if err := checkKind(r, "ClaimResponse"); err != nil {
		return nil, err
	}

	transactionID := r.ID()
	claimID := fhir.RefIDAt(r, "request")
	patientID := fhir.RefIDAt(r, "patient")

	payment, _ := fhir.GetMap(r, "payment")
	paymentAmount := ""
	if amount, ok := fhir.GetMap(payment, "amount"); ok {
		paymentAmount, _ = fhir.GetNumber(amount, "value")
	}
	paymentMethod := ""
	if paymentType, ok := fhir.GetMap(payment, "type"); ok {
		if codings := mapArray(paymentType, "coding"); len(codings) > 0 {
			paymentMethod = stringAt(codings[0], "code")
		} else {
			paymentMethod = stringAt(paymentType, "text")
		}
	}
	paymentDate := fhir.FormatDate(stringAt(payment, "date"))

	var transactions []synthea.ClaimTransaction
	for _, item := range mapArray(r, "item") {
		chargeID, _ := fhir.GetNumber(item, "itemSequence")

		tx := synthea.ClaimTransaction{
			ID:        transactionID,
			ClaimID:   claimID,
			ChargeID:  chargeID,
			PatientID: patientID,
			Method:    paymentMethod,
			FromDate:  paymentDate,
			ToDate:    paymentDate,
		}

		applyAdjudications(&tx, item)

		if paymentAmount != "" && tx.Type == "" {
			tx.Type = fhirmodels.TransactionPayment
			tx.Amount = paymentAmount
		}
		if tx.Type == fhirmodels.TransactionPayment && paymentAmount != "" {
			tx.Payments = paymentAmount
		}

		for _, note := range mapArray(item, "note") {
			text := stringAt(note, "text")
			if strings.Contains(text, "Outstanding:") {
				tx.Outstanding = strings.TrimSpace(strings.ReplaceAll(text, "Outstanding:", ""))
			}
		}

		transactions = append(transactions, tx)
	}

	if transactions == nil && paymentAmount != "" {
		transactions = append(transactions, synthea.ClaimTransaction{
			ID:        transactionID,
			ClaimID:   claimID,
			PatientID: patientID,
			Type:      fhirmodels.TransactionPayment,
			Method:    paymentMethod,
			FromDate:  paymentDate,
			ToDate:    paymentDate,
			Payments:  paymentAmount,
		})
	}

	return transactions, nil
}

// applyAdjudications sets the transaction kind and amounts from the first
// recognized adjudication category code.
func applyAdjudications(tx *synthea.ClaimTransaction, item map[string]interface{}) {
	for _, adjudication := range mapArray(item, "adjudication") {
		category, _ := fhir.GetMap(adjudication, "category")
		amount := ""
		if m, ok := fhir.GetMap(adjudication, "amount"); ok {
			amount, _ = fhir.GetNumber(m, "value")
		}
		for _, coding := range mapArray(category, "coding") {
			switch code := stringAt(coding, "code"); code {
			case "PAYMENT", "payment":
				tx.Type = fhirmodels.TransactionPayment
				tx.Amount = amount
			case "ADJUSTMENT", "adjustment":
				tx.Type = fhirmodels.TransactionAdjustment
				tx.Amount = amount
				tx.Adjustments = amount
			case "TRANSFERIN", "TRANSFEROUT", "transfer":
				if strings.Contains(strings.ToUpper(code), "IN") {
					tx.Type = fhirmodels.TransactionTransferIn
				} else {
					tx.Type = fhirmodels.TransactionTransferOut
				}
				tx.Transfers = amount
				if reason, ok := fhir.GetMap(adjudication, "reason"); ok {
					for _, part := range strings.Split(stringAt(reason, "text"), ";") {
						if strings.Contains(part, "Transfer Out ID:") {
							tx.TransferOutID = strings.TrimSpace(strings.ReplaceAll(part, "Transfer Out ID:", ""))
						} else if strings.Contains(part, "Transfer Type:") {
							tx.TransferType = strings.TrimSpace(strings.ReplaceAll(part, "Transfer Type:", ""))
						}
					}
				}
			default:
				continue
			}
			break
		}
	}
}

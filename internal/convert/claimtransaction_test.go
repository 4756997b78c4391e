package convert

import (
	"testing"

	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/fhirmodels"
)

func TestClaimTransactionToClaim(t *testing.T) {
	r := ClaimTransactionToClaim(synthea.ClaimTransaction{
		ID:                    "t1",
		ClaimID:               "c1",
		ChargeID:              "2",
		PatientID:             "p1",
		Type:                  fhirmodels.TransactionCharge,
		Amount:                "129.16",
		FromDate:              "2020-01-01",
		ToDate:                "2020-01-02",
		PlaceOfService:        "org1",
		ProcedureCode:         "185345009",
		LineNote:              "Encounter for symptom",
		DiagnosisRef1:         "1",
		DiagnosisRef2:         "3",
		Units:                 "1",
		UnitAmount:            "129.16",
		DepartmentID:          "d1",
		PatientInsuranceID:    "cov1",
		FeeScheduleID:         "fs1",
		ProviderID:            "prov1",
		SupervisingProviderID: "prov2",
		AppointmentID:         "e1",
	})

	if r.Type() != "Claim" || r.ID() != "c1" {
		t.Fatalf("type/id = %s/%q", r.Type(), r.ID())
	}
	items := mapArray(r, "item")
	if len(items) != 1 {
		t.Fatalf("item = %v", items)
	}
	if seq, _ := fhir.GetNumber(items[0], "sequence"); seq != "2" {
		t.Errorf("item sequence = %q", seq)
	}
	if net, ok := fhir.GetMap(items[0], "net"); !ok {
		t.Error("net missing")
	} else if got, _ := fhir.GetNumber(net, "value"); got != "129.16" {
		t.Errorf("net = %q", got)
	}
	sequences, _ := fhir.GetArray(items[0], "diagnosisSequence")
	if len(sequences) != 2 || fhir.Number(sequences[0]) != "1" || fhir.Number(sequences[1]) != "3" {
		t.Errorf("diagnosisSequence = %v", sequences)
	}
	careTeam := mapArray(r, "careTeam")
	if len(careTeam) != 1 {
		t.Fatalf("careTeam = %v", careTeam)
	}
	if got := fhir.RefIDAt(careTeam[0], "provider"); got != "prov2" {
		t.Errorf("careTeam provider = %q", got)
	}
}

func TestClaimTransactionToClaimResponse_Adjudications(t *testing.T) {
	payment := ClaimTransactionToClaimResponse(synthea.ClaimTransaction{
		ID:       "t1",
		ClaimID:  "c1",
		ChargeID: "1",
		Type:     fhirmodels.TransactionPayment,
		Payments: "75.00",
		Method:   "CHECK",
		ToDate:   "2020-02-01",
	})
	pay, ok := fhir.GetMap(payment, "payment")
	if !ok {
		t.Fatalf("payment missing: %v", payment)
	}
	amount, _ := fhir.GetMap(pay, "amount")
	if got, _ := fhir.GetNumber(amount, "value"); got != "75.00" {
		t.Errorf("payment amount = %q", got)
	}

	transfer := ClaimTransactionToClaimResponse(synthea.ClaimTransaction{
		ID:            "t2",
		ChargeID:      "1",
		Type:          fhirmodels.TransactionTransferOut,
		Transfers:     "10.00",
		TransferOutID: "t9",
		TransferType:  "p",
	})
	items := mapArray(transfer, "item")
	if len(items) != 1 {
		t.Fatalf("item = %v", items)
	}
	adjudications := mapArray(items[0], "adjudication")
	if len(adjudications) != 1 {
		t.Fatalf("adjudication = %v", adjudications)
	}
	reason, _ := fhir.GetMap(adjudications[0], "reason")
	if text, _ := fhir.GetString(reason, "text"); text != "Transfer Out ID: t9; Transfer Type: p" {
		t.Errorf("reason = %q", text)
	}
}

func TestClaimToTransactions_ChargePerItem(t *testing.T) {
	claim := ClaimTransactionToClaim(synthea.ClaimTransaction{
		ID:                 "t1",
		ClaimID:            "c1",
		ChargeID:           "1",
		PatientID:          "p1",
		Type:               fhirmodels.TransactionCharge,
		Amount:             "129.16",
		FromDate:           "2020-01-01",
		ToDate:             "2020-01-02",
		PlaceOfService:     "org1",
		ProcedureCode:      "185345009",
		LineNote:           "Encounter for symptom",
		Units:              "1",
		UnitAmount:         "129.16",
		PatientInsuranceID: "cov1",
		ProviderID:         "prov1",
		AppointmentID:      "e1",
	})
	rows, err := ClaimToTransactions(claim)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	tx := rows[0]
	if tx.Type != fhirmodels.TransactionCharge || tx.ClaimID != "c1" || tx.ChargeID != "1" {
		t.Errorf("tx = %+v", tx)
	}
	if tx.ID != "txn-c1-1" {
		t.Errorf("id = %q", tx.ID)
	}
	if tx.Amount != "129.16" || tx.ProcedureCode != "185345009" || tx.LineNote != "Encounter for symptom" {
		t.Errorf("line fields = %q/%q/%q", tx.Amount, tx.ProcedureCode, tx.LineNote)
	}
	if tx.AppointmentID != "e1" || tx.PatientInsuranceID != "cov1" || tx.FromDate != "2020-01-01" {
		t.Errorf("links = %+v", tx)
	}
}

func TestClaimToTransactions_SkipsItemsWithoutSequence(t *testing.T) {
	rows, err := ClaimToTransactions(fhir.Resource{
		"resourceType": "Claim",
		"id":           "c1",
		"item": []interface{}{
			map[string]interface{}{"net": map[string]interface{}{"value": 5.0}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %+v, want none", rows)
	}
}

func TestClaimResponseToTransactions_KindFromAdjudication(t *testing.T) {
	response := ClaimTransactionToClaimResponse(synthea.ClaimTransaction{
		ID:          "t1",
		ClaimID:     "c1",
		ChargeID:    "1",
		PatientID:   "p1",
		Type:        fhirmodels.TransactionAdjustment,
		Adjustments: "15.00",
		Outstanding: "5.00",
	})
	rows, err := ClaimResponseToTransactions(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	tx := rows[0]
	if tx.Type != fhirmodels.TransactionAdjustment || tx.Adjustments != "15.00" {
		t.Errorf("tx = %+v", tx)
	}
	if tx.Outstanding != "5.00" {
		t.Errorf("outstanding = %q", tx.Outstanding)
	}
}

func TestClaimResponseToTransactions_PaymentFallbackRow(t *testing.T) {
	rows, err := ClaimResponseToTransactions(fhir.Resource{
		"resourceType": "ClaimResponse",
		"id":           "t1",
		"request":      map[string]interface{}{"reference": "Claim/c1"},
		"payment": map[string]interface{}{
			"amount": map[string]interface{}{"value": 75.0},
			"date":   "2020-02-01T00:00:00+00:00",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	tx := rows[0]
	if tx.Type != fhirmodels.TransactionPayment || tx.Payments != "75" || tx.ClaimID != "c1" {
		t.Errorf("tx = %+v", tx)
	}
	if tx.FromDate != "2020-02-01" || tx.ToDate != "2020-02-01" {
		t.Errorf("dates = %q/%q", tx.FromDate, tx.ToDate)
	}
}

package conversion

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/synfhir/synfhir/internal/convert"
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
)

// convertFunc turns one flat record into one or more documents.
type convertFunc func(fields map[string]string, ov convert.Overrides) []fhir.Resource

// revertFunc turns one document into one or more flat records.
type revertFunc func(r fhir.Resource) ([]map[string]string, error)

func forward[T any](fn func(T, convert.Overrides) fhir.Resource) convertFunc {
	return func(fields map[string]string, ov convert.Overrides) []fhir.Resource {
		return []fhir.Resource{fn(synthea.FromMap[T](fields), ov)}
	}
}

func forwardPlain[T any](fn func(T) fhir.Resource) convertFunc {
	return func(fields map[string]string, _ convert.Overrides) []fhir.Resource {
		return []fhir.Resource{fn(synthea.FromMap[T](fields))}
	}
}

func reverse[T any](fn func(fhir.Resource) (T, error)) revertFunc {
	return func(r fhir.Resource) ([]map[string]string, error) {
		rec, err := fn(r)
		if err != nil {
			return nil, err
		}
		return []map[string]string{synthea.ToMap(rec)}, nil
	}
}

func reverseMulti[T any](fn func(fhir.Resource) ([]T, error)) revertFunc {
	return func(r fhir.Resource) ([]map[string]string, error) {
		recs, err := fn(r)
		if err != nil {
			return nil, err
		}
		out := make([]map[string]string, len(recs))
		for i, rec := range recs {
			out[i] = synthea.ToMap(rec)
		}
		return out, nil
	}
}

// Kinds are named after the flat dataset's table files. A claim transaction
// converts forward into a claim document plus a claim-response document, and
// reverts from either.
var forwardFuncs = map[string]convertFunc{
	"patients":          forwardPlain(convert.PatientToFHIR),
	"encounters":        forward(convert.EncounterToFHIR),
	"conditions":        forward(convert.ConditionToFHIR),
	"allergies":         forward(convert.AllergyToFHIR),
	"medications":       forward(convert.MedicationToFHIR),
	"procedures":        forward(convert.ProcedureToFHIR),
	"observations":      forward(convert.ObservationToFHIR),
	"devices":           forward(convert.DeviceToFHIR),
	"organizations":     forwardPlain(convert.OrganizationToFHIR),
	"payers":            forwardPlain(convert.PayerToFHIR),
	"payer_transitions": forward(convert.PayerTransitionToFHIR),
	"claims":            forwardPlain(convert.ClaimToFHIR),
	"claims_transactions": func(fields map[string]string, _ convert.Overrides) []fhir.Resource {
		t := synthea.FromMap[synthea.ClaimTransaction](fields)
		return []fhir.Resource{
			convert.ClaimTransactionToClaim(t),
			convert.ClaimTransactionToClaimResponse(t),
		}
	},
	"imaging_studies": forward(convert.ImagingStudyToFHIR),
	"supplies":        forward(convert.SupplyToFHIR),
	"careplans":       forward(convert.CarePlanToFHIR),
	"immunizations":   forward(convert.ImmunizationToFHIR),
	"providers":       forwardPlain(convert.ProviderToFHIR),
}

var reverseFuncs = map[string]revertFunc{
	"patients":          reverse(convert.PatientFromFHIR),
	"encounters":        reverse(convert.EncounterFromFHIR),
	"conditions":        reverse(convert.ConditionFromFHIR),
	"allergies":         reverse(convert.AllergyFromFHIR),
	"medications":       reverse(convert.MedicationFromFHIR),
	"procedures":        reverse(convert.ProcedureFromFHIR),
	"observations":      reverse(convert.ObservationFromFHIR),
	"devices":           reverse(convert.DeviceFromFHIR),
	"organizations":     reverse(convert.OrganizationFromFHIR),
	"payers":            reverse(convert.PayerFromFHIR),
	"payer_transitions": reverse(convert.PayerTransitionFromFHIR),
	"claims":            reverse(convert.ClaimFromFHIR),
	"claims_transactions": func(r fhir.Resource) ([]map[string]string, error) {
		if r.Type() == "ClaimResponse" {
			return reverseMulti(convert.ClaimResponseToTransactions)(r)
		}
		return reverseMulti(convert.ClaimToTransactions)(r)
	},
	"imaging_studies": reverseMulti(convert.ImagingStudyFromFHIR),
	"supplies":        reverse(convert.SupplyFromFHIR),
	"careplans":       reverse(convert.CarePlanFromFHIR),
	"immunizations":   reverse(convert.ImmunizationFromFHIR),
	"providers":       reverse(convert.ProviderFromFHIR),
}

var columns = map[string][]string{
	"patients":            synthea.Headers[synthea.Patient](),
	"encounters":          synthea.Headers[synthea.Encounter](),
	"conditions":          synthea.Headers[synthea.Condition](),
	"allergies":           synthea.Headers[synthea.Allergy](),
	"medications":         synthea.Headers[synthea.Medication](),
	"procedures":          synthea.Headers[synthea.Procedure](),
	"observations":        synthea.Headers[synthea.Observation](),
	"devices":             synthea.Headers[synthea.Device](),
	"organizations":       synthea.Headers[synthea.Organization](),
	"payers":              synthea.Headers[synthea.Payer](),
	"payer_transitions":   synthea.Headers[synthea.PayerTransition](),
	"claims":              synthea.Headers[synthea.Claim](),
	"claims_transactions": synthea.Headers[synthea.ClaimTransaction](),
	"imaging_studies":     synthea.Headers[synthea.ImagingStudy](),
	"supplies":            synthea.Headers[synthea.Supply](),
	"careplans":           synthea.Headers[synthea.CarePlan](),
	"immunizations":       synthea.Headers[synthea.Immunization](),
	"providers":           synthea.Headers[synthea.Provider](),
}

// Columns returns the flat column names of a kind in schema order, for
// callers serializing records back to tabular form.
func Columns(kind string) []string {
	return columns[kind]
}

// KnownKind reports whether a record kind is supported.
func KnownKind(kind string) bool {
	_, ok := forwardFuncs[kind]
	return ok
}

// Kinds lists the supported record kinds in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(forwardFuncs))
	for k := range forwardFuncs {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Service dispatches conversions by kind and, when a repository is
// configured, records each one.
type Service struct {
	repo  Repository
	log   zerolog.Logger
	warns int64

	// mu serializes conversions so the warning counter delta observed
	// around a call belongs to that call alone.
	mu sync.Mutex
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	s := &Service{repo: repo, log: logger}
	convert.SetLogger(logger)
	// The hook counts truncations even when the logger drops warn events.
	convert.SetTruncationHook(func() { atomic.AddInt64(&s.warns, 1) })
	return s
}

// HasStore reports whether conversions are being recorded.
func (s *Service) HasStore() bool { return s.repo != nil }

// Convert translates one flat record of the given kind into its document
// form. The returned count is the number of truncation warnings emitted.
func (s *Service) Convert(ctx context.Context, kind string, fields map[string]string, ov convert.Overrides) ([]fhir.Resource, int, error) {
	fn, ok := forwardFuncs[kind]
	if !ok {
		return nil, 0, fmt.Errorf("unknown record kind %q", kind)
	}

	s.mu.Lock()
	before := atomic.LoadInt64(&s.warns)
	docs := fn(fields, ov)
	warnings := int(atomic.LoadInt64(&s.warns) - before)
	s.mu.Unlock()

	s.record(ctx, kind, DirectionToFHIR, fields, docs, warnings)
	return docs, warnings, nil
}

// Revert translates a document back into flat records of the given kind.
func (s *Service) Revert(ctx context.Context, kind string, doc fhir.Resource) ([]map[string]string, int, error) {
	fn, ok := reverseFuncs[kind]
	if !ok {
		return nil, 0, fmt.Errorf("unknown record kind %q", kind)
	}

	s.mu.Lock()
	before := atomic.LoadInt64(&s.warns)
	records, err := fn(doc)
	warnings := int(atomic.LoadInt64(&s.warns) - before)
	s.mu.Unlock()
	if err != nil {
		return nil, 0, err
	}

	s.record(ctx, kind, DirectionFromFHIR, doc, records, warnings)
	return records, warnings, nil
}

// Bundle assembles one patient and their related records into a single
// document collection with parent references wired up.
func (s *Service) Bundle(patient synthea.Patient, encounters []synthea.Encounter, conditions []synthea.Condition, allergies []synthea.Allergy) fhir.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return convert.PatientBundle(patient, encounters, conditions, allergies)
}

// Extract partitions a bundle back into per-kind flat record lists.
func (s *Service) Extract(bundle fhir.Resource) (convert.Tables, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return convert.ExtractTables(bundle)
}

// ListConversions pages through recorded conversions, newest first.
func (s *Service) ListConversions(ctx context.Context, limit, offset int) ([]*Conversion, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// GetConversion fetches one recorded conversion.
func (s *Service) GetConversion(ctx context.Context, id uuid.UUID) (*Conversion, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) record(ctx context.Context, kind, direction string, input, output interface{}, warnings int) {
	if s.repo == nil {
		return
	}
	in, err := json.Marshal(input)
	if err != nil {
		return
	}
	out, err := json.Marshal(output)
	if err != nil {
		return
	}
	c := &Conversion{Kind: kind, Direction: direction, Input: in, Output: out, Warnings: warnings}
	if err := s.repo.Create(ctx, c); err != nil {
		s.log.Warn().Err(err).Str("kind", kind).Msg("failed to record conversion")
	}
}

// Package convert implements bidirectional field-level translation between
// the flat tabular records in internal/synthea and nested FHIR-style
// documents. Conversions are pure functions: missing input fields become
// documented defaults, repeated values beyond the flat schema's fixed slots
// are truncated with a warning, and only a document of the wrong kind is a
// caller-visible error.
package convert

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/synfhir/synfhir/internal/fhir"
)

var (
	log      = zerolog.Nop()
	warnHook func()
)

// SetLogger routes truncation warnings to the given logger. Conversions
// never fail on lossy input; the warnings are the only trace.
func SetLogger(l zerolog.Logger) {
	log = l
}

// SetTruncationHook registers fn to run once per dropped value. The hook
// fires even when the logger filters warn-level events, so callers
// counting truncations do not depend on the log level.
func SetTruncationHook(fn func()) {
	warnHook = fn
}

// warn notifies the truncation hook and starts a warn-level log event.
func warn() *zerolog.Event {
	if warnHook != nil {
		warnHook()
	}
	return log.Warn()
}

// Overrides lets a caller substitute parent references when assembling a
// record group whose parent ids are already assigned. Values are full
// "Kind/id" reference strings.
type Overrides struct {
	Patient      string
	Encounter    string
	Provider     string
	Organization string
}

// effectiveID resolves a parent id from an override reference, falling back
// to the record's own bare id.
func effectiveID(override, id string) string {
	if override != "" {
		return fhir.RefID(override)
	}
	return id
}

// SyntheticID builds a deterministic resource id from parent id, start
// timestamp and code, with spaces and colons replaced by hyphens so the id
// is stable across repeated conversions of the same fact.
func SyntheticID(parts ...string) string {
	return sanitizeID(strings.Join(parts, "-"))
}

var idSanitizer = strings.NewReplacer(" ", "-", ":", "-")

func sanitizeID(s string) string {
	return idSanitizer.Replace(s)
}

// wrongKind reports a document whose resourceType does not match the
// conversion being asked of it.
func wrongKind(kind, got string) error {
	return fmt.Errorf("convert %s: unexpected resourceType %q", kind, got)
}

func checkKind(r fhir.Resource, kind string) error {
	if rt := r.Type(); rt != "" && rt != kind {
		return wrongKind(kind, rt)
	}
	return nil
}

// put assigns a value into a resource unless it is nil or an empty string,
// preserving omission semantics.
func put(r fhir.Resource, key string, v interface{}) {
	if v == nil {
		return
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return
		}
	case map[string]interface{}:
		if t == nil {
			return
		}
	case []interface{}:
		if len(t) == 0 {
			return
		}
	}
	r[key] = v
}

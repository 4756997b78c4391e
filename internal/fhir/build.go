package fhir

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Builders return nil when every contributing field is empty so callers can
// assign them unconditionally and rely on omission semantics.

// Coding builds a single coding entry.
func Coding(system, code, display string) map[string]interface{} {
	if code == "" && display == "" {
		return nil
	}
	c := map[string]interface{}{}
	if system != "" {
		c["system"] = system
	}
	if code != "" {
		c["code"] = code
	}
	if display != "" {
		c["display"] = display
	}
	return c
}

// CodeableConcept builds a concept with one coding plus optional free text.
func CodeableConcept(system, code, display, text string) map[string]interface{} {
	if code == "" && display == "" && text == "" {
		return nil
	}
	cc := map[string]interface{}{}
	if code != "" {
		coding := Coding(system, code, display)
		cc["coding"] = []interface{}{coding}
	}
	if text != "" {
		cc["text"] = text
	}
	if len(cc) == 0 {
		return nil
	}
	return cc
}

// Ref builds a typed reference, or nil when the id is empty.
func Ref(kind, id string) map[string]interface{} {
	if id == "" {
		return nil
	}
	return map[string]interface{}{"reference": kind + "/" + id}
}

// RefString joins kind and id into a "Kind/id" reference string.
func RefString(kind, id string) string {
	if id == "" {
		return ""
	}
	return kind + "/" + id
}

// RefID strips any "Kind/" prefix from a reference string.
func RefID(ref string) string {
	if ref == "" {
		return ""
	}
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// RefIDAt extracts the referenced id from a reference object at key.
func RefIDAt(m map[string]interface{}, key string) string {
	obj, ok := GetMap(m, key)
	if !ok {
		return ""
	}
	ref, _ := GetString(obj, "reference")
	return RefID(ref)
}

// Identifier builds an identifier, optionally carrying a typed code.
func Identifier(system, value string) map[string]interface{} {
	if value == "" {
		return nil
	}
	ident := map[string]interface{}{"value": value}
	if system != "" {
		ident["system"] = system
	}
	return ident
}

// TypedIdentifier builds an identifier tagged with a v2-0203 style type code.
func TypedIdentifier(value, typeSystem, typeCode, typeDisplay string) map[string]interface{} {
	if value == "" {
		return nil
	}
	return map[string]interface{}{
		"value": value,
		"type": map[string]interface{}{
			"coding": []interface{}{Coding(typeSystem, typeCode, typeDisplay)},
		},
	}
}

// Period builds a start/end period.
func Period(start, end string) map[string]interface{} {
	if start == "" && end == "" {
		return nil
	}
	p := map[string]interface{}{}
	if start != "" {
		p["start"] = start
	}
	if end != "" {
		p["end"] = end
	}
	return p
}

// Decimal wraps a flat decimal string as a JSON number, preserving its
// textual form across marshalling. Invalid input yields nil.
func Decimal(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return nil
	}
	return json.Number(s)
}

// Integer wraps a flat integer string as a JSON number.
func Integer(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.Atoi(s); err != nil {
		return nil
	}
	return json.Number(s)
}

// Money builds a currency amount in USD.
func Money(value string) map[string]interface{} {
	v := Decimal(value)
	if v == nil {
		return nil
	}
	return map[string]interface{}{"value": v, "currency": "USD"}
}

// Quantity builds a bare value quantity.
func Quantity(value string) map[string]interface{} {
	v := Decimal(value)
	if v == nil {
		return nil
	}
	return map[string]interface{}{"value": v}
}

// Extension builds a single-value extension. The value must already be a
// JSON-compatible type.
func Extension(url, valueKey string, value interface{}) map[string]interface{} {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok && s == "" {
		return nil
	}
	return map[string]interface{}{"url": url, valueKey: value}
}

// NestedExtension builds an extension whose value is a list of sub-extensions.
func NestedExtension(url string, subs ...map[string]interface{}) map[string]interface{} {
	kept := make([]interface{}, 0, len(subs))
	for _, s := range subs {
		if s != nil {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return map[string]interface{}{"url": url, "extension": kept}
}

// Extensions collects non-nil extensions into an array, or nil if none.
func Extensions(exts ...map[string]interface{}) []interface{} {
	kept := make([]interface{}, 0, len(exts))
	for _, e := range exts {
		if e != nil {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// ClinicalStatus builds an active/resolved CodeableConcept on the given
// status code system. Always returns a value since clinical status is
// required wherever it appears.
func ClinicalStatus(active bool, system string) map[string]interface{} {
	code := "active"
	if !active {
		code = "resolved"
	}
	display := strings.ToUpper(code[:1]) + code[1:]
	return map[string]interface{}{
		"coding": []interface{}{Coding(system, code, display)},
	}
}

// VerificationStatus builds a verification status CodeableConcept.
func VerificationStatus(code, system string) map[string]interface{} {
	display := strings.ToUpper(code[:1]) + code[1:]
	return map[string]interface{}{
		"coding": []interface{}{Coding(system, code, display)},
	}
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// Package fhir provides the generic document model shared by every
// converter: resources are plain maps, field access never panics, and
// sub-structures are only built when at least one contributing field is
// present.
package fhir

import "encoding/json"

// Resource is a nested FHIR-style document. Keys absent from the map are
// omitted on the wire, which downstream consumers treat differently from
// an explicit null.
type Resource map[string]interface{}

// Type returns the document's resourceType tag.
func (r Resource) Type() string {
	t, _ := GetString(r, "resourceType")
	return t
}

// ID returns the document's logical id.
func (r Resource) ID() string {
	id, _ := GetString(r, "id")
	return id
}

// MarshalJSON keeps Resource encoding identical to the underlying map.
func (r Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}(r))
}

// GetString safely extracts a string from a map.
func GetString(m map[string]interface{}, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetArray safely extracts a slice from a map.
func GetArray(m map[string]interface{}, key string) ([]interface{}, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	arr, ok := v.([]interface{})
	return arr, ok
}

// GetMap safely extracts a nested map from a map.
func GetMap(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	return AsMap(v)
}

// GetBool safely extracts a bool from a map.
func GetBool(m map[string]interface{}, key string) (bool, bool) {
	v, ok := m[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// AsMap converts an arbitrary array element to a map, tolerating malformed
// entries. Resources built in memory are stored as Resource rather than a
// plain map, so both shapes are accepted.
func AsMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Resource:
		return m, true
	}
	return nil, false
}

// FirstMap returns the first element of an array field as a map.
func FirstMap(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	arr, ok := GetArray(m, key)
	if !ok || len(arr) == 0 {
		return nil, false
	}
	return AsMap(arr[0])
}

// Number converts a numeric field to its flat string form. Numbers built by
// this package are json.Number, but documents that have crossed a JSON
// round-trip carry float64, and hand-built ones may carry plain strings.
func Number(v interface{}) string {
	switch n := v.(type) {
	case json.Number:
		return n.String()
	case string:
		return n
	case float64:
		return trimFloat(n)
	case int:
		return itoa(n)
	}
	return ""
}

// GetNumber extracts a numeric field as its flat string form.
func GetNumber(m map[string]interface{}, key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	s := Number(v)
	return s, s != ""
}

package fhir

// Coded-concept and extension extraction. All helpers return "" on any
// missing or malformed input.

func codings(concept map[string]interface{}) []map[string]interface{} {
	arr, ok := GetArray(concept, "coding")
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(arr))
	for _, v := range arr {
		if c, ok := AsMap(v); ok {
			out = append(out, c)
		}
	}
	return out
}

// Code extracts a concept's code, preferring codings whose system matches
// one of the given systems (tried in order) and falling back to the first
// coding.
func Code(concept map[string]interface{}, preferredSystems ...string) string {
	cs := codings(concept)
	if len(cs) == 0 {
		return ""
	}
	for _, want := range preferredSystems {
		for _, c := range cs {
			system, _ := GetString(c, "system")
			if system == want {
				code, _ := GetString(c, "code")
				return code
			}
		}
	}
	code, _ := GetString(cs[0], "code")
	return code
}

// CodeAt extracts a code from the concept stored at key.
func CodeAt(m map[string]interface{}, key string, preferredSystems ...string) string {
	concept, ok := GetMap(m, key)
	if !ok {
		return ""
	}
	return Code(concept, preferredSystems...)
}

// Display extracts a concept's display, preferring the first coding's
// display and falling back to the concept's free text.
func Display(concept map[string]interface{}) string {
	if cs := codings(concept); len(cs) > 0 {
		if d, _ := GetString(cs[0], "display"); d != "" {
			return d
		}
	}
	text, _ := GetString(concept, "text")
	return text
}

// DisplayAt extracts a display from the concept stored at key.
func DisplayAt(m map[string]interface{}, key string) string {
	concept, ok := GetMap(m, key)
	if !ok {
		return ""
	}
	return Display(concept)
}

// System extracts the first coding's system from the concept stored at key.
func SystemAt(m map[string]interface{}, key string) string {
	concept, ok := GetMap(m, key)
	if !ok {
		return ""
	}
	cs := codings(concept)
	if len(cs) == 0 {
		return ""
	}
	system, _ := GetString(cs[0], "system")
	return system
}

// FindExtension returns the first top-level extension with the given URL.
func FindExtension(m map[string]interface{}, url string) (map[string]interface{}, bool) {
	arr, ok := GetArray(m, "extension")
	if !ok {
		return nil, false
	}
	for _, v := range arr {
		ext, ok := AsMap(v)
		if !ok {
			continue
		}
		if u, _ := GetString(ext, "url"); u == url {
			return ext, true
		}
	}
	return nil, false
}

// ExtValue extracts a scalar extension value (valueString, valueDecimal,
// valueInteger) in its flat string form.
func ExtValue(m map[string]interface{}, url, valueKey, fallback string) string {
	ext, ok := FindExtension(m, url)
	if !ok {
		return fallback
	}
	v, ok := ext[valueKey]
	if !ok || v == nil {
		return fallback
	}
	if s := Number(v); s != "" {
		return s
	}
	return fallback
}

// ExtRef extracts the referenced id from an extension's valueReference.
func ExtRef(m map[string]interface{}, url string) string {
	ext, ok := FindExtension(m, url)
	if !ok {
		return ""
	}
	return RefIDAt(ext, "valueReference")
}

// NestedExtValue extracts a scalar value from a sub-extension of the
// extension with the given URL.
func NestedExtValue(m map[string]interface{}, url, subURL, valueKey, fallback string) string {
	ext, ok := FindExtension(m, url)
	if !ok {
		return fallback
	}
	return ExtValue(ext, subURL, valueKey, fallback)
}

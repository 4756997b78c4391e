package synthea

import (
	"regexp"
	"strings"
)

// Default returns value, or fallback when value is empty after trimming.
func Default(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// Gender and marital status enumerations between the two schemas.

// GenderToFHIR maps the flat M/F code to an administrative gender.
func GenderToFHIR(g string) string {
	switch strings.ToUpper(strings.TrimSpace(g)) {
	case "M":
		return "male"
	case "F":
		return "female"
	}
	return ""
}

// GenderFromFHIR maps an administrative gender back to the flat code.
// Unrecognized input falls back to "M".
func GenderFromFHIR(g string) string {
	switch strings.ToLower(strings.TrimSpace(g)) {
	case "male":
		return "M"
	case "female":
		return "F"
	}
	return "M"
}

var maritalDisplays = map[string]string{
	"S": "Never Married",
	"M": "Married",
	"D": "Divorced",
	"W": "Widowed",
}

// MaritalDisplay returns the v3-MaritalStatus display for a flat marital
// code, or "" when the code is not one of S/M/D/W.
func MaritalDisplay(code string) string {
	return maritalDisplays[strings.ToUpper(strings.TrimSpace(code))]
}

// MaritalFromCode keeps only the four flat marital codes.
func MaritalFromCode(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if _, ok := maritalDisplays[c]; ok {
		return c
	}
	return ""
}

// Encounter class enumeration. The flat schema's class vocabulary maps onto
// a small set of act codes; everything unrecognized falls back to
// "ambulatory".

var encounterClassToAct = map[string]struct{ Code, Display string }{
	"ambulatory": {"AMB", "ambulatory"},
	"wellness":   {"AMB", "ambulatory"},
	"urgentcare": {"AMB", "ambulatory"},
	"emergency":  {"EMER", "emergency"},
	"inpatient":  {"IMP", "inpatient encounter"},
}

// EncounterClassToFHIR maps a flat encounter class to its act code and
// display. Unknown classes yield ok=false.
func EncounterClassToFHIR(class string) (code, display string, ok bool) {
	m, ok := encounterClassToAct[strings.ToLower(strings.TrimSpace(class))]
	if !ok {
		return "", "", false
	}
	return m.Code, m.Display, true
}

// EncounterClassFromFHIR maps an act code (with its display as fallback)
// back to a flat encounter class.
func EncounterClassFromFHIR(code, display string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "AMB":
		return "ambulatory"
	case "EMER":
		return "emergency"
	case "IMP", "ACUTE":
		return "inpatient"
	}
	if d := strings.ToLower(strings.TrimSpace(display)); d != "" {
		return d
	}
	return "ambulatory"
}

var validEncounterClasses = map[string]bool{
	"ambulatory": true,
	"emergency":  true,
	"inpatient":  true,
	"wellness":   true,
	"urgentcare": true,
	"outpatient": true,
}

// ValidateEncounterClass clamps an encounter class to the flat schema's
// vocabulary, falling back to "ambulatory".
func ValidateEncounterClass(class string) string {
	c := strings.ToLower(strings.TrimSpace(class))
	if validEncounterClasses[c] {
		return c
	}
	return "ambulatory"
}

// NormalizeAllergyCategory maps the flat "drug" category to the document
// schema's "medication"; other categories pass through lowercased.
func NormalizeAllergyCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "drug" {
		return "medication"
	}
	return c
}

var phoneDelims = regexp.MustCompile(`[,;/|]`)

// SplitPhones splits a phone cell on common delimiters.
func SplitPhones(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := phoneDelims.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinPhones renders a phone list back into a single flat cell.
func JoinPhones(phones []string) string {
	return strings.Join(phones, "; ")
}

// SplitName splits a full name into given and family parts. Single-token
// names are treated as a given name.
func SplitName(name string) (given, family string) {
	tokens := strings.Fields(name)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], ""
	}
	return tokens[0], tokens[len(tokens)-1]
}

// SOPCodeWithPrefix ensures an imaging SOP class code carries the urn:oid:
// prefix.
func SOPCodeWithPrefix(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if strings.HasPrefix(code, "urn:oid:") {
		return code
	}
	return "urn:oid:" + code
}

// SOPCode strips the urn:oid: prefix from an imaging SOP class code.
func SOPCode(code string) string {
	return strings.TrimPrefix(strings.TrimSpace(code), "urn:oid:")
}

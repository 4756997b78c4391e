package synthea

import "reflect"

// FromMap builds a record of type T from fields keyed by column name.
// Unknown keys are ignored and absent columns stay empty, mirroring how
// Read tolerates extra or missing CSV columns.
func FromMap[T any](fields map[string]string) T {
	var rec T
	t := reflect.TypeOf(rec)
	v := reflect.ValueOf(&rec).Elem()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("csv")
		if tag == "" {
			continue
		}
		if val, ok := fields[tag]; ok {
			v.Field(i).SetString(val)
		}
	}
	return rec
}

// ToMap flattens a record into fields keyed by column name. Every column
// appears, empty or not, so the result round-trips through FromMap.
func ToMap[T any](rec T) map[string]string {
	t := reflect.TypeOf(rec)
	v := reflect.ValueOf(rec)
	fields := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("csv"); tag != "" {
			fields[tag] = v.Field(i).String()
		}
	}
	return fields
}

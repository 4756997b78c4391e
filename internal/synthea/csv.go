package synthea

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
)

// CSV I/O over the record types. Column order follows struct field order;
// columns are matched to fields by the csv tag, so readers tolerate extra
// or reordered columns.

// Headers returns the column names of record type T in schema order.
func Headers[T any]() []string {
	var zero T
	return headersOf(reflect.TypeOf(zero))
}

func headersOf(t reflect.Type) []string {
	headers := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("csv"); tag != "" {
			headers = append(headers, tag)
		}
	}
	return headers
}

// Read decodes all rows of a CSV stream into records of type T.
func Read[T any](r io.Reader) ([]T, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("read csv: %T is not a record type", zero)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	// Column index per field, -1 when the column is absent.
	cols := make([]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		cols[i] = -1
		tag := t.Field(i).Tag.Get("csv")
		for j, name := range header {
			if name == tag {
				cols[i] = j
				break
			}
		}
	}

	var out []T
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		var rec T
		v := reflect.ValueOf(&rec).Elem()
		for i := 0; i < t.NumField(); i++ {
			if cols[i] >= 0 && cols[i] < len(row) {
				v.Field(i).SetString(row[cols[i]])
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// Write encodes records of type T as CSV with a header row.
func Write[T any](w io.Writer, recs []T) error {
	var zero T
	t := reflect.TypeOf(zero)
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("write csv: %T is not a record type", zero)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(headersOf(t)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range recs {
		v := reflect.ValueOf(rec)
		row := make([]string, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).Tag.Get("csv") != "" {
				row = append(row, v.Field(i).String())
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

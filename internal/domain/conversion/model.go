package conversion

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Conversion directions stored with each record.
const (
	DirectionToFHIR   = "to-fhir"
	DirectionFromFHIR = "from-fhir"
)

// Conversion maps to the conversions table: one row per conversion served,
// with the input and result kept verbatim for auditing.
type Conversion struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Kind      string          `db:"kind" json:"kind"`
	Direction string          `db:"direction" json:"direction"`
	Input     json.RawMessage `db:"input" json:"input"`
	Output    json.RawMessage `db:"output" json:"output"`
	Warnings  int             `db:"warnings" json:"warnings"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

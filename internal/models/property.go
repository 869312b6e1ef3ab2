package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Property represents a rental property owned by a single user. The unit
// list is embedded: units have no identity outside their property and are
// replaced wholesale on every update.
type Property struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Units     []Unit    `json:"units"`
	CreatedAt time.Time `json:"createdAt"`
}

// Unit is a single rentable unit within a property.
type Unit struct {
	UnitNumber string  `json:"unitNumber"`
	RentAmount float64 `json:"rentAmount"`
	Tenant     Tenant  `json:"tenant"`
}

// Tenant holds the contact details for a unit's occupant. All fields are
// optional and default to the empty string.
type Tenant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// EncodeUnits serializes the unit list for the units_json column.
func (p *Property) EncodeUnits() (string, error) {
	if p.Units == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p.Units)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeUnits populates the unit list from the units_json column.
func (p *Property) DecodeUnits(raw string) error {
	p.Units = []Unit{}
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), &p.Units)
}

// unitInput mirrors the wire shape of a unit before normalization. Rent
// amounts arrive as either a JSON number or a numeric string, so the raw
// bytes are kept for coercion.
type unitInput struct {
	UnitNumber string          `json:"unitNumber"`
	RentAmount json.RawMessage `json:"rentAmount"`
	Tenant     Tenant          `json:"tenant"`
}

// ParseUnits maps raw unit input to the canonical Unit shape. It is the
// single normalization path for both property creation and update:
//   - anything that is not a JSON array (absent, null, object, scalar)
//     yields an empty list;
//   - rentAmount is coerced to a number, accepting "950" as well as 950,
//     with unparseable values landing on 0;
//   - tenant name/email/phone each default to the empty string.
func ParseUnits(raw json.RawMessage) []Unit {
	var elems []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &elems) != nil {
		return []Unit{}
	}

	units := make([]Unit, 0, len(elems))
	for _, elem := range elems {
		var in unitInput
		// A malformed element still occupies its slot in the list.
		_ = json.Unmarshal(elem, &in)
		units = append(units, Unit{
			UnitNumber: in.UnitNumber,
			RentAmount: coerceNumber(in.RentAmount),
			Tenant:     in.Tenant,
		})
	}
	return units
}

// coerceNumber reads a JSON number or numeric string, returning 0 for
// anything else.
func coerceNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

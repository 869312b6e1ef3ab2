package models

import (
	"encoding/json"
	"testing"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Unit
	}{
		{
			name:  "absent input",
			input: "",
			want:  []Unit{},
		},
		{
			name:  "null input",
			input: "null",
			want:  []Unit{},
		},
		{
			name:  "object instead of array",
			input: `{"unitNumber":"101"}`,
			want:  []Unit{},
		},
		{
			name:  "scalar instead of array",
			input: `"101"`,
			want:  []Unit{},
		},
		{
			name:  "empty array",
			input: `[]`,
			want:  []Unit{},
		},
		{
			name:  "rent amount as string is coerced",
			input: `[{"unitNumber":"101","rentAmount":"950","tenant":{"name":"X"}}]`,
			want: []Unit{
				{UnitNumber: "101", RentAmount: 950, Tenant: Tenant{Name: "X"}},
			},
		},
		{
			name:  "rent amount as number",
			input: `[{"unitNumber":"102","rentAmount":1200.5}]`,
			want: []Unit{
				{UnitNumber: "102", RentAmount: 1200.5},
			},
		},
		{
			name:  "unparseable rent amount lands on zero",
			input: `[{"unitNumber":"103","rentAmount":"a lot"}]`,
			want: []Unit{
				{UnitNumber: "103", RentAmount: 0},
			},
		},
		{
			name:  "missing tenant defaults every field to empty",
			input: `[{"unitNumber":"104","rentAmount":800}]`,
			want: []Unit{
				{UnitNumber: "104", RentAmount: 800, Tenant: Tenant{Name: "", Email: "", Phone: ""}},
			},
		},
		{
			name:  "partial tenant keeps given fields",
			input: `[{"unitNumber":"105","rentAmount":700,"tenant":{"email":"a@b.com"}}]`,
			want: []Unit{
				{UnitNumber: "105", RentAmount: 700, Tenant: Tenant{Email: "a@b.com"}},
			},
		},
		{
			name:  "malformed element still occupies its slot",
			input: `[{"unitNumber":"106","rentAmount":500},"bogus"]`,
			want: []Unit{
				{UnitNumber: "106", RentAmount: 500},
				{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseUnits(json.RawMessage(tt.input))
			if got == nil {
				t.Fatal("ParseUnits returned nil, want empty slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseUnits returned %d units, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("unit %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUnitsColumnRoundTrip(t *testing.T) {
	prop := Property{
		Units: []Unit{
			{UnitNumber: "101", RentAmount: 950, Tenant: Tenant{Name: "X"}},
		},
	}

	encoded, err := prop.EncodeUnits()
	if err != nil {
		t.Fatalf("EncodeUnits: %v", err)
	}

	var decoded Property
	if err := decoded.DecodeUnits(encoded); err != nil {
		t.Fatalf("DecodeUnits: %v", err)
	}
	if len(decoded.Units) != 1 || decoded.Units[0] != prop.Units[0] {
		t.Errorf("round trip = %+v, want %+v", decoded.Units, prop.Units)
	}

	// Tenant sub-fields serialize as empty strings, never as absent keys.
	var raw []map[string]interface{}
	if err := json.Unmarshal([]byte(encoded), &raw); err != nil {
		t.Fatalf("unmarshal encoded units: %v", err)
	}
	tenant, ok := raw[0]["tenant"].(map[string]interface{})
	if !ok {
		t.Fatal("tenant missing from encoded unit")
	}
	for _, field := range []string{"name", "email", "phone"} {
		if _, ok := tenant[field]; !ok {
			t.Errorf("tenant field %q absent from encoded unit", field)
		}
	}
}

func TestEncodeUnitsNil(t *testing.T) {
	var prop Property
	encoded, err := prop.EncodeUnits()
	if err != nil {
		t.Fatalf("EncodeUnits: %v", err)
	}
	if encoded != "[]" {
		t.Errorf("EncodeUnits(nil) = %q, want %q", encoded, "[]")
	}
}

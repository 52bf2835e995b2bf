package slapi

import "encoding/json"

// NullString is a string that serializes to an explicit JSON null when not
// valid. The service distinguishes "set this field to null" (clear it) from
// "leave it alone", and the update endpoints that accept it always send a
// value, so omission is not representable here on purpose.
type NullString struct {
	String string
	Valid  bool
}

// StringValue returns a NullString holding s.
func StringValue(s string) NullString {
	return NullString{String: s, Valid: true}
}

// NullValue returns a NullString that serializes to JSON null.
func NullValue() NullString {
	return NullString{}
}

func (ns NullString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ns.String)
}

func (ns *NullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ns = NullString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*ns = NullString{String: s, Valid: true}
	return nil
}

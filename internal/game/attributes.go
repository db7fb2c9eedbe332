package game

import "encoding/json"

// attributePayload mirrors the wire shape with pointer fields so an absent
// attribute can be told apart from an explicit zero.
type attributePayload struct {
	Attack  *int `json:"attack"`
	Defense *int `json:"defense"`
	Speed   *int `json:"speed"`
}

// DefaultAttributes is the fallback substituted when a stored payload cannot
// be decoded at all.
func DefaultAttributes() Attributes {
	return Attributes{Attack: 1, Defense: 1, Speed: 1}
}

// ParseAttributes decodes the persisted attribute column. Two historic
// formats exist: a plain JSON object and a JSON-encoded string wrapping that
// object. Undecodable payloads fall back to DefaultAttributes and missing
// fields default to 1 each; the substitution is policy, never an error.
func ParseAttributes(raw string) Attributes {
	b := []byte(raw)
	var p attributePayload
	if err := json.Unmarshal(b, &p); err != nil {
		var inner string
		if err := json.Unmarshal(b, &inner); err != nil {
			return DefaultAttributes()
		}
		if err := json.Unmarshal([]byte(inner), &p); err != nil {
			return DefaultAttributes()
		}
	}
	out := DefaultAttributes()
	if p.Attack != nil {
		out.Attack = clampNonNegative(*p.Attack)
	}
	if p.Defense != nil {
		out.Defense = clampNonNegative(*p.Defense)
	}
	if p.Speed != nil {
		out.Speed = clampNonNegative(*p.Speed)
	}
	return out
}

// EncodeAttributes serializes a stat block in the modern object format, so
// every write migrates legacy rows forward.
func EncodeAttributes(a Attributes) string {
	b, err := json.Marshal(a)
	if err != nil {
		return `{"attack":1,"defense":1,"speed":1}`
	}
	return string(b)
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

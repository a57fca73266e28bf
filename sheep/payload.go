package sheep

import "github.com/tidwall/gjson"

// Payload is the decoded CRM response body. It is loosely typed: callers check
// for the presence and shape of the fields they need and unknown fields are
// ignored.
type Payload struct {
	result gjson.Result
}

// ParsePayload decodes body and reports whether it is valid JSON.
func ParsePayload(body []byte) (Payload, bool) {
	if !gjson.ValidBytes(body) {
		return Payload{}, false
	}
	return Payload{result: gjson.ParseBytes(body)}, true
}

// MustParsePayload parses trusted JSON, yielding an absent payload when invalid.
func MustParsePayload(raw string) Payload {
	payload, _ := ParsePayload([]byte(raw))
	return payload
}

// Get returns the child at path (gjson path syntax, e.g. "results" or "value.active_memberships").
func (p Payload) Get(path string) Payload {
	return Payload{result: p.result.Get(path)}
}

// Has reports whether the field at path is present, whatever its value.
func (p Payload) Has(path string) bool {
	return p.result.Get(path).Exists()
}

func (p Payload) Exists() bool {
	return p.result.Exists()
}

func (p Payload) IsArray() bool {
	return p.result.IsArray()
}

func (p Payload) IsObject() bool {
	return p.result.IsObject()
}

// Array returns the elements of an array payload, or nil for any other kind.
func (p Payload) Array() []Payload {
	if !p.result.IsArray() {
		return nil
	}
	items := p.result.Array()
	out := make([]Payload, 0, len(items))
	for _, item := range items {
		out = append(out, Payload{result: item})
	}
	return out
}

// Len returns the number of elements of an array payload.
func (p Payload) Len() int {
	if !p.result.IsArray() {
		return 0
	}
	return len(p.result.Array())
}

func (p Payload) String() string {
	return p.result.String()
}

// Raw returns the JSON text backing the payload.
func (p Payload) Raw() string {
	return p.result.Raw
}

// Value returns the payload as plain Go values (map[string]any, []any, ...).
func (p Payload) Value() any {
	if !p.result.Exists() {
		return nil
	}
	return p.result.Value()
}

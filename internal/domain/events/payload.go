package events

import (
	"encoding/json"
	"fmt"
	"math"
)

// Well known payload keys
const (
	KeyText         = "text"
	KeyNote         = "note"
	KeyDescription  = "description"
	KeyOriginalType = "originalType"
	KeyName         = "name"
	KeyActorName    = "actorName"
	KeyTargetName   = "targetName"
)

// Payload is the structured body of an event. Its shape depends on the event
// type and is checked against that type's schema on dispatch. Values are
// always JSON-compatible: numbers are float64, objects map[string]any.
type Payload map[string]any

// ToPayload converts a typed payload struct, a map or nil into a Payload by
// a JSON round trip. Anything that does not encode to a JSON object fails.
func ToPayload(v any) (Payload, error) {
	if v == nil {
		return Payload{}, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	if string(data) == "null" {
		return Payload{}, nil
	}

	var out Payload
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("payload must be a JSON object: %w", err)
	}
	if out == nil {
		out = Payload{}
	}

	return out, nil
}

// MustPayload is ToPayload for values known to encode as objects
func MustPayload(v any) Payload {
	p, err := ToPayload(v)
	if err != nil {
		panic(err)
	}
	return p
}

// Decode unmarshals the payload into a typed payload struct
func (p Payload) Decode(into any) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, into)
}

// Clone returns a deep copy of the nested maps and slices. Leaf values are
// shared, so Clone never fails even when the payload does not encode.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	return Payload(cloneValue(map[string]any(p)).(map[string]any))
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = cloneValue(x)
		}
		return out
	case Payload:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = cloneValue(x)
		}
		return out
	default:
		return v
	}
}

// String returns the string at key, or "" when missing or not a string
func (p Payload) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Int returns the number at key truncated to an int, reporting whether it was numeric
func (p Payload) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case float64:
		return int(math.Trunc(v)), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}

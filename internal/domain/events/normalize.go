package events

import "strings"

// Normalized is the result of coercing a producer's raw type and payload
type Normalized struct {
	Type    Type
	Payload Payload
	Coerced bool
}

// Normalize resolves rawType against the closed type set. Unknown types
// become NOTE; the original type is kept under originalType and a text is
// derived so the NOTE payload stays well formed. The returned payload is the
// JSON view of the input, which is not modified. A payload that does not
// encode as a JSON object is an error.
func Normalize(rawType string, payload Payload) (Normalized, error) {
	out, err := ToPayload(map[string]any(payload))
	if err != nil {
		return Normalized{}, err
	}

	t, ok := ParseType(rawType)
	if ok {
		return Normalized{Type: t, Payload: out}, nil
	}

	if strings.TrimSpace(rawType) != "" {
		out[KeyOriginalType] = rawType
	}
	EnsureText(out, rawType)

	return Normalized{Type: TypeNote, Payload: out, Coerced: true}, nil
}

// DowngradeToNote turns an event of a known type whose payload failed
// validation into a NOTE, keeping every field and recording the type.
func DowngradeToNote(t Type, payload Payload) Payload {
	out := payload.Clone()
	if out == nil {
		out = Payload{}
	}
	out[KeyOriginalType] = string(t)
	EnsureText(out, string(t))
	return out
}

// EnsureText sets payload.text when it is missing or not a string, using the
// first of note, description, name or fallback that is present.
func EnsureText(p Payload, fallback string) {
	if _, ok := p[KeyText].(string); ok {
		return
	}
	for _, key := range []string{KeyNote, KeyDescription, KeyName} {
		if s := strings.TrimSpace(p.String(key)); s != "" {
			p[KeyText] = s
			return
		}
	}
	p[KeyText] = fallback
}

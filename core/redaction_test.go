package core

import "testing"

func TestRedactSensitiveMapMasksCredentials(t *testing.T) {
	redacted := RedactSensitiveMap(map[string]any{
		"flock":   "acme",
		"api_key": "k",
		"headers": map[string]string{"Authorization": "Bearer k", "Accept": "application/json"},
		"nested":  map[string]any{"token": "t", "trace_id": "trace_1"},
		"items":   []any{map[string]any{"password": "p"}},
	})

	if redacted["flock"] != "acme" {
		t.Fatalf("expected flock to remain visible, got %#v", redacted["flock"])
	}
	if redacted["api_key"] != RedactedValue {
		t.Fatalf("expected api_key to be redacted, got %#v", redacted["api_key"])
	}
	headers, ok := redacted["headers"].(map[string]string)
	if !ok {
		t.Fatalf("expected redacted headers map, got %T", redacted["headers"])
	}
	if headers["Authorization"] != RedactedValue {
		t.Fatalf("expected authorization header to be redacted, got %q", headers["Authorization"])
	}
	if headers["Accept"] != "application/json" {
		t.Fatalf("expected accept header to remain, got %q", headers["Accept"])
	}
	nested := redacted["nested"].(map[string]any)
	if nested["token"] != RedactedValue || nested["trace_id"] != "trace_1" {
		t.Fatalf("unexpected nested redaction: %#v", nested)
	}
	items := redacted["items"].([]any)
	if items[0].(map[string]any)["password"] != RedactedValue {
		t.Fatalf("expected nested slice values to be redacted")
	}
}

func TestRedactHeadersEmpty(t *testing.T) {
	if out := RedactHeaders(nil); out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil map, got %#v", out)
	}
}

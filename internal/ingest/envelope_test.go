package ingest

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexTimeDecodesAllProducerShapes(t *testing.T) {
	want := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
	}{
		{"rfc3339", `"2026-03-15T10:30:00Z"`},
		{"naive datetime", `"2026-03-15T10:30:00"`},
		{"epoch seconds", `1773570600`},
		{"epoch milliseconds", `1773570600000`},
		{"broken-down array", `[2026, 3, 15, 10, 30, 0]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ft FlexTime
			if err := json.Unmarshal([]byte(tc.in), &ft); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if !ft.Time.Equal(want) {
				t.Fatalf("decoded %s, want %s", ft.Time, want)
			}
		})
	}
}

func TestFlexTimeRejectsUnknownShapes(t *testing.T) {
	tests := []string{
		`"not a timestamp"`,
		`[2026, 3]`,
		`{"seconds": 1}`,
		`true`,
	}
	for _, in := range tests {
		var ft FlexTime
		if err := json.Unmarshal([]byte(in), &ft); err == nil {
			t.Fatalf("unmarshal %s succeeded, want error", in)
		}
	}
}

func TestFlexTimeNullIsZero(t *testing.T) {
	var ft FlexTime
	if err := json.Unmarshal([]byte(`null`), &ft); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !ft.Time.IsZero() {
		t.Fatalf("null decoded to %s, want zero time", ft.Time)
	}
}

func TestDecodeEnvelopeAcceptsBothDiscriminators(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"snake case", `{"event_type":"auth.user-signed-up"}`, "auth.user-signed-up"},
		{"camel case", `{"eventType":"payment.subscription-changed"}`, "payment.subscription-changed"},
		{"snake wins over camel", `{"event_type":"a","eventType":"b"}`, "a"},
		{"missing", `{"payload":1}`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(tc.in))
			if err != nil {
				t.Fatalf("DecodeEnvelope: %v", err)
			}
			if env.Type != tc.want {
				t.Fatalf("Type = %q, want %q", env.Type, tc.want)
			}
		})
	}
}

func TestDecodeEnvelopeRejectsMalformedJSON(t *testing.T) {
	if _, err := DecodeEnvelope([]byte(`{not json`)); err == nil {
		t.Fatal("DecodeEnvelope on malformed payload succeeded, want error")
	}
}

func TestSignedUpEventLegacyAuthID(t *testing.T) {
	var ev SignedUpEvent
	payload := `{"auth0Id":"auth0|legacy","email":"a@b.c"}`
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := ev.AuthID(); got != "auth0|legacy" {
		t.Fatalf("AuthID = %q, want auth0|legacy", got)
	}

	payload = `{"authUserId":"auth0|new","auth0Id":"auth0|legacy"}`
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := ev.AuthID(); got != "auth0|new" {
		t.Fatalf("AuthID = %q, want auth0|new", got)
	}
}

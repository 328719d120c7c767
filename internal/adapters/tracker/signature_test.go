package tracker

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPayload(t *testing.T) {
	body := []byte(`{"event":"taskUpdated","task_id":"abc123"}`)

	t.Run("valid signature accepted", func(t *testing.T) {
		v := NewVerifier("topsecret")
		if err := v.VerifyPayload(body, sign("topsecret", body)); err != nil {
			t.Fatalf("valid signature rejected: %v", err)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		v := NewVerifier("topsecret")
		if err := v.VerifyPayload(body, sign("othersecret", body)); err == nil {
			t.Fatal("signature from wrong secret accepted")
		}
	})

	t.Run("tampered body rejected", func(t *testing.T) {
		v := NewVerifier("topsecret")
		sig := sign("topsecret", body)
		tampered := append([]byte(nil), body...)
		tampered[0] = '['
		if err := v.VerifyPayload(tampered, sig); err == nil {
			t.Fatal("tampered body accepted")
		}
	})

	t.Run("empty signature rejected", func(t *testing.T) {
		v := NewVerifier("topsecret")
		if err := v.VerifyPayload(body, ""); err == nil {
			t.Fatal("empty signature accepted")
		}
	})

	t.Run("no secret configured rejected", func(t *testing.T) {
		v := NewVerifier("")
		if err := v.VerifyPayload(body, sign("", body)); err == nil {
			t.Fatal("verifier without secret accepted a payload")
		}
	})
}

func TestCustomFieldValueString(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"https://intake.example.com/form/1"`, "https://intake.example.com/form/1"},
		{"number", `42`, "42"},
		{"bool", `true`, "true"},
		{"null", `null`, ""},
		{"empty", ``, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := CustomField{Value: []byte(tc.raw)}
			if got := f.ValueString(); got != tc.want {
				t.Fatalf("ValueString(%s) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "caseflow/internal/platform/errors"
)

type searchBody struct {
	Query string `json:"query" validate:"required,min=2"`
	Limit int    `json:"limit" validate:"omitempty,max=50"`
}

func postJSON(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestParseJSONValid(t *testing.T) {
	got, err := ParseJSON[searchBody](postJSON(`{"query":"maria","limit":5}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.Query != "maria" || got.Limit != 5 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSONValidationCarriesField(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing required", `{"limit":5}`, "query"},
		{"over max", `{"query":"maria","limit":500}`, "limit"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON[searchBody](postJSON(tc.body))
			if err == nil {
				t.Fatal("expected validation error")
			}
			e, ok := perr.As(err)
			if !ok {
				t.Fatalf("error type %T", err)
			}
			if e.Code() != perr.ErrorCodeValidation {
				t.Fatalf("code = %d", e.Code())
			}
			if e.Field() != tc.field {
				t.Fatalf("field = %q, want %q", e.Field(), tc.field)
			}
			if w := perr.WireFrom(err); w.Field != tc.field {
				t.Fatalf("wire field = %q, want %q", w.Field, tc.field)
			}
		})
	}
}

func TestParseJSONRejectsUnknownKeys(t *testing.T) {
	_, err := ParseJSON[searchBody](postJSON(`{"query":"maria","bogus":1}`))
	if err == nil {
		t.Fatal("expected unknown field error")
	}
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeJSON {
		t.Fatalf("err = %v", err)
	}
}

func TestParseJSONEmptyBody(t *testing.T) {
	_, err := ParseJSON[searchBody](postJSON(""))
	if err == nil {
		t.Fatal("expected empty body error")
	}
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeJSON {
		t.Fatalf("err = %v", err)
	}
}

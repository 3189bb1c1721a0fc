package validators

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
)

type samplePayload struct {
	Email  string `json:"email" validate:"required,email"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
}

func newJSONRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSONBodyValid(t *testing.T) {
	var dst samplePayload
	err := DecodeJSONBody(newJSONRequest(t, `{"email":"a@b.dev","rating":4}`), &dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst.Email != "a@b.dev" || dst.Rating != 4 {
		t.Fatalf("unexpected payload: %+v", dst)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var dst samplePayload
	err := DecodeJSONBody(newJSONRequest(t, `{"email":"a@b.dev","rating":4,"extra":true}`), &dst)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyValidatesFields(t *testing.T) {
	var dst samplePayload
	err := DecodeJSONBody(newJSONRequest(t, `{"email":"not-an-email","rating":9}`), &dst)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if _, ok := details["email"]; !ok {
		t.Fatalf("expected email detail keyed by json tag, got %v", details)
	}
	if _, ok := details["rating"]; !ok {
		t.Fatalf("expected rating detail, got %v", details)
	}
}

func TestDecodeJSONBodyEmptyBody(t *testing.T) {
	var dst samplePayload
	err := DecodeJSONBody(newJSONRequest(t, ``), &dst)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=15", nil)
	got, err := ParseQueryInt(req, "limit", 25)
	if err != nil || got != 15 {
		t.Fatalf("expected 15, got %d err %v", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	got, err = ParseQueryInt(req, "limit", 25)
	if err != nil || got != 25 {
		t.Fatalf("expected fallback 25, got %d err %v", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/?limit=abc", nil)
	if _, err = ParseQueryInt(req, "limit", 25); err == nil {
		t.Fatal("expected error for non-integer limit")
	}
}

func TestParseQueryFloat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?min_rating=3.5", nil)
	got, err := ParseQueryFloat(req, "min_rating", 0)
	if err != nil || got != 3.5 {
		t.Fatalf("expected 3.5, got %v err %v", got, err)
	}
}

func TestParseUUIDParam(t *testing.T) {
	if _, err := ParseUUIDParam("not-a-uuid", "supplierID"); err == nil {
		t.Fatal("expected error for malformed uuid")
	}
	if _, err := ParseUUIDParam("7b68eafd-9f4c-4dcb-8f23-1a9a2f0d1b11", "supplierID"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

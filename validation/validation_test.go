package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/picoview/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "web-1")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("name", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorName(t *testing.T) {
	tests := []struct {
		value   string
		wantErr string
	}{
		{"node-a", ""},
		{"", "is required"},
		{"a/b", "must not contain path separators"},
		{`a\b`, "must not contain path separators"},
		{strings.Repeat("x", 254), "253 characters or less"},
	}
	for _, tc := range tests {
		v := New().Name("node", tc.value)
		if tc.wantErr == "" {
			if v.HasErrors() {
				t.Errorf("expected no error for %q, got %v", tc.value, v.Errors())
			}
			continue
		}
		if !v.HasErrors() {
			t.Errorf("expected error for %q", tc.value)
			continue
		}
		if msg := v.Errors()[0].Message; !strings.Contains(msg, tc.wantErr) {
			t.Errorf("expected message containing %q, got %q", tc.wantErr, msg)
		}
	}
}

func TestValidatorOneOf(t *testing.T) {
	v := New().OneOf("output", "table", []string{"table", "json"})
	if v.HasErrors() {
		t.Error("expected no errors for allowed value")
	}

	v2 := New().OneOf("output", "xml", []string{"table", "json"})
	if !v2.HasErrors() {
		t.Fatal("expected error for disallowed value")
	}
	if !strings.Contains(v2.Errors()[0].Message, "table, json") {
		t.Errorf("expected allowed values in message, got %q", v2.Errors()[0].Message)
	}

	v3 := New().OneOf("output", "", []string{"table"})
	if v3.HasErrors() {
		t.Error("expected empty value to be skipped")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New().Custom(true, "field", "should not appear")
	if v.HasErrors() {
		t.Error("expected no errors for true condition")
	}

	v2 := New().Custom(false, "field", "custom error")
	if !v2.HasErrors() {
		t.Fatal("expected error for false condition")
	}
	if v2.Errors()[0].Message != "custom error" {
		t.Errorf("expected 'custom error', got %q", v2.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	if appErr := New().Required("name", "web").Validate(); appErr != nil {
		t.Error("expected nil for valid input")
	}

	appErr := New().Required("name", "").Required("image", "").Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", errors.ErrCodeInvalidInput, appErr.Code)
	}
	if appErr.Details == nil {
		t.Fatal("expected details in error")
	}
	if !strings.Contains(appErr.Message, "name") || !strings.Contains(appErr.Message, "image") {
		t.Errorf("expected both fields in message, got %q", appErr.Message)
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Required("name", "web").Name("name", "web").OneOf("output", "json", []string{"json"})
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

type podInput struct {
	Name  string   `json:"name" validate:"required,podname"`
	Image string   `json:"image" validate:"required"`
	Ports []string `json:"ports" validate:"dive,portmap"`
	Env   []string `json:"env" validate:"dive,envvar"`
}

func TestStructValidateValid(t *testing.T) {
	err := Validate(podInput{
		Name:  "web-1",
		Image: "nginx:1.27",
		Ports: []string{"8080:80"},
		Env:   []string{"MODE=prod", "EMPTY="},
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	err := Validate(podInput{
		Name:  "Web_1",
		Ports: []string{"80"},
		Env:   []string{"1BAD=x"},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected *AppError, got %T", err)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected []FieldError details, got %T", appErr.Details["fields"])
	}
	if len(fields) != 4 {
		t.Errorf("expected 4 field errors, got %d: %v", len(fields), fields)
	}
	for _, want := range []string{"name", "image", "ports[0]", "env[0]"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got %q", want, err.Error())
		}
	}
}

func TestStructValidateURL(t *testing.T) {
	type api struct {
		BaseAddress string `validate:"required,url"`
	}
	if err := Validate(api{BaseAddress: "http://localhost:5000"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	err := Validate(api{BaseAddress: "not a url"})
	if err == nil {
		t.Fatal("expected error for invalid url")
	}
	if !strings.Contains(err.Error(), "base_address: must be a valid URL") {
		t.Errorf("expected snake_case field name in message, got %q", err.Error())
	}
}

func TestIsPortMapping(t *testing.T) {
	tests := map[string]bool{
		"8080:80":   true,
		"1:65535":   true,
		"0:80":      false,
		"8080:":     false,
		"8080":      false,
		"80:65536":  false,
		"http:80":   false,
		"8080:80:1": false,
	}
	for in, want := range tests {
		if got := IsPortMapping(in); got != want {
			t.Errorf("IsPortMapping(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestIsPodName(t *testing.T) {
	tests := map[string]bool{
		"web":      true,
		"web-1.v2": true,
		"a":        true,
		"-web":     false,
		"web-":     false,
		"Web":      false,
		"":         false,
	}
	for in, want := range tests {
		if got := IsPodName(in); got != want {
			t.Errorf("IsPodName(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestRequiredFunc(t *testing.T) {
	if err := Required("name", "value"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Required("name", ""); err == nil {
		t.Error("expected error for empty required field")
	}
}

func TestNameFunc(t *testing.T) {
	if err := Name("pod", "web"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Name("pod", "../etc"); err == nil {
		t.Error("expected error for name with separator")
	}
}

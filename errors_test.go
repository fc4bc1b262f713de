package booksclient

import (
	"errors"
	"strings"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		code   ErrorCode
	}{
		{401, ErrCodeAuth},
		{403, ErrCodeAuth},
		{404, ErrCodeNotFound},
		{429, ErrCodeRateLimit},
		{400, ErrCodeValidation},
		{422, ErrCodeValidation},
		{500, ErrCodeServer},
		{503, ErrCodeServer},
	}

	for _, tt := range tests {
		e := classifyStatus(tt.status, nil)
		if e == nil {
			t.Fatalf("status %d: expected error", tt.status)
		}
		if e.Code != tt.code {
			t.Errorf("status %d: expected code %s, got %s", tt.status, tt.code, e.Code)
		}
		if e.StatusCode != tt.status {
			t.Errorf("status %d: wrong status on error: %d", tt.status, e.StatusCode)
		}
	}

	for _, status := range []int{200, 201, 204} {
		if e := classifyStatus(status, nil); e != nil {
			t.Errorf("status %d: expected nil, got %v", status, e)
		}
	}
}

func TestClassifyStatus_FaultDetail(t *testing.T) {
	body := []byte(`{"Fault":{"type":"ValidationFault","Error":[{"Message":"Duplicate Name Exists Error","Detail":"The name supplied already exists.","code":"6240","element":"DisplayName"}]},"time":"2026-08-30T10:00:00Z"}`)

	e := classifyStatus(400, body)
	if e.Fault == nil {
		t.Fatal("expected parsed fault")
	}
	if e.Fault.Type != "ValidationFault" {
		t.Errorf("unexpected fault type %q", e.Fault.Type)
	}
	if len(e.Fault.Errors) != 1 || e.Fault.Errors[0].Code != "6240" {
		t.Errorf("unexpected fault errors: %#v", e.Fault.Errors)
	}
	if e.Message != "Duplicate Name Exists Error" {
		t.Errorf("fault message should become the error message, got %q", e.Message)
	}
}

func TestClassifyStatus_NonJSONBody(t *testing.T) {
	e := classifyStatus(500, []byte("<html>Internal Server Error</html>"))
	if e.Fault != nil {
		t.Errorf("expected no fault for non-JSON body, got %#v", e.Fault)
	}
	if e.Message != "HTTP 500" {
		t.Errorf("unexpected message %q", e.Message)
	}
}

func TestError_String(t *testing.T) {
	e := classifyStatus(404, nil)
	if got := e.Error(); !strings.Contains(got, "not_found") || !strings.Contains(got, "404") {
		t.Errorf("unexpected error string: %q", got)
	}

	cfg := NewConfigurationError("must set either token or access_token")
	if got := cfg.Error(); !strings.Contains(got, "configuration") {
		t.Errorf("unexpected error string: %q", got)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	e := NewConnectionError(cause)
	if !errors.Is(e, cause) {
		t.Error("expected errors.Is to see the cause")
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		err  error
		pred func(error) bool
	}{
		{NewConfigurationError("x"), IsConfiguration},
		{NewInvalidArgumentError("x"), IsInvalidArgument},
		{NewTimeoutError(errors.New("x")), IsTimeout},
		{NewConnectionError(errors.New("x")), IsConnection},
		{classifyStatus(401, nil), IsAuth},
		{classifyStatus(404, nil), IsNotFound},
		{classifyStatus(429, nil), IsRateLimit},
		{classifyStatus(500, nil), IsServerError},
		{NewDecodeError(errors.New("x"), nil), IsDecode},
	}

	for i, tt := range tests {
		if !tt.pred(tt.err) {
			t.Errorf("case %d: predicate rejected %v", i, tt.err)
		}
	}

	if IsConfiguration(classifyStatus(500, nil)) {
		t.Error("predicate matched the wrong code")
	}
	if IsAuth(errors.New("plain")) {
		t.Error("predicate matched a plain error")
	}
}

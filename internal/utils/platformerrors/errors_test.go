package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestNewErrorWrapsCause(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := NewError(context.Background(), LayerRepository, ErrorTypeDatabaseError, "failed to save message", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}

	pe := GetPlatformError(err)
	if pe == nil {
		t.Fatal("expected a platform error")
	}
	if pe.Type != ErrorTypeDatabaseError || pe.Layer != LayerRepository {
		t.Fatalf("unexpected classification: %s/%s", pe.Layer, pe.Type)
	}
}

func TestIsType(t *testing.T) {
	err := NewError(context.Background(), LayerDomain, ErrorTypeValidation, "user id is required", nil)

	if !IsType(err, ErrorTypeValidation) {
		t.Fatal("expected validation type match")
	}
	if IsType(err, ErrorTypeNotFound) {
		t.Fatal("expected type mismatch for not-found")
	}
	if IsType(errors.New("plain"), ErrorTypeValidation) {
		t.Fatal("expected plain error to match no type")
	}
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	cases := map[ErrorType]int{
		ErrorTypeNotFound:      http.StatusNotFound,
		ErrorTypeValidation:    http.StatusBadRequest,
		ErrorTypeConflict:      http.StatusConflict,
		ErrorTypeUnauthorized:  http.StatusUnauthorized,
		ErrorTypeForbidden:     http.StatusForbidden,
		ErrorTypeInternal:      http.StatusInternalServerError,
		ErrorTypeDatabaseError: http.StatusInternalServerError,
	}
	for errType, want := range cases {
		if got := ErrorTypeToHTTPStatus(errType); got != want {
			t.Fatalf("%s: expected %d, got %d", errType, want, got)
		}
	}
}

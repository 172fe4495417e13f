package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestMapError(t *testing.T) {
	cause := errors.New("collector destroyed")

	err := MapError("ingest", cause, 5030, MsgUnavailable, http.StatusServiceUnavailable)
	if err == nil {
		t.Fatal("MapError() returned nil")
	}
	if err.Message != "ingest is not accepting requests" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.HTTPStatus != http.StatusServiceUnavailable || err.Code != 5030 {
		t.Errorf("status/code = %d/%d", err.HTTPStatus, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("MapError() should wrap the cause")
	}
	if err.Error() != "ingest is not accepting requests: collector destroyed" {
		t.Errorf("Error() = %q", err.Error())
	}

	if MapError("ingest", nil, 1, MsgPushFailed, http.StatusBadRequest) != nil {
		t.Error("MapError(nil) should be nil")
	}
}

func TestNewError_DefaultStatus(t *testing.T) {
	err := NewError("ingest", 1, MsgProcessFailed, 0, nil)

	if err.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("HTTPStatus = %d, want 500", err.HTTPStatus)
	}
	if err.Error() != "ingest failed to process" {
		t.Errorf("Error() = %q", err.Error())
	}

	var target *AppError
	if !errors.As(error(err), &target) {
		t.Error("errors.As should find *AppError")
	}
}

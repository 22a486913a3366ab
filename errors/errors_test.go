package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestInvalidSource(t *testing.T) {
	cause := stderrors.New("cell disposed")
	err := InvalidSource(cause)

	if err.Code != ErrCodeInvalidSource {
		t.Errorf("code = %s, want %s", err.Code, ErrCodeInvalidSource)
	}
	if err.Retryable {
		t.Error("InvalidSource should not be retryable")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to match the cause")
	}
}

func TestInvalidDelay_Details(t *testing.T) {
	err := InvalidDelay(-5 * time.Millisecond)

	if err.Code != ErrCodeInvalidDelay {
		t.Errorf("code = %s, want %s", err.Code, ErrCodeInvalidDelay)
	}
	if err.Details["delay"] != "-5ms" {
		t.Errorf("delay detail = %v, want -5ms", err.Details["delay"])
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("http status = %d, want %d", err.HTTPStatus, http.StatusBadRequest)
	}
}

func TestSourceDisposed_Message(t *testing.T) {
	err := SourceDisposed("search cell")
	if err.Message != "The search cell has been disposed." {
		t.Errorf("unexpected message: %s", err.Message)
	}
	if err.Details["target"] != "search cell" {
		t.Errorf("target detail = %v", err.Details["target"])
	}
}

func TestError_WithCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Storage(nil).WithCause(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped cause to match")
	}
	want := fmt.Sprintf("%s: %s (cause: %v)", err.Code, err.Message, cause)
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestError_WithoutCause(t *testing.T) {
	err := NotFound("cell", "search")
	want := fmt.Sprintf("%s: %s", err.Code, err.Message)
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRetryableDetection(t *testing.T) {
	if !Storage(nil).Retryable {
		t.Error("storage errors should be retryable")
	}
	if New(ErrCodeInvalidSource, "x", http.StatusUnprocessableEntity).Retryable {
		t.Error("invalid source should not be retryable")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("wrapping: %w", InvalidSource(nil))
	if !HasCode(err, ErrCodeInvalidSource) {
		t.Error("expected HasCode to see through wrapping")
	}
	if HasCode(err, ErrCodeNotFound) {
		t.Error("HasCode matched the wrong code")
	}
	if HasCode(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("HasCode matched a non-AppError")
	}
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(fmt.Errorf("outer: %w", MissingField("name")))
	if !ok {
		t.Fatal("expected AsAppError to succeed")
	}
	if appErr.Code != ErrCodeMissingField {
		t.Errorf("code = %s, want %s", appErr.Code, ErrCodeMissingField)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("AsAppError should fail for non-AppError")
	}
}

func TestToResponse(t *testing.T) {
	err := InvalidInput("delay", "must be a duration")
	resp := err.ToResponse()

	if resp.Error.Code != ErrCodeInvalidInput {
		t.Errorf("response code = %s, want %s", resp.Error.Code, ErrCodeInvalidInput)
	}
	if resp.Error.Details["field"] != "delay" {
		t.Errorf("field detail = %v, want delay", resp.Error.Details["field"])
	}
}

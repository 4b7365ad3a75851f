package errors

import (
	"fmt"
	"testing"
)

func TestSnipError_Error(t *testing.T) {
	err := &SnipError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "snippet not found",
	}

	expected := "NOT_FOUND: snippet not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("query is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "query is required" {
		t.Errorf("Message = %q, want %q", err.Message, "query is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("Drums/kick")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["path"] != "Drums/kick" {
		t.Errorf("Details[path] = %v, want %q", err.Details["path"], "Drums/kick")
	}
}

func TestNewInvalidDocument(t *testing.T) {
	t.Run("with location", func(t *testing.T) {
		err := NewInvalidDocument("Drums/kick", "snippet missing text field")

		if err.Code != ErrInvalidDocument {
			t.Errorf("Code = %q, want %q", err.Code, ErrInvalidDocument)
		}
		if err.Status != 422 {
			t.Errorf("Status = %d, want 422", err.Status)
		}
		if err.Details["location"] != "Drums/kick" {
			t.Errorf("Details[location] = %v, want %q", err.Details["location"], "Drums/kick")
		}
	})

	t.Run("root location", func(t *testing.T) {
		err := NewInvalidDocument("", "document is not a folder")
		if err.Message != "invalid document at (root): document is not a folder" {
			t.Errorf("Message = %q", err.Message)
		}
	})
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := NewInternal(fmt.Errorf("template parse failed"))

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		if err.Message != "template parse failed" {
			t.Errorf("Message = %q, want %q", err.Message, "template parse failed")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)
		if err.Message != "internal error" {
			t.Errorf("Message = %q, want %q", err.Message, "internal error")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		err := NewNotFound("test")
		if !Is(err, ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		err := NewNotFound("test")
		if Is(err, ErrInvalidRequest) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("non-SnipError", func(t *testing.T) {
		err := fmt.Errorf("plain error")
		if Is(err, ErrNotFound) {
			t.Error("Is() = true, want false for non-SnipError")
		}
	})

	t.Run("wrapped SnipError", func(t *testing.T) {
		inner := NewInvalidDocument("A/B", "bad discriminator")
		wrapped := fmt.Errorf("load library: %w", inner)
		if !Is(wrapped, ErrInvalidDocument) {
			t.Error("Is() = false, want true for wrapped SnipError")
		}
		if Is(wrapped, ErrNotFound) {
			t.Error("Is() = true, want false for wrong code on wrapped SnipError")
		}
	})
}

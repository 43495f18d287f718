package errors

import (
	"errors"
	"testing"
)

type customError struct {
	Msg string
}

func (e customError) Error() string { return e.Msg }

func TestNew(t *testing.T) {
	err := New("test error")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "test error" {
		t.Errorf("expected 'test error', got '%s'", err.Error())
	}
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(baseErr, "wrapped")
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		expected := "wrapped: base error"
		if wrapped.Error() != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrapped.Error())
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrap nil error", func(t *testing.T) {
		wrapped := Wrap(nil, "wrapped")
		if wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrap with formatted message", func(t *testing.T) {
		wrapped := Wrapf(baseErr, "license %s", "abc")
		expected := "license abc: base error"
		if wrapped.Error() != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrapped.Error())
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrap nil error", func(t *testing.T) {
		if wrapped := Wrapf(nil, "license %s", "abc"); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestIs(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "token not found")
	if !Is(wrapped, ErrNotFound) {
		t.Error("expected Is to match ErrNotFound")
	}
	if Is(wrapped, ErrConflict) {
		t.Error("expected Is not to match ErrConflict")
	}
}

func TestAs(t *testing.T) {
	err := Wrap(customError{Msg: "custom"}, "context")

	var target customError
	if !As(err, &target) {
		t.Fatal("expected As to find customError")
	}
	if target.Msg != "custom" {
		t.Errorf("expected 'custom', got '%s'", target.Msg)
	}
}

func TestJoin(t *testing.T) {
	custody := errors.New("key custody")
	decrypt := errors.New("decryption failed")

	joined := Join(custody, decrypt)
	if !Is(joined, custody) || !Is(joined, decrypt) {
		t.Error("expected joined error to match both members")
	}
	if Join() != nil {
		t.Error("expected Join without errors to return nil")
	}
}

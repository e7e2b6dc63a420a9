package domain

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "message only",
			err: &Error{
				Code:    EINVALID,
				Message: "invalid input",
			},
			expected: "invalid input",
		},
		{
			name: "with operation",
			err: &Error{
				Code:    EINVALID,
				Op:      "cart.update",
				Message: "invalid input",
			},
			expected: "cart.update: invalid input",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EINTERNAL,
				Op:      "order.create",
				Message: "failed to save",
				Err:     errors.New("database connection failed"),
			},
			expected: "order.create: failed to save: database connection failed",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to save",
				Err:     errors.New("database connection failed"),
			},
			expected: "failed to save: database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:    EINTERNAL,
		Message: "wrapped",
		Err:     underlying,
	}

	if unwrapped := err.Unwrap(); unwrapped != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", unwrapped, underlying)
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"domain error", Invalid("op", "bad"), EINVALID},
		{"wrapped domain error", Internal(errors.New("db down"), "op", "failed"), EINTERNAL},
		{"plain error", errors.New("something"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage_HidesInternalDetails(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"), "order.create", "failed to save order")

	msg := ErrorMessage(err)
	if msg != "An internal error occurred. Please try again later." {
		t.Errorf("ErrorMessage() leaked internal details: %q", msg)
	}

	if got := ErrorMessage(NotFound("order.get", "order", "42")); got != "order not found: 42" {
		t.Errorf("ErrorMessage() = %q", got)
	}
}

func TestStockError_CarriesCeiling(t *testing.T) {
	err := StockError("cart.update", 7, "Kettle", 5, 2)

	if ErrorCode(err) != ECONFLICT {
		t.Errorf("ErrorCode() = %q, want %q", ErrorCode(err), ECONFLICT)
	}

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatal("errors.As should find InsufficientStockError")
	}
	if stockErr.Available != 2 || stockErr.Requested != 5 || stockErr.ProductID != 7 {
		t.Errorf("unexpected stock error fields: %+v", stockErr)
	}
}

package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindTransient},
		{"plain error", errors.New("connection refused"), KindTransient},
		{"malformed", &MalformedEnvelopeError{Reason: "missing payload"}, KindMalformedEnvelope},
		{"validation", &ValidationError{EntityType: "Customer", Errors: []string{"Customer 'name' is required"}}, KindValidation},
		{"not found", &NotFoundError{EntityType: "Order", ID: 9}, KindNotFound},
		{"unroutable", &UnroutableError{EntityType: "Widget"}, KindUnroutable},
		{"wrapped malformed", fmt.Errorf("decode: %w", &MalformedEnvelopeError{Reason: "x"}), KindMalformedEnvelope},
		{"wrapped validation", fmt.Errorf("handle: %w", &ValidationError{EntityType: "Product"}), KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindTransient, false},
		{KindMalformedEnvelope, true},
		{KindValidation, true},
		{KindNotFound, true},
		{KindUnroutable, false},
	}

	for _, tt := range tests {
		if got := tt.kind.Terminal(); got != tt.want {
			t.Errorf("%v.Terminal() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindTransient, "transient"},
		{KindMalformedEnvelope, "malformed_envelope"},
		{KindValidation, "validation_failed"},
		{KindNotFound, "not_found"},
		{KindUnroutable, "unroutable"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValidationErrorJoinsFieldErrors(t *testing.T) {
	err := &ValidationError{
		EntityType: "Order",
		Errors:     []string{"Order 'customerId' is required", "Order 'supplierId' is required"},
	}
	want := "Order payload failed validation: Order 'customerId' is required; Order 'supplierId' is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

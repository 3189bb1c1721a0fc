package enums

import "fmt"

// PaymentIntentStatus tracks the payment flow state machine. Transitions
// only ever move forward: initiated -> awaiting_confirmation ->
// succeeded | failed.
type PaymentIntentStatus string

const (
	PaymentIntentStatusInitiated            PaymentIntentStatus = "initiated"
	PaymentIntentStatusAwaitingConfirmation PaymentIntentStatus = "awaiting_confirmation"
	PaymentIntentStatusSucceeded            PaymentIntentStatus = "succeeded"
	PaymentIntentStatusFailed               PaymentIntentStatus = "failed"
)

var validPaymentIntentStatuses = []PaymentIntentStatus{
	PaymentIntentStatusInitiated,
	PaymentIntentStatusAwaitingConfirmation,
	PaymentIntentStatusSucceeded,
	PaymentIntentStatusFailed,
}

// String implements fmt.Stringer.
func (p PaymentIntentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentIntentStatus.
func (p PaymentIntentStatus) IsValid() bool {
	for _, candidate := range validPaymentIntentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the intent can no longer change state.
func (p PaymentIntentStatus) IsTerminal() bool {
	return p == PaymentIntentStatusSucceeded || p == PaymentIntentStatusFailed
}

// ParsePaymentIntentStatus converts raw input into a PaymentIntentStatus.
func ParsePaymentIntentStatus(value string) (PaymentIntentStatus, error) {
	for _, candidate := range validPaymentIntentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment intent status %q", value)
}

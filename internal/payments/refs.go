package payments

import (
	"strings"

	"github.com/google/uuid"
)

func newPaymentRef() string {
	return "PAY" + refSuffix()
}

func newTransactionRef() string {
	return "TXN" + refSuffix()
}

func refSuffix() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:14])
}

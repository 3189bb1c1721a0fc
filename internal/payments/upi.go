package payments

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// BuildUPILink renders a upi://pay deep link for the given amount. UPI
// amounts travel in rupees with two decimals, so paise get converted here
// and nowhere else.
func BuildUPILink(payeeVPA, payeeName string, amountPaise int64, paymentRef string) string {
	amount := decimal.NewFromInt(amountPaise).Div(decimal.NewFromInt(100)).StringFixed(2)

	params := url.Values{}
	params.Set("pa", payeeVPA)
	params.Set("pn", payeeName)
	params.Set("am", amount)
	params.Set("cu", "INR")
	params.Set("tr", paymentRef)

	var link strings.Builder
	link.WriteString("upi://pay?")
	link.WriteString(params.Encode())
	return link.String()
}

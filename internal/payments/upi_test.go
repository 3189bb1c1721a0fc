package payments

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildUPILink(t *testing.T) {
	link := BuildUPILink("rasoilink@upi", "RasoiLink", 123450, "PAYABC123")

	if !strings.HasPrefix(link, "upi://pay?") {
		t.Fatalf("unexpected scheme: %q", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	q := parsed.Query()
	if q.Get("pa") != "rasoilink@upi" {
		t.Fatalf("wrong payee vpa: %q", q.Get("pa"))
	}
	if q.Get("am") != "1234.50" {
		t.Fatalf("expected rupees with two decimals, got %q", q.Get("am"))
	}
	if q.Get("cu") != "INR" {
		t.Fatalf("expected INR currency, got %q", q.Get("cu"))
	}
	if q.Get("tr") != "PAYABC123" {
		t.Fatalf("wrong payment ref: %q", q.Get("tr"))
	}
}

func TestBuildUPILinkSmallAmounts(t *testing.T) {
	link := BuildUPILink("rasoilink@upi", "RasoiLink", 5, "PAYX")
	if !strings.Contains(link, "am=0.05") {
		t.Fatalf("expected am=0.05, got %q", link)
	}
}

func TestRefPrefixes(t *testing.T) {
	pay := newPaymentRef()
	txn := newTransactionRef()
	if !strings.HasPrefix(pay, "PAY") || len(pay) != 17 {
		t.Fatalf("unexpected payment ref %q", pay)
	}
	if !strings.HasPrefix(txn, "TXN") || len(txn) != 17 {
		t.Fatalf("unexpected transaction ref %q", txn)
	}
	if pay == txn {
		t.Fatalf("refs must be unique")
	}
}

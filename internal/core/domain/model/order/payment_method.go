package order

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// PaymentMethod identifies how the customer pays for the order.
// Cash orders go through cash reconciliation before dispatch; card and online
// payments are settled outside the dispatch core.
type PaymentMethod int

const (
	// PaymentUnknown represents an invalid or undefined payment method.
	PaymentUnknown PaymentMethod = iota

	// PaymentCash means the customer pays the courier in banknotes on delivery.
	PaymentCash

	// PaymentCard means the customer pays by card on delivery.
	PaymentCard

	// PaymentOnline means the order was prepaid through the storefront.
	PaymentOnline
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentUnknown: "Unknown",
		PaymentCash:    "Cash",
		PaymentCard:    "Card",
		PaymentOnline:  "Online",
	}
}

// PaymentMethodFromString parses a payment method name, case-insensitively.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, name := range getPaymentMethodStrings() {
		if method != PaymentUnknown && strings.EqualFold(name, s) {
			return method, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment method",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks the payment method is one of the supported values.
func (p PaymentMethod) Validate() error {
	if p == PaymentUnknown {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid payment method", p))
	}
	if _, ok := getPaymentMethodStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid payment method", p))
	}
	return nil
}

// IsCash reports whether the order is settled in cash on delivery.
func (p PaymentMethod) IsCash() bool {
	return p == PaymentCash
}

// String returns the human-readable name of the payment method.
func (p PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

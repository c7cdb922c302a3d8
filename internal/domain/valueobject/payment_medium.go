package valueobject

import "fmt"

// PaymentMedium tags how a payment was collected. It is carried on the
// payment record for cash-register reporting only and never influences how
// the amount is allocated.
type PaymentMedium struct {
	value string
}

const (
	paymentMediumCash       = "CASH"
	paymentMediumDebitCard  = "DEBIT_CARD"
	paymentMediumCreditCard = "CREDIT_CARD"
	paymentMediumTransfer   = "TRANSFER"
	paymentMediumYape       = "WALLET_YAPE"
	paymentMediumPlin       = "WALLET_PLIN"
)

var (
	PaymentMediumCash       = PaymentMedium{value: paymentMediumCash}
	PaymentMediumDebitCard  = PaymentMedium{value: paymentMediumDebitCard}
	PaymentMediumCreditCard = PaymentMedium{value: paymentMediumCreditCard}
	PaymentMediumTransfer   = PaymentMedium{value: paymentMediumTransfer}
	PaymentMediumYape       = PaymentMedium{value: paymentMediumYape}
	PaymentMediumPlin       = PaymentMedium{value: paymentMediumPlin}
)

var validPaymentMedia = map[string]PaymentMedium{
	paymentMediumCash:       PaymentMediumCash,
	paymentMediumDebitCard:  PaymentMediumDebitCard,
	paymentMediumCreditCard: PaymentMediumCreditCard,
	paymentMediumTransfer:   PaymentMediumTransfer,
	paymentMediumYape:       PaymentMediumYape,
	paymentMediumPlin:       PaymentMediumPlin,
}

// NewPaymentMedium creates a PaymentMedium from a raw string.
func NewPaymentMedium(s string) (PaymentMedium, error) {
	v, ok := validPaymentMedia[s]
	if !ok {
		return PaymentMedium{}, fmt.Errorf("invalid payment medium: %q", s)
	}
	return v, nil
}

// String returns the string representation of the medium.
func (m PaymentMedium) String() string { return m.value }

// IsZero returns true if the medium has not been initialised.
func (m PaymentMedium) IsZero() bool { return m.value == "" }

// IsCash returns true for over-the-counter cash payments, the only medium
// subject to legally mandated cash rounding.
func (m PaymentMedium) IsCash() bool { return m.value == paymentMediumCash }

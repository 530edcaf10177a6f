package payments

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const providerIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const providerIDLength = 14

// newProviderID mints a Razorpay-shaped identifier such as
// order_Jx8K2mQp9aB3cD or pay_Qw4Rt7Yu2iO9pL. No gateway is called; the
// shape is kept so a real order-creation call can slot in unchanged.
func newProviderID(prefix string) (string, error) {
	max := big.NewInt(int64(len(providerIDAlphabet)))
	buf := make([]byte, providerIDLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate provider id: %w", err)
		}
		buf[i] = providerIDAlphabet[n.Int64()]
	}
	return prefix + "_" + string(buf), nil
}

// NewOrderID mints a provider order identifier.
func NewOrderID() (string, error) {
	return newProviderID("order")
}

// NewPaymentID mints a provider payment identifier.
func NewPaymentID() (string, error) {
	return newProviderID("pay")
}

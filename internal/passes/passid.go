package passes

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

const passIDPrefix = "OSS-EV-"

// passIDAlphabet has 32 symbols; 0, 1, I and O are excluded so a pass ID
// read over the phone or typed from a printout cannot be mistranscribed.
const passIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var passIDPattern = regexp.MustCompile(`^OSS-EV-[A-Z0-9]{8}$`)

// GeneratePassID returns a fresh human-typeable pass identifier drawn from
// a cryptographically secure source.
func GeneratePassID() (string, error) {
	chars := make([]byte, 8)
	max := big.NewInt(int64(len(passIDAlphabet)))
	for i := range chars {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate pass id: %w", err)
		}
		chars[i] = passIDAlphabet[num.Int64()]
	}
	return passIDPrefix + string(chars), nil
}

// VerifyPassFormat reports whether a string looks like a pass ID. Lookups
// are only attempted on well-formed IDs.
func VerifyPassFormat(passID string) bool {
	return passIDPattern.MatchString(passID)
}

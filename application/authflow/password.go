package authflow

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	passwordLength    = 16
	lowercaseAlphabet = "abcdefghijklmnopqrstuvwxyz"
	uppercaseAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitAlphabet     = "0123456789"
	symbolAlphabet    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// GeneratePassword produces a random credential satisfying the provider's
// complexity policy: at least 12 characters with lowercase, uppercase, digit
// and symbol. The password is permanent but never used interactively — the
// account only authenticates through the custom challenge flow.
func GeneratePassword() (string, error) {
	full := lowercaseAlphabet + uppercaseAlphabet + digitAlphabet + symbolAlphabet

	// One character from each required class, the rest from the full set.
	chars := make([]byte, 0, passwordLength)
	for _, alphabet := range []string{lowercaseAlphabet, uppercaseAlphabet, digitAlphabet, symbolAlphabet} {
		c, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < passwordLength {
		c, err := randomChar(full)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	if err := shuffle(chars); err != nil {
		return "", err
	}
	return string(chars), nil
}

func randomChar(alphabet string) (byte, error) {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, err
	}
	return alphabet[i.Int64()], nil
}

func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		b[i], b[j.Int64()] = b[j.Int64()], b[i]
	}
	return nil
}

// PasswordMeetsPolicy reports whether a credential satisfies the minimum
// complexity policy. Exposed for tests and provisioning sanity checks.
func PasswordMeetsPolicy(password string) bool {
	if len(password) < 12 {
		return false
	}
	return strings.ContainsAny(password, lowercaseAlphabet) &&
		strings.ContainsAny(password, uppercaseAlphabet) &&
		strings.ContainsAny(password, digitAlphabet) &&
		strings.ContainsAny(password, symbolAlphabet)
}

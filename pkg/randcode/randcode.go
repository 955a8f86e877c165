package randcode

import (
	"crypto/rand"
	"math/big"
)

var (
	digits   = []rune("0123456789")
	alphanum = []rune("abcdefghijklmnopqrstuvwxyz0123456789")
)

// GenerateNumericCode returns a random numeric code of the given length,
// suitable for one-time passcodes. Leading zeros are allowed.
func GenerateNumericCode(length int) (string, error) {
	return generate(digits, length)
}

// GenerateUniqueString returns a random lowercase alphanumeric string of
// the given length, used as an opaque media folder identifier.
func GenerateUniqueString(length int) (string, error) {
	return generate(alphanum, length)
}

func generate(letters []rune, length int) (string, error) {
	b := make([]rune, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}

		b[i] = letters[n.Int64()]
	}

	return string(b), nil
}

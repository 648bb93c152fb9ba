package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a one-time code
const CodeLength = 6

// codeRange spans the 6-digit decimal codes [100000, 999999]
var codeRange = big.NewInt(900000)

// GenerateCode generates a random 6-digit one-time code used for email
// verification and password resets
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeRange)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

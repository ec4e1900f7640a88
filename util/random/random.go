// Package random provides crypto/rand backed string helpers.
package random

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

const lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"

// Seq generates a random lowercase alphanumeric string of length n.
// Used for slug de-duplication suffixes.
func Seq(n int) string {
	runes := make([]byte, n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(lowerAlnum))))
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		runes[i] = lowerAlnum[idx.Int64()]
	}
	return string(runes)
}

// Hex generates 2*n random hex characters.
func Hex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

// TokenKey returns a 40-character opaque token key.
func TokenKey() string {
	return Hex(20)
}

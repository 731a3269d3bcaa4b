package orders

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomCode(length int) (string, error) {
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		out[i] = codeAlphabet[n.Int64()]
	}
	return string(out), nil
}

// generateOrderNumber builds an ORD-<timestamp>-<random> reference,
// e.g. "ORD-20260901143059-7KQ2XD".
func generateOrderNumber() (string, error) {
	suffix, err := randomCode(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102150405"), suffix), nil
}

// generateTicketCode builds a TKT-<timestamp>-<random> code,
// e.g. "TKT-20260901143059-4H8PQ2ZD".
func generateTicketCode() (string, error) {
	suffix, err := randomCode(8)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("TKT-%s-%s", time.Now().Format("20060102150405"), suffix), nil
}

// Package hash provides password hashing backed by bcrypt.
package hash

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used when none is configured.
const DefaultCost = 10

// BcryptProvider hashes and compares passwords with bcrypt.
type BcryptProvider struct {
	cost int
}

// NewBcryptProvider creates a BcryptProvider. A zero cost selects DefaultCost;
// other values are clamped to the range bcrypt accepts.
func NewBcryptProvider(cost int) *BcryptProvider {
	switch {
	case cost == 0:
		cost = DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptProvider{cost: cost}
}

// Cost returns the effective bcrypt cost.
func (p *BcryptProvider) Cost() int {
	return p.cost
}

// prehash returns the base64 SHA-256 digest of plain. bcrypt only reads the
// first 72 bytes of its input.
func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// GenerateHash returns the bcrypt hash of plain.
func (p *BcryptProvider) GenerateHash(_ context.Context, plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(prehash(plain), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate bcrypt hash: %w", err)
	}
	return string(hashed), nil
}

// CompareHash reports whether plain matches hash. A mismatch is not an error;
// a malformed hash is.
func (p *BcryptProvider) CompareHash(_ context.Context, plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), prehash(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to compare password hash: %w", err)
	}
}

/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package credential

import (
	"errors"
	"fmt"

	"mitei-ledger-go/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// Length is the exact number of digits a credential must have.
const Length = 5

// Validate reports whether credential is exactly Length ASCII digits.
// Leading zeros are allowed, so "00000" is valid.
func Validate(credential string) error {
	if len(credential) != Length {
		return fmt.Errorf("%w: must be %d digits, got %d characters", store.ErrInvalidCredential, Length, len(credential))
	}
	for i := 0; i < len(credential); i++ {
		if credential[i] < '0' || credential[i] > '9' {
			return fmt.Errorf("%w: must contain digits only", store.ErrInvalidCredential)
		}
	}
	return nil
}

// Hasher hashes and verifies credentials with bcrypt.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost, clamped to bcrypt's accepted range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Hash validates credential and returns its bcrypt hash.
func (h *Hasher) Hash(credential string) (string, error) {
	if err := Validate(credential); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), h.cost)
	if err != nil {
		return "", fmt.Errorf("unable to hash credential: %w", err)
	}
	return string(hashed), nil
}

// Verify returns store.ErrInvalidCredential when credential does not match hash.
func (h *Hasher) Verify(hash, credential string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return store.ErrInvalidCredential
	}
	return fmt.Errorf("unable to verify credential: %w", err)
}

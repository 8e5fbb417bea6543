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

package ledger

import (
	"fmt"
	"sync"

	"mitei-ledger-go/internal/credential"
	"mitei-ledger-go/internal/store"

	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.LedgerStore.
var _ store.LedgerStore = (*Service)(nil)

// account is the mutable record owned by the Service. balance is guarded by
// mu; number and credentialHash never change after creation.
type account struct {
	mu             sync.Mutex
	number         string
	credentialHash string
	balance        int64
}

// Service is the in-memory LedgerStore. The index lock only protects the
// accounts map; balance mutations serialize on the per-account lock.
type Service struct {
	mu       sync.RWMutex
	accounts map[string]*account
	hasher   *credential.Hasher
}

func NewService(hasher *credential.Hasher) *Service {
	zap.L().Info("In-memory ledger initialized")
	return &Service{
		accounts: make(map[string]*account),
		hasher:   hasher,
	}
}

// Close is a no-op for the in-memory backend.
func (s *Service) Close() {}

func (s *Service) lookup(accountNumber string) (*account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[accountNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrAccountNotFound, accountNumber)
	}
	return acct, nil
}

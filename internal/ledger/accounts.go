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
	"context"
	"fmt"
	"time"

	"mitei-ledger-go/internal/credential"
	"mitei-ledger-go/internal/models"
	"mitei-ledger-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Service) CreateAccount(_ context.Context, accountNumber, cred string) error {
	if accountNumber == "" {
		return store.ErrInvalidAccountNumber
	}
	if err := credential.Validate(cred); err != nil {
		zap.L().Warn("Rejected account creation", zap.String("account_number", accountNumber), zap.Error(err))
		return err
	}

	// Re-checked under the write lock below.
	if s.exists(accountNumber) {
		return fmt.Errorf("%w: %s", store.ErrDuplicateAccount, accountNumber)
	}

	hash, err := s.hasher.Hash(cred)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountNumber]; ok {
		return fmt.Errorf("%w: %s", store.ErrDuplicateAccount, accountNumber)
	}

	s.accounts[accountNumber] = &account{
		number:         accountNumber,
		credentialHash: hash,
	}

	zap.L().Info("Account created", zap.String("account_number", accountNumber))
	return nil
}

func (s *Service) Authenticate(_ context.Context, accountNumber, cred string) (*models.AccountRef, error) {
	acct, err := s.lookup(accountNumber)
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Verify(acct.credentialHash, cred); err != nil {
		zap.L().Warn("Authentication failed", zap.String("account_number", accountNumber), zap.Error(err))
		return nil, err
	}

	zap.L().Debug("Authenticated account", zap.String("account_number", accountNumber))
	return &models.AccountRef{
		Id:            uuid.New().String(),
		AccountNumber: acct.number,
		IssuedAt:      time.Now().UTC(),
	}, nil
}

func (s *Service) exists(accountNumber string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[accountNumber]
	return ok
}

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

package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mitei-ledger-go/internal/models"
	"mitei-ledger-go/internal/store"

	"go.uber.org/zap"
)

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrSessionExpired = errors.New("session expired")
)

// BankService is the entry point for presentation layers. It owns the
// session table and turns store errors into user-facing results.
type BankService struct {
	ledger      store.LedgerStore
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*models.Session
}

func NewBankService(ledger store.LedgerStore, cfg models.SessionConfig) *BankService {
	return &BankService{
		ledger:      ledger,
		idleTimeout: cfg.IdleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*models.Session),
	}
}

func (s *BankService) HealthCheck(ctx context.Context) error {
	_, err := s.ledger.GetBalance(ctx, "")
	if err != nil && !errors.Is(err, store.ErrAccountNotFound) {
		return fmt.Errorf("ledger health check failed: %w", err)
	}
	return nil
}

// isBusinessError reports whether err is one of the expected, user-recoverable
// ledger outcomes rather than a backend fault.
func isBusinessError(err error) bool {
	for _, target := range []error{
		store.ErrDuplicateAccount,
		store.ErrInvalidAccountNumber,
		store.ErrInvalidCredential,
		store.ErrAccountNotFound,
		store.ErrInvalidAmount,
		store.ErrInsufficientFunds,
		store.ErrInvalidRecipient,
		ErrNotLoggedIn,
		ErrSessionExpired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// failure builds the result for a failed operation. Unexpected errors are
// returned to the caller as well so they can be surfaced or logged.
func failure(op operation, err error) (*models.OperationResult, error) {
	result := &models.OperationResult{Success: false, Error: op.message(err)}
	if isBusinessError(err) {
		return result, nil
	}
	zap.L().Error("Ledger operation failed", zap.String("operation", string(op)), zap.Error(err))
	return result, err
}

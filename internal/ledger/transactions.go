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
	"math"

	"mitei-ledger-go/internal/store"

	"go.uber.org/zap"
)

// Deposit credits amount to the account and returns the new balance.
func (s *Service) Deposit(_ context.Context, accountNumber string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %d", store.ErrInvalidAmount, amount)
	}

	acct, err := s.lookup(accountNumber)
	if err != nil {
		return 0, err
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()

	if acct.balance > math.MaxInt64-amount {
		return 0, fmt.Errorf("%w: %w", store.ErrInvalidAmount, store.ErrAmountTooLarge)
	}
	oldBalance := acct.balance
	acct.balance += amount

	zap.L().Info("Deposit processed",
		zap.String("account_number", accountNumber),
		zap.Int64("amount", amount),
		zap.Int64("old_balance", oldBalance),
		zap.Int64("new_balance", acct.balance))
	return acct.balance, nil
}

// Withdraw debits amount from the account and returns the new balance.
func (s *Service) Withdraw(_ context.Context, accountNumber string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %d", store.ErrInvalidAmount, amount)
	}

	acct, err := s.lookup(accountNumber)
	if err != nil {
		return 0, err
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()

	if amount > acct.balance {
		zap.L().Warn("Withdrawal rejected",
			zap.String("account_number", accountNumber),
			zap.Int64("amount", amount),
			zap.Int64("balance", acct.balance))
		return 0, fmt.Errorf("%w: balance %d, requested %d", store.ErrInsufficientFunds, acct.balance, amount)
	}
	oldBalance := acct.balance
	acct.balance -= amount

	zap.L().Info("Withdrawal processed",
		zap.String("account_number", accountNumber),
		zap.Int64("amount", amount),
		zap.Int64("old_balance", oldBalance),
		zap.Int64("new_balance", acct.balance))
	return acct.balance, nil
}

// Transfer moves amount between two accounts. Both account locks are held
// for the whole mutation and are always taken in account-number order.
func (s *Service) Transfer(_ context.Context, fromAccountNumber, toAccountNumber string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", store.ErrInvalidAmount, amount)
	}
	if fromAccountNumber == toAccountNumber {
		return fmt.Errorf("%w: %s", store.ErrInvalidRecipient, fromAccountNumber)
	}

	from, err := s.lookup(fromAccountNumber)
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrSender, err)
	}
	to, err := s.lookup(toAccountNumber)
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrRecipient, err)
	}

	first, second := from, to
	if second.number < first.number {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if amount > from.balance {
		zap.L().Warn("Transfer rejected",
			zap.String("from", fromAccountNumber),
			zap.String("to", toAccountNumber),
			zap.Int64("amount", amount),
			zap.Int64("balance", from.balance))
		return fmt.Errorf("%w: balance %d, requested %d", store.ErrInsufficientFunds, from.balance, amount)
	}
	if to.balance > math.MaxInt64-amount {
		return fmt.Errorf("%w: %w: %w", store.ErrInvalidAmount, store.ErrRecipient, store.ErrAmountTooLarge)
	}

	from.balance -= amount
	to.balance += amount

	zap.L().Info("Transfer processed",
		zap.String("from", fromAccountNumber),
		zap.String("to", toAccountNumber),
		zap.Int64("amount", amount),
		zap.Int64("from_balance", from.balance),
		zap.Int64("to_balance", to.balance))
	return nil
}

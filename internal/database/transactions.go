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

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"mitei-ledger-go/internal/store"

	"go.uber.org/zap"
)

// Deposit credits amount to the account and returns the new balance.
func (s *Service) Deposit(ctx context.Context, accountNumber string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %d", store.ErrInvalidAmount, amount)
	}

	var oldBalance, newBalance int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		balance, version, err := lockedBalance(ctx, tx, accountNumber)
		if err != nil {
			return err
		}
		if balance > math.MaxInt64-amount {
			return fmt.Errorf("%w: %w", store.ErrInvalidAmount, store.ErrAmountTooLarge)
		}
		oldBalance, newBalance = balance, balance+amount
		return setBalance(ctx, tx, accountNumber, newBalance, version)
	})
	if err != nil {
		return 0, err
	}

	zap.L().Info("Deposit processed",
		zap.String("account_number", accountNumber),
		zap.Int64("amount", amount),
		zap.Int64("old_balance", oldBalance),
		zap.Int64("new_balance", newBalance))
	return newBalance, nil
}

// Withdraw debits amount from the account and returns the new balance.
func (s *Service) Withdraw(ctx context.Context, accountNumber string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %d", store.ErrInvalidAmount, amount)
	}

	var oldBalance, newBalance int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		balance, version, err := lockedBalance(ctx, tx, accountNumber)
		if err != nil {
			return err
		}
		if amount > balance {
			zap.L().Warn("Withdrawal rejected",
				zap.String("account_number", accountNumber),
				zap.Int64("amount", amount),
				zap.Int64("balance", balance))
			return fmt.Errorf("%w: balance %d, requested %d", store.ErrInsufficientFunds, balance, amount)
		}
		oldBalance, newBalance = balance, balance-amount
		return setBalance(ctx, tx, accountNumber, newBalance, version)
	})
	if err != nil {
		return 0, err
	}

	zap.L().Info("Withdrawal processed",
		zap.String("account_number", accountNumber),
		zap.Int64("amount", amount),
		zap.Int64("old_balance", oldBalance),
		zap.Int64("new_balance", newBalance))
	return newBalance, nil
}

// Transfer moves amount between two accounts inside a single SQL transaction.
func (s *Service) Transfer(ctx context.Context, fromAccountNumber, toAccountNumber string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", store.ErrInvalidAmount, amount)
	}
	if fromAccountNumber == toAccountNumber {
		return fmt.Errorf("%w: %s", store.ErrInvalidRecipient, fromAccountNumber)
	}

	var fromBalance, toBalance int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		senderBalance, senderVersion, err := lockedBalance(ctx, tx, fromAccountNumber)
		if err != nil {
			return fmt.Errorf("%w: %w", store.ErrSender, err)
		}
		recipientBalance, recipientVersion, err := lockedBalance(ctx, tx, toAccountNumber)
		if err != nil {
			return fmt.Errorf("%w: %w", store.ErrRecipient, err)
		}

		if amount > senderBalance {
			zap.L().Warn("Transfer rejected",
				zap.String("from", fromAccountNumber),
				zap.String("to", toAccountNumber),
				zap.Int64("amount", amount),
				zap.Int64("balance", senderBalance))
			return fmt.Errorf("%w: balance %d, requested %d", store.ErrInsufficientFunds, senderBalance, amount)
		}
		if recipientBalance > math.MaxInt64-amount {
			return fmt.Errorf("%w: %w: %w", store.ErrInvalidAmount, store.ErrRecipient, store.ErrAmountTooLarge)
		}

		fromBalance, toBalance = senderBalance-amount, recipientBalance+amount
		if err := setBalance(ctx, tx, fromAccountNumber, fromBalance, senderVersion); err != nil {
			return err
		}
		return setBalance(ctx, tx, toAccountNumber, toBalance, recipientVersion)
	})
	if err != nil {
		return err
	}

	zap.L().Info("Transfer processed",
		zap.String("from", fromAccountNumber),
		zap.String("to", toAccountNumber),
		zap.Int64("amount", amount),
		zap.Int64("from_balance", fromBalance),
		zap.Int64("to_balance", toBalance))
	return nil
}

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
	"errors"
	"fmt"

	"mitei-ledger-go/internal/store"

	"go.uber.org/zap"
)

// GetBalance returns current balance for an account (O(1) lookup)
func (s *Service) GetBalance(ctx context.Context, accountNumber string) (int64, error) {
	zap.L().Debug("Getting balance", zap.String("account_number", accountNumber))

	var balance, version int64
	err := s.db.QueryRowContext(ctx, queryGetBalance, accountNumber).Scan(&balance, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", store.ErrAccountNotFound, accountNumber)
		}
		zap.L().Error("Failed to get balance", zap.String("account_number", accountNumber), zap.Error(err))
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	zap.L().Debug("Retrieved balance", zap.String("account_number", accountNumber), zap.Int64("balance", balance))
	return balance, nil
}

// lockedBalance reads the balance and version of an account inside tx.
func lockedBalance(ctx context.Context, tx *sql.Tx, accountNumber string) (int64, int64, error) {
	var balance, version int64
	err := tx.QueryRowContext(ctx, queryGetBalance, accountNumber).Scan(&balance, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, fmt.Errorf("%w: %s", store.ErrAccountNotFound, accountNumber)
		}
		return 0, 0, fmt.Errorf("failed to get current balance: %w", err)
	}
	return balance, version, nil
}

// setBalance writes newBalance if the row is still at version (optimistic locking).
func setBalance(ctx context.Context, tx *sql.Tx, accountNumber string, newBalance, version int64) error {
	result, err := tx.ExecContext(ctx, queryUpdateBalance, newBalance, accountNumber, version)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("balance update failed - %w", store.ErrConcurrentModification)
	}
	return nil
}

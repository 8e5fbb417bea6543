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
	"time"

	"mitei-ledger-go/internal/credential"
	"mitei-ledger-go/internal/models"
	"mitei-ledger-go/internal/store"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

func (s *Service) CreateAccount(ctx context.Context, accountNumber, cred string) error {
	if accountNumber == "" {
		return store.ErrInvalidAccountNumber
	}
	if err := credential.Validate(cred); err != nil {
		zap.L().Warn("Rejected account creation", zap.String("account_number", accountNumber), zap.Error(err))
		return err
	}

	hash, err := s.hasher.Hash(cred)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, queryInsertAccount, accountNumber, hash)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", store.ErrDuplicateAccount, accountNumber)
		}
		zap.L().Error("Failed to insert account", zap.String("account_number", accountNumber), zap.Error(err))
		return fmt.Errorf("unable to insert account: %w", err)
	}

	zap.L().Info("Account created", zap.String("account_number", accountNumber))
	return nil
}

func (s *Service) Authenticate(ctx context.Context, accountNumber, cred string) (*models.AccountRef, error) {
	acct, err := s.getAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Verify(acct.CredentialHash, cred); err != nil {
		zap.L().Warn("Authentication failed", zap.String("account_number", accountNumber), zap.Error(err))
		return nil, err
	}

	zap.L().Debug("Authenticated account", zap.String("account_number", accountNumber))
	return &models.AccountRef{
		Id:            uuid.New().String(),
		AccountNumber: acct.AccountNumber,
		IssuedAt:      time.Now().UTC(),
	}, nil
}

func (s *Service) getAccount(ctx context.Context, accountNumber string) (*models.Account, error) {
	var acct models.Account
	err := s.db.QueryRowContext(ctx, queryGetAccount, accountNumber).Scan(
		&acct.AccountNumber, &acct.CredentialHash, &acct.Balance, &acct.Version, &acct.CreatedAt, &acct.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrAccountNotFound, accountNumber)
		}
		zap.L().Error("Failed to query account", zap.String("account_number", accountNumber), zap.Error(err))
		return nil, fmt.Errorf("unable to query account: %w", err)
	}
	return &acct, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

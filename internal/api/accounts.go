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
	"fmt"

	"mitei-ledger-go/internal/models"

	"go.uber.org/zap"
)

// CreateAccount registers a new account with a zero balance.
func (s *BankService) CreateAccount(ctx context.Context, accountNumber, credential string) (*models.OperationResult, error) {
	if err := s.ledger.CreateAccount(ctx, accountNumber, credential); err != nil {
		return failure(opCreate, err)
	}

	return &models.OperationResult{
		Success:       true,
		AccountNumber: accountNumber,
		Message:       "Account created successfully! You can now log in.",
	}, nil
}

// Login authenticates the account and opens a session. The returned
// result carries the session token.
func (s *BankService) Login(ctx context.Context, accountNumber, credential string) (*models.OperationResult, error) {
	ref, err := s.ledger.Authenticate(ctx, accountNumber, credential)
	if err != nil {
		return failure(opLogin, err)
	}

	session := s.openSession(ref)
	return &models.OperationResult{
		Success:       true,
		AccountNumber: session.AccountNumber,
		Token:         session.Token,
		Message:       fmt.Sprintf("Login successful! Welcome, Account #%s!", session.AccountNumber),
	}, nil
}

// Balance returns the current balance of the session's account.
func (s *BankService) Balance(ctx context.Context, token string) (*models.OperationResult, error) {
	session, err := s.Session(token)
	if err != nil {
		return failure(opBalance, err)
	}

	balance, err := s.ledger.GetBalance(ctx, session.AccountNumber)
	if err != nil {
		return failure(opBalance, err)
	}

	zap.L().Debug("Balance checked", zap.String("account_number", session.AccountNumber))
	return &models.OperationResult{
		Success:       true,
		AccountNumber: session.AccountNumber,
		NewBalance:    balance,
	}, nil
}

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
	"mitei-ledger-go/internal/money"

	"go.uber.org/zap"
)

// Deposit credits a user-entered amount ("12.50") to the session's account.
func (s *BankService) Deposit(ctx context.Context, token, amount string) (*models.OperationResult, error) {
	session, err := s.Session(token)
	if err != nil {
		return failure(opDeposit, err)
	}

	minor, err := money.ParseAmount(amount)
	if err != nil {
		return failure(opDeposit, err)
	}

	newBalance, err := s.ledger.Deposit(ctx, session.AccountNumber, minor)
	if err != nil {
		return failure(opDeposit, err)
	}

	return &models.OperationResult{
		Success:       true,
		AccountNumber: session.AccountNumber,
		Amount:        minor,
		NewBalance:    newBalance,
		Message: fmt.Sprintf("Successfully deposited %s. New balance: %s",
			money.Format(minor), money.Format(newBalance)),
	}, nil
}

// Withdraw debits a user-entered amount from the session's account.
func (s *BankService) Withdraw(ctx context.Context, token, amount string) (*models.OperationResult, error) {
	session, err := s.Session(token)
	if err != nil {
		return failure(opWithdraw, err)
	}

	minor, err := money.ParseAmount(amount)
	if err != nil {
		return failure(opWithdraw, err)
	}

	newBalance, err := s.ledger.Withdraw(ctx, session.AccountNumber, minor)
	if err != nil {
		return failure(opWithdraw, err)
	}

	return &models.OperationResult{
		Success:       true,
		AccountNumber: session.AccountNumber,
		Amount:        minor,
		NewBalance:    newBalance,
		Message: fmt.Sprintf("Successfully withdrew %s. New balance: %s",
			money.Format(minor), money.Format(newBalance)),
	}, nil
}

// Send transfers a user-entered amount from the session's account to toAccountNumber.
func (s *BankService) Send(ctx context.Context, token, toAccountNumber, amount string) (*models.OperationResult, error) {
	session, err := s.Session(token)
	if err != nil {
		return failure(opSend, err)
	}

	minor, err := money.ParseAmount(amount)
	if err != nil {
		return failure(opSend, err)
	}

	if err := s.ledger.Transfer(ctx, session.AccountNumber, toAccountNumber, minor); err != nil {
		return failure(opSend, err)
	}

	result := &models.OperationResult{
		Success:       true,
		AccountNumber: session.AccountNumber,
		Amount:        minor,
		Message:       fmt.Sprintf("Successfully sent %s to account %s.", money.Format(minor), toAccountNumber),
	}

	// The transfer is committed; a failed read only leaves NewBalance unset.
	newBalance, err := s.ledger.GetBalance(ctx, session.AccountNumber)
	if err != nil {
		zap.L().Error("Failed to read balance after transfer",
			zap.String("account_number", session.AccountNumber),
			zap.String("to", toAccountNumber),
			zap.Int64("amount", minor),
			zap.Error(err))
		return result, nil
	}
	result.NewBalance = newBalance
	return result, nil
}

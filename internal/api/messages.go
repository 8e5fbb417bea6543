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
	"errors"
	"math"

	"mitei-ledger-go/internal/money"
	"mitei-ledger-go/internal/store"
)

type operation string

const (
	opCreate   operation = "create"
	opLogin    operation = "login"
	opBalance  operation = "balance"
	opDeposit  operation = "deposit"
	opWithdraw operation = "withdraw"
	opSend     operation = "send"
)

// errorMessage applies when err matches every entry of errs.
type errorMessage struct {
	errs    []error
	message string
}

func on(message string, errs ...error) errorMessage {
	return errorMessage{errs: errs, message: message}
}

func (m errorMessage) matches(err error) bool {
	for _, target := range m.errs {
		if !errors.Is(err, target) {
			return false
		}
	}
	return true
}

var amountTooLargeMessage = "Amount is too large. Balances cannot exceed " + money.Format(math.MaxInt64) + "."

var sessionMessages = []errorMessage{
	on("Please log in first.", ErrNotLoggedIn),
	on("Session expired. Please log in again.", ErrSessionExpired),
}

var operationMessages = map[operation][]errorMessage{
	opCreate: {
		on("Account number already exists. Please choose another.", store.ErrDuplicateAccount),
		on("Account number is required.", store.ErrInvalidAccountNumber),
		on("Invalid password. Must be a 5-digit number.", store.ErrInvalidCredential),
	},
	opLogin: {
		on("Account not found.", store.ErrAccountNotFound),
		on("Incorrect password.", store.ErrInvalidCredential),
	},
	opBalance: {
		on("Account not found.", store.ErrAccountNotFound),
	},
	opDeposit: {
		on(amountTooLargeMessage, store.ErrAmountTooLarge),
		on("Deposit amount must be positive.", store.ErrInvalidAmount),
		on("Account not found.", store.ErrAccountNotFound),
	},
	opWithdraw: {
		on(amountTooLargeMessage, store.ErrAmountTooLarge),
		on("Withdrawal amount must be positive.", store.ErrInvalidAmount),
		on("Insufficient funds.", store.ErrInsufficientFunds),
		on("Account not found.", store.ErrAccountNotFound),
	},
	opSend: {
		on("The recipient's balance cannot accept this amount.", store.ErrAmountTooLarge, store.ErrRecipient),
		on(amountTooLargeMessage, store.ErrAmountTooLarge),
		on("Amount to send must be positive.", store.ErrInvalidAmount),
		on("You cannot send money to your own account.", store.ErrInvalidRecipient),
		on("Insufficient funds to send.", store.ErrInsufficientFunds),
		on("Your account could not be found. Please log in again.", store.ErrAccountNotFound, store.ErrSender),
		on("Recipient account not found.", store.ErrAccountNotFound, store.ErrRecipient),
	},
}

func (op operation) message(err error) string {
	for _, m := range sessionMessages {
		if m.matches(err) {
			return m.message
		}
	}
	for _, m := range operationMessages[op] {
		if m.matches(err) {
			return m.message
		}
	}
	return "Something went wrong. Please try again."
}

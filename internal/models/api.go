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

package models

import "time"

// Session is the authentication state of one user context.
type Session struct {
	Token         string
	AccountNumber string
	CreatedAt     time.Time
	LastSeen      time.Time
}

// OperationResult represents the outcome of a user-facing operation
type OperationResult struct {
	Success       bool   `json:"success"`
	AccountNumber string `json:"account_number,omitempty"`
	Token         string `json:"token,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
	NewBalance    int64  `json:"new_balance,omitempty"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

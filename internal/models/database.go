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

// Account is a read-only snapshot of a ledger account.
// Balance is held in minor units (cents).
type Account struct {
	AccountNumber  string    `db:"account_number"`
	CredentialHash string    `db:"credential_hash"`
	Balance        int64     `db:"balance"`
	Version        int64     `db:"version"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// AccountRef is the opaque handle returned by a successful authentication.
// It carries the account number only; holders must re-resolve it against the
// store for every operation.
type AccountRef struct {
	Id            string
	AccountNumber string
	IssuedAt      time.Time
}

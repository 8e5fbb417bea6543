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

const (
	querySchema = `
	-- Accounts Table (Current State)
	CREATE TABLE IF NOT EXISTS accounts (
		account_number TEXT PRIMARY KEY,
		credential_hash TEXT NOT NULL,
		balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0),
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	// Account queries
	queryInsertAccount = `
		INSERT INTO accounts (account_number, credential_hash, balance, version)
		VALUES (?, ?, 0, 1)`

	queryGetAccount = `
		SELECT account_number, credential_hash, balance, version, created_at, updated_at
		FROM accounts
		WHERE account_number = ?`

	// Balance queries
	queryGetBalance = `
		SELECT balance, version
		FROM accounts
		WHERE account_number = ?`

	queryUpdateBalance = `
		UPDATE accounts
		SET balance = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE account_number = ? AND version = ?`
)

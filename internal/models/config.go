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

// Config represents the application configuration
type Config struct {
	Ledger   LedgerConfig
	Database DatabaseConfig
	Session  SessionConfig
}

// LedgerConfig selects the store backend and its credential policy
type LedgerConfig struct {
	Backend            string
	CredentialHashCost int
	SeedAccountsFile   string
	CreateDemoAccounts bool
}

// DatabaseConfig holds settings for the SQLite backend
type DatabaseConfig struct {
	PingTimeout time.Duration
}

// SessionConfig holds interactive session settings
type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

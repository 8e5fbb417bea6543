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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mitei-ledger-go/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

func Load() (*models.Config, error) {
	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	idleTimeout, err := getEnvDuration("SESSION_IDLE_TIMEOUT", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	sweepInterval, err := getEnvDuration("SESSION_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	backend := strings.ToLower(getEnvString("LEDGER_BACKEND", BackendMemory))
	if backend != BackendMemory && backend != BackendSQLite {
		return nil, fmt.Errorf("invalid LEDGER_BACKEND: %q (expected %q or %q)", backend, BackendMemory, BackendSQLite)
	}

	return &models.Config{
		Ledger: models.LedgerConfig{
			Backend:            backend,
			CredentialHashCost: getEnvInt("CREDENTIAL_HASH_COST", bcrypt.DefaultCost),
			SeedAccountsFile:   getEnvString("SEED_ACCOUNTS_FILE", ""),
			CreateDemoAccounts: getEnvBool("CREATE_DEMO_ACCOUNTS", false),
		},
		Database: models.DatabaseConfig{
			PingTimeout: pingTimeout,
		},
		Session: models.SessionConfig{
			IdleTimeout:   idleTimeout,
			SweepInterval: sweepInterval,
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

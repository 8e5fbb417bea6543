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

package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mitei-ledger-go/internal/api"
	"mitei-ledger-go/internal/config"
	"mitei-ledger-go/internal/credential"
	"mitei-ledger-go/internal/database"
	"mitei-ledger-go/internal/ledger"
	"mitei-ledger-go/internal/models"
	"mitei-ledger-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	Store store.LedgerStore
	Bank  *api.BankService
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeStore builds the LedgerStore selected by cfg.Ledger.Backend.
func InitializeStore(ctx context.Context, cfg *models.Config) (store.LedgerStore, error) {
	hasher := credential.NewHasher(cfg.Ledger.CredentialHashCost)

	switch cfg.Ledger.Backend {
	case config.BackendMemory, "":
		return ledger.NewService(hasher), nil
	case config.BackendSQLite:
		return database.NewService(ctx, cfg.Database, hasher)
	default:
		return nil, fmt.Errorf("unknown ledger backend: %q", cfg.Ledger.Backend)
	}
}

// InitializeServices builds the store, applies demo and seed accounts, and
// wraps the store in the session-aware BankService.
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	zap.L().Info("Initializing ledger store", zap.String("backend", cfg.Ledger.Backend))
	ledgerStore, err := InitializeStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var seeds []SeedAccount
	if cfg.Ledger.CreateDemoAccounts {
		seeds = append(seeds, DemoAccounts()...)
	} else {
		zap.L().Info("Skipping demo account creation (CREATE_DEMO_ACCOUNTS=false)")
	}
	if cfg.Ledger.SeedAccountsFile != "" {
		fromFile, err := LoadSeedAccounts(cfg.Ledger.SeedAccountsFile)
		if err != nil {
			ledgerStore.Close()
			return nil, err
		}
		seeds = append(seeds, fromFile...)
	}
	if len(seeds) > 0 {
		if _, err := SeedAccounts(ctx, ledgerStore, seeds, zap.L()); err != nil {
			ledgerStore.Close()
			return nil, err
		}
	}

	return &Services{
		Store: ledgerStore,
		Bank:  api.NewBankService(ledgerStore, cfg.Session),
	}, nil
}

func (cs *Services) Close() {
	if cs.Store != nil {
		cs.Store.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}

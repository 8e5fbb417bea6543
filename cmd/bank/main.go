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


package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"mitei-ledger-go/internal/common"
	"mitei-ledger-go/internal/config"
	"mitei-ledger-go/internal/console"
	"mitei-ledger-go/internal/listener"
	"mitei-ledger-go/internal/models"

	"go.uber.org/zap"
)

// loadConfig reads the environment and applies command line overrides.
func loadConfig(seedFile string, demo bool) (*models.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if seedFile != "" {
		cfg.Ledger.SeedAccountsFile = seedFile
	}
	if demo {
		cfg.Ledger.CreateDemoAccounts = true
	}
	return cfg, nil
}

func main() {
	seedFile := flag.String("seed", "", "Optional path to a YAML file of accounts to create at startup (overrides SEED_ACCOUNTS_FILE)")
	demo := flag.Bool("demo", false, "Create the demo accounts 1001, 1002 and 1003")
	flag.Parse()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	cfg, err := loadConfig(*seedFile, *demo)
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if err := services.Bank.HealthCheck(ctx); err != nil {
		zap.L().Fatal("Ledger health check failed", zap.Error(err))
	}

	sweeper := listener.NewSessionSweeper(services.Bank, cfg.Session.SweepInterval)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	if err := console.New(services.Bank, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		zap.L().Error("Console stopped", zap.Error(err))
	}
}

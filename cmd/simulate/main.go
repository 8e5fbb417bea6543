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
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"mitei-ledger-go/internal/common"
	"mitei-ledger-go/internal/config"
	"mitei-ledger-go/internal/money"
	"mitei-ledger-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type simulationStats struct {
	completed    atomic.Int64
	insufficient atomic.Int64
	conflicts    atomic.Int64
}

type account struct {
	number     string
	credential string
}

func createAccounts(ctx context.Context, ledger store.LedgerStore, count int, opening int64) ([]account, error) {
	accounts := make([]account, 0, count)
	for i := 0; i < count; i++ {
		a := account{
			number:     uuid.New().String()[:8],
			credential: fmt.Sprintf("%05d", rand.Intn(100000)),
		}
		if err := ledger.CreateAccount(ctx, a.number, a.credential); err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
		if _, err := ledger.Deposit(ctx, a.number, opening); err != nil {
			return nil, fmt.Errorf("failed to fund account %s: %w", a.number, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// runWorker performs random transfers between accounts. Rejections caused by
// the random draw itself are counted, not returned.
func runWorker(ctx context.Context, ledger store.LedgerStore, accounts []account, transfers int, maxAmount int64, rng *rand.Rand, stats *simulationStats) error {
	for i := 0; i < transfers; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		from := accounts[rng.Intn(len(accounts))]
		to := accounts[rng.Intn(len(accounts))]
		if from.number == to.number {
			continue
		}
		amount := rng.Int63n(maxAmount) + 1

		err := ledger.Transfer(ctx, from.number, to.number, amount)
		switch {
		case err == nil:
			stats.completed.Add(1)
		case errors.Is(err, store.ErrInsufficientFunds):
			stats.insufficient.Add(1)
		case errors.Is(err, store.ErrConcurrentModification):
			stats.conflicts.Add(1)
		default:
			return fmt.Errorf("transfer %s -> %s failed: %w", from.number, to.number, err)
		}
	}
	return nil
}

func printBalances(ctx context.Context, ledger store.LedgerStore, accounts []account) (int64, error) {
	var total int64
	for i, a := range accounts {
		balance, err := ledger.GetBalance(ctx, a.number)
		if err != nil {
			return 0, fmt.Errorf("failed to read balance for %s: %w", a.number, err)
		}
		total += balance
		fmt.Printf("%s %-10s %16s\n", common.BoxPrefix(i == len(accounts)-1), a.number, money.Format(balance))
	}
	return total, nil
}

func main() {
	accountCount := flag.Int("accounts", 8, "Number of accounts to create")
	workers := flag.Int("workers", 4, "Number of concurrent workers")
	transfers := flag.Int("transfers", 1000, "Transfers attempted per worker")
	openingFlag := flag.String("opening", "100.00", "Opening balance per account")
	maxFlag := flag.String("max", "25.00", "Largest single transfer amount")
	backend := flag.String("backend", "", "Ledger backend (memory or sqlite); defaults to LEDGER_BACKEND")
	flag.Parse()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if *backend != "" {
		cfg.Ledger.Backend = *backend
	}

	if *accountCount < 2 || *workers < 1 || *transfers < 1 {
		logger.Fatal("Need at least 2 accounts, 1 worker and 1 transfer",
			zap.Int("accounts", *accountCount),
			zap.Int("workers", *workers),
			zap.Int("transfers", *transfers))
	}
	opening, err := money.ParseAmount(*openingFlag)
	if err != nil {
		logger.Fatal("Invalid opening balance", zap.String("opening", *openingFlag), zap.Error(err))
	}
	maxAmount, err := money.ParseAmount(*maxFlag)
	if err != nil {
		logger.Fatal("Invalid max transfer amount", zap.String("max", *maxFlag), zap.Error(err))
	}

	ctx := context.Background()

	ledger, err := common.InitializeStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize ledger store", zap.Error(err))
	}
	defer ledger.Close()

	accounts, err := createAccounts(ctx, ledger, *accountCount, opening)
	if err != nil {
		logger.Fatal("Failed to create accounts", zap.Error(err))
	}
	expected := opening * int64(len(accounts))

	logger.Info("Starting transfer simulation",
		zap.String("backend", cfg.Ledger.Backend),
		zap.Int("accounts", len(accounts)),
		zap.Int("workers", *workers),
		zap.Int("transfers_per_worker", *transfers))

	stats := &simulationStats{}
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < *workers; w++ {
		rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(w)))
		g.Go(func() error {
			return runWorker(gctx, ledger, accounts, *transfers, maxAmount, rng, stats)
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("Simulation aborted", zap.Error(err))
	}
	elapsed := time.Since(start)

	common.WriteHeader(os.Stdout, "TRANSFER SIMULATION", common.DefaultWidth)
	total, err := printBalances(ctx, ledger, accounts)
	if err != nil {
		logger.Fatal("Failed to read balances", zap.Error(err))
	}

	summary := fmt.Sprintf("SUMMARY: %d transfers, %d insufficient, %d conflicts in %s\nTotal %s (expected %s)",
		stats.completed.Load(), stats.insufficient.Load(), stats.conflicts.Load(),
		elapsed.Round(time.Millisecond), money.Format(total), money.Format(expected))
	common.WriteFooter(os.Stdout, summary, common.DefaultWidth)

	if total != expected {
		logger.Fatal("Money was not conserved",
			zap.Int64("total", total),
			zap.Int64("expected", expected))
	}

	logger.Info("Simulation completed",
		zap.Int64("completed", stats.completed.Load()),
		zap.Int64("insufficient", stats.insufficient.Load()),
		zap.Duration("elapsed", elapsed))
}

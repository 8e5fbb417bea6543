package common

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mitei-ledger-go/internal/money"
	"mitei-ledger-go/internal/store"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// SeedAccount describes an account created at startup. Balance is a
// major-unit decimal string and may be empty.
type SeedAccount struct {
	AccountNumber string `yaml:"account_number"`
	Credential    string `yaml:"credential"`
	Balance       string `yaml:"balance"`
}

type SeedAccountsConfig struct {
	Accounts []SeedAccount `yaml:"accounts"`
}

func LoadSeedAccounts(seedFile string) ([]SeedAccount, error) {
	var seedPath string
	if filepath.IsAbs(seedFile) {
		seedPath = seedFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		seedPath = filepath.Join(wd, seedFile)
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", seedFile, err)
	}

	var config SeedAccountsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", seedFile, err)
	}

	for i, account := range config.Accounts {
		if account.AccountNumber == "" {
			return nil, fmt.Errorf("account at index %d missing account_number", i)
		}
		if account.Credential == "" {
			return nil, fmt.Errorf("account at index %d missing credential", i)
		}
	}

	return config.Accounts, nil
}

// DemoAccounts returns the fixed accounts used when CREATE_DEMO_ACCOUNTS is set.
func DemoAccounts() []SeedAccount {
	return []SeedAccount{
		{AccountNumber: "1001", Credential: "11111", Balance: "500.00"},
		{AccountNumber: "1002", Credential: "22222", Balance: "250.00"},
		{AccountNumber: "1003", Credential: "33333"},
	}
}

// SeedAccounts creates each account and deposits its opening balance.
// Accounts that already exist are skipped. It returns the number created.
func SeedAccounts(ctx context.Context, ledger store.LedgerStore, accounts []SeedAccount, logger *zap.Logger) (int, error) {
	created := 0
	for _, account := range accounts {
		err := ledger.CreateAccount(ctx, account.AccountNumber, account.Credential)
		if errors.Is(err, store.ErrDuplicateAccount) {
			logger.Warn("Seed account already exists, skipping", zap.String("account_number", account.AccountNumber))
			continue
		}
		if err != nil {
			return created, fmt.Errorf("failed to create seed account %s: %w", account.AccountNumber, err)
		}
		created++

		if account.Balance == "" {
			continue
		}
		amount, err := money.ParseAmount(account.Balance)
		if err != nil {
			return created, fmt.Errorf("invalid opening balance for %s: %w", account.AccountNumber, err)
		}
		if _, err := ledger.Deposit(ctx, account.AccountNumber, amount); err != nil {
			return created, fmt.Errorf("failed to fund seed account %s: %w", account.AccountNumber, err)
		}
	}

	logger.Info("Seed accounts created", zap.Int("count", created))
	return created, nil
}

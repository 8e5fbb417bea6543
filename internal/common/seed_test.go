package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mitei-ledger-go/internal/config"
	"mitei-ledger-go/internal/credential"
	"mitei-ledger-go/internal/ledger"
	"mitei-ledger-go/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func writeSeedFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("Failed to write seed file: %v", err)
	}
	return path
}

func TestLoadSeedAccounts(t *testing.T) {
	path := writeSeedFile(t, `
accounts:
  - account_number: "2001"
    credential: "12345"
    balance: "19.99"
  - account_number: "2002"
    credential: "00000"
`)

	accounts, err := LoadSeedAccounts(path)
	if err != nil {
		t.Fatalf("LoadSeedAccounts failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].AccountNumber != "2001" || accounts[0].Credential != "12345" || accounts[0].Balance != "19.99" {
		t.Errorf("Unexpected first account %+v", accounts[0])
	}
	if accounts[1].Balance != "" {
		t.Errorf("Expected empty balance, got %q", accounts[1].Balance)
	}
}

func TestLoadSeedAccounts_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"missing number", "accounts:\n  - credential: \"12345\"\n"},
		{"missing credential", "accounts:\n  - account_number: \"1\"\n"},
		{"bad yaml", "accounts: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSeedAccounts(writeSeedFile(t, tt.contents)); err == nil {
				t.Errorf("Expected error")
			}
		})
	}

	if _, err := LoadSeedAccounts(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestSeedAccounts(t *testing.T) {
	ctx := context.Background()
	ledgerStore := ledger.NewService(credential.NewHasher(bcrypt.MinCost))

	created, err := SeedAccounts(ctx, ledgerStore, DemoAccounts(), zap.NewNop())
	if err != nil {
		t.Fatalf("SeedAccounts failed: %v", err)
	}
	if created != 3 {
		t.Errorf("Expected 3 accounts created, got %d", created)
	}

	balance, err := ledgerStore.GetBalance(ctx, "1001")
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance != 50000 {
		t.Errorf("Expected opening balance 50000, got %d", balance)
	}

	// Re-seeding skips existing accounts without touching balances.
	created, err = SeedAccounts(ctx, ledgerStore, DemoAccounts(), zap.NewNop())
	if err != nil {
		t.Fatalf("Second SeedAccounts failed: %v", err)
	}
	if created != 0 {
		t.Errorf("Expected 0 accounts created on re-seed, got %d", created)
	}
	balance, _ = ledgerStore.GetBalance(ctx, "1001")
	if balance != 50000 {
		t.Errorf("Expected balance to stay 50000, got %d", balance)
	}
}

func TestSeedAccounts_InvalidEntries(t *testing.T) {
	ctx := context.Background()
	ledgerStore := ledger.NewService(credential.NewHasher(bcrypt.MinCost))

	_, err := SeedAccounts(ctx, ledgerStore, []SeedAccount{{AccountNumber: "1", Credential: "abc"}}, zap.NewNop())
	if err == nil {
		t.Errorf("Expected error for invalid credential")
	}

	_, err = SeedAccounts(ctx, ledgerStore, []SeedAccount{{AccountNumber: "2", Credential: "12345", Balance: "-3"}}, zap.NewNop())
	if err == nil {
		t.Errorf("Expected error for negative opening balance")
	}
}

func testConfig(backend string) *models.Config {
	return &models.Config{
		Ledger:   models.LedgerConfig{Backend: backend, CredentialHashCost: bcrypt.MinCost},
		Database: models.DatabaseConfig{PingTimeout: time.Second},
		Session:  models.SessionConfig{IdleTimeout: time.Minute},
	}
}

func TestInitializeStore(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{config.BackendMemory, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ledgerStore, err := InitializeStore(ctx, testConfig(backend))
			if err != nil {
				t.Fatalf("InitializeStore failed: %v", err)
			}
			defer ledgerStore.Close()

			if err := ledgerStore.CreateAccount(ctx, "1001", "11111"); err != nil {
				t.Errorf("CreateAccount failed: %v", err)
			}
		})
	}

	if _, err := InitializeStore(ctx, testConfig("postgres")); err == nil {
		t.Errorf("Expected error for unknown backend")
	}
}

func TestInitializeServices(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.BackendSQLite)
	cfg.Ledger.CreateDemoAccounts = true
	cfg.Ledger.SeedAccountsFile = writeSeedFile(t, "accounts:\n  - account_number: \"3001\"\n    credential: \"54321\"\n    balance: \"1.00\"\n")

	services, err := InitializeServices(ctx, cfg)
	if err != nil {
		t.Fatalf("InitializeServices failed: %v", err)
	}
	defer services.Close()

	result, err := services.Bank.Login(ctx, "3001", "54321")
	if err != nil || !result.Success {
		t.Fatalf("Login to seeded account failed: %v %+v", err, result)
	}
	balance, err := services.Bank.Balance(ctx, result.Token)
	if err != nil || balance.NewBalance != 100 {
		t.Errorf("Expected seeded balance 100, got %v %+v", err, balance)
	}

	if result, err := services.Bank.Login(ctx, "1002", "22222"); err != nil || !result.Success {
		t.Errorf("Expected demo account to exist, got %v %+v", err, result)
	}
}

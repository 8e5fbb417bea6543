package main

import "testing"

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "memory")
	t.Setenv("SEED_ACCOUNTS_FILE", "env.yaml")
	t.Setenv("CREATE_DEMO_ACCOUNTS", "false")

	cfg, err := loadConfig("", false)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Ledger.SeedAccountsFile != "env.yaml" || cfg.Ledger.CreateDemoAccounts {
		t.Errorf("Expected environment values without flags, got %+v", cfg.Ledger)
	}

	cfg, err = loadConfig("flag.yaml", true)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Ledger.SeedAccountsFile != "flag.yaml" || !cfg.Ledger.CreateDemoAccounts {
		t.Errorf("Expected flags to override environment, got %+v", cfg.Ledger)
	}
}

func TestLoadConfig_InvalidEnvironment(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "bogus")

	if _, err := loadConfig("", false); err == nil {
		t.Errorf("Expected error for unknown backend")
	}
}

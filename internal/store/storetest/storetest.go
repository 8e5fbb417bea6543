// Package storetest holds the behavioural suite every store.LedgerStore
// backend must pass.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"mitei-ledger-go/internal/store"
)

// Factory returns a fresh, empty store. The suite closes it when done.
type Factory func(t *testing.T) store.LedgerStore

// Run executes the full suite against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.LedgerStore)
	}{
		{"Scenario", testScenario},
		{"CreateAccountDuplicate", testCreateAccountDuplicate},
		{"CreateAccountCredentialRules", testCreateAccountCredentialRules},
		{"CreateAccountEmptyNumber", testCreateAccountEmptyNumber},
		{"Authenticate", testAuthenticate},
		{"Deposit", testDeposit},
		{"Withdraw", testWithdraw},
		{"Transfer", testTransfer},
		{"TransferFailuresLeaveBalances", testTransferFailuresLeaveBalances},
		{"TransferNamesMissingSide", testTransferNamesMissingSide},
		{"BalanceLimit", testBalanceLimit},
		{"GetBalanceUnknownAccount", testGetBalanceUnknownAccount},
		{"ConcurrentCreateSameNumber", testConcurrentCreateSameNumber},
		{"ConcurrentDeposits", testConcurrentDeposits},
		{"ConcurrentWithdrawalsNeverOverdraw", testConcurrentWithdrawalsNeverOverdraw},
		{"ConcurrentOpposingTransfers", testConcurrentOpposingTransfers},
		{"ConcurrentTransferRing", testConcurrentTransferRing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()
			tt.fn(t, s)
		})
	}
}

func mustCreate(t *testing.T, s store.LedgerStore, accountNumber, credential string) {
	t.Helper()
	if err := s.CreateAccount(context.Background(), accountNumber, credential); err != nil {
		t.Fatalf("CreateAccount(%q) failed: %v", accountNumber, err)
	}
}

func mustDeposit(t *testing.T, s store.LedgerStore, accountNumber string, amount int64) {
	t.Helper()
	if _, err := s.Deposit(context.Background(), accountNumber, amount); err != nil {
		t.Fatalf("Deposit(%q, %d) failed: %v", accountNumber, amount, err)
	}
}

func expectBalance(t *testing.T, s store.LedgerStore, accountNumber string, want int64) {
	t.Helper()
	got, err := s.GetBalance(context.Background(), accountNumber)
	if err != nil {
		t.Fatalf("GetBalance(%q) failed: %v", accountNumber, err)
	}
	if got != want {
		t.Errorf("Expected balance of %s to be %d, got %d", accountNumber, want, got)
	}
}

func testScenario(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	mustCreate(t, s, "1001", "11111")
	mustCreate(t, s, "1002", "22222")

	balance, err := s.Deposit(ctx, "1001", 500)
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if balance != 500 {
		t.Errorf("Expected balance 500 after deposit, got %d", balance)
	}

	if err := s.Transfer(ctx, "1001", "1002", 200); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	expectBalance(t, s, "1001", 300)
	expectBalance(t, s, "1002", 200)

	if _, err := s.Withdraw(ctx, "1001", 1000); !errors.Is(err, store.ErrInsufficientFunds) {
		t.Errorf("Expected ErrInsufficientFunds, got %v", err)
	}
	expectBalance(t, s, "1001", 300)

	if _, err := s.Authenticate(ctx, "1001", "wrong"); !errors.Is(err, store.ErrInvalidCredential) {
		t.Errorf("Expected ErrInvalidCredential, got %v", err)
	}
}

func testCreateAccountDuplicate(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	mustCreate(t, s, "1001", "11111")
	mustDeposit(t, s, "1001", 75)

	err := s.CreateAccount(ctx, "1001", "11111")
	if !errors.Is(err, store.ErrDuplicateAccount) {
		t.Fatalf("Expected ErrDuplicateAccount, got %v", err)
	}
	err = s.CreateAccount(ctx, "1001", "99999")
	if !errors.Is(err, store.ErrDuplicateAccount) {
		t.Fatalf("Expected ErrDuplicateAccount with different credential, got %v", err)
	}

	// The original account and its credential are untouched.
	expectBalance(t, s, "1001", 75)
	if _, err := s.Authenticate(ctx, "1001", "11111"); err != nil {
		t.Errorf("Expected original credential to still work, got %v", err)
	}
	if _, err := s.Authenticate(ctx, "1001", "99999"); !errors.Is(err, store.ErrInvalidCredential) {
		t.Errorf("Expected ErrInvalidCredential for rejected duplicate credential, got %v", err)
	}
}

func testCreateAccountCredentialRules(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	tests := []struct {
		credential string
		wantErr    error
	}{
		{"12345", nil},
		{"00000", nil},
		{"1234", store.ErrInvalidCredential},
		{"abcde", store.ErrInvalidCredential},
		{"123456", store.ErrInvalidCredential},
		{"", store.ErrInvalidCredential},
		{"12a45", store.ErrInvalidCredential},
	}
	for i, tt := range tests {
		accountNumber := fmt.Sprintf("acct-%d", i)
		err := s.CreateAccount(ctx, accountNumber, tt.credential)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("CreateAccount with credential %q failed: %v", tt.credential, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("CreateAccount with credential %q = %v, want %v", tt.credential, err, tt.wantErr)
		}
		if _, err := s.GetBalance(ctx, accountNumber); !errors.Is(err, store.ErrAccountNotFound) {
			t.Errorf("Expected no account after rejected credential %q, got %v", tt.credential, err)
		}
	}
}

func testCreateAccountEmptyNumber(t *testing.T, s store.LedgerStore) {
	err := s.CreateAccount(context.Background(), "", "12345")
	if !errors.Is(err, store.ErrInvalidAccountNumber) {
		t.Errorf("Expected ErrInvalidAccountNumber, got %v", err)
	}
}

func testAuthenticate(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	mustCreate(t, s, "1001", "11111")

	ref, err := s.Authenticate(ctx, "1001", "11111")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if ref.AccountNumber != "1001" {
		t.Errorf("Expected account number 1001, got %s", ref.AccountNumber)
	}
	if ref.Id == "" {
		t.Errorf("Expected non-empty reference id")
	}

	if _, err := s.Authenticate(ctx, "1001", "11112"); !errors.Is(err, store.ErrInvalidCredential) {
		t.Errorf("Expected ErrInvalidCredential, got %v", err)
	}
	if _, err := s.Authenticate(ctx, "9999", "11111"); !errors.Is(err, store.ErrAccountNotFound) {
		t.Errorf("Expected ErrAccountNotFound, got %v", err)
	}

	// Authentication never touches ledger data.
	expectBalance(t, s, "1001", 0)
}

func testDeposit(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	mustCreate(t, s, "1001", "11111")

	for _, amount := range []int64{0, -1, -500} {
		if _, err := s.Deposit(ctx, "1001", amount); !errors.Is(err, store.ErrInvalidAmount) {
			t.Errorf("Deposit(%d) = %v, want ErrInvalidAmount", amount, err)
		}
	}
	expectBalance(t, s, "1001", 0)

	if _, err := s.Deposit(ctx, "9999", 10); !errors.Is(err, store.ErrAccountNotFound) {
		t.Errorf("Expected ErrAccountNotFound, got %v", err)
	}

	first, err := s.Deposit(ctx, "1001", 150)
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	second, err := s.Deposit(ctx, "1001", 50)
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if first != 150 || second != 200 {
		t.Errorf("Expected running balances 150 and 200, got %d and %d", first, second)
	}
	expectBalance(t, s, "1001", 200)
}

func testWithdraw(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	mustCreate(t, s, "1001", "11111")
	mustDeposit(t, s, "1001", 300)

	for _, amount := range []int64{0, -5} {
		if _, err := s.Withdraw(ctx, "1001", amount); !errors.Is(err, store.ErrInvalidAmount) {
			t.Errorf("Withdraw(%d) = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if _, err := s.Withdraw(ctx, "1001", 301); !errors.Is(err, store.ErrInsufficientFunds) {
		t.Errorf("Expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := s.Withdraw(ctx, "9999", 1); !errors.Is(err, store.ErrAccountNotFound) {
		t.Errorf("Expected ErrAccountNotFound, got %v", err)
	}
	expectBalance(t, s, "1001", 300)

	balance, err := s.Withdraw(ctx, "1001", 120)
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if balance != 180 {
		t.Errorf("Expected balance 180, got %d", balance)
	}

	balance, err = s.Withdraw(ctx, "1001", 180)
	if err != nil {
		t.Fatalf("Withdrawing the full balance failed: %v", err)
	}
	if balance != 0 {
		t.Errorf("Expected balance 0, got %d", balance)
	}
}

func testTransfer(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	mustCreate(t, s, "A", "11111")
	mustCreate(t, s, "B", "22222")
	mustDeposit(t, s, "A", 1000)
	mustDeposit(t, s, "B", 40)

	if err := s.Transfer(ctx, "A", "B", 250); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	expectBalance(t, s, "A", 750)
	expectBalance(t, s, "B", 290)

	// Lock ordering must not depend on direction.
	if err := s.Transfer(ctx, "B", "A", 290); err != nil {
		t.Fatalf("Reverse transfer failed: %v", err)
	}
	expectBalance(t, s, "A", 1040)
	expectBalance(t, s, "B", 0)
}

func testTransferFailuresLeaveBalances(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	mustCreate(t, s, "A", "11111")
	mustCreate(t, s, "B", "22222")
	mustDeposit(t, s, "A", 100)

	tests := []struct {
		name    string
		from    string
		to      string
		amount  int64
		wantErr error
	}{
		{"zero amount", "A", "B", 0, store.ErrInvalidAmount},
		{"negative amount", "A", "B", -10, store.ErrInvalidAmount},
		{"self transfer", "A", "A", 10, store.ErrInvalidRecipient},
		{"unknown recipient", "A", "Z", 10, store.ErrAccountNotFound},
		{"unknown sender", "Z", "B", 10, store.ErrAccountNotFound},
		{"insufficient funds", "A", "B", 101, store.ErrInsufficientFunds},
		{"empty recipient balance", "B", "A", 1, store.ErrInsufficientFunds},
	}
	for _, tt := range tests {
		err := s.Transfer(ctx, tt.from, tt.to, tt.amount)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: Transfer = %v, want %v", tt.name, err, tt.wantErr)
		}
		expectBalance(t, s, "A", 100)
		expectBalance(t, s, "B", 0)
	}
}

func testTransferNamesMissingSide(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	mustCreate(t, s, "A", "11111")
	mustDeposit(t, s, "A", 100)

	err := s.Transfer(ctx, "Z", "A", 10)
	if !errors.Is(err, store.ErrAccountNotFound) || !errors.Is(err, store.ErrSender) {
		t.Errorf("Expected sender ErrAccountNotFound, got %v", err)
	}
	if errors.Is(err, store.ErrRecipient) {
		t.Errorf("Missing sender must not be reported as recipient: %v", err)
	}

	err = s.Transfer(ctx, "A", "Z", 10)
	if !errors.Is(err, store.ErrAccountNotFound) || !errors.Is(err, store.ErrRecipient) {
		t.Errorf("Expected recipient ErrAccountNotFound, got %v", err)
	}
	if errors.Is(err, store.ErrSender) {
		t.Errorf("Missing recipient must not be reported as sender: %v", err)
	}
	expectBalance(t, s, "A", 100)
}

func testBalanceLimit(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	mustCreate(t, s, "A", "11111")
	mustCreate(t, s, "B", "22222")
	mustDeposit(t, s, "A", 1)
	mustDeposit(t, s, "B", math.MaxInt64)

	_, err := s.Deposit(ctx, "B", 1)
	if !errors.Is(err, store.ErrInvalidAmount) || !errors.Is(err, store.ErrAmountTooLarge) {
		t.Errorf("Expected ErrAmountTooLarge on deposit, got %v", err)
	}

	err = s.Transfer(ctx, "A", "B", 1)
	if !errors.Is(err, store.ErrAmountTooLarge) || !errors.Is(err, store.ErrRecipient) {
		t.Errorf("Expected recipient ErrAmountTooLarge on transfer, got %v", err)
	}
	expectBalance(t, s, "A", 1)
	expectBalance(t, s, "B", math.MaxInt64)
}

func testGetBalanceUnknownAccount(t *testing.T, s store.LedgerStore) {
	if _, err := s.GetBalance(context.Background(), "missing"); !errors.Is(err, store.ErrAccountNotFound) {
		t.Errorf("Expected ErrAccountNotFound, got %v", err)
	}
}

func testConcurrentCreateSameNumber(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	const n = 16

	var created, duplicates atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			err := s.CreateAccount(ctx, "shared", "12345")
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, store.ErrDuplicateAccount):
				duplicates.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly one successful creation, got %d", created.Load())
	}
	if duplicates.Load() != n-1 {
		t.Errorf("Expected %d duplicate errors, got %d", n-1, duplicates.Load())
	}
}

func testConcurrentDeposits(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	mustCreate(t, s, "1001", "11111")

	const workers, perWorker = 20, 25
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if _, err := s.Deposit(ctx, "1001", 1); err != nil {
					t.Errorf("Deposit failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	expectBalance(t, s, "1001", workers*perWorker)
}

func testConcurrentWithdrawalsNeverOverdraw(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	mustCreate(t, s, "1001", "11111")
	mustDeposit(t, s, "1001", 100)

	const attempts = 200
	var succeeded, rejected atomic.Int64
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := s.Withdraw(ctx, "1001", 1)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, store.ErrInsufficientFunds):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded.Load() != 100 || rejected.Load() != 100 {
		t.Errorf("Expected 100 successes and 100 rejections, got %d and %d", succeeded.Load(), rejected.Load())
	}
	expectBalance(t, s, "1001", 0)
}

func testConcurrentOpposingTransfers(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	mustCreate(t, s, "A", "11111")
	mustCreate(t, s, "B", "22222")
	mustDeposit(t, s, "A", 1000)
	mustDeposit(t, s, "B", 1000)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := s.Transfer(ctx, "A", "B", 1); err != nil {
				t.Errorf("A->B: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := s.Transfer(ctx, "B", "A", 1); err != nil {
				t.Errorf("B->A: %v", err)
			}
		}()
	}
	wg.Wait()

	expectBalance(t, s, "A", 1000)
	expectBalance(t, s, "B", 1000)
}

func testConcurrentTransferRing(t *testing.T, s store.LedgerStore) {
	ctx := context.Background()
	accounts := []string{"R1", "R2", "R3", "R4"}
	for _, a := range accounts {
		mustCreate(t, s, a, "12345")
		mustDeposit(t, s, a, 50)
	}

	const rounds = 50
	var wg sync.WaitGroup
	for i, from := range accounts {
		to := accounts[(i+1)%len(accounts)]
		wg.Add(1)
		go func(from, to string) {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				err := s.Transfer(ctx, from, to, 7)
				if err != nil && !errors.Is(err, store.ErrInsufficientFunds) {
					t.Errorf("%s->%s: %v", from, to, err)
				}
			}
		}(from, to)
	}
	wg.Wait()

	var total int64
	for _, a := range accounts {
		balance, err := s.GetBalance(ctx, a)
		if err != nil {
			t.Fatalf("GetBalance(%s) failed: %v", a, err)
		}
		if balance < 0 {
			t.Errorf("Expected non-negative balance for %s, got %d", a, balance)
		}
		total += balance
	}
	if total != int64(50*len(accounts)) {
		t.Errorf("Expected total %d to be conserved, got %d", 50*len(accounts), total)
	}
}

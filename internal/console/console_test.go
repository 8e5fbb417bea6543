package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"mitei-ledger-go/internal/api"
	"mitei-ledger-go/internal/credential"
	"mitei-ledger-go/internal/ledger"
	"mitei-ledger-go/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func runScript(t *testing.T, script string) string {
	t.Helper()
	ledgerStore := ledger.NewService(credential.NewHasher(bcrypt.MinCost))
	bank := api.NewBankService(ledgerStore, models.SessionConfig{IdleTimeout: time.Hour})

	var out bytes.Buffer
	if err := New(bank, strings.NewReader(script), &out).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func expectLines(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, line := range want {
		if !strings.Contains(output, line) {
			t.Errorf("Expected output to contain %q\n--- output ---\n%s", line, output)
		}
	}
}

func TestRun_Scenario(t *testing.T) {
	output := runScript(t, `
create 1001 11111
create 1002 22222
login 1001 wrong
login 1001 11111
deposit 500
send 1002 200
withdraw 1000
balance
logout
login 1002 22222
balance
quit
`)

	expectLines(t, output,
		"Account created successfully! You can now log in.",
		"Incorrect password.",
		"Login successful! Welcome, Account #1001!",
		"Successfully deposited $500.00. New balance: $500.00",
		"Successfully sent $200.00 to account 1002.",
		"Your new balance is: $300.00",
		"Insufficient funds.",
		"Your balance is: $300.00",
		"Logged out successfully.",
		"Login successful! Welcome, Account #1002!",
		"Your balance is: $200.00",
		"Goodbye!",
	)
}

func TestRun_Prompt(t *testing.T) {
	output := runScript(t, "create 7 12345\nlogin 7 12345\nlogout\n")

	if !strings.Contains(output, "[7] > ") {
		t.Errorf("Expected prompt to show logged-in account, got:\n%s", output)
	}
	if !strings.HasSuffix(strings.TrimSpace(output), "=") {
		t.Errorf("Expected footer at end of input, got:\n%s", output)
	}
}

func TestRun_InputErrors(t *testing.T) {
	output := runScript(t, "frobnicate\ndeposit\nbalance\nsend 1002 1\ncreate 1 abcde\n")

	expectLines(t, output,
		`Unknown command "frobnicate"`,
		"Usage: deposit <amount>",
		"Please log in first.",
		"Invalid password. Must be a 5-digit number.",
	)
}

func TestRun_Help(t *testing.T) {
	output := runScript(t, "help\n")

	expectLines(t, output,
		"send <recipient> <amount>",
		"login <account> <password>",
		"└  quit",
	)
}

func TestRun_CanceledContext(t *testing.T) {
	ledgerStore := ledger.NewService(credential.NewHasher(bcrypt.MinCost))
	bank := api.NewBankService(ledgerStore, models.SessionConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := New(bank, strings.NewReader("balance\n"), &out).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRun_CancelInterruptsPendingRead(t *testing.T) {
	ledgerStore := ledger.NewService(credential.NewHasher(bcrypt.MinCost))
	bank := api.NewBankService(ledgerStore, models.SessionConfig{})

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	errc := make(chan error, 1)
	go func() {
		errc <- New(bank, pr, &out).Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run still blocked on input after cancel")
	}

	if !strings.Contains(out.String(), "Goodbye!") {
		t.Errorf("Expected footer after cancel, got:\n%s", out.String())
	}
}

// lockedBuffer lets the test read output while Run is still writing.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRun_CancelClosesSession(t *testing.T) {
	ledgerStore := ledger.NewService(credential.NewHasher(bcrypt.MinCost))
	bank := api.NewBankService(ledgerStore, models.SessionConfig{})
	if result, err := bank.CreateAccount(context.Background(), "1001", "11111"); err != nil || !result.Success {
		t.Fatalf("CreateAccount failed: %v %+v", err, result)
	}

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &lockedBuffer{}
	console := New(bank, pr, out)
	errc := make(chan error, 1)
	go func() {
		errc <- console.Run(ctx)
	}()

	if _, err := io.WriteString(pw, "login 1001 11111\n"); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "[1001] > ") {
		if time.Now().After(deadline) {
			t.Fatalf("Login was never processed, output:\n%s", out.String())
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run still blocked on input after cancel")
	}

	if console.token != "" || console.owner != "" {
		t.Errorf("Expected session to be closed on cancel, still logged in as %q", console.owner)
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Errorf("Expected footer after cancel, got:\n%s", out.String())
	}
}

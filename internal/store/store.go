package store

import (
	"context"
	"errors"

	"mitei-ledger-go/internal/models"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrDuplicateAccount       = errors.New("account number already exists")
	ErrInvalidAccountNumber   = errors.New("account number cannot be empty")
	ErrInvalidCredential      = errors.New("invalid credential")
	ErrAccountNotFound        = errors.New("account not found")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrAmountTooLarge         = errors.New("amount exceeds the balance limit")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInvalidRecipient       = errors.New("cannot transfer to the same account")
	ErrConcurrentModification = errors.New("concurrent modification detected")
)

// ErrSender and ErrRecipient mark which side of a transfer an error refers to.
// They are joined with the underlying sentinel, e.g. ErrRecipient + ErrAccountNotFound.
var (
	ErrSender    = errors.New("sender")
	ErrRecipient = errors.New("recipient")
)

// LedgerStore defines the contract that every backend (memory, SQLite) must satisfy.
// Amounts and balances are minor units.
type LedgerStore interface {
	// --- Accounts ---
	CreateAccount(ctx context.Context, accountNumber, credential string) error
	Authenticate(ctx context.Context, accountNumber, credential string) (*models.AccountRef, error)

	// --- Balances ---
	GetBalance(ctx context.Context, accountNumber string) (int64, error)

	// --- Transactions ---
	Deposit(ctx context.Context, accountNumber string, amount int64) (int64, error)
	Withdraw(ctx context.Context, accountNumber string, amount int64) (int64, error)
	Transfer(ctx context.Context, fromAccountNumber, toAccountNumber string, amount int64) error

	// --- Lifecycle ---
	Close()
}

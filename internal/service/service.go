package service

import (
	"context"

	"github.com/marcodesign21/chaset-tracker/internal/models"
	"github.com/marcodesign21/chaset-tracker/internal/repository"
)

// Authorization resolves a username/password pair to a user, registering
// unseen usernames on the fly.
type Authorization interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
}

// Ledger exposes the transaction list/create/delete operations.
type Ledger interface {
	ListTransactions(ctx context.Context, userID int) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, in TransactionInput) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int) error
}

// Vault exposes the credential list/create/delete operations.
type Vault interface {
	ListCredentials(ctx context.Context, userID int) ([]models.Credential, error)
	CreateCredential(ctx context.Context, in CredentialInput) (models.Credential, error)
	DeleteCredential(ctx context.Context, id int) error
}

// Service aggregates the sub-services the HTTP layer talks to.
type Service struct {
	Authorization
	Ledger
	Vault
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, bcryptCost int) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, bcryptCost),
		Ledger:        NewLedgerService(repos.Transactions),
		Vault:         NewVaultService(repos.Credentials),
	}
}

package repository

import (
	"context"
	"database/sql"

	"github.com/marcodesign21/chaset-tracker/internal/models"
	"github.com/marcodesign21/chaset-tracker/internal/repository/db"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// TransactionRepo stores ledger rows. Delete reports affected rows; zero is not an error.
type TransactionRepo interface {
	ListByUser(ctx context.Context, userID int) ([]models.Transaction, error)
	Create(ctx context.Context, in models.NewTransaction) (models.Transaction, error)
	Delete(ctx context.Context, id int) (int64, error)
}

// CredentialRepo stores vault rows with the same contract as TransactionRepo.
type CredentialRepo interface {
	ListByUser(ctx context.Context, userID int) ([]models.Credential, error)
	Create(ctx context.Context, in models.NewCredential) (models.Credential, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type Repository struct {
	Auth         Authorization
	Transactions TransactionRepo
	Credentials  CredentialRepo
}

func NewRepository(conn *sql.DB, dialect db.Dialect) *Repository {
	return &Repository{
		Auth:         NewUserRepository(conn, dialect),
		Transactions: NewTransactionRepository(conn, dialect),
		Credentials:  NewCredentialRepository(conn, dialect),
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcodesign21/chaset-tracker/internal/models"
	"github.com/marcodesign21/chaset-tracker/internal/repository"
)

type LedgerService struct {
	repo repository.TransactionRepo
}

func NewLedgerService(repo repository.TransactionRepo) *LedgerService {
	return &LedgerService{repo: repo}
}

func (s *LedgerService) ListTransactions(ctx context.Context, userID int) ([]models.Transaction, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// CreateTransaction validates in and returns the record exactly as stored.
func (s *LedgerService) CreateTransaction(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	nt, err := in.validate()
	if err != nil {
		return models.Transaction{}, err
	}
	tx, err := s.repo.Create(ctx, nt)
	if err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return models.Transaction{}, invalid("user %d does not exist", in.UserID)
		}
		return models.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

// DeleteTransaction removes id. A missing id is not an error.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id int) error {
	if id <= 0 {
		return invalid("id must be a positive integer")
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

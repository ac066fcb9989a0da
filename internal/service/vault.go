package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcodesign21/chaset-tracker/internal/models"
	"github.com/marcodesign21/chaset-tracker/internal/repository"
)

// VaultService stores credentials as given. Nothing is hashed or encrypted.
type VaultService struct {
	repo repository.CredentialRepo
}

func NewVaultService(repo repository.CredentialRepo) *VaultService {
	return &VaultService{repo: repo}
}

func (s *VaultService) ListCredentials(ctx context.Context, userID int) ([]models.Credential, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *VaultService) CreateCredential(ctx context.Context, in CredentialInput) (models.Credential, error) {
	nc, err := in.validate()
	if err != nil {
		return models.Credential{}, err
	}
	c, err := s.repo.Create(ctx, nc)
	if err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return models.Credential{}, invalid("user %d does not exist", in.UserID)
		}
		return models.Credential{}, fmt.Errorf("create credential: %w", err)
	}
	return c, nil
}

// DeleteCredential removes id. A missing id is not an error.
func (s *VaultService) DeleteCredential(ctx context.Context, id int) error {
	if id <= 0 {
		return invalid("id must be a positive integer")
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/marcodesign21/chaset-tracker/internal/models"
	"github.com/marcodesign21/chaset-tracker/internal/repository"
)

type mockCredentialRepo struct {
	ListFn   func(userID int) ([]models.Credential, error)
	CreateFn func(in models.NewCredential) (models.Credential, error)
	DeleteFn func(id int) (int64, error)

	created []models.NewCredential
}

func (m *mockCredentialRepo) ListByUser(_ context.Context, userID int) ([]models.Credential, error) {
	return m.ListFn(userID)
}

func (m *mockCredentialRepo) Create(_ context.Context, in models.NewCredential) (models.Credential, error) {
	m.created = append(m.created, in)
	return m.CreateFn(in)
}

func (m *mockCredentialRepo) Delete(_ context.Context, id int) (int64, error) {
	return m.DeleteFn(id)
}

func strPtr(s string) *string { return &s }

func echoCredential(in models.NewCredential) (models.Credential, error) {
	return models.Credential{
		ID:       4,
		UserID:   in.UserID,
		Service:  in.Service,
		Email:    in.Email,
		Password: in.Password,
		Notes:    in.Notes,
	}, nil
}

func TestVaultService_CreateCredential_StoresPlaintext(t *testing.T) {
	repo := &mockCredentialRepo{CreateFn: echoCredential}
	svc := NewVaultService(repo)

	c, err := svc.CreateCredential(context.Background(), CredentialInput{
		UserID:   1,
		Service:  "GitHub",
		Email:    "a@x.io",
		Password: " hunter2 ",
		Notes:    strPtr("work"),
	})
	if err != nil {
		t.Fatalf("CreateCredential returned error: %v", err)
	}
	if c.Password != " hunter2 " {
		t.Errorf("password must be stored verbatim, got %q", c.Password)
	}
	if c.Notes == nil || *c.Notes != "work" {
		t.Errorf("unexpected notes %v", c.Notes)
	}
}

func TestVaultService_CreateCredential_BlankNotesBecomeNull(t *testing.T) {
	repo := &mockCredentialRepo{CreateFn: echoCredential}

	for _, notes := range []*string{nil, strPtr(""), strPtr("   ")} {
		_, err := NewVaultService(repo).CreateCredential(context.Background(), CredentialInput{
			UserID:  1,
			Service: "Mail",
			Email:   "a@x.io",
			Notes:   notes,
		})
		if err != nil {
			t.Fatalf("CreateCredential returned error: %v", err)
		}
	}
	for i, nc := range repo.created {
		if nc.Notes != nil {
			t.Errorf("call %d: expected nil notes, got %q", i, *nc.Notes)
		}
		if nc.Password != "" {
			t.Errorf("call %d: expected empty password to be allowed", i)
		}
	}
}

func TestVaultService_CreateCredential_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   CredentialInput
	}{
		{"zero user", CredentialInput{Service: "s", Email: "e"}},
		{"blank service", CredentialInput{UserID: 1, Service: " ", Email: "e"}},
		{"blank email", CredentialInput{UserID: 1, Service: "s", Email: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCredentialRepo{
				CreateFn: func(models.NewCredential) (models.Credential, error) {
					t.Fatal("Create should not be called")
					return models.Credential{}, nil
				},
			}
			_, err := NewVaultService(repo).CreateCredential(context.Background(), tt.in)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestVaultService_CreateCredential_UnknownUser(t *testing.T) {
	repo := &mockCredentialRepo{
		CreateFn: func(models.NewCredential) (models.Credential, error) {
			return models.Credential{}, repository.ErrForeignKeyViolation
		},
	}
	_, err := NewVaultService(repo).CreateCredential(context.Background(), CredentialInput{
		UserID: 77, Service: "s", Email: "e",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestVaultService_ListAndDelete(t *testing.T) {
	repo := &mockCredentialRepo{
		ListFn: func(userID int) ([]models.Credential, error) {
			return []models.Credential{}, nil
		},
		DeleteFn: func(id int) (int64, error) {
			return 0, nil
		},
	}
	svc := NewVaultService(repo)

	list, err := svc.ListCredentials(context.Background(), 1)
	if err != nil || list == nil {
		t.Fatalf("expected empty non-nil list, got %v, %v", list, err)
	}
	if err := svc.DeleteCredential(context.Background(), 42); err != nil {
		t.Fatalf("deleting a missing id should succeed, got %v", err)
	}
	if err := svc.DeleteCredential(context.Background(), -3); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

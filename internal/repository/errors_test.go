package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslateError(t *testing.T) {
	plain := errors.New("boom")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"pg unique", &pgconn.PgError{Code: pgUniqueViolation}, ErrUniqueViolation},
		{"pg foreign key", &pgconn.PgError{Code: pgForeignKeyViolation}, ErrForeignKeyViolation},
		{"pg other", &pgconn.PgError{Code: "42P01"}, nil},
		{"plain", plain, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			if tt.in == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if tt.want == nil {
				if !errors.Is(got, tt.in) {
					t.Fatalf("unmapped error must pass through, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

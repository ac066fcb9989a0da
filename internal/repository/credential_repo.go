package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/marcodesign21/chaset-tracker/internal/models"
	"github.com/marcodesign21/chaset-tracker/internal/repository/db"
)

type CredentialSQL struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewCredentialRepository(conn *sql.DB, dialect db.Dialect) *CredentialSQL {
	return &CredentialSQL{db: conn, dialect: dialect}
}

var _ CredentialRepo = (*CredentialSQL)(nil)

const credentialColumns = `id, user_id, service, email, password, notes, created_at`

const (
	listCredentialsSQL  = `SELECT ` + credentialColumns + ` FROM credentials WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	insertCredentialSQL = `INSERT INTO credentials (user_id, service, email, password, notes) VALUES (?, ?, ?, ?, ?) RETURNING ` + credentialColumns
	deleteCredentialSQL = `DELETE FROM credentials WHERE id = ?`
)

func scanCredential(row rowScanner) (models.Credential, error) {
	var (
		c     models.Credential
		notes sql.NullString
	)
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Service,
		&c.Email,
		&c.Password,
		&notes,
		timestamp{dst: &c.CreatedAt},
	); err != nil {
		return models.Credential{}, err
	}
	if notes.Valid {
		s := notes.String
		c.Notes = &s
	}
	return c, nil
}

func (r *CredentialSQL) ListByUser(ctx context.Context, userID int) ([]models.Credential, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(listCredentialsSQL), userID)
	if err != nil {
		return nil, fmt.Errorf("select credentials for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Credential, 0, 16)
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}
	return out, nil
}

func (r *CredentialSQL) Create(ctx context.Context, in models.NewCredential) (models.Credential, error) {
	var notes sql.NullString
	if in.Notes != nil {
		notes = sql.NullString{String: *in.Notes, Valid: true}
	}
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(insertCredentialSQL),
		in.UserID,
		in.Service,
		in.Email,
		in.Password,
		notes,
	)
	c, err := scanCredential(row)
	if err != nil {
		return models.Credential{}, fmt.Errorf("insert credential for user %d: %w", in.UserID, translateError(err))
	}
	return c, nil
}

func (r *CredentialSQL) Delete(ctx context.Context, id int) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(deleteCredentialSQL), id)
	if err != nil {
		return 0, fmt.Errorf("delete credential %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for credential %d: %w", id, err)
	}
	return n, nil
}

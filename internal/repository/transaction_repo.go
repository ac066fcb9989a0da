package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/marcodesign21/chaset-tracker/internal/models"
	"github.com/marcodesign21/chaset-tracker/internal/repository/db"
)

type TransactionSQL struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewTransactionRepository(conn *sql.DB, dialect db.Dialect) *TransactionSQL {
	return &TransactionSQL{db: conn, dialect: dialect}
}

var _ TransactionRepo = (*TransactionSQL)(nil)

const transactionColumns = `id, user_id, description, amount, type, category, date, created_at`

const (
	// id breaks ties between same-day rows so newer entries come first
	listTransactionsSQL = `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = ? ORDER BY date DESC, id DESC`

	insertTransactionSQL = `INSERT INTO transactions (user_id, description, amount, type, category, date) VALUES (?, ?, ?, ?, ?, ?) RETURNING ` + transactionColumns

	deleteTransactionSQL = `DELETE FROM transactions WHERE id = ?`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Description,
		&t.Amount,
		&t.Type,
		&t.Category,
		&t.Date,
		timestamp{dst: &t.CreatedAt},
	)
	return t, err
}

// ListByUser returns the user's ledger newest first. Never nil.
func (r *TransactionSQL) ListByUser(ctx context.Context, userID int) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(listTransactionsSQL), userID)
	if err != nil {
		return nil, fmt.Errorf("select transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Transaction, 0, 32)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Create inserts a row and returns it as stored, id included.
func (r *TransactionSQL) Create(ctx context.Context, in models.NewTransaction) (models.Transaction, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(insertTransactionSQL),
		in.UserID,
		in.Description,
		in.Amount,
		string(in.Type),
		string(in.Category),
		in.Date,
	)
	t, err := scanTransaction(row)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("insert transaction for user %d: %w", in.UserID, translateError(err))
	}
	return t, nil
}

// Delete removes the row with id and reports how many rows went away.
func (r *TransactionSQL) Delete(ctx context.Context, id int) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(deleteTransactionSQL), id)
	if err != nil {
		return 0, fmt.Errorf("delete transaction %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for transaction %d: %w", id, err)
	}
	return n, nil
}

// Package ledger derives totals from a cached list of transactions.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/marcodesign21/chaset-tracker/internal/models"
)

// Summary holds the derived totals of a ledger. Balance may be negative.
type Summary struct {
	Income  models.Money `json:"income"`
	Expense models.Money `json:"expense"`
	Balance models.Money `json:"balance"`
}

// Summarize computes income, expense and balance = income - expense in a
// single pass. Rows with an unknown type are ignored.
func Summarize(txs []models.Transaction) Summary {
	income, expense := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case models.TypeIncome:
			income = income.Add(tx.Amount.Decimal)
		case models.TypeExpense:
			expense = expense.Add(tx.Amount.Decimal)
		}
	}
	return Summary{
		Income:  models.NewMoney(income),
		Expense: models.NewMoney(expense),
		Balance: models.NewMoney(income.Sub(expense)),
	}
}

// Balance is Summarize(txs).Balance.
func Balance(txs []models.Transaction) models.Money {
	return Summarize(txs).Balance
}

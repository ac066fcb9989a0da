package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/marcodesign21/chaset-tracker/internal/models"
)

func tx(typ models.TransactionType, amount string) models.Transaction {
	return models.Transaction{Type: typ, Amount: models.MustMoney(amount)}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name                     string
		txs                      []models.Transaction
		income, expense, balance string
	}{
		{
			name:    "empty",
			income:  "0.00",
			expense: "0.00",
			balance: "0.00",
		},
		{
			name: "coffee and salary",
			txs: []models.Transaction{
				tx(models.TypeIncome, "100.00"),
				tx(models.TypeExpense, "3.50"),
			},
			income:  "100.00",
			expense: "3.50",
			balance: "96.50",
		},
		{
			name: "negative balance",
			txs: []models.Transaction{
				tx(models.TypeExpense, "20"),
				tx(models.TypeIncome, "5.25"),
			},
			income:  "5.25",
			expense: "20.00",
			balance: "-14.75",
		},
		{
			name: "no float drift",
			txs: []models.Transaction{
				tx(models.TypeIncome, "0.10"),
				tx(models.TypeIncome, "0.20"),
				tx(models.TypeExpense, "0.30"),
			},
			income:  "0.30",
			expense: "0.30",
			balance: "0.00",
		},
		{
			name: "unknown type ignored",
			txs: []models.Transaction{
				tx(models.TypeIncome, "1"),
				tx(models.TransactionType("transfer"), "50"),
			},
			income:  "1.00",
			expense: "0.00",
			balance: "1.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.txs)
			if s.Income.String() != tt.income {
				t.Errorf("income = %s, want %s", s.Income, tt.income)
			}
			if s.Expense.String() != tt.expense {
				t.Errorf("expense = %s, want %s", s.Expense, tt.expense)
			}
			if s.Balance.String() != tt.balance {
				t.Errorf("balance = %s, want %s", s.Balance, tt.balance)
			}
		})
	}
}

func TestBalance_MatchesSums(t *testing.T) {
	var txs []models.Transaction
	wantIncome, wantExpense := decimal.Zero, decimal.Zero
	for i := 1; i <= 50; i++ {
		amt := decimal.New(int64(i*37), -2)
		if i%3 == 0 {
			txs = append(txs, models.Transaction{Type: models.TypeIncome, Amount: models.NewMoney(amt)})
			wantIncome = wantIncome.Add(amt)
		} else {
			txs = append(txs, models.Transaction{Type: models.TypeExpense, Amount: models.NewMoney(amt)})
			wantExpense = wantExpense.Add(amt)
		}
	}

	got := Balance(txs)
	want := wantIncome.Sub(wantExpense)
	if !got.Decimal.Equal(want) {
		t.Fatalf("balance = %s, want %s", got, want.StringFixed(2))
	}
}

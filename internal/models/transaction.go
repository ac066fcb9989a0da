package models

import "time"

// TransactionType tells whether an amount adds to or subtracts from the balance.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// Category is the fixed set of ledger categories.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryTransport Category = "transport"
	CategoryBills     Category = "bills"
	CategorySalary    Category = "salary"
	CategoryLeisure   Category = "leisure"
	CategoryOther     Category = "other"
)

// Categories lists every accepted category.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryBills,
	CategorySalary,
	CategoryLeisure,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Transaction is a single ledger entry. Amount is a magnitude; Type carries the sign.
type Transaction struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	Description string          `json:"description"`
	Amount      Money           `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    Category        `json:"category"`
	Date        Date            `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewTransaction is the input of a ledger insert.
type NewTransaction struct {
	UserID      int
	Description string
	Amount      Money
	Type        TransactionType
	Category    Category
	Date        Date
}

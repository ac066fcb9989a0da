package client

import (
	"maps"
	"slices"

	"github.com/marcodesign21/chaset-tracker/internal/ledger"
	"github.com/marcodesign21/chaset-tracker/internal/models"
)

// TransactionDraft is the pending input of a new ledger entry.
type TransactionDraft struct {
	Description string
	Amount      string
	Type        models.TransactionType
	Category    models.Category
	Date        string
}

// CredentialDraft is the pending input of a new vault entry.
type CredentialDraft struct {
	Service  string
	Email    string
	Password string
	Notes    string
}

// State is everything a view needs to render. Transactions and Credentials
// are a cache of the server's lists, newest first.
type State struct {
	User             *models.SessionUser
	Transactions     []models.Transaction
	Credentials      []models.Credential
	ShowPasswords    map[int]bool
	DraftTransaction TransactionDraft
	DraftCredential  CredentialDraft
	VaultNotice      string
}

func (s State) LoggedIn() bool {
	return s.User != nil
}

// Summary derives income, expense and balance from the cached ledger.
func (s State) Summary() ledger.Summary {
	return ledger.Summarize(s.Transactions)
}

func (s State) clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Transactions = slices.Clone(s.Transactions)
	out.Credentials = slices.Clone(s.Credentials)
	out.ShowPasswords = maps.Clone(s.ShowPasswords)
	return out
}

func newTransactionDraft(today string) TransactionDraft {
	return TransactionDraft{
		Type:     models.TypeExpense,
		Category: models.CategoryOther,
		Date:     today,
	}
}

package service

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/marcodesign21/chaset-tracker/internal/models"
)

const (
	maxTextLen = 255
)

// maxAmount is the first value a NUMERIC(10,2) column cannot hold.
var maxAmount = decimal.New(1, 8)

// TransactionInput is an unvalidated ledger insert as received from a client.
type TransactionInput struct {
	UserID      int
	Description string
	Amount      *models.Money
	Type        string
	Category    string
	Date        string
}

// CredentialInput is an unvalidated vault insert as received from a client.
type CredentialInput struct {
	UserID   int
	Service  string
	Email    string
	Password string
	Notes    *string
}

func validateUserID(id int) error {
	if id <= 0 {
		return invalid("user_id must be a positive integer")
	}
	return nil
}

func validateText(field, value string, required bool) (string, error) {
	v := strings.TrimSpace(value)
	if required && v == "" {
		return "", invalid("%s is required", field)
	}
	if utf8.RuneCountInString(v) > maxTextLen {
		return "", invalid("%s must be at most %d characters", field, maxTextLen)
	}
	return v, nil
}

func (in TransactionInput) validate() (models.NewTransaction, error) {
	if err := validateUserID(in.UserID); err != nil {
		return models.NewTransaction{}, err
	}
	desc, err := validateText("description", in.Description, true)
	if err != nil {
		return models.NewTransaction{}, err
	}
	if in.Amount == nil {
		return models.NewTransaction{}, invalid("amount is required")
	}
	if in.Amount.IsNegative() {
		return models.NewTransaction{}, invalid("amount must not be negative")
	}
	if in.Amount.GreaterThanOrEqual(maxAmount) {
		return models.NewTransaction{}, invalid("amount must be below %s", maxAmount)
	}
	typ := models.TransactionType(strings.ToLower(strings.TrimSpace(in.Type)))
	if !typ.Valid() {
		return models.NewTransaction{}, invalid("type must be %q or %q", models.TypeExpense, models.TypeIncome)
	}
	cat := models.Category(strings.ToLower(strings.TrimSpace(in.Category)))
	if !cat.Valid() {
		return models.NewTransaction{}, invalid("unknown category %q", in.Category)
	}
	date, err := models.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return models.NewTransaction{}, invalid("%v", err)
	}
	return models.NewTransaction{
		UserID:      in.UserID,
		Description: desc,
		Amount:      *in.Amount,
		Type:        typ,
		Category:    cat,
		Date:        date,
	}, nil
}

func (in CredentialInput) validate() (models.NewCredential, error) {
	if err := validateUserID(in.UserID); err != nil {
		return models.NewCredential{}, err
	}
	svc, err := validateText("service", in.Service, true)
	if err != nil {
		return models.NewCredential{}, err
	}
	email, err := validateText("email", in.Email, true)
	if err != nil {
		return models.NewCredential{}, err
	}
	// stored verbatim: leading/trailing spaces may be part of a password
	if utf8.RuneCountInString(in.Password) > maxTextLen {
		return models.NewCredential{}, invalid("password must be at most %d characters", maxTextLen)
	}
	var notes *string
	if in.Notes != nil {
		if n := strings.TrimSpace(*in.Notes); n != "" {
			notes = &n
		}
	}
	return models.NewCredential{
		UserID:   in.UserID,
		Service:  svc,
		Email:    email,
		Password: in.Password,
		Notes:    notes,
	}, nil
}

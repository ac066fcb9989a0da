package client

import "github.com/marcodesign21/chaset-tracker/internal/models"

// The cache transitions below never modify their input slice.

func prepend[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}

func without[T any](list []T, drop func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if !drop(v) {
			out = append(out, v)
		}
	}
	return out
}

// PrependTransaction puts the canonical record returned by a create in front.
func PrependTransaction(list []models.Transaction, tx models.Transaction) []models.Transaction {
	return prepend(list, tx)
}

// RemoveTransaction drops every entry with the given id; a missing id is a no-op.
func RemoveTransaction(list []models.Transaction, id int) []models.Transaction {
	return without(list, func(t models.Transaction) bool { return t.ID == id })
}

func PrependCredential(list []models.Credential, c models.Credential) []models.Credential {
	return prepend(list, c)
}

func RemoveCredential(list []models.Credential, id int) []models.Credential {
	return without(list, func(c models.Credential) bool { return c.ID == id })
}

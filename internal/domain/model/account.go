package model

import "time"

// Account represents a registered user able to place orders and own restaurants.
// The four billing fields default to empty string meaning "not set".
type Account struct {
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Address      string
	CardNumber   string
	CardExpiry   string
	CardCode     string
	CreatedAt    time.Time
}

// BillingComplete reports whether every billing field is set. Orders can only
// be paid from accounts with complete billing.
func (a *Account) BillingComplete() bool {
	return a.Address != "" && a.CardNumber != "" && a.CardExpiry != "" && a.CardCode != ""
}

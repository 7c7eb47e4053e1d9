package dto

// RegisterRequest describes the registration payload.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries the session token issued on register/login.
type TokenResponse struct {
	Token string `json:"token"`
}

// AccountResponse is the authenticated account view.
type AccountResponse struct {
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Address         string `json:"address"`
	CardNumber      string `json:"card_number"`
	CardExpiry      string `json:"card_expiry"`
	CardCode        string `json:"card_code"`
	BillingComplete bool   `json:"billing_complete"`
}

// UpdateAccountRequest describes the profile update payload. An empty password
// leaves the current one in place.
type UpdateAccountRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCode   string `json:"card_code"`
	Password   string `json:"password"`
}

// Package auth holds the account types returned by the Arbolitics auth API.
// Field names and JSON keys follow the upstream payload verbatim.
package auth

// Credentials is the login request body. The login proxy forwards the raw
// body without binding it; this type exists for clients and tests.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Company is the single company owned by a user.
type Company struct {
	ID        int    `json:"id"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Name      string `json:"name"`
	CreatedBy int    `json:"createdBy"`
}

// User is an authenticated account as the upstream returns it. AccessToken is
// carried redundantly inside the profile payload; no relationship to the
// separately stored session token is assumed.
type User struct {
	ID           int     `json:"id"`
	IsActive     bool    `json:"isActive"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	IsSubscribed bool    `json:"isSubscribed"`
	Lang         string  `json:"lang"`
	Company      Company `json:"company"`
	AccessToken  string  `json:"accessToken"`
}

// LoginResponse is the upstream auth envelope.
type LoginResponse struct {
	Data User `json:"data"`
}

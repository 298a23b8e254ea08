package domain

// UserMetadata carries the optional profile fields attached at signup.
type UserMetadata struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// User is the provider-owned account record. The gateway never stores it;
// it only relays the provider's representation for one request cycle.
type User struct {
	ID               string        `json:"id"`
	Email            string        `json:"email"`
	EmailConfirmedAt string        `json:"email_confirmed_at,omitempty"`
	UserMetadata     *UserMetadata `json:"user_metadata,omitempty"`
	CreatedAt        string        `json:"created_at"`
	UpdatedAt        string        `json:"updated_at"`
}

// Session is the provider-issued token pair. Relayed verbatim, never mutated.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// AuthResult pairs the user and session returned by provider operations
// that establish or confirm an account. Either field may be nil, e.g. a
// signup that still awaits email confirmation has no session.
type AuthResult struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

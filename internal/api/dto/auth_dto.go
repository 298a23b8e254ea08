package dto

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"omitempty"`
	LastName  string `json:"lastName" validate:"omitempty"`
}

// LoginRequest payload for password sign-in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ResetPasswordRequest asks the provider to email a reset link.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmRegisterRequest confirms a signup with the emailed OTP.
type ConfirmRegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

// ResendConfirmationRequest re-sends the signup confirmation email.
type ResendConfirmationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RefreshTokenRequest exchanges a refresh token for a new session.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

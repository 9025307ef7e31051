package models

// RegistrationRequest holds the fields for creating a new account.
type RegistrationRequest struct {
	UserName string `json:"userName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest holds credentials for authenticating a user. Clients send
// both the user name and the email; they must belong to the same account.
type LoginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult returns the authenticated user together with the issued pair.
// The transport layer delivers the tokens as httpOnly cookies.
type AuthResult struct {
	User   *User
	Tokens TokenPair
}

// UpdateInfoRequest modifies the account's user name and email.
type UpdateInfoRequest struct {
	UserName string `json:"userName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// UpdatePasswordRequest rotates the account password.
type UpdatePasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

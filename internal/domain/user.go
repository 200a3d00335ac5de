package domain

// User is the domain entity for a user account.
// Name doubles as the login username.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
}

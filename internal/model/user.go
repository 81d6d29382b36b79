package model

// User is a row of the users sheet.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // admin | manager | member
	Department   string `json:"department"`
}

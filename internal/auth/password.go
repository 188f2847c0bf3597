package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"go-pos-inventory/internal/models"
)

// NewUser hashes a plain password into a configured account.
func NewUser(username, password string, role models.Role, cost int) (models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password for %s: %w", username, err)
	}
	return models.User{Username: username, PasswordHash: string(hashed), Role: role}, nil
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService hashes account passwords and enforces the password policy.
type PasswordService interface {
	// HashPassword returns the stored form of a plain text password.
	HashPassword(password string) (string, error)

	// VerifyPassword returns domainerror.ErrInvalidCredentials when the
	// password does not match the stored hash.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength returns a *domainerror.AuthError coded
	// ErrCodeWeakPassword when the password violates the policy.
	ValidatePasswordStrength(password string) error
}

package auth

import (
	"calmicasa-api/pkg/password"
)

// AdminIdentity is the single configured administrator. PasswordHash (bcrypt)
// is the default credential; Password is the legacy plaintext mode, kept so
// deployments configured before hashing was introduced keep working.
type AdminIdentity struct {
	Email        string
	PasswordHash string
	Password     string
}

// CredentialValidator checks a submitted email/secret pair against the one
// configured administrator. There is no user directory.
type CredentialValidator struct {
	admin AdminIdentity
}

func NewCredentialValidator(admin AdminIdentity) *CredentialValidator {
	return &CredentialValidator{admin: admin}
}

// Validate returns true iff the pair matches the configured administrator.
// A wrong email still burns one bcrypt verify so response timing does not
// reveal whether the email was the failing half.
func (v *CredentialValidator) Validate(email, secret string) bool {
	if email != v.admin.Email {
		password.Verify(secret, password.DummyHash)
		return false
	}

	if v.admin.PasswordHash != "" {
		return password.Verify(secret, v.admin.PasswordHash)
	}

	return password.VerifyPlain(secret, v.admin.Password)
}

// Email returns the administrator address, which doubles as the staff
// notification recipient.
func (v *CredentialValidator) Email() string {
	return v.admin.Email
}

package auth

import (
	"context"
	"errors"
	"fmt"
)

// CredentialValidator checks local account existence and passwords.
// It only reads from the store.
type CredentialValidator struct {
	store  MemberStore
	hasher PasswordHasher
}

func NewCredentialValidator(store MemberStore, hasher PasswordHasher) *CredentialValidator {
	return &CredentialValidator{store: store, hasher: hasher}
}

// ValidateForRegistration fails with KindAlreadyExists if email is taken.
func (v *CredentialValidator) ValidateForRegistration(ctx context.Context, email string) error {
	exists, err := v.store.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check member existence: %w", err)
	}
	if exists {
		return alreadyRegistered(nil)
	}
	return nil
}

// ValidateForLogin returns the member owning email if password matches.
func (v *CredentialValidator) ValidateForLogin(ctx context.Context, email, password string) (*Member, error) {
	m, err := v.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, accountNotFound()
		}
		return nil, fmt.Errorf("find member: %w", err)
	}

	if m.ProviderLinked() {
		return nil, wrongPassword()
	}
	if err := v.hasher.Compare(m.Password, password); err != nil {
		return nil, wrongPassword()
	}
	return m, nil
}

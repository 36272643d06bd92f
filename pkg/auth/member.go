package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProviderPassword is stored as the password of members created through a
// social login. It is not a bcrypt hash, so no submitted password matches it.
const ProviderPassword = "oauth"

// Member is a local account keyed by email.
type Member struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// ProviderLinked reports whether the member was created by a social login.
func (m *Member) ProviderLinked() bool {
	return m.Password == ProviderPassword
}

// Credentials is the email and password pair submitted by a client.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MemberStore persists members. Implementations must enforce email
// uniqueness and return ErrDuplicateEmail when Save would violate it.
type MemberStore interface {
	// FindByEmail returns ErrMemberNotFound when no member has the email.
	FindByEmail(ctx context.Context, email string) (*Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, m *Member) (*Member, error)
}

func newMember(email, password string, now time.Time) *Member {
	return &Member{
		ID:        uuid.New(),
		Email:     email,
		Password:  password,
		CreatedAt: now.UTC(),
	}
}

func memberLockKey(email string) string {
	return "member:" + email
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/giftshop/memberauth/pkg/logger"
)

// AccountLinker makes sure a provider-authenticated email has a local member.
type AccountLinker struct {
	store  MemberStore
	locker Locker
	logger *slog.Logger
	now    func() time.Time
}

// NewAccountLinker builds a linker. A nil locker falls back to an in-process KeyedMutex.
func NewAccountLinker(store MemberStore, locker Locker) *AccountLinker {
	if locker == nil {
		locker = NewKeyedMutex()
	}
	return &AccountLinker{
		store:  store,
		locker: locker,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
}

// EnsureLinked returns the member for email, creating a provider-linked one
// if none exists. Calling it again for the same email is a no-op.
func (l *AccountLinker) EnsureLinked(ctx context.Context, email string) (*Member, error) {
	if email == "" {
		return nil, invalidInput(errors.New("empty email"))
	}

	unlock, err := l.locker.Lock(ctx, memberLockKey(email))
	if err != nil {
		return nil, fmt.Errorf("lock member %q: %w", email, err)
	}
	defer unlock()

	m, err := l.store.FindByEmail(ctx, email)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, ErrMemberNotFound) {
		return nil, fmt.Errorf("find member: %w", err)
	}

	created, err := l.store.Save(ctx, newMember(email, ProviderPassword, l.now()))
	if errors.Is(err, ErrDuplicateEmail) {
		// Another replica created it between our read and write.
		return l.store.FindByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("save member: %w", err)
	}

	l.logger.InfoContext(ctx, "provider member created",
		logger.Component("auth"),
		logger.MemberID(created.ID),
		logger.Provider(ProviderKakao),
	)
	return created, nil
}

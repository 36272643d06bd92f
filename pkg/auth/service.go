package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/giftshop/memberauth/pkg/logger"
	"github.com/giftshop/memberauth/pkg/sanitizer"
	"github.com/giftshop/memberauth/pkg/validator"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// TokenIssuer mints session tokens for a member id.
type TokenIssuer interface {
	Issue(memberID string) (string, error)
}

// SocialLogin is the result of a completed provider login.
type SocialLogin struct {
	Tokens  TokenPair
	Profile Profile
	Member  *Member
}

// Service composes credential checks, the provider client, account linking
// and token issuance into the public authentication flows.
type Service struct {
	store     MemberStore
	tokens    TokenIssuer
	external  ExternalAuthClient
	hasher    PasswordHasher
	locker    Locker
	validator *CredentialValidator
	linker    *AccountLinker
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLocker sets the lock used to serialize work per email,
// e.g. a Redis lock when several replicas share a store.
func WithLocker(l Locker) Option {
	return func(s *Service) {
		if l != nil {
			s.locker = l
		}
	}
}

func WithHasher(h PasswordHasher) Option {
	return func(s *Service) {
		if h != nil {
			s.hasher = h
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store MemberStore, tokens TokenIssuer, external ExternalAuthClient, opts ...Option) *Service {
	s := &Service{
		store:    store,
		tokens:   tokens,
		external: external,
		hasher:   NewBcryptHasher(bcrypt.DefaultCost),
		locker:   NewKeyedMutex(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(logger.Component("auth"))
	s.validator = NewCredentialValidator(store, s.hasher)
	s.linker = NewAccountLinker(store, s.locker)
	s.linker.logger = s.logger
	s.linker.now = s.now
	return s
}

// Register creates a local member. It fails with KindAlreadyExists when the
// email is taken, including when a concurrent registration wins the race.
func (s *Service) Register(ctx context.Context, creds Credentials) (*Member, error) {
	email := sanitizer.NormalizeEmail(creds.Email)
	if err := validator.Apply(
		validator.Required("email", email),
		validator.ValidEmail("email", email),
		validator.Required("password", creds.Password),
		validator.MaxBytes("password", creds.Password, maxPasswordBytes),
	); err != nil {
		return nil, invalidInput(err)
	}

	unlock, err := s.locker.Lock(ctx, memberLockKey(email))
	if err != nil {
		return nil, fmt.Errorf("lock member %q: %w", email, err)
	}
	defer unlock()

	if err := s.validator.ValidateForRegistration(ctx, email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	m, err := s.store.Save(ctx, newMember(email, hash, s.now()))
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, alreadyRegistered(err)
		}
		return nil, fmt.Errorf("save member: %w", err)
	}

	s.logger.InfoContext(ctx, "member registered", logger.MemberID(m.ID))
	return m, nil
}

// Login checks credentials and returns a session token for the member.
func (s *Service) Login(ctx context.Context, creds Credentials) (string, error) {
	email := sanitizer.NormalizeEmail(creds.Email)
	if err := validator.Apply(
		validator.Required("email", email),
		validator.Required("password", creds.Password),
	); err != nil {
		return "", invalidInput(err)
	}

	m, err := s.validator.ValidateForLogin(ctx, email, creds.Password)
	if err != nil {
		var authErr *Error
		if errors.As(err, &authErr) {
			s.logger.InfoContext(ctx, "login rejected", slog.String("reason", authErr.Kind.String()))
		}
		return "", err
	}

	token, err := s.tokens.Issue(m.ID.String())
	if err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}

	s.logger.InfoContext(ctx, "member logged in", logger.MemberID(m.ID))
	return token, nil
}

// CompleteSocialLogin redeems code, reads the provider profile and makes
// sure a local member exists for its email.
func (s *Service) CompleteSocialLogin(ctx context.Context, code, tokenEndpoint, profileEndpoint string) (*SocialLogin, error) {
	tokens, err := s.external.ExchangeCode(ctx, code, tokenEndpoint)
	if err != nil {
		return nil, err
	}

	profile, err := s.external.FetchProfile(ctx, tokens.AccessToken, profileEndpoint)
	if err != nil {
		return nil, err
	}

	m, err := s.linker.EnsureLinked(ctx, sanitizer.NormalizeEmail(profile.Email))
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "social login completed",
		logger.MemberID(m.ID),
		logger.Provider(ProviderKakao),
	)
	return &SocialLogin{Tokens: tokens, Profile: profile, Member: m}, nil
}

// UnlinkSocial disconnects the provider account and returns its id.
// The local member is kept.
func (s *Service) UnlinkSocial(ctx context.Context, accessToken, unlinkEndpoint string) (int64, error) {
	id, err := s.external.Unlink(ctx, accessToken, unlinkEndpoint)
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "provider account unlinked",
		logger.Provider(ProviderKakao),
		slog.Int64("provider_account_id", id),
	)
	return id, nil
}

// AuthorizationURL returns the provider consent page URL.
func (s *Service) AuthorizationURL() string {
	return s.external.AuthorizationURL()
}

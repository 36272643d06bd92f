package auth_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/giftshop/memberauth/pkg/auth"
	"github.com/giftshop/memberauth/pkg/validator"
	"github.com/giftshop/memberauth/svc/member"
)

const (
	tokenURL   = "http://kakao.test/oauth/token"
	profileURL = "http://kakao.test/v2/user/me"
	unlinkURL  = "http://kakao.test/v1/user/unlink"
)

func newTestService(store auth.MemberStore, tokens auth.TokenIssuer, external auth.ExternalAuthClient) *auth.Service {
	return auth.NewService(store, tokens, external,
		auth.WithHasher(auth.NewBcryptHasher(bcrypt.MinCost)),
		auth.WithClock(func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }),
	)
}

func TestService_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates member with hashed password", func(t *testing.T) {
		store := member.NewMemoryStore()
		svc := newTestService(store, &mockTokens{}, &mockExternal{})

		m, err := svc.Register(ctx, auth.Credentials{Email: "  Gift@Example.com ", Password: "s3cret"})
		require.NoError(t, err)
		assert.Equal(t, "gift@example.com", m.Email)
		assert.NotEqual(t, "s3cret", m.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(m.Password), []byte("s3cret")))
		assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), m.CreatedAt)
	})

	t.Run("duplicate email", func(t *testing.T) {
		store := member.NewMemoryStore()
		svc := newTestService(store, &mockTokens{}, &mockExternal{})

		_, err := svc.Register(ctx, auth.Credentials{Email: "gift@example.com", Password: "s3cret"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, auth.Credentials{Email: "GIFT@example.com", Password: "other"})
		require.ErrorIs(t, err, auth.ErrAlreadyExists)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("store race maps to already exists", func(t *testing.T) {
		store := &mockStore{}
		store.On("ExistsByEmail", mock.Anything, "gift@example.com").Return(false, nil)
		store.On("Save", mock.Anything, mock.Anything).Return(nil, auth.ErrDuplicateEmail)

		_, err := newTestService(store, &mockTokens{}, &mockExternal{}).
			Register(ctx, auth.Credentials{Email: "gift@example.com", Password: "s3cret"})
		require.ErrorIs(t, err, auth.ErrAlreadyExists)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := newTestService(member.NewMemoryStore(), &mockTokens{}, &mockExternal{})

		tests := []struct {
			name  string
			creds auth.Credentials
			field string
		}{
			{"empty email", auth.Credentials{Password: "x"}, "email"},
			{"bad email", auth.Credentials{Email: "not-an-email", Password: "x"}, "email"},
			{"empty password", auth.Credentials{Email: "a@example.com"}, "password"},
			{"long password", auth.Credentials{Email: "a@example.com", Password: string(make([]byte, 73))}, "password"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tt.creds)
				require.ErrorIs(t, err, auth.ErrInvalidInput)

				verrs, ok := validator.Extract(err)
				require.True(t, ok)
				assert.True(t, verrs.Has(tt.field))
			})
		}
	})

	t.Run("concurrent registrations keep one member", func(t *testing.T) {
		store := member.NewMemoryStore()
		svc := newTestService(store, &mockTokens{}, &mockExternal{})

		var (
			wg       sync.WaitGroup
			created  atomic.Int32
			conflict atomic.Int32
		)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Register(ctx, auth.Credentials{Email: "race@example.com", Password: "s3cret"})
				switch {
				case err == nil:
					created.Add(1)
				case errors.Is(err, auth.ErrAlreadyExists):
					conflict.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), created.Load())
		assert.Equal(t, int32(7), conflict.Load())
		assert.Equal(t, 1, store.Len())
	})
}

func TestService_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := member.NewMemoryStore()
	tokens := &mockTokens{}
	svc := newTestService(store, tokens, &mockExternal{})

	registered, err := svc.Register(ctx, auth.Credentials{Email: "gift@example.com", Password: "s3cret"})
	require.NoError(t, err)
	tokens.On("Issue", registered.ID.String()).Return("signed.jwt.token", nil)

	t.Run("success", func(t *testing.T) {
		token, err := svc.Login(ctx, auth.Credentials{Email: "Gift@example.com", Password: "s3cret"})
		require.NoError(t, err)
		assert.Equal(t, "signed.jwt.token", token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.Credentials{Email: "gift@example.com", Password: "nope"})
		require.ErrorIs(t, err, auth.ErrWrongPassword)
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.Credentials{Email: "nobody@example.com", Password: "s3cret"})
		require.ErrorIs(t, err, auth.ErrAccountNotFound)
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.Credentials{Email: "gift@example.com"})
		require.ErrorIs(t, err, auth.ErrInvalidInput)
	})

	t.Run("provider member cannot log in with sentinel", func(t *testing.T) {
		external := &mockExternal{}
		external.On("ExchangeCode", mock.Anything, "code", tokenURL).Return(auth.TokenPair{AccessToken: "a"}, nil)
		external.On("FetchProfile", mock.Anything, "a", profileURL).Return(auth.Profile{ID: 1, Email: "kakao@example.com"}, nil)
		social := newTestService(store, tokens, external)

		_, err := social.CompleteSocialLogin(ctx, "code", tokenURL, profileURL)
		require.NoError(t, err)

		_, err = social.Login(ctx, auth.Credentials{Email: "kakao@example.com", Password: auth.ProviderPassword})
		require.ErrorIs(t, err, auth.ErrWrongPassword)
	})

	t.Run("token failure", func(t *testing.T) {
		failing := &mockTokens{}
		failing.On("Issue", mock.Anything).Return("", errors.New("signer down"))

		_, err := newTestService(store, failing, &mockExternal{}).
			Login(ctx, auth.Credentials{Email: "gift@example.com", Password: "s3cret"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrWrongPassword)
	})
}

func TestService_CompleteSocialLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("links new member", func(t *testing.T) {
		store := member.NewMemoryStore()
		external := &mockExternal{}
		external.On("ExchangeCode", mock.Anything, "code", tokenURL).
			Return(auth.TokenPair{AccessToken: "abc", RefreshToken: "def"}, nil)
		external.On("FetchProfile", mock.Anything, "abc", profileURL).
			Return(auth.Profile{ID: 42, Email: "K@Example.com"}, nil)

		svc := newTestService(store, &mockTokens{}, external)
		res, err := svc.CompleteSocialLogin(ctx, "code", tokenURL, profileURL)
		require.NoError(t, err)
		assert.Equal(t, auth.TokenPair{AccessToken: "abc", RefreshToken: "def"}, res.Tokens)
		assert.Equal(t, "k@example.com", res.Member.Email)
		assert.True(t, res.Member.ProviderLinked())

		again, err := svc.CompleteSocialLogin(ctx, "code", tokenURL, profileURL)
		require.NoError(t, err)
		assert.Equal(t, res.Member.ID, again.Member.ID)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("existing local member is kept", func(t *testing.T) {
		store := member.NewMemoryStore()
		external := &mockExternal{}
		external.On("ExchangeCode", mock.Anything, "code", tokenURL).Return(auth.TokenPair{AccessToken: "abc"}, nil)
		external.On("FetchProfile", mock.Anything, "abc", profileURL).Return(auth.Profile{Email: "gift@example.com"}, nil)
		svc := newTestService(store, &mockTokens{}, external)

		local, err := svc.Register(ctx, auth.Credentials{Email: "gift@example.com", Password: "s3cret"})
		require.NoError(t, err)

		res, err := svc.CompleteSocialLogin(ctx, "code", tokenURL, profileURL)
		require.NoError(t, err)
		assert.Equal(t, local.ID, res.Member.ID)
		assert.False(t, res.Member.ProviderLinked())
	})

	t.Run("token exchange failure stops the flow", func(t *testing.T) {
		external := &mockExternal{}
		rejected := &auth.Error{Kind: auth.KindExternalAuthFailed, Key: auth.KeyTokenIssuance, Message: auth.MsgTokenIssuance}
		external.On("ExchangeCode", mock.Anything, "bad", tokenURL).Return(auth.TokenPair{}, rejected)

		_, err := newTestService(member.NewMemoryStore(), &mockTokens{}, external).
			CompleteSocialLogin(ctx, "bad", tokenURL, profileURL)
		require.ErrorIs(t, err, auth.ErrExternalAuthFailed)
		external.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("profile failure creates nothing", func(t *testing.T) {
		store := member.NewMemoryStore()
		external := &mockExternal{}
		external.On("ExchangeCode", mock.Anything, "code", tokenURL).Return(auth.TokenPair{AccessToken: "abc"}, nil)
		external.On("FetchProfile", mock.Anything, "abc", profileURL).
			Return(auth.Profile{}, &auth.Error{Kind: auth.KindExternalAuthFailed, Key: auth.KeyProfileLookup})

		_, err := newTestService(store, &mockTokens{}, external).CompleteSocialLogin(ctx, "code", tokenURL, profileURL)
		require.ErrorIs(t, err, auth.ErrExternalAuthFailed)
		assert.Equal(t, 0, store.Len())
	})
}

func TestService_UnlinkSocial(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	external := &mockExternal{}
	external.On("Unlink", mock.Anything, "abc", unlinkURL).Return(int64(987654321), nil)
	external.On("Unlink", mock.Anything, "expired", unlinkURL).
		Return(int64(0), &auth.Error{Kind: auth.KindExternalAuthFailed, Key: auth.KeyUnlink, Message: auth.MsgUnlink})
	svc := newTestService(member.NewMemoryStore(), &mockTokens{}, external)

	id, err := svc.UnlinkSocial(ctx, "abc", unlinkURL)
	require.NoError(t, err)
	assert.Equal(t, int64(987654321), id)

	_, err = svc.UnlinkSocial(ctx, "expired", unlinkURL)
	require.ErrorIs(t, err, auth.ErrExternalAuthFailed)
	assert.True(t, auth.ProviderRejected(err))
}

func TestService_AuthorizationURL(t *testing.T) {
	t.Parallel()

	svc := newTestService(member.NewMemoryStore(), &mockTokens{}, auth.NewKakaoClient(testKakaoConfig))
	assert.Contains(t, svc.AuthorizationURL(), "&redirect_uri=http://localhost:8080/oauth/kakao/callback&client_id=client-123")
}

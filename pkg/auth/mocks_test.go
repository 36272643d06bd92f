package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/giftshop/memberauth/pkg/auth"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) FindByEmail(ctx context.Context, email string) (*auth.Member, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*auth.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, member *auth.Member) (*auth.Member, error) {
	args := m.Called(ctx, member)
	switch v := args.Get(0).(type) {
	case func(context.Context, *auth.Member) *auth.Member:
		return v(ctx, member), args.Error(1)
	case *auth.Member:
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) Issue(memberID string) (string, error) {
	args := m.Called(memberID)
	return args.String(0), args.Error(1)
}

type mockExternal struct {
	mock.Mock
}

func (m *mockExternal) ExchangeCode(ctx context.Context, code, tokenEndpoint string) (auth.TokenPair, error) {
	args := m.Called(ctx, code, tokenEndpoint)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *mockExternal) FetchProfile(ctx context.Context, accessToken, profileEndpoint string) (auth.Profile, error) {
	args := m.Called(ctx, accessToken, profileEndpoint)
	return args.Get(0).(auth.Profile), args.Error(1)
}

func (m *mockExternal) Unlink(ctx context.Context, accessToken, unlinkEndpoint string) (int64, error) {
	args := m.Called(ctx, accessToken, unlinkEndpoint)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockExternal) AuthorizationURL() string {
	return m.Called().String(0)
}

package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftshop/memberauth/pkg/auth"
)

var testKakaoConfig = auth.KakaoConfig{
	ClientID:    "client-123",
	RedirectURL: "http://localhost:8080/oauth/kakao/callback",
}

func newKakaoServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func requireAuthError(t *testing.T, err error, message string) *auth.Error {
	t.Helper()
	require.ErrorIs(t, err, auth.ErrExternalAuthFailed)
	var authErr *auth.Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, message, authErr.Message)
	return authErr
}

func TestKakaoClient_AuthorizationURL(t *testing.T) {
	t.Parallel()

	c := auth.NewKakaoClient(testKakaoConfig)
	want := "https://kauth.kakao.com/oauth/authorize?scope=talk_message,account_email&response_type=code" +
		"&redirect_uri=http://localhost:8080/oauth/kakao/callback&client_id=client-123"

	assert.Equal(t, want, c.AuthorizationURL())
	assert.Equal(t, c.AuthorizationURL(), c.AuthorizationURL())
}

func TestKakaoClient_ExchangeCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("posts form and reads tokens", func(t *testing.T) {
		srv := newKakaoServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded;charset=utf-8", r.Header.Get("Content-Type"))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			assert.Equal(t, "client-123", r.PostForm.Get("client_id"))
			assert.Equal(t, testKakaoConfig.RedirectURL, r.PostForm.Get("redirect_url"))
			assert.Equal(t, "the-code", r.PostForm.Get("code"))

			_, _ = w.Write([]byte(`{"access_token":"abc","refresh_token":"def","token_type":"bearer"}`))
		})

		pair, err := auth.NewKakaoClient(testKakaoConfig).ExchangeCode(ctx, "the-code", srv.URL)
		require.NoError(t, err)
		assert.Equal(t, auth.TokenPair{AccessToken: "abc", RefreshToken: "def"}, pair)
	})

	t.Run("missing fields are empty", func(t *testing.T) {
		srv := newKakaoServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"access_token":"abc"}`))
		})

		pair, err := auth.NewKakaoClient(testKakaoConfig).ExchangeCode(ctx, "c", srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "abc", pair.AccessToken)
		assert.Empty(t, pair.RefreshToken)
	})

	t.Run("4xx is a token issuance error", func(t *testing.T) {
		srv := newKakaoServer(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
		})

		_, err := auth.NewKakaoClient(testKakaoConfig).ExchangeCode(ctx, "c", srv.URL)
		requireAuthError(t, err, auth.MsgTokenIssuance)
		assert.True(t, auth.ProviderRejected(err))
	})

	t.Run("5xx is unexpected", func(t *testing.T) {
		srv := newKakaoServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := auth.NewKakaoClient(testKakaoConfig).ExchangeCode(ctx, "c", srv.URL)
		requireAuthError(t, err, auth.MsgUnexpectedProvider)
		assert.False(t, auth.ProviderRejected(err))
	})

	t.Run("malformed body is unexpected", func(t *testing.T) {
		srv := newKakaoServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>oops`))
		})

		_, err := auth.NewKakaoClient(testKakaoConfig).ExchangeCode(ctx, "c", srv.URL)
		requireAuthError(t, err, auth.MsgUnexpectedProvider)
	})

	t.Run("unreachable endpoint is unexpected", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := auth.NewKakaoClient(testKakaoConfig).ExchangeCode(ctx, "c", url)
		requireAuthError(t, err, auth.MsgUnexpectedProvider)
	})

	t.Run("timeout is unexpected", func(t *testing.T) {
		srv := newKakaoServer(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})

		cfg := testKakaoConfig
		cfg.Timeout = 50 * time.Millisecond
		_, err := auth.NewKakaoClient(cfg).ExchangeCode(ctx, "c", srv.URL)
		requireAuthError(t, err, auth.MsgUnexpectedProvider)
	})
}

func TestKakaoClient_FetchProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("sends bearer token and reads email", func(t *testing.T) {
		srv := newKakaoServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"id":1234567890,"kakao_account":{"email":"k@example.com"}}`))
		})

		p, err := auth.NewKakaoClient(testKakaoConfig).FetchProfile(ctx, "abc", srv.URL)
		require.NoError(t, err)
		assert.Equal(t, auth.Profile{ID: 1234567890, Email: "k@example.com"}, p)
	})

	t.Run("4xx is a profile lookup error", func(t *testing.T) {
		srv := newKakaoServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := auth.NewKakaoClient(testKakaoConfig).FetchProfile(ctx, "abc", srv.URL)
		requireAuthError(t, err, auth.MsgProfileLookup)
	})

	t.Run("non JSON body is unexpected", func(t *testing.T) {
		srv := newKakaoServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>oops`))
		})

		_, err := auth.NewKakaoClient(testKakaoConfig).FetchProfile(ctx, "abc", srv.URL)
		requireAuthError(t, err, auth.MsgUnexpectedProvider)
		assert.False(t, auth.ProviderRejected(err))
	})

	t.Run("truncated body is unexpected", func(t *testing.T) {
		srv := newKakaoServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"kakao_account":`))
		})

		_, err := auth.NewKakaoClient(testKakaoConfig).FetchProfile(ctx, "abc", srv.URL)
		requireAuthError(t, err, auth.MsgUnexpectedProvider)
	})

	t.Run("missing email is unexpected", func(t *testing.T) {
		srv := newKakaoServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":1,"kakao_account":{}}`))
		})

		_, err := auth.NewKakaoClient(testKakaoConfig).FetchProfile(ctx, "abc", srv.URL)
		requireAuthError(t, err, auth.MsgUnexpectedProvider)
	})
}

func TestKakaoClient_Unlink(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name   string
		status int
		body   string
		want   int64
		errMsg string
	}{
		{name: "numeric id", status: http.StatusOK, body: `{"id":987654321}`, want: 987654321},
		{name: "string id", status: http.StatusOK, body: `{"id":"987654321"}`, want: 987654321},
		{name: "rejected", status: http.StatusUnauthorized, body: `{"msg":"invalid token"}`, errMsg: auth.MsgUnlink},
		{name: "non numeric id", status: http.StatusOK, body: `{"id":"abc"}`, errMsg: auth.MsgUnexpectedProvider},
		{name: "missing id", status: http.StatusOK, body: `{}`, errMsg: auth.MsgUnexpectedProvider},
		{name: "non JSON body", status: http.StatusOK, body: `<html>oops`, errMsg: auth.MsgUnexpectedProvider},
		{name: "empty body", status: http.StatusOK, body: ``, errMsg: auth.MsgUnexpectedProvider},
		{name: "server error", status: http.StatusInternalServerError, body: `{}`, errMsg: auth.MsgUnexpectedProvider},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newKakaoServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
				assert.Empty(t, r.Header.Get("Content-Type"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			id, err := auth.NewKakaoClient(testKakaoConfig).Unlink(ctx, "abc", srv.URL)
			if tt.errMsg != "" {
				requireAuthError(t, err, tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestDefaultKakaoEndpoints(t *testing.T) {
	t.Parallel()

	e := auth.DefaultKakaoEndpoints()
	assert.Equal(t, "https://kauth.kakao.com/oauth/token", e.TokenURL)
	assert.Equal(t, "https://kapi.kakao.com/v2/user/me", e.ProfileURL)
	assert.Equal(t, "https://kapi.kakao.com/v1/user/unlink", e.UnlinkURL)
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/giftshop/memberauth/pkg/logger"
)

const (
	ProviderKakao = "kakao"

	// KakaoScope is the fixed scope requested on the authorization URL.
	KakaoScope = "talk_message,account_email"

	DefaultKakaoAuthorizeURL = "https://kauth.kakao.com/oauth/authorize"
	DefaultKakaoTokenURL     = "https://kauth.kakao.com/oauth/token"
	DefaultKakaoProfileURL   = "https://kapi.kakao.com/v2/user/me"
	DefaultKakaoUnlinkURL    = "https://kapi.kakao.com/v1/user/unlink"

	formContentType = "application/x-www-form-urlencoded;charset=utf-8"
	maxResponseSize = 1 << 20
)

// KakaoConfig holds the registered application settings.
type KakaoConfig struct {
	ClientID    string        `env:"KAKAO_CLIENT_ID,required"`
	RedirectURL string        `env:"KAKAO_REDIRECT_URL,required"`
	GrantType   string        `env:"KAKAO_GRANT_TYPE" envDefault:"authorization_code"`
	Timeout     time.Duration `env:"KAKAO_TIMEOUT" envDefault:"10s"`
}

// KakaoEndpoints are the API URLs passed to each ExternalAuthClient call.
type KakaoEndpoints struct {
	TokenURL   string `env:"KAKAO_TOKEN_URL" envDefault:"https://kauth.kakao.com/oauth/token"`
	ProfileURL string `env:"KAKAO_PROFILE_URL" envDefault:"https://kapi.kakao.com/v2/user/me"`
	UnlinkURL  string `env:"KAKAO_UNLINK_URL" envDefault:"https://kapi.kakao.com/v1/user/unlink"`
}

// DefaultKakaoEndpoints returns the production Kakao API URLs.
func DefaultKakaoEndpoints() KakaoEndpoints {
	return KakaoEndpoints{
		TokenURL:   DefaultKakaoTokenURL,
		ProfileURL: DefaultKakaoProfileURL,
		UnlinkURL:  DefaultKakaoUnlinkURL,
	}
}

// TokenPair is the provider token response for one login attempt. It is never persisted.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Profile is the part of the provider user info this service needs.
type Profile struct {
	ID    int64
	Email string
}

// ExternalAuthClient talks to the identity provider. Endpoints are passed per
// call so the same client can be pointed at test doubles.
type ExternalAuthClient interface {
	ExchangeCode(ctx context.Context, code, tokenEndpoint string) (TokenPair, error)
	FetchProfile(ctx context.Context, accessToken, profileEndpoint string) (Profile, error)
	Unlink(ctx context.Context, accessToken, unlinkEndpoint string) (int64, error)
	AuthorizationURL() string
}

// operation ties an outbound call to the error reported when the provider rejects it.
type operation struct {
	name    string
	key     string
	message string
}

var (
	opTokenIssuance = operation{name: "token", key: KeyTokenIssuance, message: MsgTokenIssuance}
	opProfileLookup = operation{name: "profile", key: KeyProfileLookup, message: MsgProfileLookup}
	opUnlink        = operation{name: "unlink", key: KeyUnlink, message: MsgUnlink}
)

func (op operation) rejected(status int) *Error {
	return &Error{
		Kind:    KindExternalAuthFailed,
		Key:     op.key,
		Message: op.message,
		Err:     fmt.Errorf("%s endpoint answered %d", op.name, status),
	}
}

// KakaoClient is the Kakao implementation of ExternalAuthClient.
type KakaoClient struct {
	cfg        KakaoConfig
	httpClient *http.Client
	logger     *slog.Logger
}

type KakaoOption func(*KakaoClient)

// WithKakaoHTTPClient replaces the default client. Its Timeout is kept if set.
func WithKakaoHTTPClient(c *http.Client) KakaoOption {
	return func(k *KakaoClient) {
		if c != nil {
			k.httpClient = c
		}
	}
}

func WithKakaoLogger(l *slog.Logger) KakaoOption {
	return func(k *KakaoClient) {
		if l != nil {
			k.logger = l
		}
	}
}

func NewKakaoClient(cfg KakaoConfig, opts ...KakaoOption) *KakaoClient {
	if cfg.GrantType == "" {
		cfg.GrantType = "authorization_code"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	k := &KakaoClient{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.httpClient == nil {
		k.httpClient = &http.Client{Timeout: cfg.Timeout}
	} else if k.httpClient.Timeout == 0 {
		c := *k.httpClient
		c.Timeout = cfg.Timeout
		k.httpClient = &c
	}
	return k
}

// AuthorizationURL builds the consent page URL. Values are concatenated
// verbatim so the configured redirect URI and client id appear literally.
func (k *KakaoClient) AuthorizationURL() string {
	return DefaultKakaoAuthorizeURL +
		"?scope=" + KakaoScope +
		"&response_type=code" +
		"&redirect_uri=" + k.cfg.RedirectURL +
		"&client_id=" + k.cfg.ClientID
}

// ExchangeCode redeems an authorization code at tokenEndpoint.
// Missing token fields come back as empty strings.
func (k *KakaoClient) ExchangeCode(ctx context.Context, code, tokenEndpoint string) (TokenPair, error) {
	form := url.Values{}
	form.Set("grant_type", k.cfg.GrantType)
	form.Set("client_id", k.cfg.ClientID)
	form.Set("redirect_url", k.cfg.RedirectURL)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return TokenPair{}, unexpectedProviderError(err)
	}
	req.Header.Set("Content-Type", formContentType)

	body, err := k.do(ctx, k.httpClient, req, opTokenIssuance)
	if err != nil {
		return TokenPair{}, err
	}
	if !gjson.ValidBytes(body) {
		return TokenPair{}, k.malformed(ctx, opTokenIssuance, errors.New("token response is not valid JSON"))
	}

	res := gjson.ParseBytes(body)
	return TokenPair{
		AccessToken:  res.Get("access_token").String(),
		RefreshToken: res.Get("refresh_token").String(),
	}, nil
}

// FetchProfile reads the member email from kakao_account.email.
// A response without an email is treated as malformed.
func (k *KakaoClient) FetchProfile(ctx context.Context, accessToken, profileEndpoint string) (Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, profileEndpoint, http.NoBody)
	if err != nil {
		return Profile{}, unexpectedProviderError(err)
	}
	req.Header.Set("Content-Type", formContentType)

	body, err := k.do(ctx, k.bearerClient(ctx, accessToken), req, opProfileLookup)
	if err != nil {
		return Profile{}, err
	}
	if !gjson.ValidBytes(body) {
		return Profile{}, k.malformed(ctx, opProfileLookup, errors.New("profile response is not valid JSON"))
	}

	res := gjson.ParseBytes(body)
	email := res.Get("kakao_account.email").String()
	if email == "" {
		return Profile{}, k.malformed(ctx, opProfileLookup, errors.New("profile response has no kakao_account.email"))
	}

	// The id is informational here; a missing one is not an error.
	id, _ := parseAccountID(res.Get("id"))
	return Profile{ID: id, Email: email}, nil
}

// Unlink disconnects the app from the user's Kakao account and returns the
// provider account id. The id may arrive as a JSON number or string.
func (k *KakaoClient) Unlink(ctx context.Context, accessToken, unlinkEndpoint string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, unlinkEndpoint, http.NoBody)
	if err != nil {
		return 0, unexpectedProviderError(err)
	}

	body, err := k.do(ctx, k.bearerClient(ctx, accessToken), req, opUnlink)
	if err != nil {
		return 0, err
	}
	if !gjson.ValidBytes(body) {
		return 0, k.malformed(ctx, opUnlink, errors.New("unlink response is not valid JSON"))
	}

	id, err := parseAccountID(gjson.GetBytes(body, "id"))
	if err != nil {
		return 0, k.malformed(ctx, opUnlink, err)
	}
	return id, nil
}

// bearerClient wraps the timed HTTP client with a static bearer token source.
func (k *KakaoClient) bearerClient(ctx context.Context, accessToken string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, k.httpClient)
	c := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	c.Timeout = k.httpClient.Timeout
	return c
}

// do sends req and returns the body of a 2xx response. 4xx answers map to the
// operation's error; transport failures, timeouts and 5xx answers map to the
// generic provider error.
func (k *KakaoClient) do(ctx context.Context, c *http.Client, req *http.Request, op operation) ([]byte, error) {
	started := time.Now()
	resp, err := c.Do(req)
	if err != nil {
		k.logger.WarnContext(ctx, "kakao request failed",
			logger.Provider(ProviderKakao),
			logger.Operation(op.name),
			logger.Duration(time.Since(started)),
			logger.Error(err),
		)
		return nil, unexpectedProviderError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		k.logger.WarnContext(ctx, "kakao request rejected",
			logger.Provider(ProviderKakao),
			logger.Operation(op.name),
			logger.StatusCode(resp.StatusCode),
		)
		return nil, op.rejected(resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		k.logger.ErrorContext(ctx, "kakao request errored",
			logger.Provider(ProviderKakao),
			logger.Operation(op.name),
			logger.StatusCode(resp.StatusCode),
		)
		return nil, unexpectedProviderError(fmt.Errorf("%s endpoint answered %d", op.name, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, unexpectedProviderError(err)
	}
	return body, nil
}

func (k *KakaoClient) malformed(ctx context.Context, op operation, err error) *Error {
	k.logger.WarnContext(ctx, "kakao response malformed",
		logger.Provider(ProviderKakao),
		logger.Operation(op.name),
		logger.Error(err),
	)
	return unexpectedProviderError(err)
}

func parseAccountID(v gjson.Result) (int64, error) {
	switch v.Type {
	case gjson.Number:
		return strconv.ParseInt(v.Raw, 10, 64)
	case gjson.String:
		return strconv.ParseInt(v.Str, 10, 64)
	default:
		return 0, errors.New("account id is missing")
	}
}

var _ ExternalAuthClient = (*KakaoClient)(nil)

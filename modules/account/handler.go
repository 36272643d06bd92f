package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/giftshop/memberauth/handler"
	"github.com/giftshop/memberauth/pkg/auth"
	"github.com/giftshop/memberauth/pkg/binder"
	"github.com/giftshop/memberauth/pkg/jwt"
	"github.com/giftshop/memberauth/pkg/validator"
)

// Service is the part of auth.Service the HTTP layer calls.
type Service interface {
	Register(ctx context.Context, creds auth.Credentials) (*auth.Member, error)
	Login(ctx context.Context, creds auth.Credentials) (string, error)
	CompleteSocialLogin(ctx context.Context, code, tokenEndpoint, profileEndpoint string) (*auth.SocialLogin, error)
	UnlinkSocial(ctx context.Context, accessToken, unlinkEndpoint string) (int64, error)
	AuthorizationURL() string
}

// Handler serves the member and Kakao OAuth endpoints.
type Handler struct {
	svc          Service
	endpoints    auth.KakaoEndpoints
	signer       *jwt.Signer
	errorHandler handler.ErrorHandler
}

func NewHandler(svc Service, endpoints auth.KakaoEndpoints, signer *jwt.Signer, errorHandler handler.ErrorHandler) *Handler {
	return &Handler{
		svc:          svc,
		endpoints:    endpoints,
		signer:       signer,
		errorHandler: errorHandler,
	}
}

// Routes mounts:
//
//	POST /members/register
//	POST /members/login
//	GET  /members/me          (bearer token)
//	GET  /oauth/kakao         redirect to the consent page
//	GET  /oauth/kakao/url
//	GET  /oauth/kakao/callback?code=
//	POST /oauth/kakao/unlink
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/members", func(r chi.Router) {
		r.Post("/register", handler.Wrap(h.register,
			handler.WithBinders[CredentialsRequest](binder.JSON()),
			handler.WithErrorHandler[CredentialsRequest](h.errorHandler),
		))
		r.Post("/login", handler.Wrap(h.login,
			handler.WithBinders[CredentialsRequest](binder.JSON()),
			handler.WithErrorHandler[CredentialsRequest](h.errorHandler),
		))
		r.With(jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{
			Signer:       h.signer,
			ErrorHandler: handler.HTTPErrorFunc(h.errorHandler),
		})).Get("/me", handler.Wrap(h.me,
			handler.WithErrorHandler[struct{}](h.errorHandler),
		))
	})

	r.Route("/oauth/kakao", func(r chi.Router) {
		r.Get("/", handler.Wrap(h.authorize,
			handler.WithErrorHandler[struct{}](h.errorHandler),
		))
		r.Get("/url", handler.Wrap(h.authorizationURL,
			handler.WithErrorHandler[struct{}](h.errorHandler),
		))
		r.Get("/callback", handler.Wrap(h.callback,
			handler.WithBinders[CallbackRequest](binder.Query()),
			handler.WithErrorHandler[CallbackRequest](h.errorHandler),
		))
		r.Post("/unlink", handler.Wrap(h.unlink,
			handler.WithBinders[UnlinkRequest](binder.JSON()),
			handler.WithErrorHandler[UnlinkRequest](h.errorHandler),
		))
	})

	return r
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CallbackRequest struct {
	Code string `query:"code"`
}

type UnlinkRequest struct {
	AccessToken string `json:"access_token"`
}

type MemberResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type SocialLoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email"`
}

func (h *Handler) register(ctx handler.Context, req CredentialsRequest) handler.Response {
	m, err := h.svc.Register(ctx, auth.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return handler.Error(err)
	}
	return handler.Created(MemberResponse{ID: m.ID, Email: m.Email})
}

func (h *Handler) login(ctx handler.Context, req CredentialsRequest) handler.Response {
	token, err := h.svc.Login(ctx, auth.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(TokenResponse{Token: token})
}

func (h *Handler) me(ctx handler.Context, _ struct{}) handler.Response {
	id, ok := jwt.MemberIDFromContext(ctx)
	if !ok {
		return handler.Error(handler.ErrUnauthorized)
	}
	return handler.JSON(map[string]string{"id": id})
}

func (h *Handler) authorize(_ handler.Context, _ struct{}) handler.Response {
	return handler.Redirect(h.svc.AuthorizationURL())
}

func (h *Handler) authorizationURL(_ handler.Context, _ struct{}) handler.Response {
	return handler.JSON(map[string]string{"url": h.svc.AuthorizationURL()})
}

func (h *Handler) callback(ctx handler.Context, req CallbackRequest) handler.Response {
	if err := validator.Apply(validator.Required("code", req.Code)); err != nil {
		return handler.Error(err)
	}

	res, err := h.svc.CompleteSocialLogin(ctx, req.Code, h.endpoints.TokenURL, h.endpoints.ProfileURL)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(SocialLoginResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		Email:        res.Member.Email,
	})
}

func (h *Handler) unlink(ctx handler.Context, req UnlinkRequest) handler.Response {
	if err := validator.Apply(validator.Required("access_token", req.AccessToken)); err != nil {
		return handler.Error(err)
	}

	id, err := h.svc.UnlinkSocial(ctx, req.AccessToken, h.endpoints.UnlinkURL)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(map[string]int64{"id": id})
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/giftshop/memberauth/handler"
	"github.com/giftshop/memberauth/modules/account"
	"github.com/giftshop/memberauth/pkg/auth"
	"github.com/giftshop/memberauth/pkg/config"
	"github.com/giftshop/memberauth/pkg/httpserver"
	"github.com/giftshop/memberauth/pkg/i18n"
	"github.com/giftshop/memberauth/pkg/jwt"
)

func newServer(ctx context.Context, deps *dependencies, log *slog.Logger) (*httpserver.Server, http.Handler, error) {
	httpCfg, err := config.Load[httpserver.Config]()
	if err != nil {
		return nil, nil, err
	}
	jwtCfg, err := config.Load[jwt.Config]()
	if err != nil {
		return nil, nil, err
	}
	kakaoCfg, err := config.Load[auth.KakaoConfig]()
	if err != nil {
		return nil, nil, err
	}
	endpoints, err := config.Load[auth.KakaoEndpoints]()
	if err != nil {
		return nil, nil, err
	}

	signer, err := jwt.NewFromConfig(jwtCfg)
	if err != nil {
		return nil, nil, err
	}
	translator, err := i18n.NewDefaultTranslator(ctx,
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(true),
	)
	if err != nil {
		return nil, nil, err
	}

	kakao := auth.NewKakaoClient(kakaoCfg, auth.WithKakaoLogger(log))
	svc := auth.NewService(deps.store, signer, kakao,
		auth.WithLogger(log),
		auth.WithLocker(deps.locker),
	)

	errorHandler := handler.NewErrorHandler(handler.ErrorHandlerConfig{
		Translator: translator,
		Logger:     log,
		Mappers:    []handler.ErrorMapper{account.MapError},
	})
	errorFunc := handler.HTTPErrorFunc(errorHandler)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(log),
		middleware.Recoverer,
		translator.Middleware(translator.QueryExtractor("lang"), translator.HeaderExtractor()),
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) { errorFunc(w, r, handler.ErrNotFound) })
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) { errorFunc(w, r, handler.ErrMethodNotAllowed) })

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, 3*time.Second, deps.checks))
	r.Mount("/", account.NewHandler(svc, endpoints, signer, errorHandler).Routes())

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv, r, nil
}

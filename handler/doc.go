// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request struct filled by binders,
// and returns a Response:
//
//	func (h *Handler) login(ctx handler.Context, req LoginRequest) handler.Response {
//		token, err := h.svc.Login(ctx, auth.Credentials{Email: req.Email, Password: req.Password})
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(map[string]string{"token": token})
//	}
//
//	r.Post("/members/login", handler.Wrap(h.login,
//		handler.WithBinders[LoginRequest](binder.JSON()),
//		handler.WithErrorHandler[LoginRequest](errorHandler),
//	))
//
// Successful JSON responses use the {"data": ...} envelope. Errors are
// written by an ErrorHandler; NewErrorHandler produces localized
// {"error":{"code","message"}} bodies.
package handler

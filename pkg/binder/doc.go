// Package binder decodes HTTP requests into typed request structs.
//
// Binders share the signature func(*http.Request, any) error and are passed
// to handler.Wrap:
//
//	r.Post("/members/login", handler.Wrap(h.login, handler.WithBinders[LoginRequest](binder.JSON())))
//
// All errors wrap one of the package sentinels; IsBindingError recognizes them
// so error handlers can answer 400.
package binder

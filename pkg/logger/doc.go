// Package logger builds log/slog loggers for the service.
//
// New applies functional options over JSON-at-info defaults. WithEnvironment
// switches between a readable development preset and a JSON production
// preset. Context extractors copy request-scoped values, such as the request
// id, into every record written with a *Context logging method.
//
// The attribute helpers (Error, Component, MemberID, Provider, ...) keep key
// names consistent across packages.
package logger

// Package account exposes member registration, login and Kakao social login
// over HTTP. Domain errors from pkg/auth are mapped to statuses by MapError
// and rendered by the shared handler.ErrorHandler.
package account

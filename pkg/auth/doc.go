// Package auth implements member authentication: local email/password
// registration and login, and Kakao social login and unlink.
//
// The building blocks are usable on their own:
//
//   - CredentialValidator checks account existence and bcrypt passwords.
//   - KakaoClient exchanges authorization codes, reads profiles and unlinks
//     accounts. Every failure surfaces as KindExternalAuthFailed with an
//     operation-specific message.
//   - AccountLinker creates a provider-linked member on first social login.
//   - Service composes them and issues session tokens through a TokenIssuer.
//
// Failures are *Error values tagged with a Kind; match them with errors.Is
// against the Err* matchers:
//
//	if errors.Is(err, auth.ErrWrongPassword) { ... }
//
// Storage is abstracted by MemberStore. Implementations must reject duplicate
// emails with ErrDuplicateEmail; Service maps that to KindAlreadyExists.
package auth

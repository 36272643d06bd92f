// Package jwt issues and verifies member session tokens.
//
// Tokens are HS256 JWTs built with github.com/golang-jwt/jwt/v5. The member id
// travels in the "id" claim and is mirrored into "sub"; every token carries
// "iat" and "exp" and verification rejects tokens past their expiry.
//
// # Usage
//
//	signer, err := jwt.NewFromString(cfg.Secret, jwt.WithTTL(cfg.TTL))
//	if err != nil {
//		// missing or short secret, refuse to start
//	}
//
//	token, err := signer.Issue(member.ID.String())
//
//	claims, err := signer.Verify(token)
//	if errors.Is(err, jwt.ErrExpiredToken) {
//		// ask the client to log in again
//	}
//
// Middleware verifies bearer tokens and exposes the claims through
// ClaimsFromContext and MemberIDFromContext.
package jwt

package auth_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/giftshop/memberauth/pkg/auth"
)

func TestErrorIs(t *testing.T) {
	t.Parallel()

	err := &auth.Error{Kind: auth.KindExternalAuthFailed, Key: auth.KeyUnlink, Message: auth.MsgUnlink}
	wrapped := fmt.Errorf("handler: %w", err)

	assert.ErrorIs(t, wrapped, auth.ErrExternalAuthFailed)
	assert.NotErrorIs(t, wrapped, auth.ErrWrongPassword)
	assert.ErrorIs(t, wrapped, &auth.Error{Kind: auth.KindExternalAuthFailed, Key: auth.KeyUnlink})
	assert.NotErrorIs(t, wrapped, &auth.Error{Kind: auth.KindExternalAuthFailed, Key: auth.KeyTokenIssuance})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &auth.Error{Kind: auth.KindExternalAuthFailed, Message: auth.MsgUnexpectedProvider, Err: cause}
	assert.Equal(t, "unexpected error during social login: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "wrong_password", (&auth.Error{Kind: auth.KindWrongPassword}).Error())
}

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := map[auth.Kind]string{
		auth.KindUnknown:            "unknown",
		auth.KindInvalid:            "invalid",
		auth.KindAlreadyExists:      "already_exists",
		auth.KindAccountNotFound:    "account_not_found",
		auth.KindWrongPassword:      "wrong_password",
		auth.KindExternalAuthFailed: "external_auth_failed",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.String())
	}
}

func TestProviderRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"token", &auth.Error{Kind: auth.KindExternalAuthFailed, Key: auth.KeyTokenIssuance}, true},
		{"profile", &auth.Error{Kind: auth.KindExternalAuthFailed, Key: auth.KeyProfileLookup}, true},
		{"unlink wrapped", fmt.Errorf("x: %w", &auth.Error{Kind: auth.KindExternalAuthFailed, Key: auth.KeyUnlink}), true},
		{"unexpected", &auth.Error{Kind: auth.KindExternalAuthFailed, Key: auth.KeyUnexpectedProvider}, false},
		{"other kind", &auth.Error{Kind: auth.KindWrongPassword, Key: auth.KeyTokenIssuance}, false},
		{"plain", errors.New("x"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.ProviderRejected(tt.err))
		})
	}
}

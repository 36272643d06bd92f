package auth

import "errors"

// Kind classifies authentication failures so that callers can branch on the
// category and localize the message independently.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalid
	KindAlreadyExists
	KindAccountNotFound
	KindWrongPassword
	KindExternalAuthFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindAlreadyExists:
		return "already_exists"
	case KindAccountNotFound:
		return "account_not_found"
	case KindWrongPassword:
		return "wrong_password"
	case KindExternalAuthFailed:
		return "external_auth_failed"
	default:
		return "unknown"
	}
}

// Error is the tagged error returned by every operation in this package.
// Message is the default English text, Key is its message catalog key.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind, and on Key as well when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Key == "" || t.Key == e.Key)
}

// Kind-only matchers for errors.Is.
var (
	ErrInvalidInput       = &Error{Kind: KindInvalid}
	ErrAlreadyExists      = &Error{Kind: KindAlreadyExists}
	ErrAccountNotFound    = &Error{Kind: KindAccountNotFound}
	ErrWrongPassword      = &Error{Kind: KindWrongPassword}
	ErrExternalAuthFailed = &Error{Kind: KindExternalAuthFailed}
)

// Message catalog keys.
const (
	KeyInvalidInput       = "auth.invalid_input"
	KeyAlreadyRegistered  = "auth.already_registered"
	KeyAccountNotFound    = "auth.account_not_found"
	KeyWrongPassword      = "auth.wrong_password"
	KeyTokenIssuance      = "auth.token_issuance_failed"
	KeyProfileLookup      = "auth.profile_lookup_failed"
	KeyUnlink             = "auth.unlink_failed"
	KeyUnexpectedProvider = "auth.social_login_unexpected"
)

// Default messages.
const (
	MsgInvalidInput       = "invalid input"
	MsgAlreadyRegistered  = "already registered"
	MsgAccountNotFound    = "account not found"
	MsgWrongPassword      = "wrong password"
	MsgTokenIssuance      = "token issuance error"
	MsgProfileLookup      = "user info lookup error"
	MsgUnlink             = "unlink error"
	MsgUnexpectedProvider = "unexpected error during social login"
)

// Store-level errors. MemberStore implementations return these.
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrDuplicateEmail = errors.New("member email already exists")
)

func invalidInput(err error) *Error {
	return &Error{Kind: KindInvalid, Key: KeyInvalidInput, Message: MsgInvalidInput, Err: err}
}

func alreadyRegistered(err error) *Error {
	return &Error{Kind: KindAlreadyExists, Key: KeyAlreadyRegistered, Message: MsgAlreadyRegistered, Err: err}
}

func accountNotFound() *Error {
	return &Error{Kind: KindAccountNotFound, Key: KeyAccountNotFound, Message: MsgAccountNotFound}
}

func wrongPassword() *Error {
	return &Error{Kind: KindWrongPassword, Key: KeyWrongPassword, Message: MsgWrongPassword}
}

func unexpectedProviderError(err error) *Error {
	return &Error{Kind: KindExternalAuthFailed, Key: KeyUnexpectedProvider, Message: MsgUnexpectedProvider, Err: err}
}

// ProviderRejected reports whether err is an ExternalAuthFailed raised by a
// 4xx answer from the provider, as opposed to a transport or parse failure.
func ProviderRejected(err error) bool {
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindExternalAuthFailed {
		return false
	}
	switch e.Key {
	case KeyTokenIssuance, KeyProfileLookup, KeyUnlink:
		return true
	}
	return false
}

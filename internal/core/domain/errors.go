package domain

import "errors"

// Kind classifies an Error. The HTTP boundary maps kinds to status codes and
// never looks at messages.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidParameter
	KindBusiness
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindBusiness:
		return "business"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindTimeout:
		return "timeout"
	default:
		return "internal"
	}
}

// Error is a classified failure whose Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func InvalidParameter(msg string) *Error { return &Error{Kind: KindInvalidParameter, Message: msg} }
func Business(msg string) *Error         { return &Error{Kind: KindBusiness, Message: msg} }
func Unauthorized(msg string) *Error     { return &Error{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) *Error        { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error         { return &Error{Kind: KindNotFound, Message: msg} }
func Timeout(msg string) *Error          { return &Error{Kind: KindTimeout, Message: msg} }
func Internal(msg string) *Error         { return &Error{Kind: KindInternal, Message: msg} }

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Account errors.
var (
	ErrUserNotFound    = NotFound("user-not-found")
	ErrUserPassive     = Business("user-passive")
	ErrInvalidPassword = Business("invalid-password")
	ErrPhoneInUse      = Business("phone-in-use")
	ErrEmailInUse      = Business("email-in-use")
)

// Access errors.
var (
	ErrPrincipalMissing = Unauthorized("user-not-found")
	ErrRoleNotAllowed   = Forbidden("user-role-not-allowed")
	ErrNotEventOwner    = Forbidden("user-not-event-owner")
)

// Event errors.
var (
	ErrEventNotFound      = NotFound("event-not-found")
	ErrAlreadyParticipant = Business("user-already-participant")
	ErrNotParticipant     = Business("user-not-participant")
)

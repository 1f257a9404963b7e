package service

// Kind classifies a domain error so the transport layer can pick a
// status code and the caller a user-facing message.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindUnauthorized
	KindConflict
	KindInvalidArgument
)

// Error is a domain rule violation. Every precondition failure is one of
// these; storage faults are wrapped with %w and surface as plain errors.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func invalidArgument(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

// Domain errors surfaced by the relationship engine. Each one identifies
// the first precondition an operation violated; none are retried, since
// re-running without a state change reproduces the same failure.
var (
	ErrSelfRequest     = invalidArgument("cannot send a friend request to yourself")
	ErrBlocked         = conflict("cannot send a friend request to this user")
	ErrAlreadyFriends  = conflict("already friends")
	ErrAlreadyPending  = conflict("a friend request is already pending")
	ErrRequestNotFound = notFound("friend request not found")
	ErrNotReceiver     = unauthorized("only the receiver can act on this request")
	ErrNotPending      = conflict("this request has already been handled")
	ErrNotFriends      = conflict("not friends")
	ErrSelfBlock       = invalidArgument("cannot block yourself")
	ErrAlreadyBlocked  = conflict("user is already blocked")
	ErrNotBlocked      = conflict("user is not blocked")
	ErrUserNotFound    = notFound("user not found")
	ErrMessageNotFound = notFound("message not found")
	ErrPostNotFound    = notFound("post not found")
	ErrInvalidReaction = invalidArgument("invalid reaction kind")
	ErrInvalidPrivacy  = invalidArgument("invalid privacy value, use: public, friends or private")
	ErrNotPostOwner    = unauthorized("only the owner can modify this post")
)

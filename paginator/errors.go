package paginator

import "errors"

// Construction errors. New wraps these with details; match them with errors.Is.
var (
	ErrInvalidClientType      = errors.New("paginator: unsupported client type")
	ErrMissingContent         = errors.New("paginator: no contents or embeds given")
	ErrArgumentMismatch       = errors.New("paginator: contents and embeds must be the same length")
	ErrInvalidArgumentType    = errors.New("paginator: invalid argument type")
	ErrArgumentCount          = errors.New("paginator: wrong number of arguments")
	ErrUnsupportedButtonStyle = errors.New("paginator: unsupported button style")
)

// ErrAlreadyStarted is returned by Start when the Paginator has already been started.
var ErrAlreadyStarted = errors.New("paginator: already started")

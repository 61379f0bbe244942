package nntpframe

import (
	"errors"
	"fmt"
)

// Sentinel errors for reply framing.
var (
	// ErrEndOfStream indicates the source was exhausted before the status code
	// or the reply terminator was read.
	ErrEndOfStream = errors.New("nntp: unexpected end of stream")

	// ErrProtocolViolation indicates the server sent a status code that is not
	// three decimal digits.
	ErrProtocolViolation = errors.New("nntp: protocol violation")

	// ErrReplyTooLarge indicates a reply grew past Config.MaxReplySize.
	ErrReplyTooLarge = errors.New("nntp: reply too large")
)

// ProtocolError carries the raw status bytes that failed to parse.
type ProtocolError struct {
	Status []byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("nntp: invalid status code %q", e.Status)
}

func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocolViolation
}

// IsEndOfStream reports whether err means the connection ran dry mid-reply.
func IsEndOfStream(err error) bool {
	return errors.Is(err, ErrEndOfStream)
}

// IsProtocolViolation reports whether err means the server sent garbage
// where a status code was expected.
func IsProtocolViolation(err error) bool {
	return errors.Is(err, ErrProtocolViolation)
}

// endOfStream wraps ErrEndOfStream with the exchange state it interrupted.
func endOfStream(state exchangeState) error {
	return fmt.Errorf("%w while %s", ErrEndOfStream, state)
}

func isReplyTooLarge(err error) bool {
	return errors.Is(err, ErrReplyTooLarge)
}

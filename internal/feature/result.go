package feature

import "fmt"

// Status is the outcome of one handler invocation.
type Status uint8

const (
	// StatusForward passes the event to the next feature.
	StatusForward Status = iota
	// StatusHandled stops the event; later features do not see it.
	StatusHandled
	// StatusError reports a handler fault and abandons the event.
	StatusError
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusForward:
		return "forward"
	case StatusHandled:
		return "handled"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is returned by every handler.
type Result struct {
	// Status decides whether the walk continues.
	Status Status

	// Error is set for StatusError.
	Error error

	// Message is an optional note for debug logs.
	Message string
}

// IsHandled reports whether the event was consumed.
func (r Result) IsHandled() bool {
	return r.Status == StatusHandled
}

// IsError reports whether the handler failed.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Forward passes the event on.
func Forward() Result {
	return Result{Status: StatusForward}
}

// Handled consumes the event.
func Handled() Result {
	return Result{Status: StatusHandled}
}

// HandledWithMessage consumes the event and records why.
func HandledWithMessage(msg string) Result {
	return Result{Status: StatusHandled, Message: msg}
}

// Error reports a handler fault.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf reports a handler fault with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Error: fmt.Errorf(format, args...)}
}

package errdefs

import (
	"errors"
	"fmt"
)

// Sentinel categories. Match with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConnectFailed   = errors.New("connect failed")
	ErrOperationFailed = errors.New("operation failed")
)

// taggedError attaches a taxonomy sentinel to a formatted error. errors.Is
// matches the sentinel; errors.Unwrap walks into the formatted error so a
// %w-wrapped cause stays reachable.
type taggedError struct {
	tag error
	err error
}

func (e *taggedError) Error() string { return e.err.Error() }

func (e *taggedError) Is(target error) bool { return target == e.tag }

func (e *taggedError) Unwrap() error { return e.err }

// InvalidArgumentf builds an ErrInvalidArgument-tagged error. The format
// string supports %w for wrapping a cause.
func InvalidArgumentf(format string, args ...any) error {
	return &taggedError{tag: ErrInvalidArgument, err: fmt.Errorf(format, args...)}
}

// ConnectFailedf builds an ErrConnectFailed-tagged error.
func ConnectFailedf(format string, args ...any) error {
	return &taggedError{tag: ErrConnectFailed, err: fmt.Errorf(format, args...)}
}

// OperationFailedf builds an ErrOperationFailed-tagged error.
func OperationFailedf(format string, args ...any) error {
	return &taggedError{tag: ErrOperationFailed, err: fmt.Errorf(format, args...)}
}

// IsInvalidArgument reports whether err is tagged ErrInvalidArgument.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsConnectFailed reports whether err is tagged ErrConnectFailed.
func IsConnectFailed(err error) bool { return errors.Is(err, ErrConnectFailed) }

// IsOperationFailed reports whether err is tagged ErrOperationFailed.
func IsOperationFailed(err error) bool { return errors.Is(err, ErrOperationFailed) }

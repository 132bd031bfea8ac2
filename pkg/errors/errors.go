package errors

import (
	"errors"
	"fmt"
)

var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)

var (
	// ErrIllegalState marks misuse of the scope protocol.
	ErrIllegalState = errors.New("illegal transaction state")

	// ErrOutOfOrder marks scopes exited out of LIFO order.
	// It is raised as a panic value, never returned.
	ErrOutOfOrder = errors.New("out-of-order transaction scope exit")
)

const cantPrefix = "can't"

// Collapse joins non-nil errors. A single error is returned as is.
func Collapse(errs []error) error {
	var single error
	n := 0
	for _, err := range errs {
		if err != nil {
			single = err
			n++
		}
	}
	if n <= 1 {
		return single
	}
	return errors.Join(errs...)
}

func Error(msg string) error {
	return errors.New(msg)
}

func Errorf(msgFormat string, args ...any) error {
	return fmt.Errorf(msgFormat, args...)
}

func IllegalState(msg string) error {
	return fmt.Errorf("%w: %s", ErrIllegalState, msg)
}

func OutOfOrder(msg string) error {
	return fmt.Errorf("%w: %s", ErrOutOfOrder, msg)
}

func Fail(whatFailed string) error {
	return fmt.Errorf("%s %s", cantPrefix, whatFailed)
}

func Failf(whatFailedFormat string, args ...any) error {
	return fmt.Errorf(cantPrefix+" "+whatFailedFormat, args...)
}

func Wrap(err error, wrapper string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", wrapper, err)
}

func Wrapf(err error, wrapperFormat string, args ...any) error {
	if err == nil {
		return nil
	}
	wrapper := fmt.Sprintf(wrapperFormat, args...)
	return Wrap(err, wrapper)
}

func WrapFail(err error, whatFailed string) error {
	if err == nil {
		return nil
	}
	return Wrapf(err, "%s %s", cantPrefix, whatFailed)
}

func WrapFailf(err error, whatFailedFormat string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrapf(err, cantPrefix+" "+whatFailedFormat, args...)
}

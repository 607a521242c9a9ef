package system

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable is matched by every error caused by a backend that
// could not be opened or invoked at all.
var ErrSourceUnavailable = errors.New("device source unavailable")

// ErrUnknownPlatform is returned when no backend exists for the running platform
var ErrUnknownPlatform = errors.New("unknown platform")

// ErrUnknownKey is matched by UnknownKeyError
var ErrUnknownKey = errors.New("unknown property key")

// ParseError is returned by Build when enumeration fails. The partially built
// System is discarded; Op names the enumeration step that failed.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse system: %s", e.Op)
	}
	return fmt.Sprintf("parse system: %s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match ErrSourceUnavailable
func (e *ParseError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// UnknownKeyError reports a lookup of a key outside an entity's schema
type UnknownKeyError struct {
	Kind string
	Key  string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s has no property %q", e.Kind, e.Key)
}

func (e *UnknownKeyError) Is(target error) bool {
	return target == ErrUnknownKey
}

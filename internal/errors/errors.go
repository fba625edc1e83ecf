// Package errors carries the failures an arena operation can raise. Rule
// refusals are not errors; they come back as rejected outcomes. What is left
// here is bad input, name collisions, lock contention and store faults.
package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Code categorizes an error raised at a package boundary
type Code string

const (
	// CodeUnknown is used for errors that did not originate here
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument covers negative stats, unknown fields and empty names
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a character or creature is not in the game
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates a name is already taken in its namespace
	CodeAlreadyExists Code = "already_exists"

	// CodeConflict indicates another process holds the game
	CodeConflict Code = "conflict"

	// CodeInternal indicates a storage or encoding failure
	CodeInternal Code = "internal"

	// CodeUnavailable indicates the store cannot be reached
	CodeUnavailable Code = "unavailable"
)

// Meta keys attached by the stores and the action runner
const (
	MetaGameID = "game_id"
	MetaName   = "name"
	MetaAction = "action_id"
)

// Error is an arena error carrying a code and the game it happened in
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta sets a metadata key and returns the error for chaining
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// ForGame records which game the failure belongs to
func (e *Error) ForGame(gameID string) *Error {
	return e.WithMeta(MetaGameID, gameID)
}

// About records the character or creature the failure concerns
func (e *Error) About(name string) *Error {
	return e.WithMeta(MetaName, name)
}

func newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error, keeping the code and metadata when err is already an
// arena error. Foreign errors get CodeUnknown.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Code: CodeUnknown, Message: message, Cause: err}

	var arenaErr *Error
	if errors.As(err, &arenaErr) {
		wrapped.Code = arenaErr.Code
		wrapped.Meta = maps.Clone(arenaErr.Meta)
	}

	return wrapped
}

func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error and replaces its code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

func NotFoundf(format string, args ...any) *Error {
	return newf(CodeNotFound, format, args...)
}

func InvalidArgument(message string) *Error {
	return newf(CodeInvalidArgument, "%s", message)
}

func InvalidArgumentf(format string, args ...any) *Error {
	return newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf reports a taken character or creature name
func AlreadyExistsf(format string, args ...any) *Error {
	return newf(CodeAlreadyExists, format, args...)
}

// Conflictf reports that the game is held by someone else
func Conflictf(format string, args ...any) *Error {
	return newf(CodeConflict, format, args...)
}

func Internal(message string) *Error {
	return newf(CodeInternal, "%s", message)
}

func Internalf(format string, args ...any) *Error {
	return newf(CodeInternal, format, args...)
}

// Is checks if the error carries code
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

func IsConflict(err error) bool {
	return Is(err, CodeConflict)
}

func IsInternal(err error) bool {
	return Is(err, CodeInternal)
}

// IsRetryable reports failures that leave the game untouched and may pass
// on a second try: a busy game or an unreachable store
func IsRetryable(err error) bool {
	switch GetCode(err) {
	case CodeConflict, CodeUnavailable:
		return true
	}
	return false
}

// GetCode returns the error code, CodeUnknown for nil or foreign errors
func GetCode(err error) Code {
	var arenaErr *Error
	if errors.As(err, &arenaErr) {
		return arenaErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var arenaErr *Error
	if errors.As(err, &arenaErr) {
		return arenaErr.Meta
	}
	return nil
}

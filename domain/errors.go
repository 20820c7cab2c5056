package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exists")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrForbidden will throw if the actor is not allowed to touch the item
	ErrForbidden = errors.New("you have no permission for this item")
	// ErrNestingLevelExceeded will throw on an attempt to reply to a reply.
	// Comment threads are exactly one level deep: root -> reply.
	ErrNestingLevelExceeded = errors.New("comments can only be nested one level deep")
	// ErrCacheMiss will throw if the requested key is absent in cache
	ErrCacheMiss = errors.New("cache miss")
)

// ValidationError reports a malformed or dangling reference in user input,
// carrying the offending field so the caller can surface it.
type ValidationError struct {
	Field string
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %v", e.Field, e.Value)
}

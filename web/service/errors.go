package service

import (
	"errors"
	"fmt"

	"github.com/kitchenhub/recipe-service/logger"
)

// Error kinds returned by the services. Callers match them with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrStorage          = errors.New("storage failure")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidType      = errors.New("invalid recipe type")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrNotOwner         = errors.New("the user does not have a recipe with this id")
	ErrInactive         = errors.New("you don't have permission to create a recipe")
	ErrUnauthorized     = errors.New("could not validate credentials")
	ErrInvalidUsername  = errors.New("invalid username")
	ErrInvalidPassword  = errors.New("invalid password")

	ErrDuplicateNickname error = &kindError{kind: ErrConflict, msg: "nickname already registered"}
	ErrUserNotFound      error = &kindError{kind: ErrNotFound, msg: "there is no such user"}
	ErrRecipeNotFound    error = &kindError{kind: ErrNotFound, msg: "there is no such recipe"}
)

// kindError carries its own message while matching its kind under errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// NewInputError reports a request the service refuses to act on.
func NewInputError(msg string) error {
	return &kindError{kind: ErrInvalidInput, msg: msg}
}

// storageError logs an unexpected storage failure and wraps it as ErrStorage.
func storageError(op string, err error) error {
	logger.Warningf("%s failed: %v", op, err)
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

package common

import (
	"errors"
	"fmt"

	"github.com/kitchenhub/recipe-service/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

// Combine joins the non-nil errors; it returns nil when all are nil.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

// Recover logs a panic of the calling goroutine; use it deferred.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, " panic: ", panicErr)
		}
	}
	return panicErr
}

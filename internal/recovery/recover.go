// Package recovery turns panics raised during translation into errors at
// the API boundary, logging the stack trace.
package recovery

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// RecoverToValue wraps a function that returns a value and error.
// If the function panics, returns zero value and error. A panic value that
// is itself an error is wrapped, so errors.Is and errors.As see through it.
//
// Example:
//
//	sa, err := recovery.RecoverToValue(logger, "CreateFilter", func() (*sarg.SearchArgument, error) {
//	    return t.createFilter(schema, filters)
//	})
func RecoverToValue[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			logger.Error("Panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(stack),
			)

			var zero T
			result = zero
			if perr, ok := r.(error); ok {
				err = fmt.Errorf("%s panicked: %w", operation, perr)
				return
			}
			err = fmt.Errorf("%s panicked: %v", operation, r)
		}
	}()

	return fn()
}

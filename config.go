package pushdown

import (
	"errors"
	"log/slog"

	"github.com/hugr-lab/pushdown/sarg"
)

// Config contains configuration for a Translator.
type Config struct {
	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: If nil, uses Info level.
	// If Logger is also provided, LogLevel is ignored (use pre-configured logger).
	LogLevel *slog.Level

	// NewBuilder creates the search argument builders used for probing
	// and for the final translation. Each call MUST return a fresh,
	// independent builder.
	// OPTIONAL: Uses sarg.NewBuilder if nil.
	NewBuilder func() sarg.Builder
}

// Standard errors returned by the pushdown package.
var (
	// ErrContractViolation indicates a column type accepted for pushdown
	// that has no search argument leaf type. It signals a defect, not a
	// data condition, and aborts the translation.
	ErrContractViolation = errors.New("pushdown contract violation")

	// ErrBuild indicates the builder rejected the final translation.
	ErrBuild = errors.New("failed to build search argument")

	// ErrInvalidConfig indicates Config validation failed.
	ErrInvalidConfig = errors.New("invalid translator config")
)

// ContractError reports the column type that broke the pushdown contract.
type ContractError struct {
	Type string
}

func (e *ContractError) Error() string {
	return "no search argument leaf type for searchable column type " + e.Type
}

func (e *ContractError) Unwrap() error {
	return ErrContractViolation
}

package pushdown

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hugr-lab/pushdown/filter"
	"github.com/hugr-lab/pushdown/internal/recovery"
	"github.com/hugr-lab/pushdown/sarg"
)

// Translator converts filters into search arguments.
// It is safe for concurrent use.
type Translator struct {
	logger     *slog.Logger
	newBuilder func() sarg.Builder
}

// New creates a Translator from config.
//
// Example:
//
//	level := slog.LevelDebug
//	t, err := pushdown.New(pushdown.Config{LogLevel: &level})
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(config Config) (*Translator, error) {
	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	logger := config.Logger
	if logger == nil {
		if config.LogLevel != nil {
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: *config.LogLevel,
			})
			logger = slog.New(handler)
		} else {
			logger = slog.Default()
		}
	}

	newBuilder := config.NewBuilder
	if newBuilder == nil {
		newBuilder = sarg.NewBuilder
	}

	return &Translator{
		logger:     logger,
		newBuilder: newBuilder,
	}, nil
}

// Default returns a Translator using slog.Default() and sarg.NewBuilder.
func Default() *Translator {
	return &Translator{
		logger:     slog.Default(),
		newBuilder: sarg.NewBuilder,
	}
}

// validateConfig checks that Config fields are usable.
func validateConfig(config Config) error {
	if config.NewBuilder != nil && config.NewBuilder() == nil {
		return fmt.Errorf("NewBuilder returned nil")
	}
	return nil
}

// CreateFilter translates filters, implicitly conjoined, into a single
// search argument.
//
// Filters that cannot be expressed are skipped; the caller must still
// apply them after the scan. When none can be expressed CreateFilter
// returns (nil, nil). A contract violation is returned as an error
// wrapping ErrContractViolation.
func (t *Translator) CreateFilter(schema filter.Schema, filters []filter.Filter) (*sarg.SearchArgument, error) {
	return recovery.RecoverToValue(t.logger, "CreateFilter", func() (*sarg.SearchArgument, error) {
		return t.createFilter(schema, filters)
	})
}

func (t *Translator) createFilter(schema filter.Schema, filters []filter.Filter) (*sarg.SearchArgument, error) {
	convertible := make([]filter.Filter, 0, len(filters))
	for _, f := range filters {
		if f == nil {
			continue
		}
		if !t.convertible(schema, f, true) {
			t.logger.Debug("Filter not pushed down", "filter", f.String())
			continue
		}
		convertible = append(convertible, f)
	}

	combined, ok := filter.Combine(convertible)
	if !ok {
		return nil, nil
	}
	t.logger.Debug("Pushing down filters",
		"count", len(convertible),
		"depth", filter.Depth(combined),
	)

	b, ok := t.build(schema, combined, t.newBuilder(), true)
	if !ok {
		return nil, fmt.Errorf("%w: combined filter is not convertible", ErrBuild)
	}
	sa, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	return sa, nil
}

// Convertible reports whether f can be expressed as a search argument on
// its own. It panics with *ContractError on a contract violation.
func (t *Translator) Convertible(schema filter.Schema, f filter.Filter) bool {
	return t.convertible(schema, f, true)
}

package cli

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hugr-lab/pushdown"
	"github.com/hugr-lab/pushdown/duckdb"
	"github.com/hugr-lab/pushdown/filter"
	"github.com/hugr-lab/pushdown/sarg"
)

// noFilters is printed when nothing could be pushed down.
const noFilters = "(none)"

type dumpOptions struct {
	root       *RootOptions
	schemaFile string
}

func runDump(opts *dumpOptions, args []string, cmd *cobra.Command) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	filters, schema, err := duckdb.ParseFilters(data)
	if err != nil {
		return err
	}

	if opts.schemaFile != "" {
		overrides, err := loadSchemaOverrides(opts.schemaFile)
		if err != nil {
			return err
		}
		for col, lt := range overrides {
			schema[col] = lt
		}
	}

	logger := opts.root.logger(cmd.ErrOrStderr())
	logger.Debug("Parsed filters", "count", len(filters), "columns", len(schema))

	t, err := pushdown.New(pushdown.Config{Logger: logger})
	if err != nil {
		return err
	}
	sa, err := t.CreateFilter(schema, filters)
	if err != nil {
		return err
	}
	return writeSearchArgument(cmd.OutOrStdout(), opts.root.Format, sa)
}

func writeSearchArgument(w io.Writer, format string, sa *sarg.SearchArgument) error {
	if sa == nil {
		_, err := fmt.Fprintln(w, noFilters)
		return err
	}

	var out string
	switch format {
	case "sql":
		out = duckdb.Encode(sa, nil)
	case "wire":
		data, err := sarg.Marshal(sa)
		if err != nil {
			return err
		}
		out = base64.StdEncoding.EncodeToString(data)
	default:
		out = sa.String()
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

// loadSchemaOverrides reads a YAML mapping of column names to type names:
//
//	name: BLOB
//	price: DECIMAL(12, 4)
func loadSchemaOverrides(path string) (filter.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}

	schema := make(filter.Schema, len(raw))
	for col, name := range raw {
		lt, err := parseTypeName(name)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		schema[col] = lt
	}
	return schema, nil
}

// parseTypeName parses a type name such as "BIGINT" or "DECIMAL(10, 2)".
func parseTypeName(name string) (filter.LogicalType, error) {
	name = strings.TrimSpace(name)
	open := strings.IndexByte(name, '(')
	if open < 0 {
		if name == "" {
			return filter.LogicalType{}, fmt.Errorf("empty type name")
		}
		return filter.Type(filter.LogicalTypeID(name)), nil
	}

	id := filter.LogicalTypeID(strings.TrimSpace(name[:open])).Normalize()
	if id != filter.TypeIDDecimal {
		return filter.LogicalType{}, fmt.Errorf("type parameters are only supported for DECIMAL, got %q", name)
	}
	if !strings.HasSuffix(name, ")") {
		return filter.LogicalType{}, fmt.Errorf("unterminated type %q", name)
	}

	params := strings.Split(name[open+1:len(name)-1], ",")
	if len(params) != 2 {
		return filter.LogicalType{}, fmt.Errorf("DECIMAL needs width and scale, got %q", name)
	}
	width, err := strconv.Atoi(strings.TrimSpace(params[0]))
	if err != nil {
		return filter.LogicalType{}, fmt.Errorf("invalid DECIMAL width in %q: %w", name, err)
	}
	scale, err := strconv.Atoi(strings.TrimSpace(params[1]))
	if err != nil {
		return filter.LogicalType{}, fmt.Errorf("invalid DECIMAL scale in %q: %w", name, err)
	}
	if width < 1 || width > 38 || scale < 0 || scale > width {
		return filter.LogicalType{}, fmt.Errorf("DECIMAL(%d, %d) out of range", width, scale)
	}
	return filter.Decimal(width, scale), nil
}

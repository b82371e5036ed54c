package client

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/mwantia/taskfilter/internal/agent"
	"github.com/mwantia/taskfilter/pkg/db/store"
	"github.com/mwantia/taskfilter/pkg/filter"
	"github.com/spf13/cobra"

	config "github.com/mwantia/taskfilter/internal/config/server"
)

func NewFilterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Inspect and convert filters",
		Long:  "Encode, decode and compile filter lists the way the todo API reads them from a URL.",
	}

	cmd.AddCommand(NewFilterEncodeCommand())
	cmd.AddCommand(NewFilterDecodeCommand())
	cmd.AddCommand(NewFilterSQLCommand())
	cmd.AddCommand(NewFilterOperatorsCommand())

	return cmd
}

// readFilters accepts a serialized filter list or a URL query string.
func readFilters(arg string) ([]filter.Filter, error) {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "[") {
		fs, err := filter.Parse(arg)
		if err != nil {
			return nil, err
		}
		valid, _ := filter.Sanitize(fs)
		return valid, nil
	}

	q, err := url.ParseQuery(strings.TrimPrefix(arg, "?"))
	if err != nil {
		return nil, fmt.Errorf("invalid query string: %w", err)
	}
	fs, err := filter.FromValues(q)
	if err != nil && len(fs) == 0 {
		return nil, err
	}
	return fs, nil
}

func NewFilterEncodeCommand() *cobra.Command {
	var (
		params SimpleFlags
		query  bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Convert simple parameters to an advanced filter list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serialized := filter.Serialize(params.Params().Filters())
			if query {
				serialized = url.Values{filter.ParamFilters: {serialized}}.Encode()
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), serialized)
			return err
		},
	}

	params.Bind(cmd)
	cmd.Flags().BoolVar(&query, "query", false, "print as URL query string")

	return cmd
}

func NewFilterDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <filters>",
		Short: "Convert an advanced filter list to simple parameters",
		Long: `Convert an advanced filter list to simple parameters. The conversion is
lossy; every filter the simple form cannot express is listed as dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := readFilters(args[0])
			if err != nil {
				return err
			}

			params, dropped := filter.SimpleFromFilters(fs)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, params.Values().Encode())
			for _, f := range dropped {
				fmt.Fprintf(out, "dropped: %s %s %s\n", f.Field, f.Operator, f.Value)
			}
			return nil
		},
	}

	return cmd
}

func NewFilterSQLCommand() *cobra.Command {
	var (
		organization string
		dialect      string
	)

	cmd := &cobra.Command{
		Use:   "sql <filters|query>",
		Short: "Print the SQL a filter list compiles to",
		Long: `Print the SQL the todo list query runs for a filter list, given either as
a serialized filter array or as a URL query string. Nothing is executed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}
			compiler, err := agent.NewCompiler(cfg.Filter)
			if err != nil {
				return err
			}

			fs, err := readFilters(args[0])
			if err != nil {
				return err
			}
			if dialect == "" {
				dialect = cfg.Database.Type
			}

			sql, err := store.RenderSQL(dialect, compiler, organization, fs)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sql)
			return err
		},
	}

	cmd.Flags().StringVar(&organization, "organization", "demo", "organization the query is scoped to")
	cmd.Flags().StringVar(&dialect, "dialect", "", "sql dialect, sqlite or postgres (default is database.type)")

	return cmd
}

func NewFilterOperatorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "operators <type>",
		Short:     "List the operators of a filter type",
		Args:      cobra.ExactArgs(1),
		ValidArgs: filterTypeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := filter.Type(args[0])
			if !t.Valid() {
				return fmt.Errorf("unknown filter type '%s', expected one of %s", args[0], strings.Join(filterTypeNames(), ", "))
			}
			return printOperators(cmd.OutOrStdout(), t)
		},
	}

	return cmd
}

func printOperators(w io.Writer, t filter.Type) error {
	for _, op := range filter.OperatorsForType(t) {
		if _, err := fmt.Fprintf(w, "%-24s %s\n", op, op.Label()); err != nil {
			return err
		}
	}
	return nil
}

func filterTypeNames() []string {
	names := make([]string, 0, len(filter.Types))
	for _, t := range filter.Types {
		names = append(names, string(t))
	}
	return names
}

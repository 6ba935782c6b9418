package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/graphdb/internal/query"
)

// newQueryCmd implements `query WHERE <expr> [CAST] [CASE_SENSITIVE]`.
// The trailing CAST/CASE_SENSITIVE modifier tokens are
// popped off the end before the remainder is rejoined and handed to the
// parser, so a quoted or unquoted WHERE expression works the same way.
func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query WHERE <expr> [CAST] [CASE_SENSITIVE]",
		Short: "Run a WHERE-clause query against the active database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			exprTokens, opts := splitQueryModifiers(args, app.queryOpts)
			q, err := query.Parse(strings.Join(exprTokens, " "))
			if err != nil {
				return err
			}
			results, err := query.Execute(q, e.Vertices(), e.Indexes(), opts)
			if err != nil {
				return err
			}
			sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
			for _, r := range results {
				fmt.Print(r.ID, " ")
				printAttrs(r.Attrs)
			}
			return nil
		},
	}
}

func splitQueryModifiers(args []string, base query.Options) ([]string, query.Options) {
	opts := base
	end := len(args)
	for end > 0 {
		switch strings.ToUpper(args[end-1]) {
		case "CAST":
			opts.CastNonStrings = true
			end--
			continue
		case "CASE_SENSITIVE":
			opts.CaseSensitive = true
			end--
			continue
		}
		break
	}
	return args[:end], opts
}

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/graphdb/internal/gerrors"
	"github.com/katalvlaran/graphdb/internal/types"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add key=value...",
		Short: "Add a vertex with the given attributes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			attrs := attrsFromTokens(args)
			if len(attrs) == 0 {
				return gerrors.Validation("add requires at least one key=value attribute")
			}
			id, err := e.AddNode(attrs)
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a vertex's attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			attrs := e.GetValue(args[0])
			if attrs == nil {
				return gerrors.NotFound("unknown vertex id %q", args[0])
			}
			printAttrs(attrs)
			return nil
		},
	}
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> key=value...",
		Short: "Merge attributes into an existing vertex",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			partial := attrsFromTokens(args[1:])
			if err := e.UpdateNode(args[0], partial); err != nil {
				return err
			}
			fmt.Println("updated", args[0])
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a vertex and its incident edges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			if err := e.DeleteNode(args[0]); err != nil {
				return err
			}
			fmt.Println("deleted", args[0])
			return nil
		},
	}
}

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <name>",
		Short: "Find vertices by name (index lookup or substring scan)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			ids := e.FindByName(args[0])
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <id1> <id2>",
		Short: "Print the shortest path between two vertices",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			path, err := e.FindPath(args[0], args[1])
			if err != nil {
				return err
			}
			if path == nil {
				fmt.Println("no path")
				return nil
			}
			for _, id := range path {
				fmt.Println(id)
			}
			return nil
		},
	}
}

// attrsFromTokens parses "key=value" tokens using the
// bool/int/float/string trial order.
func attrsFromTokens(tokens []string) map[string]types.Value {
	raw := parseKeyValues(tokens)
	out := make(map[string]types.Value, len(raw))
	for k, v := range raw {
		out[k] = types.ParseScalar(v)
	}
	return out
}

func printAttrs(attrs map[string]types.Value) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%s\n", k, attrs[k].String())
	}
}

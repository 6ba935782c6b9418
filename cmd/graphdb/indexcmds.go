package main

import (
	"fmt"

	"github.com/katalvlaran/graphdb/internal/catalog"
	"github.com/katalvlaran/graphdb/internal/gerrors"
	"github.com/spf13/cobra"
)

func newCreateIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-index <attr>",
		Short: "Build an index on a vertex attribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !catalog.ValidName(args[0]) {
				return gerrors.Validation("invalid attribute name %q", args[0])
			}
			e, err := app.engine()
			if err != nil {
				return err
			}
			if err := e.CreateIndex(args[0]); err != nil {
				return err
			}
			fmt.Printf("created index on %q\n", args[0])
			return nil
		},
	}
}

func newDropIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop-index <attr>",
		Short: "Remove an index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			if err := e.DropIndex(args[0]); err != nil {
				return err
			}
			fmt.Printf("dropped index on %q\n", args[0])
			return nil
		},
	}
}

func newListIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-indexes",
		Short: "List indexed attributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			for _, attr := range e.ListIndexes() {
				fmt.Println(attr)
			}
			return nil
		},
	}
}

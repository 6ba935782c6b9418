package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBeginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "begin",
		Short: "Open a transaction over the active database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			if err := e.Begin(); err != nil {
				return err
			}
			fmt.Println("transaction started")
			return nil
		},
	}
}

func newCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit",
		Short: "Discard the most recent snapshot, keeping the transaction open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			if err := e.Commit(); err != nil {
				return err
			}
			fmt.Println("committed")
			return nil
		},
	}
}

func newRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Undo the most recent mutation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			if err := e.Rollback(); err != nil {
				return err
			}
			fmt.Println("rolled back")
			return nil
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Close the transaction without the ability to roll back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.engine()
			if err != nil {
				return err
			}
			if err := e.Stop(); err != nil {
				return err
			}
			fmt.Println("transaction stopped")
			return nil
		},
	}
}

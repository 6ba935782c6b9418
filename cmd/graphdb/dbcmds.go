package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCreateDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-db <name>",
		Short: "Register a new, empty database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cat.CreateDatabase(args[0]); err != nil {
				return err
			}
			fmt.Printf("created database %q\n", args[0])
			return nil
		},
	}
}

func newDeleteDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-db <name>",
		Short: "Delete a database and its companion files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cat.DeleteDatabase(args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted database %q\n", args[0])
			return nil
		},
	}
}

func newRenameDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename-db <old> <new>",
		Short: "Rename a database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cat.RenameDatabase(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("renamed database %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newListDBsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-dbs",
		Short: "List registered databases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range app.cat.ListDatabases() {
				marker := "  "
				if name == app.activeName {
					marker = "* "
				}
				fmt.Println(marker + name)
			}
			return nil
		},
	}
}

func newUseDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use-db <name>",
		Short: "Select the active database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.useDatabase(args[0]); err != nil {
				return err
			}
			fmt.Printf("using database %q\n", args[0])
			return nil
		},
	}
}

func newBackupDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup-db <name> <file>",
		Short: "Copy a database's companion files to a backup base path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cat.BackupDatabase(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("backed up %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newRestoreDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore-db <name> <file>",
		Short: "Restore a database's companion files from a backup base path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cat.RestoreDatabase(args[0], args[1]); err != nil {
				return err
			}
			if app.activeName == args[0] {
				// The live engine handle is stale after a restore; force a
				// reopen on next use so callers see the restored state.
				app.activeEngine = nil
				if err := app.useDatabase(args[0]); err != nil {
					return err
				}
			}
			fmt.Printf("restored %q from %q\n", args[0], args[1])
			return nil
		},
	}
}

func newExportDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-db <name> <file>",
		Short: "Export a database's companion files to a base path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cat.ExportDatabase(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("exported %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newImportDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-db <name> <file> [merge]",
		Short: "Import companion files into a database, overwriting or merging",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			merge := len(args) == 3 && args[2] == "merge"
			if err := app.cat.ImportDatabase(args[0], args[1], merge); err != nil {
				return err
			}
			if app.activeName == args[0] {
				app.activeEngine = nil
				if err := app.useDatabase(args[0]); err != nil {
					return err
				}
			}
			mode := "overwrite"
			if merge {
				mode = "merge"
			}
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Printf("imported %q into %q (%s)\n", args[1], args[0], yellow(mode))
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/graphdb/internal/catalog"
	"github.com/katalvlaran/graphdb/internal/config"
)

var (
	app        *App
	configPath string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "graphdb",
		Short: "An embeddable file-backed graph database",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app != nil {
				return nil
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cat, err := catalog.Open(cfg.DataDir, cfg.RegistryFile)
			if err != nil {
				return err
			}
			app = newApp(cfg, cat)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "graphdb.yaml", "path to graphdb.yaml")

	root.AddCommand(
		newCreateDBCmd(), newDeleteDBCmd(), newRenameDBCmd(), newListDBsCmd(), newUseDBCmd(),
		newBackupDBCmd(), newRestoreDBCmd(), newExportDBCmd(), newImportDBCmd(),
		newCreateIndexCmd(), newDropIndexCmd(), newListIndexesCmd(),
		newAddCmd(), newShowCmd(), newUpdateCmd(), newDeleteCmd(), newFindCmd(), newPathCmd(),
		newConnectCmd(), newDisconnectCmd(),
		newQueryCmd(),
		newBeginCmd(), newCommitCmd(), newRollbackCmd(), newStopCmd(),
		newShellCmd(),
	)
	return root
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the posts schema and indexes",
	Long: `Create or update the posts table (SQL) or collection validator and
indexes (MongoDB) for the configured database. Running it again is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(cmd.Context()); err != nil {
			return err
		}
		utils.LogSuccess("Posts schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

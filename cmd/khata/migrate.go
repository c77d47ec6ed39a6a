package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/khataflow/khataflow/internal/cli"
	"github.com/khataflow/khataflow/internal/config"
	"github.com/khataflow/khataflow/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(migrateStatusCmd())
	cmd.AddCommand(migrateRunCmd())

	return cmd
}

// openRawStorage opens the database without running migrations, so the
// status subcommand can report the version actually on disk.
func openRawStorage() (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	return storage.NewSQLiteStorage(config.ExpandPath(dbPath))
}

func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openRawStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			version, err := store.SchemaVersion(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}

			fmt.Printf("Schema version: %d (latest: %d)\n", version, storage.ExpectedSchemaVersion)
			if version < storage.ExpectedSchemaVersion {
				fmt.Println(cli.WarningStyle.Render("Database is behind. Run 'khata migrate run'."))
			} else {
				fmt.Println(cli.SuccessStyle.Render("Database is up to date."))
			}
			return nil
		},
	}
}

func migrateRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openRawStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Schema at version %d", storage.ExpectedSchemaVersion)))
			return nil
		},
	}
}

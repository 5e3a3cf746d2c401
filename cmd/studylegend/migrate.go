package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studylegend/backend/internal/cli"
	"github.com/studylegend/backend/internal/database"
	"github.com/studylegend/backend/internal/question"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migration commands",
	}

	migrateCmd.AddCommand(newMigrateDBCommand())
	migrateCmd.AddCommand(newMigrateImportDBCommand())

	return migrateCmd
}

func newMigrateDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "db",
		Short: "Apply the database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := database.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}

func newMigrateImportDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import-db",
		Short: "Import the YAML question files into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			source := question.NewFileQuestionRepository(cfg.Storage.QuestionsDirectory)
			destination := question.NewDBQuestionRepository(db)
			return cli.RunImportDB(cmd.Context(), source, destination, os.Stdout)
		},
	}
}

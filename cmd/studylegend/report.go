package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/studylegend/backend/internal/cli"
)

func newReportCommand() *cobra.Command {
	var (
		subject string
		export  bool
	)

	command := &cobra.Command{
		Use:   "report",
		Short: "Show mastery statistics per subject and week",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := newStorage(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			ctx := cmd.Context()
			settings, err := store.ScoreSettings(ctx, cfg.Practice.User)
			if err != nil {
				return fmt.Errorf("failed to load score settings: %w", err)
			}

			exportDir := ""
			if export {
				exportDir = cfg.Storage.ReportsDirectory
			}

			return cli.RunMasteryReport(ctx, store.questions, settings, time.Now().Unix(), subject, exportDir, os.Stdout)
		},
	}

	command.Flags().StringVar(&subject, "subject", "", "report a single subject")
	command.Flags().BoolVar(&export, "export", false, "also export the report as markdown and PDF")

	return command
}

func newSubjectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List subjects and their question counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := newStorage(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			ctx := cmd.Context()
			subjects, err := store.questions.Subjects(ctx)
			if err != nil {
				return fmt.Errorf("failed to list subjects: %w", err)
			}
			if len(subjects) == 0 {
				fmt.Println("No subjects found.")
				return nil
			}

			for _, subject := range subjects {
				questions, err := store.questions.FindBySubject(ctx, subject)
				if err != nil {
					return fmt.Errorf("failed to load subject %s: %w", subject, err)
				}
				fmt.Printf("%-24s  %d question(s)\n", subject, len(questions))
			}
			return nil
		},
	}
}

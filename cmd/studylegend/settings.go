package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studylegend/backend/internal/scoring"
)

func newSettingsCommand() *cobra.Command {
	settingsCommand := &cobra.Command{
		Use:   "settings",
		Short: "Manage per-user score settings",
	}

	settingsCommand.AddCommand(newSettingsShowCommand())
	settingsCommand.AddCommand(newSettingsSetCommand())

	return settingsCommand
}

func newSettingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the score settings for the configured user",
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

			settings, err := store.ScoreSettings(cmd.Context(), cfg.Practice.User)
			if err != nil {
				return fmt.Errorf("failed to load score settings: %w", err)
			}

			fmt.Printf("user: %s\n", cfg.Practice.User)
			fmt.Printf("decay_factor: %g\n", settings.DecayFactor)
			fmt.Printf("forgetting_decay_factor: %g\n", settings.ForgettingDecayFactor)
			return nil
		},
	}
}

func newSettingsSetCommand() *cobra.Command {
	var (
		decayFactor           float64
		forgettingDecayFactor float64
	)

	command := &cobra.Command{
		Use:   "set",
		Short: "Save score settings for the configured user",
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

			if store.settings == nil {
				return fmt.Errorf("score settings require the mysql storage backend, current backend is %s", cfg.Storage.Backend)
			}

			settings := scoring.Settings{
				DecayFactor:           decayFactor,
				ForgettingDecayFactor: forgettingDecayFactor,
			}
			if err := store.settings.Save(cmd.Context(), cfg.Practice.User, settings); err != nil {
				return fmt.Errorf("failed to save score settings: %w", err)
			}

			fmt.Printf("Saved score settings for %s\n", cfg.Practice.User)
			return nil
		},
	}

	command.Flags().Float64Var(&decayFactor, "decay", scoring.DefaultDecayFactor, "attempt age decay factor")
	command.Flags().Float64Var(&forgettingDecayFactor, "forgetting", scoring.DefaultForgettingDecayFactor, "forgetting decay factor")

	return command
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/studylegend/backend/internal/bootstrap"
	"github.com/studylegend/backend/internal/cli"
	"github.com/studylegend/backend/internal/feedback"
	"github.com/studylegend/backend/internal/feedback/openai"
	"github.com/studylegend/backend/internal/practice"
	"github.com/studylegend/backend/internal/question"
)

func newPracticeCommand() *cobra.Command {
	var (
		subject   string
		mode      string
		threshold float64
		noAI      bool
	)

	command := &cobra.Command{
		Use:   "practice",
		Short: "Start an interactive practice session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if mode == "" {
				mode = cfg.Practice.Mode
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Practice.MaxScoreThreshold
			}

			store, err := newStorage(cfg)
			if err != nil {
				return err
			}

			app := bootstrap.New()
			app.AddShutdownHook(func(ctx context.Context) error {
				return store.Close()
			})
			defer func() {
				_ = store.Close()
			}()

			ctx := cmd.Context()
			settings, err := store.ScoreSettings(ctx, cfg.Practice.User)
			if err != nil {
				return fmt.Errorf("failed to load score settings: %w", err)
			}

			var questions []question.Question
			if subject != "" {
				questions, err = store.questions.FindBySubject(ctx, subject)
			} else {
				questions, err = store.questions.FindAll(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to load questions: %w", err)
			}

			queue, err := practice.BuildQueue(questions, practice.Mode(mode), threshold, settings, time.Now().Unix())
			if err != nil {
				return err
			}
			if len(queue) == 0 {
				fmt.Println("No questions need practice right now.")
				return nil
			}

			var grader feedback.Client
			if !noAI && cfg.OpenAI.APIKey != "" {
				fmt.Printf("AI feedback enabled (model: %s)\n", cfg.OpenAI.Model)
				openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.RetryAttempts)
				app.AddShutdownHook(func(ctx context.Context) error {
					return openaiClient.Close()
				})
				defer func() {
					_ = openaiClient.Close()
				}()
				grader = openaiClient
			}

			practiceCLI := cli.NewPracticeSessionCLI(store.questions, grader, queue, settings)
			fmt.Printf("Starting practice session with %d question(s)\n", practiceCLI.GetQuestionCount())

			return app.Run(ctx, func(ctx context.Context) error {
				return practiceCLI.Run(ctx, practiceCLI)
			})
		},
	}

	command.Flags().StringVar(&subject, "subject", "", "practice a single subject")
	command.Flags().StringVar(&mode, "mode", "", "queue order: sequential, random or needs_practice")
	command.Flags().Float64Var(&threshold, "threshold", 0, "include questions scoring at or below this value")
	command.Flags().BoolVar(&noAI, "no-ai", false, "disable AI answer feedback")

	return command
}

// Package cli implements the interactive terminal surfaces: the
// practice session loop, the mastery report, and the YAML to MySQL
// import.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/studylegend/backend/internal/feedback"
	"github.com/studylegend/backend/internal/question"
	"github.com/studylegend/backend/internal/scoring"
)

var errEnd = errors.New("end")

//go:generate mockgen -source=practice_session.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(context context.Context) error
}

// PracticeSessionCLI walks the user through a queue of questions, one
// Session call per question. A nil grader means self rating only.
type PracticeSessionCLI struct {
	repository   question.Repository
	grader       feedback.Client
	settings     scoring.Settings
	queue        []question.Question
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	now          func() int64
}

func NewPracticeSessionCLI(
	repository question.Repository,
	grader feedback.Client,
	queue []question.Question,
	settings scoring.Settings,
) *PracticeSessionCLI {
	return &PracticeSessionCLI{
		repository:   repository,
		grader:       grader,
		settings:     settings,
		queue:        queue,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		now: func() int64 {
			return time.Now().Unix()
		},
	}
}

func (cli *PracticeSessionCLI) GetQuestionCount() int {
	return len(cli.queue)
}

func (cli *PracticeSessionCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

func (cli *PracticeSessionCLI) Session(ctx context.Context) error {
	if len(cli.queue) == 0 {
		fmt.Fprintln(cli.stdoutWriter, "No more questions to practice!")
		return errEnd
	}
	current := &cli.queue[0]

	fmt.Fprintf(cli.stdoutWriter, "\n[%s, week %d] %d question(s) remaining\n", current.Subject, current.Week, len(cli.queue))
	cli.bold.Fprintf(cli.stdoutWriter, "%s\n", current.Question)
	fmt.Fprint(cli.stdoutWriter, "Your answer (or 'quit' to exit): ")

	userAnswer, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	userAnswer = strings.TrimSpace(userAnswer)
	if userAnswer == "quit" {
		return errEnd
	}

	fmt.Fprintf(cli.stdoutWriter, "Expected answer: %s\n", cli.italic.Sprint(current.Answer))

	suggestedScore := 0
	if cli.grader != nil {
		evaluation, err := cli.grader.EvaluateAnswer(ctx, feedback.Request{
			Question:       current.Question,
			ExpectedAnswer: current.Answer,
			UserAnswer:     userAnswer,
		})
		if err != nil {
			return fmt.Errorf("grader.EvaluateAnswer() > %w", err)
		}
		fmt.Fprintf(cli.stdoutWriter, "AI score: %d/%d. %s\n", evaluation.Score, scoring.MaxScore, evaluation.Feedback)
		if evaluation.Hint != "" {
			fmt.Fprintf(cli.stdoutWriter, "Hint: %s\n", evaluation.Hint)
		}
		suggestedScore = evaluation.Score
	}

	score, err := cli.readScore(suggestedScore)
	if err != nil {
		return err
	}

	attempt := question.Attempt{
		Score:      score,
		Timestamp:  cli.now(),
		UserAnswer: userAnswer,
	}
	if err := cli.repository.AppendAttempt(ctx, current, attempt); err != nil {
		return fmt.Errorf("repository.AppendAttempt() > %w", err)
	}

	cli.printMastery(current)
	cli.queue = cli.queue[1:]
	return nil
}

// readScore prompts until the user enters a score from 1 to 5. An
// empty line accepts suggestedScore when one is available.
func (cli *PracticeSessionCLI) readScore(suggestedScore int) (int, error) {
	for {
		if suggestedScore > 0 {
			fmt.Fprintf(cli.stdoutWriter, "Rate yourself 1-%d (Enter to accept %d): ", scoring.MaxScore, suggestedScore)
		} else {
			fmt.Fprintf(cli.stdoutWriter, "Rate yourself 1-%d: ", scoring.MaxScore)
		}

		line, err := cli.stdinReader.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("error reading input: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" && suggestedScore > 0 {
			return suggestedScore, nil
		}

		score, err := strconv.Atoi(line)
		if err == nil && score >= 1 && score <= scoring.MaxScore {
			return score, nil
		}
		fmt.Fprintf(cli.stdoutWriter, "Please enter a number between 1 and %d.\n", scoring.MaxScore)
	}
}

func (cli *PracticeSessionCLI) printMastery(current *question.Question) {
	result := current.WeightedScore(cli.settings, cli.now())
	if result == nil {
		return
	}

	line := fmt.Sprintf("Mastery: %.2f/%d (%s)", result.Value, scoring.MaxScore, scoring.Classify(result))
	switch scoring.Classify(result) {
	case scoring.BandGood:
		color.New(color.FgGreen).Fprintln(cli.stdoutWriter, line)
	case scoring.BandMedium:
		color.New(color.FgYellow).Fprintln(cli.stdoutWriter, line)
	default:
		color.New(color.FgRed).Fprintln(cli.stdoutWriter, line)
	}
}

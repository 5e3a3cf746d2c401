package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/studylegend/backend/internal/pdf"
	"github.com/studylegend/backend/internal/question"
	"github.com/studylegend/backend/internal/scoring"
	"github.com/studylegend/backend/internal/statistics"
)

// RunMasteryReport displays mastery statistics per subject and week.
// When subject is non empty only that subject is reported. When
// exportDir is non empty the report is also written there as markdown
// and PDF.
func RunMasteryReport(
	ctx context.Context,
	repository question.Repository,
	settings scoring.Settings,
	now int64,
	subject string,
	exportDir string,
	writer io.Writer,
) error {
	var questions []question.Question
	var err error
	if subject != "" {
		questions, err = repository.FindBySubject(ctx, subject)
	} else {
		questions, err = repository.FindAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}

	result := statistics.CalculateStatistics(questions, settings, now)

	if len(result.Groups) == 0 {
		fmt.Fprintln(writer, "No questions found.")
		return nil
	}

	fmt.Fprintln(writer, "Mastery Report")
	fmt.Fprintln(writer, "==============")
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "%-16s  %-6s  %-10s  %-6s  %-20s  %-8s\n", "Subject", "Week", "Questions", "Avg", "Good/Medium/Weak/NA", "Mastery")
	fmt.Fprintf(writer, "%-16s  %-6s  %-10s  %-6s  %-20s  %-8s\n", "-------", "----", "---------", "---", "-------------------", "-------")

	for _, group := range result.Groups {
		fmt.Fprintf(writer, "%-16s  %-6d  %-10d  %-6s  %-20s  %-8s\n",
			group.Subject,
			group.Week,
			group.TotalQuestions,
			formatAverage(group.AverageScore),
			formatBands(group.Metrics),
			fmt.Sprintf("%.0f%%", group.MasteryPercent),
		)
	}

	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "%-16s  %-6s  %-10d  %-6s  %-20s  %-8s\n",
		"Totals:",
		"",
		result.Aggregate.TotalQuestions,
		formatAverage(result.Aggregate.AverageScore),
		formatBands(result.Aggregate),
		fmt.Sprintf("%.0f%%", result.Aggregate.MasteryPercent),
	)

	if exportDir == "" {
		return nil
	}

	name := "mastery-" + time.Unix(now, 0).UTC().Format("2006-01-02")
	pdfPath, err := pdf.WriteReport(exportDir, name, reportMarkdown(result, now))
	if err != nil {
		return fmt.Errorf("pdf.WriteReport() > %w", err)
	}
	fmt.Fprintf(writer, "\nReport exported to %s\n", pdfPath)
	return nil
}

func formatAverage(average *float64) string {
	if average == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *average)
}

func formatBands(metrics statistics.Metrics) string {
	return fmt.Sprintf("%d / %d / %d / %d", metrics.GoodCount, metrics.MediumCount, metrics.WeakCount, metrics.UnratedCount)
}

func reportMarkdown(result statistics.StatisticsResult, now int64) []byte {
	var builder strings.Builder
	builder.WriteString("# Mastery Report\n\n")
	builder.WriteString(fmt.Sprintf("Generated on %s.\n\n", time.Unix(now, 0).UTC().Format("2006-01-02")))
	builder.WriteString("| Subject | Week | Questions | Avg | Good | Medium | Weak | Unrated | Mastery |\n")
	builder.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, group := range result.Groups {
		builder.WriteString(fmt.Sprintf("| %s | %d | %d | %s | %d | %d | %d | %d | %.0f%% |\n",
			group.Subject,
			group.Week,
			group.TotalQuestions,
			formatAverage(group.AverageScore),
			group.GoodCount,
			group.MediumCount,
			group.WeakCount,
			group.UnratedCount,
			group.MasteryPercent,
		))
	}
	builder.WriteString(fmt.Sprintf("| Totals | | %d | %s | %d | %d | %d | %d | %.0f%% |\n",
		result.Aggregate.TotalQuestions,
		formatAverage(result.Aggregate.AverageScore),
		result.Aggregate.GoodCount,
		result.Aggregate.MediumCount,
		result.Aggregate.WeakCount,
		result.Aggregate.UnratedCount,
		result.Aggregate.MasteryPercent,
	))
	return []byte(builder.String())
}

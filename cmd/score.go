package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nikogura/candidate-scorer/pkg/answers"
	"github.com/nikogura/candidate-scorer/pkg/config"
	"github.com/nikogura/candidate-scorer/pkg/scoring"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//nolint:gochecknoglobals // Cobra boilerplate
var scoreSummary bool

//nolint:gochecknoglobals // Cobra boilerplate
var scoreCmd = &cobra.Command{
	Use:   "score <answers-file-or-url>",
	Short: "Evaluate one candidate's answers",
	Long: `Evaluates an answers document and prints the result as JSON.

The document may be a local file, an http(s) URL, or "-" for standard input.
Section keys may be English (behavioral, preference, ethics, aptitude) or the
Spanish paper-form names (cleaver, kostick, situaciones, aptitudes).

Examples:
  # Score a local answers file
  candidate-scorer score answers.json

  # Print the executive summary instead of the full result
  candidate-scorer score answers.json --summary

  # Score answers piped from another tool
  cat answers.json | candidate-scorer score -`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().BoolVar(&scoreSummary, "summary", false, "Print a human readable executive summary")
}

// scoreOutput is the JSON document printed by the score command.
type scoreOutput struct {
	Result  scoring.Result           `json:"result"`
	Summary scoring.ExecutiveSummary `json:"summary"`
}

func runScore(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	var engine *scoring.Engine
	engine, err = scoring.NewEngine(cfg.Scoring)
	if err != nil {
		err = errors.Wrap(err, "failed to create scoring engine")
		return err
	}

	if getVerbose() {
		fmt.Fprintf(os.Stderr, "Reading answers from %s...\n", args[0])
	}

	var set scoring.AnswerSet
	set, err = answers.Fetch(ctx, args[0])
	if err != nil {
		return err
	}

	if getVerbose() {
		fmt.Fprintf(os.Stderr, "Answered: %d behavioral, %d preference, %d ethics, %d aptitude\n",
			len(set.Behavioral), len(set.Preference), len(set.Ethics), len(set.Aptitude))
	}

	result := engine.Evaluate(set)
	summary := engine.Summarize(result)

	if scoreSummary {
		renderSummary(cmd.OutOrStdout(), result, summary)
		return err
	}

	var data []byte
	data, err = json.MarshalIndent(scoreOutput{Result: result, Summary: summary}, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal result")
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// humanize turns an enum such as HIRE_WITH_RESERVATIONS into "Hire With
// Reservations".
func humanize(value string) (text string) {
	titleCaser := cases.Title(language.English)
	text = titleCaser.String(strings.ReplaceAll(strings.ToLower(value), "_", " "))
	return text
}

func renderSummary(w io.Writer, result scoring.Result, summary scoring.ExecutiveSummary) {
	fmt.Fprintf(w, "Recommendation: %s\n", humanize(string(summary.Recommendation)))
	fmt.Fprintf(w, "Risk level:     %s\n", humanize(string(summary.RiskLevel)))
	fmt.Fprintf(w, "Score:          %.1f / %.0f (%d%%)\n", summary.Total, summary.MaxTotal, summary.Percentage)

	if result.State == scoring.StateDisqualified {
		fmt.Fprintf(w, "Status:         Disqualified (%s)\n", result.Reason)
	} else {
		fmt.Fprintf(w, "Profile:        D=%d I=%d S=%d C=%d (type %s)\n",
			result.Profile.D, result.Profile.I, result.Profile.S, result.Profile.C, summary.DominantType)
	}

	if result.Message != "" {
		fmt.Fprintf(w, "\n%s\n", result.Message)
	}

	writeList(w, "Strengths", summary.Strengths)
	writeList(w, "Weaknesses", summary.Weaknesses)
	writeList(w, "Insights", result.Insights)

	if len(result.Flags) > 0 {
		fmt.Fprintf(w, "\nFlags (%d):\n", len(result.Flags))
		for _, f := range result.Flags {
			fmt.Fprintf(w, "  [%s] %s: %s\n", f.Severity, humanize(string(f.Section)), f.Description)
		}
	}
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

package cli

import (
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Count sentences, near duplicates and clusters",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

var sentimentCmd = &cobra.Command{
	Use:   "sentiment",
	Short: "Classify the sentiment of every sentence",
	Args:  cobra.NoArgs,
	RunE:  runSentiment,
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Score the sentiment of the whole text",
	Args:  cobra.NoArgs,
	RunE:  runOverview,
}

var swotCmd = &cobra.Command{
	Use:   "swot",
	Short: "Generate a SWOT analysis",
	Args:  cobra.NoArgs,
	RunE:  runSwot,
}

var interpretPrompt string

var interpretCmd = &cobra.Command{
	Use:   "interpret",
	Short: "Interpret the statistics of the text, or answer a prompt",
	Long: `Without --prompt the summary and sentiment statistics of the input are
computed and sent for interpretation. With --prompt the prompt is sent
as is and no input is read.`,
	Args: cobra.NoArgs,
	RunE: runInterpret,
}

func init() {
	interpretCmd.Flags().StringVarP(&interpretPrompt, "prompt", "p", "", "free-form prompt to answer")

	rootCmd.AddCommand(summaryCmd, sentimentCmd, overviewCmd, swotCmd, interpretCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd)
	if err != nil {
		return err
	}
	return printJSON(cmd, pipeline.Summarize(text))
}

func runSentiment(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd)
	if err != nil {
		return err
	}
	report, err := pipeline.Sentiment(text)
	if err != nil {
		return err
	}
	return printJSON(cmd, report)
}

func runOverview(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd)
	if err != nil {
		return err
	}
	return printJSON(cmd, pipeline.Overview(text))
}

func runSwot(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd)
	if err != nil {
		return err
	}
	result, err := pipeline.Swot(cmd.Context(), text)
	if err != nil {
		return err
	}
	return printJSON(cmd, result)
}

func runInterpret(cmd *cobra.Command, args []string) error {
	type interpretation struct {
		Interpretation string `json:"interpretation"`
	}

	if interpretPrompt != "" {
		answer, err := pipeline.Interpret(cmd.Context(), interpretPrompt)
		if err != nil {
			return err
		}
		return printJSON(cmd, interpretation{answer})
	}

	text, err := readInput(cmd)
	if err != nil {
		return err
	}

	summary := pipeline.Summarize(text)
	report, err := pipeline.Sentiment(text)
	if err != nil {
		return err
	}
	answer, err := pipeline.InterpretSummary(cmd.Context(), summary, &report.Summary)
	if err != nil {
		return err
	}
	return printJSON(cmd, interpretation{answer})
}

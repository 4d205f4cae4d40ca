// Package cli implements the feedlens command line: the analysis stages run
// locally on a file or stdin and print JSON.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OFFIS-RIT/feedlens/internal/config"
	"github.com/OFFIS-RIT/feedlens/pkg/analysis"

	"github.com/spf13/cobra"
)

var (
	inputFile string
	pipeline  *analysis.Pipeline
)

var rootCmd = &cobra.Command{
	Use:   "feedlens",
	Short: "Analyse customer feedback",
	Long: `feedlens analyses customer feedback text.
Input is read from --file or stdin and results are printed as JSON.
Local stages need no configuration; swot and interpret use the
text generation service configured through the AI_* environment.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "read feedback from file instead of stdin")
}

// Execute runs the root command. Generating commands stop when ctx is done.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetPipeline replaces the pipeline built from the environment.
func SetPipeline(p *analysis.Pipeline) {
	pipeline = p
}

func setup(cmd *cobra.Command, args []string) error {
	if pipeline != nil {
		return nil
	}

	cfg := config.Load()
	cfg.InitLogger("feedlens")

	client, err := cfg.NewTextClient()
	if err != nil {
		return err
	}
	p, err := cfg.NewPipeline(client)
	if err != nil {
		return err
	}
	pipeline = p
	return nil
}

func readInput(cmd *cobra.Command) (string, error) {
	var (
		data []byte
		err  error
	)
	if inputFile != "" {
		data, err = os.ReadFile(inputFile)
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("no input text")
	}
	return text, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepbot/internal/session"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Score a single answer",
	Long:  "Score an answer to an interview question. The answer is read from --answer, or from stdin when the flag is omitted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		answer, _ := cmd.Flags().GetString("answer")
		asJSON, _ := cmd.Flags().GetBool("json")

		if !cmd.Flags().Changed("answer") {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			answer = string(data)
		}
		if err := session.CheckAnswer(answer); err != nil {
			return err
		}

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		provider, err := e.provider(cmd.Context())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		fb := e.evaluator(provider).Evaluate(cmd.Context(), question, strings.TrimSpace(answer))

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(fb)
		}
		fmt.Fprintf(out, "Score: %d/100\n", fb.Score)
		fmt.Fprintf(out, "Feedback: %s\n", fb.Feedback)
		fmt.Fprintf(out, "Improvement: %s\n", fb.Improvement)
		return nil
	},
}

func init() {
	gradeCmd.Flags().StringP("question", "q", "", "The question that was answered")
	gradeCmd.Flags().StringP("answer", "a", "", "The answer to score (default: read stdin)")
	gradeCmd.Flags().Bool("json", false, "Print the result as JSON")
	_ = gradeCmd.MarkFlagRequired("question")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/prepbot/internal/questiongen"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Generate a single interview question",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		typ, _ := cmd.Flags().GetString("type")
		t, err := questiongen.ParseType(typ)
		if err != nil {
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
		gen, err := e.generator(provider)
		if err != nil {
			return err
		}

		q, err := gen.Generate(cmd.Context(), role, t)
		if err != nil {
			e.log.Warn("question generation failed", zap.String("role", role), zap.Error(err))
			fmt.Fprintln(cmd.OutOrStdout(), questiongen.SentinelText(err))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), q.Text)
		return nil
	},
}

func init() {
	askCmd.Flags().StringP("role", "r", questiongen.Roles[0], "Role the question is for")
	askCmd.Flags().StringP("type", "t", string(questiongen.Coding), "Question type: coding, technical or behavioral")
}

package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete recorded LLM events",
	Long: "Delete events from the LLM audit log. Practice progress lives only in " +
		"memory and is not affected.",
	RunE: func(cmd *cobra.Command, args []string) error {
		olderThan, _ := cmd.Flags().GetDuration("older-than")
		yes, _ := cmd.Flags().GetBool("yes")

		scope := "all LLM events"
		var before time.Time
		if olderThan > 0 {
			before = time.Now().Add(-olderThan)
			scope = fmt.Sprintf("LLM events older than %s", olderThan)
		}

		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintf(out, "Delete %s? [y/N] ", scope)
			reply, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if r := strings.ToLower(strings.TrimSpace(reply)); r != "y" && r != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.store.EventRepo().PurgeLLMEvents(cmd.Context(), before)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d event(s).\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Duration("older-than", 0, "Only delete events older than this (e.g. 720h)")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

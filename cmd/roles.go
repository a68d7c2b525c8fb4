package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepbot/internal/questiongen"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List known roles and question types",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Roles:")
		for _, r := range questiongen.Roles {
			fmt.Fprintf(out, "  %s\n", r)
		}
		fmt.Fprintln(out, "\nQuestion types:")
		for _, t := range questiongen.Types {
			fmt.Fprintf(out, "  %-20s %s\n", t, t.Label())
		}
		fmt.Fprintln(out, "\nOther roles are accepted and use a generic coding prompt.")
	},
}

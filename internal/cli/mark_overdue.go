package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var markOverdueCmd = &cobra.Command{
	Use:   "mark-overdue",
	Short: "Trigger the server's overdue batch (requires API_ADMIN_SECRET)",
	Long: `Ask the server to flip eligible pending installments to overdue. The
transition is server-owned; this command only invokes it and reports
the informational row count.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		result, err := tk.gateway.MarkOverdue(cmd.Context(), tk.cred)
		if err != nil {
			return err
		}

		fmt.Printf("Server marked %d installment(s) overdue.\n", result.Updated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(markOverdueCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabianodasilvalira/tatystore-billing/internal/logger"
	"github.com/fabianodasilvalira/tatystore-billing/internal/service"
	"github.com/fabianodasilvalira/tatystore-billing/pkg/format"
)

var detailCmd = &cobra.Command{
	Use:   "detail <installment-id>",
	Short: "Show the payment ledger for one installment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		ledger := service.NewLedgerService(tk.gateway, logger.WithComponent("ledger"))
		detail, err := ledger.Load(cmd.Context(), tk.cred, args[0])
		if err != nil {
			return err
		}

		lang, unit := tk.cfg.GetLanguage(), tk.cfg.GetCurrency()
		fmt.Printf("Installment %s (sale %s, customer %s)\n", detail.ID, detail.SaleID, detail.CustomerID)
		fmt.Printf("  number:    %d\n", detail.Number)
		fmt.Printf("  status:    %s\n", displayStatus(detail.Status))
		fmt.Printf("  amount:    %s\n", format.Currency(detail.Amount, lang, unit))
		fmt.Printf("  due date:  %s\n", format.Date(detail.DueDate))
		fmt.Printf("  paid:      %s\n", format.Currency(detail.TotalPaid, lang, unit))
		fmt.Printf("  remaining: %s\n", format.Currency(service.ComputeRemaining(detail), lang, unit))

		if len(detail.Payments) > 0 {
			fmt.Println("  payments:")
			for _, p := range detail.Payments {
				fmt.Printf("    %s  %s\n", p.PaidAt.Format("02/01/2006 15:04"), format.Currency(p.AmountPaid, lang, unit))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detailCmd)
}

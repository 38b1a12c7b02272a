package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabianodasilvalira/tatystore-billing/internal/domain"
	"github.com/fabianodasilvalira/tatystore-billing/internal/logger"
	"github.com/fabianodasilvalira/tatystore-billing/internal/service"
	"github.com/fabianodasilvalira/tatystore-billing/pkg/format"
)

var payCmd = &cobra.Command{
	Use:   "pay <installment-id> <amount>",
	Short: "Submit a partial or full payment against an installment",
	Long: `Submit a payment. The amount accepts either a comma or a dot as the
decimal separator ("150,00" and "150.00" are equivalent). The payment
is validated against the current ledger before anything touches the
network, and the ledger is re-fetched afterwards so the figures shown
are the server's.`,
	Args: cobra.ExactArgs(2),
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

		flow := service.NewPaymentFlow(tk.gateway, ledger, detail)
		flow.OnFullyPaid(func(d *domain.InstallmentDetail) {
			fmt.Println("Installment fully paid.")
		})

		fresh, err := flow.Submit(cmd.Context(), tk.cred, args[1])
		if err != nil {
			return err
		}

		lang, unit := tk.cfg.GetLanguage(), tk.cfg.GetCurrency()
		fmt.Printf("Payment recorded. Remaining balance: %s\n",
			format.Currency(service.ComputeRemaining(fresh), lang, unit))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(payCmd)
}

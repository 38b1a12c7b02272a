package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fabianodasilvalira/tatystore-billing/internal/logger"
	"github.com/fabianodasilvalira/tatystore-billing/internal/notify"
	"github.com/fabianodasilvalira/tatystore-billing/internal/service"
	"github.com/fabianodasilvalira/tatystore-billing/pkg/format"
)

var customerCmd = &cobra.Command{
	Use:   "customer <customer-id>",
	Short: "Show a customer's open installments and debt rollup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		agg := service.NewAggregateService(tk.gateway, logger.WithComponent("aggregate"))
		summary, err := agg.CustomerRollup(cmd.Context(), tk.cred, args[0])
		if err != nil {
			return err
		}

		lang, unit := tk.cfg.GetLanguage(), tk.cfg.GetCurrency()
		fmt.Printf("Customer %s (%s)\n", summary.Customer.Name, summary.Customer.ID)
		fmt.Printf("  total debt:    %s\n", format.Currency(summary.TotalDebt, lang, unit))
		fmt.Printf("  overdue total: %s\n", format.Currency(summary.OverdueTotal, lang, unit))
		if summary.HasNextDue {
			fmt.Printf("  next due date: %s\n", format.Date(summary.NextDue))
		} else {
			fmt.Println("  next due date: none")
		}

		if len(summary.Open) > 0 {
			fmt.Println("  open installments:")
			for _, inst := range summary.Open {
				marker := " "
				if inst.IsOverdue() || inst.DueEmphasis(time.Now()) {
					marker = "!"
				}
				fmt.Printf("  %s %s  #%d  %s  due %s  [%s]\n",
					marker, inst.ID, inst.Number,
					format.Currency(inst.EffectiveRemaining(), lang, unit),
					format.Date(inst.DueDate), displayStatus(inst.Status))
			}
		}
		return nil
	},
}

var noticeCmd = &cobra.Command{
	Use:   "notice <customer-id>",
	Short: "Render the WhatsApp collection notice for a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		customer, err := tk.gateway.GetCustomer(cmd.Context(), tk.cred, args[0])
		if err != nil {
			return err
		}
		installments, err := tk.gateway.ListCustomerInstallments(cmd.Context(), tk.cred, args[0])
		if err != nil {
			return err
		}

		message := notify.BuildCollectionNotice(*customer, installments, time.Now())
		fmt.Println(message)
		fmt.Println()
		fmt.Println(notify.ShareLink(customer.Phone, message))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(customerCmd)
	rootCmd.AddCommand(noticeCmd)
}

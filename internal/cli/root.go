package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabianodasilvalira/tatystore-billing/internal/client"
	"github.com/fabianodasilvalira/tatystore-billing/internal/config"
	"github.com/fabianodasilvalira/tatystore-billing/internal/logger"
	customError "github.com/fabianodasilvalira/tatystore-billing/pkg/errors"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "billingctl",
	Short: "billingctl - installment and payment operations for the tatystore backend",
	Long: `billingctl talks to the tatystore installment/payment API: it loads
payment ledgers, submits partial or full payments, rolls up customer
debt, renders collection notices and triggers the server's overdue
batch.

Credentials come from API_TOKEN (and API_ADMIN_SECRET for the overdue
batch), read from the environment or a .env file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Classified failures print their one-line
// notice; the stable code goes to the exit path log.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cli")
		log.Error().Str("code", customError.CodeOf(err)).Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// toolkit bundles what every subcommand needs.
type toolkit struct {
	cfg     *config.Config
	gateway *client.Client
	cred    client.Credential
}

func newToolkit() (*toolkit, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	gateway := client.New(cfg.API.BaseURL, cfg.GetAPITimeout(), logger.WithComponent("api-client"))

	return &toolkit{
		cfg:     cfg,
		gateway: gateway,
		cred: client.Credential{
			Token:       cfg.Auth.Token,
			AdminSecret: cfg.Auth.AdminSecret,
		},
	}, nil
}

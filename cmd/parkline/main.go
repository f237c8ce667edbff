package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parkline/parkline/internal/interfaces/cli/migrate"
	"github.com/parkline/parkline/internal/interfaces/cli/seed"
	"github.com/parkline/parkline/internal/interfaces/cli/server"
	"github.com/parkline/parkline/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "parkline",
		Short:         "Parkline - parking ticket billing service",
		Long:          `Parkline registers vehicle entries and exits and bills each stay against branch rates, the rate base history and monthly subscriptions.`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

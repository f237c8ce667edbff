package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parkline/parkline/internal/infrastructure/database"
	"github.com/parkline/parkline/internal/infrastructure/persistence/seeds"
	"github.com/parkline/parkline/internal/interfaces/cli/bootstrap"
)

var (
	opts     bootstrap.Options
	seedFile string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data",
		Long: `Insert branches, rate base records, plans and subscriptions from a YAML
fixture. Rows that already exist are left untouched, so the command can be
run repeatedly.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&opts.Env, "env", "e", "", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "Seed fixture (default: built-in demo data)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	_, log, err := bootstrap.Setup(opts)
	if err != nil {
		return err
	}
	defer database.Close()

	fixture, err := loadFixture()
	if err != nil {
		return err
	}

	res, err := seeds.Apply(database.Get(), fixture)
	if err != nil {
		log.Errorw("seeding failed", "error", err)
		return err
	}

	log.Infow("seeding completed",
		"branches", res.Branches,
		"rate_bases", res.RateBases,
		"plans", res.Plans,
		"subscriptions", res.Subscriptions)
	fmt.Fprintf(cmd.OutOrStdout(), "created %d branches, %d rate bases, %d plans, %d subscriptions\n",
		res.Branches, res.RateBases, res.Plans, res.Subscriptions)
	return nil
}

func loadFixture() (*seeds.Fixture, error) {
	if seedFile == "" {
		return seeds.Default()
	}
	return seeds.LoadFile(seedFile)
}

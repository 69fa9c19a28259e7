package main

import (
	"github.com/spf13/cobra"

	"github.com/zatekoja/doseordering/internal/infrastructure/observability"
	"github.com/zatekoja/doseordering/pkg/config"
)

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "doseorder",
		Short:         "Radiopharmaceutical dose ordering",
		Long:          `Turns the confirmed appointment schedule into per-isotope order recommendations priced at the cheapest vendor.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if seedFile, _ := cmd.Flags().GetString("seed"); seedFile != "" {
				loaded.App.SeedFile = seedFile
			}
			observability.InitLoggerTo(cmd.ErrOrStderr(), loaded.OTEL.ServiceName, loaded.App.Env)
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().String("seed", "", "YAML seed catalog (defaults to SEED_FILE or the built-in demo data)")

	root.AddCommand(
		newServeCmd(func() *config.Config { return cfg }),
		newRecommendCmd(func() *config.Config { return cfg }),
	)
	return root
}

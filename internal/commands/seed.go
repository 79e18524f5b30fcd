package commands

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/spf13/cobra"
)

func newSeedCommand(flags *globalFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load businesses, chart of accounts, categories and payment accounts from YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.LoadReferenceData(file)
			if err != nil {
				return err
			}

			rt, err := flags.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.Services.Reference.SeedReferenceData(cmd.Context(), data); err != nil {
				return fmt.Errorf("seeding reference data: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d businesses, %d accounts, %d categories, %d payment accounts\n",
				len(data.Businesses), len(data.Chart), len(data.Categories), len(data.PaymentAccounts))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "config/seed.yaml", "reference data YAML")
	return cmd
}

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils"
	"github.com/spf13/cobra"
)

func newLedgerCommand(flags *globalFlags) *cobra.Command {
	var (
		businessID string
		period     string
		account    string
		currency   string
	)

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Print the general ledger grouped by account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := flags.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			ledgers, err := rt.Services.Ledger.GetGeneralLedger(cmd.Context(), domain.LedgerFilter{
				BusinessID:  businessID,
				Period:      domain.Period(period),
				AccountCode: account,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(ledgers) == 0 {
				fmt.Fprintln(out, "no ledger entries")
				return nil
			}
			for _, l := range ledgers {
				fmt.Fprintf(out, "%s %s\n", l.Code, l.Name)
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
				fmt.Fprintln(tw, "date\tdescription\tdebit\tcredit\tbalance\t")
				for _, e := range l.Entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
						e.Date.Format(dto.DateLayout), e.Description,
						utils.FormatMoney(e.Debit, currency),
						utils.FormatMoney(e.Credit, currency),
						utils.FormatMoney(e.Balance, currency))
				}
				fmt.Fprintf(tw, "\ttotal\t%s\t%s\t%s\t\n",
					utils.FormatMoney(l.TotalDebit, currency),
					utils.FormatMoney(l.TotalCredit, currency),
					utils.FormatMoney(l.FinalBalance, currency))
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&businessID, "business", "", "business id (all businesses when empty)")
	cmd.Flags().StringVar(&period, "period", string(domain.PeriodCurrentMonth), "period preset or YYYY-MM")
	cmd.Flags().StringVar(&account, "account", "", "restrict to one account code")
	cmd.Flags().StringVar(&currency, "currency", "PEN", "currency used to format amounts")
	return cmd
}

func newTaxSummaryCommand(flags *globalFlags) *cobra.Command {
	var (
		businessID string
		period     string
		currency   string
	)

	cmd := &cobra.Command{
		Use:   "tax-summary",
		Short: "Print the IGV position for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := flags.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			s, err := rt.Services.Tax.GetTaxSummary(cmd.Context(), businessID, domain.Period(period), currency)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "IGV on sales\t%s\t(%d invoices)\n", utils.FormatMoney(s.SalesTax, s.Currency), s.SaleInvoices)
			fmt.Fprintf(tw, "IGV on purchases\t%s\t(%d invoices)\n", utils.FormatMoney(s.PurchaseTaxCredit, s.Currency), s.PurchaseInvoices)
			fmt.Fprintf(tw, "Net position\t%s\t%s\n", utils.FormatMoney(s.NetTaxPosition, s.Currency), s.Position)
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&businessID, "business", "", "business id (all businesses when empty)")
	cmd.Flags().StringVar(&period, "period", string(domain.PeriodCurrentMonth), "period preset or YYYY-MM")
	cmd.Flags().StringVar(&currency, "currency", "", "invoice currency filter")
	return cmd
}

package commands

import (
	"fmt"
	"os"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/spf13/cobra"
)

func newImportCommand(flags *globalFlags) *cobra.Command {
	var (
		file   string
		dryRun bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Post transactions from a CSV file",
		Long: `Post every row of a CSV file through the posting engine.

The header must name at least date, type, businessId and amount. Optional
columns: categoryId, currency, fromAccount, toAccount, description,
reference, idempotencyKey, isInvoiced, invoiceNumber, clientSupplier, ruc.

Example:
  bookkeepingctl import --file may.csv
  bookkeepingctl import --file may.csv --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := ParseTransactionsCSV(f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "%d rows parsed, nothing posted\n", len(rows))
				return nil
			}

			rt, err := flags.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			var posted, failed, fallbacks int
			for _, row := range rows {
				res, err := postRow(cmd, rt.Services.Posting, row)
				if err != nil {
					failed++
					fmt.Fprintf(out, "line %d: %v\n", row.Line, err)
					if strict {
						return fmt.Errorf("import stopped at line %d: %w", row.Line, err)
					}
					continue
				}
				posted++
				fallbacks += len(res.Fallbacks)
				for _, fb := range res.Fallbacks {
					fmt.Fprintf(out, "line %d: %s %q used %q (%s)\n", row.Line, fb.Role, fb.Reference, fb.UsedValue, fb.Reason)
				}
			}
			fmt.Fprintf(out, "posted %d, failed %d, fallbacks %d\n", posted, failed, fallbacks)
			if failed > 0 {
				return fmt.Errorf("%d rows failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file to import")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse the file without posting")
	cmd.Flags().BoolVar(&strict, "strict", false, "stop at the first failing row")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func postRow(cmd *cobra.Command, posting portssvc.PostingSvcFacade, row ImportRow) (*domain.PostingResult, error) {
	if row.Input.IsInvoiced {
		return posting.PostInvoicedTransaction(cmd.Context(), row.Input)
	}
	return posting.PostTransaction(cmd.Context(), row.Input.TransactionInput)
}

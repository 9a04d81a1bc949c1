// Package ask handles the query command: fixed keys, free-text questions
// and filter requests against a processed statement.
package ask

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"statement-chat/cmd/common"
	"statement-chat/cmd/root"
	"statement-chat/internal/dispatch"
	"statement-chat/internal/export"
	"statement-chat/internal/models"
	"statement-chat/internal/session"
)

var (
	searchTerm string
	minAmount  string
	maxAmount  string
	column     string
	exportPath string
)

// Cmd represents the ask command.
var Cmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask a question about a statement",
	Long: `Ask a question about a processed statement. The query is either one of
the fixed keys (highest_debit, highest_credit, most_transactions,
total_spent, total_deposited, monthly_summary, weekly_summary,
transaction_count_by_reference, most_frequent_reference,
largest_transaction), a free-text question like "How much did I spend on
coffee?", or empty with --search/--min/--max/--column for a filter request.`,
	RunE: askFunc,
}

func init() {
	Cmd.Flags().StringVar(&searchTerm, "search", "", "Reference search term for the filter request")
	Cmd.Flags().StringVar(&minAmount, "min", "0", "Minimum amount for the filter request")
	Cmd.Flags().StringVar(&maxAmount, "max", "0", "Maximum amount for the filter request (0 for no maximum)")
	Cmd.Flags().StringVar(&column, "column", string(models.ColumnDebit), "Amount column for the filter request (Debit or Credit)")
	Cmd.Flags().StringVar(&exportPath, "export", "", "Write the resulting transaction subset to this CSV file")
}

func askFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sess, err := common.LoadSession(ctx)
	if err != nil {
		root.Log.Error(err)
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	filterRequested := cmd.Flags().Changed("search") || cmd.Flags().Changed("min") ||
		cmd.Flags().Changed("max") || cmd.Flags().Changed("column")
	if filterRequested && query == "" {
		query = dispatch.KeyFilter
	}
	if filterRequested {
		if err := applyFilterFlags(sess); err != nil {
			return err
		}
	}

	d := dispatch.New(root.GetLogger())
	if err := d.LoadAliases(root.Cfg.Dispatch.AliasFile); err != nil {
		root.Log.Warnf("Ignoring alias file: %v", err)
	}
	if root.Cfg.AI.Enabled {
		client, err := dispatch.NewGeminiClient(ctx, root.Cfg.AI.APIKey, root.Cfg.AI.Model)
		if err != nil {
			root.Log.Warnf("AI fallback unavailable: %v", err)
		} else {
			defer client.Close()
			d.AI = client
		}
	}

	result := d.Dispatch(ctx, sess, query)
	render(result)

	if exportPath != "" && result.Kind == models.ResultRows {
		if err := export.WriteFile(exportPath, result.Rows); err != nil {
			root.Log.Error(err)
			return err
		}
		fmt.Printf("Wrote %s\n", exportPath)
	}
	return nil
}

func applyFilterFlags(sess *session.Session) error {
	min, err := decimal.NewFromString(minAmount)
	if err != nil {
		return fmt.Errorf("invalid --min amount %q", minAmount)
	}
	max, err := decimal.NewFromString(maxAmount)
	if err != nil {
		return fmt.Errorf("invalid --max amount %q", maxAmount)
	}

	col := models.Column(column)
	if col != models.ColumnDebit && col != models.ColumnCredit {
		return fmt.Errorf("invalid --column %q: must be Debit or Credit", column)
	}

	sess.SetFilter(searchTerm, min, max, col)
	return nil
}

// Package process handles the statement processing command.
package process

import (
	"fmt"

	"github.com/spf13/cobra"

	"statement-chat/cmd/common"
	"statement-chat/cmd/root"
	"statement-chat/internal/export"
)

var output string

// Cmd represents the process command.
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Extract and normalize a statement PDF",
	Long: `Extract the transaction tables from a statement PDF, normalize them to
the canonical {Date, Debit, Credit, Reference} columns, and optionally
export the result as CSV.`,
	RunE: processFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Write the normalized table to this CSV file")
}

func processFunc(cmd *cobra.Command, args []string) error {
	sess, err := common.LoadSession(cmd.Context())
	if err != nil {
		root.Log.Error(err)
		return err
	}

	stmt := sess.Statement()
	fmt.Printf("Processed %d transactions.\n", stmt.Len())

	if output != "" {
		if err := export.WriteFile(output, stmt.Transactions); err != nil {
			root.Log.Error(err)
			return err
		}
		fmt.Printf("Wrote %s\n", output)
	}
	return nil
}

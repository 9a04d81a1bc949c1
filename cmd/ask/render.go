package ask

import (
	"fmt"
	"os"
	"text/tabwriter"

	"statement-chat/internal/currencyutils"
	"statement-chat/internal/models"
)

// render prints a query result to stdout. Chart series are rendered as
// label/value pairs; actual chart drawing belongs to a UI collaborator.
func render(result models.QueryResult) {
	switch result.Kind {
	case models.ResultMessage:
		fmt.Println(result.Message)

	case models.ResultScalar:
		fmt.Printf("%s: %s\n", result.Label, currencyutils.FormatAmount(result.Scalar))

	case models.ResultRanked:
		if result.Label != "" {
			fmt.Printf("Top: %s (%s)\n", result.Label, currencyutils.FormatAmount(result.Scalar))
		}
		w := newTabWriter()
		for _, r := range result.Ranked {
			fmt.Fprintf(w, "%s\t%s\n", r.Label, currencyutils.FormatAmount(r.Amount))
		}
		w.Flush()

	case models.ResultCounts:
		if result.Message != "" {
			fmt.Println(result.Message)
		} else if result.Label != "" {
			fmt.Printf("Top: %s\n", result.Label)
		}
		w := newTabWriter()
		for _, c := range result.Counts {
			fmt.Fprintf(w, "%s\t%d\n", c.Label, c.Count)
		}
		w.Flush()

	case models.ResultBuckets:
		w := newTabWriter()
		fmt.Fprintln(w, "Period\tDebit\tCredit")
		for _, b := range result.Buckets {
			fmt.Fprintf(w, "%s\t%s\t%s\n", b.Period,
				currencyutils.FormatAmount(b.Debit), currencyutils.FormatAmount(b.Credit))
		}
		w.Flush()

	case models.ResultRows:
		if result.Message != "" {
			fmt.Println(result.Message)
		}
		w := newTabWriter()
		fmt.Fprintln(w, "Date\tDebit\tCredit\tReference")
		for _, tx := range result.Rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tx.Date.String(),
				currencyutils.FormatAmount(tx.Debit), currencyutils.FormatAmount(tx.Credit), tx.Reference)
		}
		w.Flush()
	}
}

func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

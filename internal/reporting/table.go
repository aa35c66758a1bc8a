package reporting

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fpl-transfer-lab/internal/domain"
)

// RenderTable writes a plain-text movers table, mirroring the scheduler
// log output format.
func RenderTable(w io.Writer, title string, preds []*domain.Prediction) error {
	if _, err := fmt.Fprintf(w, "=== %s ===\n", title); err != nil {
		return err
	}
	if len(preds) == 0 {
		_, err := fmt.Fprintln(w, "(none)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPRICE\tNET/HR\tPROGRESS\tLABEL")
	for _, p := range preds {
		fmt.Fprintf(tw, "%s\t%.1f\t%.0f\t%.2f\t%s\n",
			p.Name, p.Price, p.RatePerHour, p.Progress, p.Label)
	}
	return tw.Flush()
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"solar_cleaner/internal/client"

	"github.com/spf13/cobra"
)

func (a *app) batchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Browse ML damage-detection batches",
	}
	cmd.AddCommand(a.batchesListCmd(), a.batchesShowCmd())
	return cmd
}

func (a *app) batchesListCmd() *cobra.Command {
	var (
		page   int
		search string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be >= 1")
			}
			b := client.NewBatchBrowser(a.client(), a.log)
			b.Page = page
			b.SearchTerm = search
			if err := b.Load(cmd.Context()); err != nil {
				return fmt.Errorf("%s (%w)", b.Err, err)
			}
			out := cmd.OutOrStdout()
			if a.json {
				return printJSON(out, map[string]any{"batches": b.Batches, "totalCount": b.TotalCount})
			}

			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDATE\tDAMAGE\tIMAGES")
			fmt.Fprintln(w, "--\t----\t----\t------\t------")
			for _, batch := range b.Batches {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", batch.ID, batch.Name, batch.Date, batch.DamageCount, len(batch.Images))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			first, last, total := b.Range()
			fmt.Fprintf(out, "\nShowing %d-%d of %d", first, last, total)
			if b.HasNext() {
				fmt.Fprintf(out, " (next: --page %d)", b.Page+1)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().StringVar(&search, "search", "", "filter by name or date substring")
	return cmd
}

func (a *app) batchesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one batch with its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := client.NewBatchBrowser(a.client(), a.log)
			if err := b.Select(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s (%w)", b.Err, err)
			}
			batch := b.Selected
			out := cmd.OutOrStdout()
			if a.json {
				return printJSON(out, batch)
			}
			fmt.Fprintf(out, "%s  %s  damage=%d\n\n", batch.Name, batch.Date, batch.DamageCount)
			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "IMAGE\tDAMAGE\tURL")
			for _, img := range batch.Images {
				fmt.Fprintf(w, "%s\t%d\t%s\n", img.ID, img.DamageCount, img.URL)
			}
			return w.Flush()
		},
	}
}

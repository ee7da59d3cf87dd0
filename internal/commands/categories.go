package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spendmap/spendmap/internal/mapping"
)

func newCategoriesCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List known categories with the number of names mapped to each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			table, err := mapping.LoadTable(a.ctx, a.store)
			if err != nil {
				return err
			}
			cats := table.Categories()
			if len(cats) == 0 {
				fmt.Fprintln(a.out, "No categories yet")
				return nil
			}

			counts := table.CountByCategory()
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tNAMES")
			for _, c := range cats {
				fmt.Fprintf(tw, "%s\t%d\n", c, counts[c])
			}
			return tw.Flush()
		},
	}
}

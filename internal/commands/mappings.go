package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spendmap/spendmap/internal/categorize"
	"github.com/spendmap/spendmap/internal/history"
)

func newMappingsCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Inspect and edit the Name to Category mappings",
	}
	cmd.AddCommand(newMappingsListCommand(v))
	cmd.AddCommand(newMappingsSetCommand(v))
	cmd.AddCommand(newMappingsHistoryCommand(v))
	return cmd
}

func newMappingsListCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored mappings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := categorize.Load(a.ctx, a.store)
			if err != nil {
				return err
			}
			entries := sess.Table().Entries()
			if len(entries) == 0 {
				fmt.Fprintf(a.out, "No mappings in %s\n", a.store.Location())
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCATEGORY")
			for _, m := range entries {
				fmt.Fprintf(tw, "%s\t%s\n", m.Name, m.Category)
			}
			return tw.Flush()
		},
	}
}

func newMappingsSetCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME CATEGORY",
		Short: "Map a name to a category, replacing any existing mapping",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := categorize.Load(a.ctx, a.store)
			if err != nil {
				return err
			}
			if err := sess.Assign(args[0], args[1]); err != nil {
				return err
			}
			changes, err := sess.Save(a.ctx, a.store)
			if err != nil {
				return err
			}
			a.afterSave(changes)

			if len(changes) == 0 {
				fmt.Fprintf(a.out, "%s already maps to %s\n", args[0], args[1])
				return nil
			}
			c := changes[0]
			if c.IsNew() {
				fmt.Fprintf(a.out, "Mapped %s to %s\n", c.Name, c.Category)
			} else {
				fmt.Fprintf(a.out, "Mapped %s to %s (was %s)\n", c.Name, c.Category, c.Previous)
			}
			return nil
		},
	}
}

func newMappingsHistoryCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the log of saved mapping changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := history.Read(a.workspace)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.out, "No mapping changes recorded")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tNAME\tFROM\tTO\tCOMMIT")
			for _, e := range entries {
				from := e.Previous
				if from == "" {
					from = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Timestamp.Local().Format(time.DateTime), e.Name, from, e.Category, e.CommitHash)
			}
			return tw.Flush()
		},
	}
}

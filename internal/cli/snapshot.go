package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/socialgraph/pkg/report"
	"github.com/matzehuels/socialgraph/pkg/store"
)

// snapshotCommand manages named snapshots in the configured store.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshot",
		Aliases: []string{"snap"},
		Short:   "Save, load, list and delete stored networks",
	}

	cmd.AddCommand(c.snapshotSaveCommand())
	cmd.AddCommand(c.snapshotLoadCommand())
	cmd.AddCommand(c.snapshotListCommand())
	cmd.AddCommand(c.snapshotDeleteCommand())

	return cmd
}

// snapshotSaveCommand stores the network given by --input under NAME.
func (c *CLI) snapshotSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save NAME",
		Short: "Store the network from --input under NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			n, err := c.loadNetwork(ctx)
			if err != nil {
				return err
			}
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			snap, err := st.Save(ctx, args[0], n)
			if err != nil {
				return err
			}
			printSuccess("Saved %s", StyleHighlight.Render(snap.String()))
			printKeyValue("Store", c.Config.Store.Backend)
			printKeyValue("ID", snap.ID)
			printNextStep("Query it", appName+" --snapshot "+snap.Name+" report")
			return nil
		},
	}
}

func (c *CLI) snapshotLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load NAME",
		Short: "Print the friend lists of a stored network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.Load(ctx, args[0])
			if err != nil {
				return err
			}
			return report.WriteText(cmd.OutOrStdout(), n)
		},
	}
}

func (c *CLI) snapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			list, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo("No snapshots stored")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), snapshotTable(list, time.Now()))
			return nil
		},
	}
}

func (c *CLI) snapshotDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a stored network",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted snapshot %s", args[0])
			return nil
		},
	}
}

func snapshotTable(list []store.Snapshot, now time.Time) string {
	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{s.Name, fmt.Sprint(s.People), fmt.Sprint(s.Friendships), formatRelativeTime(s.SavedAt, now)}
	}
	return styledTable([]string{"Name", "People", "Friendships", "Saved"}, rows, func(_, col int) lipgloss.Style {
		switch col {
		case 0:
			return StyleHighlight
		case 3:
			return StyleDim
		}
		return StyleValue
	})
}

// formatRelativeTime describes t relative to now at the coarsest useful
// unit; anything a week or older is shown as a date.
func formatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	age := now.Sub(t)
	if age < time.Minute {
		return "just now"
	}
	for _, u := range []struct {
		below  time.Duration
		per    time.Duration
		suffix string
	}{
		{time.Hour, time.Minute, "m"},
		{24 * time.Hour, time.Hour, "h"},
		{7 * 24 * time.Hour, 24 * time.Hour, "d"},
	} {
		if age < u.below {
			return fmt.Sprintf("%d%s ago", age/u.per, u.suffix)
		}
	}
	return t.Format("Jan 2, 2006")
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
	"github.com/matzehuels/socialgraph/pkg/report"
)

// loadCommand imports a roster, reports rejected entries and prints the
// resulting friend lists.
func (c *CLI) loadCommand() *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Import a roster file and print the network",
		Long: `Import people and friendships from a roster file (.json or .toml).

Entries that cannot be applied, such as a friendship with someone who is not
in the roster, are reported and skipped. Use --strict to fail instead and
--save to store the result as a snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.importRoster(args[0])
			if err != nil {
				return err
			}
			if err := report.WriteText(cmd.OutOrStdout(), n); err != nil {
				return err
			}
			if save == "" {
				return nil
			}
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			snap, err := st.Save(cmd.Context(), save, n)
			if err != nil {
				return err
			}
			printSuccess("Saved snapshot %s", StyleHighlight.Render(snap.String()))
			printNextStep("Query it", appName+" --snapshot "+snap.Name+" report")
			return nil
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "store the network as a snapshot with this name")
	return cmd
}

// reportCommand prints friend lists or summary statistics.
func (c *CLI) reportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print every person's friends, or network statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.loadNetwork(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch format {
			case "text":
				return report.WriteText(w, n)
			case "json":
				return report.WriteJSON(w, n)
			case "summary":
				printSummary(w, report.Summarize(n))
				return nil
			}
			return apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown report format %q (text, json, summary)", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, summary")
	return cmd
}

func (c *CLI) friendsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "friends PERSON",
		Short: "List a person's friends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.loadNetwork(cmd.Context())
			if err != nil {
				return err
			}
			friends, err := n.Neighbors(args[0])
			if err != nil {
				return userError(err)
			}
			printList(cmd.OutOrStdout(), friends)
			return nil
		},
	}
}

func (c *CLI) mutualCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mutual A B",
		Short: "List the friends two people have in common",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.loadNetwork(cmd.Context())
			if err != nil {
				return err
			}
			mutual, err := n.MutualFriends(args[0], args[1])
			if err != nil {
				return userError(err)
			}
			printList(cmd.OutOrStdout(), mutual)
			return nil
		},
	}
}

func (c *CLI) pathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path FROM TO",
		Short: "Show the shortest chain of friendships between two people",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.loadNetwork(cmd.Context())
			if err != nil {
				return err
			}
			path, ok, err := n.ShortestPath(args[0], args[1])
			if err != nil {
				return userError(err)
			}
			w := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintf(w, "%s and %s are not connected\n", args[0], args[1])
				return nil
			}
			fmt.Fprintln(w, strings.Join(path, " "+iconArrow+" "))
			return nil
		},
	}
}

func (c *CLI) connectedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "connected A B",
		Short: "Check whether two people are connected through friends",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.loadNetwork(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := n.IsConnected(args[0], args[1])
			if err != nil {
				return userError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func (c *CLI) componentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List groups of people connected through friends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.loadNetwork(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, comp := range n.Components() {
				fmt.Fprintf(w, "%d: %s\n", i+1, strings.Join(comp, ", "))
			}
			return nil
		},
	}
}

func (c *CLI) suggestCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest PERSON",
		Short: "Suggest friends of friends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.loadNetwork(cmd.Context())
			if err != nil {
				return err
			}
			sugg, err := n.Suggest(args[0], limit)
			if err != nil {
				return userError(err)
			}
			w := cmd.OutOrStdout()
			for _, s := range sugg {
				fmt.Fprintf(w, "%s (%d mutual: %s)\n", s.ID, len(s.Mutual), strings.Join(s.Mutual, ", "))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "maximum number of suggestions, 0 for all")
	return cmd
}

// shownError prints as its user-facing message while keeping the coded
// error for errors.Is and errors.As.
type shownError struct{ err error }

func (e shownError) Error() string { return apperrors.UserMessage(e.err) }
func (e shownError) Unwrap() error { return e.err }

// userError turns an engine error into the message shown for it,
// e.g. "Johnny does not exist".
func userError(err error) error {
	return shownError{apperrors.FromNetwork(err)}
}

func printList(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
}

func printSummary(w io.Writer, s report.Summary) {
	row := func(k, v string) { fmt.Fprintf(w, "%-18s %s\n", k, v) }
	row("People", fmt.Sprint(s.People))
	row("Friendships", fmt.Sprint(s.Friendships))
	row("Groups", fmt.Sprint(s.Components))
	row("Largest group", fmt.Sprint(s.LargestComponent))
	row("Average friends", fmt.Sprintf("%.2f", s.AverageDegree))
	row("Most connected", fmt.Sprintf("%s (%d)", strings.Join(s.MostConnected, ", "), s.MaxDegree))
	if len(s.Isolated) > 0 {
		row("No friends", strings.Join(s.Isolated, ", "))
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/socialgraph/pkg/config"
)

// configCommand inspects the effective configuration.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the configuration after applying the file and environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), c.Config.String())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := config.Path()
				if err != nil {
					return err
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}

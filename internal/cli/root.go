package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/socialgraph/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Global flags:
//   - --config: config file (default $XDG_CONFIG_HOME/socialgraph/config.toml)
//   - --input, -i: roster file (.json or .toml) to build the network from
//   - --snapshot: stored snapshot to load instead of a roster file
//   - --self-loops: allow people to befriend themselves
//   - --strict: fail when any roster entry is rejected
//   - --verbose, -v: debug logging, applied before the config file is read
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Socialgraph explores friendship networks",
		Long: `Socialgraph loads people and friendships from a roster file or a stored
snapshot and answers questions about them: who is friends with whom, which
friends two people share, and how two people are connected.`,
		Version:       buildinfo.Resolve().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/socialgraph/config.toml)")
	pf.StringVarP(&c.input, "input", "i", "", "roster file (.json or .toml)")
	pf.StringVar(&c.snapshot, "snapshot", "", "stored snapshot to use instead of a roster file")
	pf.BoolVar(&c.selfLoops, "self-loops", false, "allow people to be friends with themselves")
	pf.BoolVar(&c.strict, "strict", false, "fail if any roster entry is rejected")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")

	// Register all subcommands
	root.AddCommand(c.loadCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.friendsCommand())
	root.AddCommand(c.mutualCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.connectedCommand())
	root.AddCommand(c.componentsCommand())
	root.AddCommand(c.suggestCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

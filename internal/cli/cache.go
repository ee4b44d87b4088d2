package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/socialgraph/pkg/cache"
	"github.com/matzehuels/socialgraph/pkg/config"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or empty the diagram cache",
		Long: `Rendered diagrams and reports are cached by content hash. These
commands operate on the on-disk cache used by the file backend.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print where cached entries live",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := c.cacheDir()
				if err != nil {
					return fmt.Errorf("resolve cache dir: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
				return err
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show how many entries are cached on disk",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				fc, err := c.fileCache()
				if err != nil {
					return err
				}
				entries, size, err := fc.Usage()
				if err != nil {
					return err
				}
				printKeyValue("Entries", fmt.Sprint(entries))
				printKeyValue("Size", formatBytes(size))
				printKeyValue("Directory", fc.Dir())
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every cached entry",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				fc, err := c.fileCache()
				if err != nil {
					return err
				}
				removed, err := fc.Clear()
				switch {
				case err != nil:
					return err
				case removed == 0:
					printInfo("Nothing cached in %s", fc.Dir())
				default:
					printSuccess("Removed %d cached entries from %s", removed, fc.Dir())
				}
				return nil
			},
		},
	)
	return cmd
}

// fileCache opens the on-disk cache; the other backends manage their own
// expiry and are not reachable from here.
func (c *CLI) fileCache() (*cache.FileCache, error) {
	if b := c.Config.Cache.Backend; b != config.CacheFile {
		return nil, fmt.Errorf("the %s cache backend has no local entries to manage", b)
	}
	dir, err := c.cacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolve cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

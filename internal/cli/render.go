package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/socialgraph/pkg/cache"
	sgio "github.com/matzehuels/socialgraph/pkg/io"
	"github.com/matzehuels/socialgraph/pkg/network"
	"github.com/matzehuels/socialgraph/pkg/render"
	"github.com/matzehuels/socialgraph/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path, "-" for stdout
	format   string // svg, dot, pdf, png; inferred from output when empty
	layout   string // Graphviz engine
	detailed bool   // friend counts and metadata in labels
	cluster  bool   // one box per connected component
	path     string // "FROM,TO": highlight the shortest path
	noCache  bool
}

// renderCommand creates the render command for drawing the network.
//
// Default settings:
//   - format: inferred from --output, else svg
//   - layout: neato
//   - output: network.<format>
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the network as SVG, PDF, PNG, or DOT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			opts.format = format
			n, err := c.loadNetwork(cmd.Context())
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), n, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default network.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: "+strings.Join(render.Formats, ", "))
	cmd.Flags().StringVar(&opts.layout, "layout", nodelink.DefaultLayout, "Graphviz layout engine: neato, fdp, sfdp, circo, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show friend counts and metadata")
	cmd.Flags().BoolVar(&opts.cluster, "cluster", false, "box each group of connected people")
	cmd.Flags().StringVar(&opts.path, "path", "", "highlight the shortest path, as FROM,TO")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, n *network.Network, opts renderOpts) error {
	ropts := nodelink.Options{
		Detailed: opts.detailed,
		Cluster:  opts.cluster,
		Layout:   opts.layout,
	}
	if opts.path != "" {
		from, to, ok := strings.Cut(opts.path, ",")
		if !ok {
			return fmt.Errorf("--path must be FROM,TO, got %q", opts.path)
		}
		path, found, err := n.ShortestPath(from, to)
		if err != nil {
			return userError(err)
		}
		if !found {
			printWarning("%s and %s are not connected", from, to)
		}
		ropts.Highlight = path
	}

	rc := c.newCache(ctx, opts.noCache)
	defer rc.Close()

	rendered := stopwatch(c.Logger, "rendered "+opts.format)
	data, cached, err := renderCached(ctx, rc, c.keyer(), n, opts.format, ropts)
	if err != nil {
		return err
	}
	rendered()

	out := opts.output
	if out == "" {
		out = "network." + opts.format
	}
	if out == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	printSuccess("Rendered network")
	printStats(n.Len(), n.FriendshipCount(), cached)
	printFile(out)
	return nil
}

// renderCached returns the cached artifact for n and the options, or
// renders and stores it.
func renderCached(ctx context.Context, c cache.Cache, keyer cache.Keyer, n *network.Network, format string, opts nodelink.Options) ([]byte, bool, error) {
	var content bytes.Buffer
	if err := sgio.WriteJSON(n, &content); err != nil {
		return nil, false, err
	}
	key := keyer.RenderKey(cache.Hash(content.Bytes()), cache.RenderKeyOpts{
		Format:    format,
		Layout:    opts.Layout,
		Detailed:  opts.Detailed,
		Cluster:   opts.Cluster,
		Highlight: opts.Highlight,
	})
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		loggerFromContext(ctx).Debug("render cache hit", "key", key)
		return data, true, nil
	}

	data, err := nodelink.Render(ctx, n, format, opts)
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, cache.RenderTTL); err != nil {
		loggerFromContext(ctx).Warn("cache write failed", "error", err)
	}
	return data, false, nil
}

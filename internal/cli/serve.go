package cli

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/socialgraph/internal/server"
	"github.com/matzehuels/socialgraph/pkg/events"
	"github.com/matzehuels/socialgraph/pkg/network"
	"github.com/matzehuels/socialgraph/pkg/observability"
)

// serveCommand runs the HTTP API over the network given by --input or
// --snapshot, or over an empty network when neither is set.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		rate    float64
		burst   int
		natsURL string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the network over an HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			cfg := &c.Config
			if flags.Changed("addr") {
				cfg.Server.Addr = addr
			}
			if flags.Changed("rate") {
				cfg.Server.Rate = rate
			}
			if flags.Changed("burst") {
				cfg.Server.Burst = burst
			}
			if flags.Changed("nats") {
				cfg.Events.NATSURL = natsURL
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			n, err := c.loadNetwork(ctx)
			if errors.Is(err, errNoSource) {
				n, err = network.New(c.networkOptions()...), nil
			}
			if err != nil {
				return err
			}
			return c.runServe(ctx, network.NewSynchronized(n), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Server.Addr, "listen address")
	cmd.Flags().Float64Var(&rate, "rate", c.Config.Server.Rate, "requests per second per client, 0 disables limiting")
	cmd.Flags().IntVar(&burst, "burst", c.Config.Server.Burst, "rate limiter burst size")
	cmd.Flags().StringVar(&natsURL, "nats", "", "publish change events to this NATS server")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, n *network.Synchronized, noCache bool) error {
	cfg := c.Config

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewPrometheus(reg)
	metrics.Register()
	defer observability.Reset()
	metrics.OnSize(ctx, n.Len(), n.FriendshipCount())
	observability.SetupPropagation()

	var pub events.Publisher = events.NopPublisher{}
	if cfg.Events.NATSURL != "" {
		np, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.SubjectPrefix)
		if err != nil {
			return err
		}
		pub = np
		c.Logger.Info("publishing events", "nats", cfg.Events.NATSURL, "subjects", np.Subject("*"))
	}
	defer pub.Close()

	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	rc := c.newCache(ctx, noCache)
	defer rc.Close()

	srv := server.New(n, server.Options{
		Logger:    c.Logger,
		Publisher: pub,
		Store:     st,
		Cache:     rc,
		Keyer:     c.keyer(),
		Metrics:   metrics.Handler(),
		Rate:      cfg.Server.Rate,
		Burst:     cfg.Server.Burst,
	})
	c.Logger.Info("serving network", "people", n.Len(), "friendships", n.FriendshipCount(), "store", cfg.Store.Backend)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

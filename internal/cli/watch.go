package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/socialgraph/pkg/events"
	"github.com/matzehuels/socialgraph/pkg/observability"
)

// watchCommand prints change events published by a running server until
// interrupted.
func (c *CLI) watchCommand() *cobra.Command {
	var natsURL string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print change events from a server publishing to NATS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if natsURL == "" {
				natsURL = c.Config.Events.NATSURL
			}
			if natsURL == "" {
				natsURL = nats.DefaultURL
			}

			nc, err := nats.Connect(natsURL, nats.Name(appName+" watch"))
			if err != nil {
				return fmt.Errorf("connect to %s: %w", natsURL, err)
			}
			defer nc.Close()

			observability.SetupPropagation()
			w := cmd.OutOrStdout()
			sub, err := events.Subscribe(nc, c.Config.Events.SubjectPrefix, func(ectx context.Context, ev events.Event) {
				if sc := trace.SpanContextFromContext(ectx); sc.HasTraceID() {
					c.Logger.Debug("event", "id", ev.ID, "trace", sc.TraceID())
				}
				fmt.Fprintln(w, formatEvent(ev))
			})
			if err != nil {
				return err
			}
			defer sub.Unsubscribe()

			c.Logger.Info("watching", "nats", natsURL, "subject", sub.Subject)
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats", "", "NATS server URL (default from config, else "+nats.DefaultURL+")")
	return cmd
}

func formatEvent(ev events.Event) string {
	return fmt.Sprintf("%s  %-18s %s",
		StyleDim.Render(ev.At.Local().Format("15:04:05")),
		string(ev.Type),
		strings.Join(ev.People, " "+iconArrow+" "))
}

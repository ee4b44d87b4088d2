package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// SetupPropagation installs W3C trace context and baggage as the global
// OpenTelemetry propagator. The HTTP server reads traceparent headers with
// it and the NATS publisher forwards them, so a trace started by a client
// reaches every `watch` subscriber.
func SetupPropagation() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}

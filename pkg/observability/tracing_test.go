package observability

import (
	"slices"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestSetupPropagation(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	defer otel.SetTextMapPropagator(prev)

	SetupPropagation()
	fields := otel.GetTextMapPropagator().Fields()
	for _, want := range []string{"traceparent", "baggage"} {
		if !slices.Contains(fields, want) {
			t.Errorf("propagator fields %v missing %q", fields, want)
		}
	}
}

package telemetry_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-storefront/internal/telemetry"
	"github.com/stretchr/testify/require"
)

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	shutdown := telemetry.Setup(context.Background(), "storefront-test")
	require.NoError(t, shutdown(context.Background()))
}

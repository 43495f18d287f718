package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewProvider(t *testing.T) {
	t.Run("Success_CreateProviderWithNamespace", func(t *testing.T) {
		provider, err := NewProvider("license_manager")

		require.NoError(t, err)
		assert.NotNil(t, provider.meterProvider)
		assert.NotNil(t, provider.exporter)
		assert.NotNil(t, provider.registry)
	})

	t.Run("Success_ProvidersDoNotShareRegistries", func(t *testing.T) {
		first, err := NewProvider("license_manager")
		require.NoError(t, err)
		second, err := NewProvider("license_manager")
		require.NoError(t, err)

		bm, err := NewBusinessMetrics(first.MeterProvider(), "license_manager")
		require.NoError(t, err)
		bm.RecordOperation(context.Background(), "product", "product_create", "success")

		assert.Contains(t, scrape(t, first), "license_manager_operations_total")
		assert.NotContains(t, scrape(t, second), "license_manager_operations_total")
	})
}

func TestProvider_HandlerServesIssuanceSeries(t *testing.T) {
	provider, err := NewProvider("license_manager")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "license_manager")
	require.NoError(t, err)
	bm.RecordOperation(context.Background(), "issuance", "license_issue", "success")

	assertBizMetricLine(
		t,
		scrape(t, provider),
		`license_manager_operations_total`,
		`domain="issuance".*operation="license_issue".*status="success"`,
		`1`,
	)
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("Success_ShutdownProvider", func(t *testing.T) {
		provider, err := NewProvider("license_manager")
		require.NoError(t, err)

		err = provider.Shutdown(context.Background())
		assert.NoError(t, err)
	})

	t.Run("Success_ShutdownNilProvider", func(t *testing.T) {
		provider := &Provider{meterProvider: nil}

		err := provider.Shutdown(context.Background())
		assert.NoError(t, err)
	})
}

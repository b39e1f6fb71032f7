package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"stage-alts/core/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Writes.WithLabelValues("directory", "patch").Add(3)
	m.CatalogRecords.Set(2)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Writes.WithLabelValues("directory", "patch")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CatalogRecords))
}

func TestNewNopIsolated(t *testing.T) {
	a := metrics.NewNop()
	b := metrics.NewNop()
	a.Advances.WithLabelValues("none").Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Advances.WithLabelValues("none")))
}

func TestHandler(t *testing.T) {
	m := metrics.NewNop()
	m.CatalogAlternates.Set(7)

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "stage_alts_catalog_alternates 7")
}

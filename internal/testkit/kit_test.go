package testkit

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gofarma/adapters/api"
	"gofarma/domain/catalog"
	"gofarma/internal/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startFakeAPI(t *testing.T, config FakeAPIConfig) (*FakeAPI, *api.Client) {
	t.Helper()
	fake, err := NewFakeAPI(config)
	require.NoError(t, err)
	server := fake.Start()
	t.Cleanup(server.Close)
	client := api.NewClient(api.ClientConfig{BaseURL: server.URL + "/api", Timeout: 5 * time.Second})
	t.Cleanup(client.Close)
	return fake, client
}

func TestFakeAPIServesEveryCatalogReport(t *testing.T) {
	fake, client := startFakeAPI(t, FakeAPIConfig{})
	cat, err := catalog.Default()
	require.NoError(t, err)

	for _, entry := range cat.Entries() {
		rows, err := client.FetchRows(context.Background(), entry.Endpoint, entry.Query(nil))
		require.NoError(t, err, entry.Slug)
		if entry.Slug == "sin-stock" {
			assert.Empty(t, rows)
			continue
		}
		assert.NotEmpty(t, rows, entry.Slug)
		assert.Equal(t, 1, fake.Requests("/api/"+entry.Endpoint))
	}
}

func TestFakeAPIKeepsFixtureKeyOrder(t *testing.T) {
	_, client := startFakeAPI(t, FakeAPIConfig{})

	rows, err := client.FetchRows(context.Background(), "reportes/rentabilidad", nil)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"medicamento", "precio_compra", "precio_venta", "ganancia_unitaria", "margen_pct"}, rows[0].Keys())
}

func TestFakeAPIFailures(t *testing.T) {
	_, client := startFakeAPI(t, FakeAPIConfig{})

	_, err := client.FetchRows(context.Background(), "reportes/"+FailingSlug, nil)
	assert.True(t, errors.IsEmptyResult(err))
	assert.Equal(t, FailureMessage, errors.Message(err))

	_, err = client.FetchRows(context.Background(), "reportes/"+BrokenSlug, nil)
	assert.True(t, errors.IsTransport(err))

	_, err = client.FetchRows(context.Background(), "reportes/no-existe", nil)
	assert.True(t, errors.IsEmptyResult(err))
}

func TestFakeAPISynthetic(t *testing.T) {
	_, client := startFakeAPI(t, FakeAPIConfig{Synthetic: 25, Seed: 7})

	rows, err := client.FetchRows(context.Background(), "medicamentos", nil)
	require.NoError(t, err)
	assert.Len(t, rows, 25)
	assert.Equal(t, "id_medicamento", rows[0].Keys()[0])

	summary, err := client.FetchRecord(context.Background(), "reportes/resumen-general", nil)
	require.NoError(t, err)
	assert.Equal(t, 6, summary.Len())
}

func TestFakeAPILatencyHonoursCancellation(t *testing.T) {
	fake, err := NewFakeAPI(FakeAPIConfig{Latency: time.Minute})
	require.NoError(t, err)
	server := fake.Start()
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/medicamentos", nil)
	require.NoError(t, err)

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err == nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
}

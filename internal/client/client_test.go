package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/manifest-network/sebakscan/internal/config"
	"github.com/manifest-network/sebakscan/internal/fault"
	"github.com/manifest-network/sebakscan/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*RESTClient, *prometheus.Registry) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	registry := prometheus.NewRegistry()
	m := metrics.New()
	m.Register(registry)
	c := NewRESTClient(config.ClientConfig{
		URL:       server.URL,
		Timeout:   2 * time.Second,
		UserAgent: "sebakscan-test",
	}, m, nil)
	return c, registry
}

func TestGetSendsQueryParams(t *testing.T) {
	var gotQuery url.Values
	var gotAgent string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/blocks", r.URL.Path)
		gotQuery = r.URL.Query()
		gotAgent = r.UserAgent()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_embedded":{"records":[{"hash":"a","height":12}]},"_links":{"next":{"href":"/api/v1/blocks?cursor=12"}}}`))
	}))

	env, err := c.Get(context.Background(), RouteBlocks, url.Values{"limit": {"10"}, "reverse": {"true"}})
	require.NoError(t, err)

	assert.Equal(t, "10", gotQuery.Get("limit"))
	assert.Equal(t, "true", gotQuery.Get("reverse"))
	assert.Equal(t, "sebakscan-test", gotAgent)

	records, present, err := env.Records()
	require.NoError(t, err)
	require.True(t, present)
	require.Len(t, records, 1)
	assert.Equal(t, json.Number("12"), records[0]["height"])

	href, ok := env.Link("next")
	assert.True(t, ok)
	assert.Equal(t, "/api/v1/blocks?cursor=12", href)
	_, ok = env.Link("prev")
	assert.False(t, ok)
}

func TestGetLinkResolvesRelativeHref(t *testing.T) {
	var gotURI string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		_, _ = w.Write([]byte(`{"_embedded":{"records":[]}}`))
	}))

	_, err := c.GetLink(context.Background(), "/api/v1/transactions?cursor=abc&limit=5")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/transactions?cursor=abc&limit=5", gotURI)
}

func TestGetLinkEmptyHref(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())
	_, err := c.GetLink(context.Background(), "")
	assert.ErrorIs(t, err, fault.ErrNoSuchPage)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "not found with problem body",
			status:  http.StatusNotFound,
			body:    `{"type":"https://boscoin.io/sebak/error/100","title":"does not exists","status":404}`,
			wantErr: fault.ErrNotFound,
			wantMsg: "does not exists",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: fault.ErrServer,
			wantMsg: "500",
		},
		{
			name:    "bad request",
			status:  http.StatusBadRequest,
			body:    `{"title":"bad request","detail":"limit is too big"}`,
			wantErr: fault.ErrServer,
			wantMsg: "bad request: limit is too big",
		},
		{
			name:    "undecodable body",
			status:  http.StatusOK,
			body:    `[1,2,3]`,
			wantErr: fault.ErrMalformedRecord,
			wantMsg: "failed to decode response body",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))

			_, err := c.Get(context.Background(), Path(RouteAccount, "GABC"), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	c := NewRESTClient(config.ClientConfig{URL: server.URL, Timeout: time.Second}, nil, nil)
	_, err := c.Get(context.Background(), RouteBlocks, nil)
	assert.ErrorIs(t, err, fault.ErrNetwork)
}

func TestCanceledContextIsNetworkError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Get(ctx, RouteBlocks, nil)
	assert.ErrorIs(t, err, fault.ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRequestsAreCounted(t *testing.T) {
	c, registry := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/accounts/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"address":"GABC"}`))
	}))

	_, err := c.Get(context.Background(), Path(RouteAccount, "GABC"), nil)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), Path(RouteAccount, "missing"), nil)
	require.Error(t, err)

	expected := `
# HELP sebakscan_api_requests_total Total number of ledger API requests by endpoint and outcome
# TYPE sebakscan_api_requests_total counter
sebakscan_api_requests_total{endpoint="accounts/{id}",outcome="not_found"} 1
sebakscan_api_requests_total{endpoint="accounts/{id}",outcome="ok"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "sebakscan_api_requests_total"))
}

func TestEndpointLabel(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/", "node"},
		{"", "node"},
		{RouteBlocks, "blocks"},
		{"/api/v1/blocks?cursor=10&limit=10", "blocks"},
		{Path(RouteBlock, "8wSFc"), "blocks/{id}"},
		{Path(RouteAccountOperations, "GABC"), "accounts/{id}/operations"},
		{"https://node.example.org/api/v1/transactions/abc/operations?limit=3", "transactions/{id}/operations"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, endpointLabel(tc.path))
		})
	}
}

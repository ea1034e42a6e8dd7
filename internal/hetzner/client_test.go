package hetzner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"servers": []}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret-token", zap.NewNop())
	_, err := client.ListServers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClientGetServerDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/servers/42", r.URL.Path)
		w.Write([]byte(`{"server": {
			"id": 42,
			"name": "web-1",
			"status": "running",
			"public_net": {"ipv4": {"ip": "203.0.113.7"}, "ipv6": null},
			"server_type": {"name": "cx22", "cores": 2, "memory": 4096, "disk": 40, "prices": []},
			"datacenter": {"name": "fsn1-dc14", "location": {"name": "fsn1", "city": "Falkenstein", "country": "DE"}},
			"image": {"name": "ubuntu-24.04", "description": "Ubuntu 24.04"}
		}}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "token", zap.NewNop())
	server, err := client.GetServer(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), server.ID)
	assert.Equal(t, "running", server.Status)
	require.NotNil(t, server.PublicNet.IPv4)
	assert.Equal(t, "203.0.113.7", server.PublicNet.IPv4.IP)
	assert.Nil(t, server.PublicNet.IPv6)
	assert.Equal(t, 2, server.Type.Cores)
	assert.Equal(t, float64(4096), server.Type.Memory)
	assert.Equal(t, "fsn1", server.Datacenter.Location.Name)
}

func TestClientReturnsErrorOnNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"code": "not_found"}}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "token", zap.NewNop())
	_, err := client.GetServer(context.Background(), 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClientDefaultBaseURL(t *testing.T) {
	client := NewClient("", "token", zap.NewNop())
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}

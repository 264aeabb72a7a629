package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodingBot000/miracle3day-sub008/internal/config"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
)

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Port:            0, // ephemeral; Start is not exercised in unit tests
		Mode:            "test",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		IdleTimeout:     10 * time.Second,
		ShutdownTimeout: 2 * time.Second,
	}
}

func TestNewServerWiresRouter(t *testing.T) {
	handler := http.NewServeMux()
	srv := NewServer(testServerConfig(), handler, logging.NewNopLogger())
	require.NotNil(t, srv)
	assert.Equal(t, http.Handler(handler), srv.Handler())
}

func TestStopWithoutStart(t *testing.T) {
	srv := NewServer(testServerConfig(), http.NewServeMux(), logging.NewNopLogger())
	// Shutdown on a never-started server returns promptly without error.
	err := srv.Stop(context.Background())
	assert.NoError(t, err)
}

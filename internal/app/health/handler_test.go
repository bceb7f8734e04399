package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"messageboard/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping(ctx context.Context) error { return p.err }

func serve(store utils.Pinger) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	checker := &utils.HealthChecker{StoreName: "memory", Store: store}
	RegisterRoutes(r.Group("/api"), NewHandler(NewService(checker)))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	return rr
}

func TestHealthy(t *testing.T) {
	rr := serve(pinger{})
	require.Equal(t, http.StatusOK, rr.Code)

	var status utils.HealthStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	require.Len(t, status.Services, 1)
	assert.Equal(t, "memory", status.Services[0].Name)
	assert.Equal(t, "up", status.Services[0].Status)
}

func TestDegraded(t *testing.T) {
	rr := serve(pinger{err: errors.New("connection refused")})
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var status utils.HealthStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "connection refused", status.Services[0].Message)
}

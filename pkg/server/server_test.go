package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/cost-reporter/pkg/models/api"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/de-tools/cost-reporter/pkg/services/job"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, event job.Event) domain.RunResult {
	args := m.Called(ctx, event)
	return args.Get(0).(domain.RunResult)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	startedAt := time.Date(2024, 5, 31, 6, 0, 0, 0, time.UTC)

	runner := new(mockRunner)
	runner.On("Run", mock.Anything, mock.MatchedBy(func(event job.Event) bool {
		return event.Source == "manual"
	})).Return(domain.RunResult{
		Status:    domain.RunSucceeded,
		StartedAt: startedAt,
		Counts:    domain.RunCounts{RegionsScanned: 2, ResourcesFound: 4, CostLineItems: 3},
		Summary:   "report generated, total 42.00 USD",
	})

	webAPI := NewWebAPI(logger, Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies:    Dependencies{Runner: runner},
	})
	testServer := httptest.NewServer(webAPI.Router())
	defer testServer.Close()

	t.Run("Health", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/healthz")
		require.NoError(t, err, "Failed to send request")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "ok", string(body))
	})

	t.Run("TriggerRun", func(t *testing.T) {
		resp, err := http.Post(testServer.URL+"/api/v1/report/run", "application/json", nil)
		require.NoError(t, err, "Failed to send request")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result api.RunResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "success", result.Status)
		assert.Equal(t, startedAt, result.StartedAt)
		assert.Equal(t, api.RunCounts{RegionsScanned: 2, ResourcesFound: 4, CostLineItems: 3}, result.Counts)
	})

	t.Run("TriggerRun_MethodNotAllowed", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/report/run")
		require.NoError(t, err, "Failed to send request")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	runner.AssertExpectations(t)
}

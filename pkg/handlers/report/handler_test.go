package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/cost-reporter/pkg/models/api"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/de-tools/cost-reporter/pkg/services/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, event job.Event) domain.RunResult {
	args := m.Called(ctx, event)
	return args.Get(0).(domain.RunResult)
}

func TestTriggerRun(t *testing.T) {
	startedAt := time.Date(2024, 5, 31, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		target         string
		setupMock      func(*mockRunner)
		expectedStatus int
		expectedBody   api.RunResult
	}{
		{
			name:   "successful run",
			target: "/report/run",
			setupMock: func(m *mockRunner) {
				m.On("Run", mock.Anything, mock.MatchedBy(func(event job.Event) bool {
					return event.Source == "manual" && !event.Test
				})).Return(domain.RunResult{
					Status:      domain.RunSucceeded,
					StartedAt:   startedAt,
					ElapsedSecs: 12.5,
					Counts: domain.RunCounts{
						RegionsScanned: 3,
						ResourcesFound: 17,
						CostLineItems:  5,
					},
					Summary: "report generated, total 42.00 USD",
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody: api.RunResult{
				Status:      "success",
				StartedAt:   startedAt,
				ElapsedSecs: 12.5,
				Counts: api.RunCounts{
					RegionsScanned: 3,
					ResourcesFound: 17,
					CostLineItems:  5,
				},
				Summary: "report generated, total 42.00 USD",
			},
		},
		{
			name:   "test flag skips dispatch",
			target: "/report/run?test=1",
			setupMock: func(m *mockRunner) {
				m.On("Run", mock.Anything, mock.MatchedBy(func(event job.Event) bool {
					return event.Test
				})).Return(domain.RunResult{
					Status:    domain.RunSucceeded,
					StartedAt: startedAt,
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody: api.RunResult{
				Status:    "success",
				StartedAt: startedAt,
			},
		},
		{
			name:   "failed run",
			target: "/report/run",
			setupMock: func(m *mockRunner) {
				m.On("Run", mock.Anything, mock.Anything).Return(domain.RunResult{
					Status:    domain.RunFailed,
					StartedAt: startedAt,
					Err:       domain.NewRunError(domain.ErrKindBilling, errors.New("access denied")),
				})
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody: api.RunResult{
				Status:    "failure",
				StartedAt: startedAt,
				Error: &api.RunError{
					Kind:    "fatal-billing",
					Message: "access denied",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(mockRunner)
			tt.setupMock(runner)
			handler := NewHandler(runner)

			req := httptest.NewRequest("POST", tt.target, nil)
			rec := httptest.NewRecorder()

			handler.TriggerRun(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var response api.RunResult
			err := json.NewDecoder(rec.Body).Decode(&response)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, response)

			runner.AssertExpectations(t)
		})
	}
}

func TestHealth(t *testing.T) {
	handler := NewHandler(new(mockRunner))

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

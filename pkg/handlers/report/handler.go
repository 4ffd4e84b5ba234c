package report

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/de-tools/cost-reporter/pkg/adapters"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/de-tools/cost-reporter/pkg/services/job"
	"github.com/rs/zerolog"
)

// Runner is the slice of the job the HTTP surface needs.
type Runner interface {
	Run(ctx context.Context, event job.Event) domain.RunResult
}

type Handler struct {
	runner Runner
}

func NewHandler(runner Runner) *Handler {
	return &Handler{runner: runner}
}

// TriggerRun executes a report run synchronously and returns its result.
// A ?test=1 query behaves like a test-mode trigger: full pipeline, no
// email.
func (h *Handler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	event := job.Event{
		Source: "manual",
		Time:   time.Now(),
		Test:   r.URL.Query().Get("test") == "1",
	}

	result := h.runner.Run(ctx, event)

	w.Header().Set("Content-Type", "application/json")
	if result.Status == domain.RunFailed {
		w.WriteHeader(http.StatusInternalServerError)
	}

	if err := json.NewEncoder(w).Encode(adapters.MapRunResultDomainToApi(result)); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode run result")
	}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

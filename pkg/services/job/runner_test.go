package job

import (
	"testing"

	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteMissingConfiguration(t *testing.T) {
	t.Setenv("SENDER_EMAIL", "")
	t.Setenv("RECIPIENT_EMAILS", "")
	t.Setenv("S3_BUCKET_NAME", "")

	result := Execute(testCtx(), Event{Source: "manual"})

	assert.Equal(t, domain.RunFailed, result.Status)
	require.NotNil(t, result.Err)
	assert.Equal(t, domain.ErrKindConfiguration, result.Err.Kind)
	assert.Contains(t, result.Err.Error(), "SENDER_EMAIL")
}

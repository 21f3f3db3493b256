package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/labels"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
model:
  model_path: models/deltran15_minilm_fp32.safetensors
  tokenizer_path: models/tokenizer
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.Model.MaxSequenceLength)
	assert.True(t, cfg.Model.UseCPU)
	assert.Equal(t, 9190, cfg.Metrics.Port)
	assert.False(t, cfg.Metrics.Enabled)

	set, err := cfg.ActionableSet()
	require.NoError(t, err)
	assert.True(t, set[labels.AffectedIndividuals])
	assert.True(t, set[labels.InfrastructureAndUtilityDamage])
	assert.True(t, set[labels.RescueVolunteeringOrDonation])
	assert.False(t, set[labels.NotHumanitarian])
	assert.False(t, set[labels.OtherRelevantInformation])
}

func TestParseOverridesActionableLabels(t *testing.T) {
	path := writeConfig(t, `
model:
  model_path: m.safetensors
  tokenizer_path: tok
extraction:
  actionable_labels:
    - rescue_volunteering_or_donation
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	set, err := cfg.ActionableSet()
	require.NoError(t, err)
	assert.Len(t, set, 1)
	assert.True(t, set[labels.RescueVolunteeringOrDonation])
}

func TestParseRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing model path",
			content: "model:\n  tokenizer_path: tok\n",
		},
		{
			name: "sequence length out of range",
			content: `
model:
  model_path: m
  tokenizer_path: tok
  max_sequence_length: 4
`,
		},
		{
			name: "unknown actionable label",
			content: `
model:
  model_path: m
  tokenizer_path: tok
extraction:
  actionable_labels: [no_such_label]
`,
		},
		{
			name: "metrics port out of range",
			content: `
model:
  model_path: m
  tokenizer_path: tok
metrics:
  port: 99999
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

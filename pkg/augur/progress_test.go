package augur

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProgress(t *testing.T) {
	logs := "Using seed: 12345\n 20%|██        | 1/5 [00:01<00:04,  1.00it/s]"

	progress := ParseProgress(logs)
	require.NotNil(t, progress)
	assert.Equal(t, 0.2, progress.Percentage)
	assert.Equal(t, 1, progress.Current)
	assert.Equal(t, 5, progress.Total)
}

func TestParseProgressLastLineWins(t *testing.T) {
	logs := " 20%|██        | 1/5 [00:01]\n" +
		" 40%|████      | 2/5 [00:02]\n" +
		" 60%|██████    | 3/5 [00:03]"

	progress := ParseProgress(logs)
	require.NotNil(t, progress)
	assert.Equal(t, 0.6, progress.Percentage)
	assert.Equal(t, 3, progress.Current)
	assert.Equal(t, 5, progress.Total)
}

func TestParseProgressSkipsTrailingNoise(t *testing.T) {
	logs := "100%|██████████| 5/5 [00:05]\nwriting output...\ndone"

	progress := ParseProgress(logs)
	require.NotNil(t, progress)
	assert.Equal(t, 1.0, progress.Percentage)
	assert.Equal(t, 5, progress.Current)
	assert.Equal(t, 5, progress.Total)
}

func TestParseProgressAbsent(t *testing.T) {
	assert.Nil(t, ParseProgress(""))
	assert.Nil(t, ParseProgress("loading weights\nwarming up"))
	assert.Nil(t, ParseProgress("50% complete"))
}

func TestPredictionProgress(t *testing.T) {
	p := &Prediction{}
	assert.Nil(t, p.Progress())

	p.Logs = " 20%|██        | 1/5 [00:01]"
	progress := p.Progress()
	require.NotNil(t, progress)
	assert.Equal(t, 0.2, progress.Percentage)
}

func TestTrainingProgress(t *testing.T) {
	tr := &Training{Logs: " 75%|███████▌  | 3/4 [00:03]"}
	progress := tr.Progress()
	require.NotNil(t, progress)
	assert.Equal(t, 0.75, progress.Percentage)
	assert.Equal(t, 3, progress.Current)
	assert.Equal(t, 4, progress.Total)
}

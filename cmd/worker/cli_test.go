package main

import (
	"bytes"
	"testing"

	"github.com/phrazzld/quizgen/internal/config"
	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsFromConfig(t *testing.T) {
	settings := settingsFromConfig(config.PipelineConfig{
		ChunkSize:         1100,
		FreePlanLimit:     5,
		RecentWindowSize:  6,
		SummaryPrefixSize: 600,
		SummaryInputLimit: 2000,
	})

	assert.Equal(t, 1100, settings.ChunkSize)
	assert.Equal(t, 600, settings.SummaryPrefixSize)
	assert.Equal(t, 2000, settings.SummaryInputLimit)
	assert.Equal(t, domain.FreePlanQuestionLimit, settings.Limits.FreePlanLimit)
	assert.Equal(t, 6, settings.Limits.RecentWindowSize)
}

func TestCLICommands(t *testing.T) {
	app := newCLI(&bytes.Buffer{})

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"serve", "process", "migrate"}, names)
}

func TestMigrateUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", []string{"quizgen-worker", "migrate"}},
		{"too many", []string{"quizgen-worker", "migrate", "up", "down"}},
		{"unknown", []string{"quizgen-worker", "migrate", "sideways"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newCLI(&bytes.Buffer{}).Run(tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, errUsage)
		})
	}
}

func TestProcessRequiresFlags(t *testing.T) {
	err := newCLI(&bytes.Buffer{}).Run([]string{"quizgen-worker", "process", "--s3-key", "docs/a.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db-pk")
}

func TestValidMigrateCommand(t *testing.T) {
	for _, cmd := range []string{"up", "down", "status", "version"} {
		assert.True(t, validMigrateCommand(cmd), cmd)
	}
	assert.False(t, validMigrateCommand("redo"))
}

package generation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrompts_Embedded(t *testing.T) {
	t.Parallel()

	prompts, err := LoadPrompts("")
	require.NoError(t, err)
	assert.Equal(t, QuestionsPromptFile, prompts.Questions.Name())
	assert.Equal(t, SummaryPromptFile, prompts.Summary.Name())

	messages, err := prompts.Questions.Render(QuestionPromptData{
		Note:          "Goroutines are cheap.",
		PrevQuestions: "What is a channel?",
	})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, RoleSystem, messages[0].Role)
	assert.Equal(t, RoleUser, messages[1].Role)
	assert.Contains(t, messages[1].Content, "Goroutines are cheap.")
	assert.Contains(t, messages[1].Content, "What is a channel?")

	messages, err = prompts.Summary.Render(SummaryPromptData{Note: "Short note"})
	require.NoError(t, err)
	assert.Contains(t, messages[len(messages)-1].Content, "Short note")
}

func TestLoadPrompts_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, QuestionsPromptFile), []byte(`
- role: user
  content: "Q: {{.Note}} / {{.PrevQuestions}}"
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SummaryPromptFile), []byte(`
- role: user
  content: "S: {{.Note}}"
`), 0o600))

	prompts, err := LoadPrompts(dir)
	require.NoError(t, err)

	messages, err := prompts.Questions.Render(QuestionPromptData{Note: "n", PrevQuestions: "p"})
	require.NoError(t, err)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "Q: n / p"}}, messages)
}

func TestLoadPrompts_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadPrompts(t.TempDir())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParsePrompt_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"invalid yaml":   "- role: [",
		"no messages":    "[]",
		"unknown role":   "- role: narrator\n  content: hi",
		"bad template":   "- role: user\n  content: \"{{.Note\"",
		"not a sequence": "role: user",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ParsePrompt("test.yaml", []byte(data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestRender_MissingKey(t *testing.T) {
	t.Parallel()

	tmpl, err := ParsePrompt("test.yaml", []byte("- role: user\n  content: \"{{.Unknown}}\""))
	require.NoError(t, err)

	_, err = tmpl.Render(map[string]string{"Note": "x"})
	assert.Error(t, err)
}

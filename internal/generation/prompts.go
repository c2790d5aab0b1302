package generation

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Prompt file names, looked up in the embedded defaults or in a prompt directory.
const (
	QuestionsPromptFile = "generate_questions.yaml"
	SummaryPromptFile   = "generate_summary.yaml"
)

//go:embed prompts/*.yaml
var defaultPrompts embed.FS

// QuestionPromptData fills the question prompt.
type QuestionPromptData struct {
	Note          string
	PrevQuestions string
}

// SummaryPromptData fills the summary prompt.
type SummaryPromptData struct {
	Note string
}

type messageTemplate struct {
	role Role
	tmpl *template.Template
}

// PromptTemplate is an ordered list of role-tagged message templates loaded
// from a YAML file.
type PromptTemplate struct {
	name     string
	messages []messageTemplate
}

// Prompts bundles the templates used by a run.
type Prompts struct {
	Questions *PromptTemplate
	Summary   *PromptTemplate
}

// LoadPrompts reads both prompt files from dir, or the embedded defaults when
// dir is empty.
func LoadPrompts(dir string) (*Prompts, error) {
	read := func(name string) ([]byte, error) {
		if dir == "" {
			return defaultPrompts.ReadFile("prompts/" + name)
		}
		return os.ReadFile(filepath.Join(dir, name))
	}

	questions, err := loadPrompt(read, QuestionsPromptFile)
	if err != nil {
		return nil, err
	}

	summary, err := loadPrompt(read, SummaryPromptFile)
	if err != nil {
		return nil, err
	}

	return &Prompts{Questions: questions, Summary: summary}, nil
}

func loadPrompt(read func(string) ([]byte, error), name string) (*PromptTemplate, error) {
	data, err := read(name)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt %s: %v", ErrInvalidConfig, name, err)
	}
	return ParsePrompt(name, data)
}

// ParsePrompt parses a YAML list of {role, content} messages whose content is
// a text/template.
func ParsePrompt(name string, data []byte) (*PromptTemplate, error) {
	var raw []Message
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt %s: %v", ErrInvalidConfig, name, err)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: prompt %s has no messages", ErrInvalidConfig, name)
	}

	messages := make([]messageTemplate, 0, len(raw))
	for i, m := range raw {
		switch m.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return nil, fmt.Errorf("%w: prompt %s message %d has unknown role %q",
				ErrInvalidConfig, name, i, m.Role)
		}

		tmpl, err := template.New(fmt.Sprintf("%s#%d", name, i)).
			Option("missingkey=error").
			Parse(m.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse prompt %s message %d: %v",
				ErrInvalidConfig, name, i, err)
		}
		messages = append(messages, messageTemplate{role: m.Role, tmpl: tmpl})
	}

	return &PromptTemplate{name: name, messages: messages}, nil
}

// Name returns the file name the template was loaded from.
func (p *PromptTemplate) Name() string {
	return p.name
}

// Render executes every message template with data.
func (p *PromptTemplate) Render(data any) ([]Message, error) {
	out := make([]Message, 0, len(p.messages))
	for _, m := range p.messages {
		var buf bytes.Buffer
		if err := m.tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("failed to execute prompt template %s: %w", m.tmpl.Name(), err)
		}
		out = append(out, Message{Role: m.role, Content: buf.String()})
	}
	return out, nil
}

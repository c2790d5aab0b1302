package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/quizgen/internal/config"
	"github.com/phrazzld/quizgen/internal/generation"
	"github.com/phrazzld/quizgen/internal/platform/logger"
	"google.golang.org/genai"
)

// Conversation roles understood by the Gemini API.
const (
	roleUser  = "user"
	roleModel = "model"
)

// contentGenerator is the part of *genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Client implements generation.StructuredPredictor on top of the Gemini API
// or Vertex AI. Every call requests a JSON response.
type Client struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

var _ generation.StructuredPredictor = (*Client)(nil)

// NewClient creates a Client for the backend selected in cfg.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", generation.ErrNilDependency)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{}
	switch cfg.Backend {
	case "", "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
		}
		clientConfig.APIKey = cfg.GeminiAPIKey
		clientConfig.Backend = genai.BackendGeminiAPI
	case "vertex":
		if cfg.Project == "" || cfg.Location == "" {
			return nil, fmt.Errorf("%w: vertex backend needs project and location", generation.ErrInvalidConfig)
		}
		clientConfig.Project = cfg.Project
		clientConfig.Location = cfg.Location
		clientConfig.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("%w: unknown llm backend %q", generation.ErrInvalidConfig, cfg.Backend)
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "gemini client initialized",
		"backend", cfg.Backend,
		"model", cfg.ModelName)

	return newClient(client.Models, cfg.ModelName, cfg.RequestTimeout, logger), nil
}

func newClient(models contentGenerator, model string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		models:  models,
		model:   model,
		timeout: timeout,
		logger:  logger.With("component", "gemini_client", "model", model),
	}
}

// PredictStructured implements generation.StructuredPredictor.
//
// System messages become the system instruction; user and assistant messages
// form the conversation. A reply that is not valid JSON, after removing a
// surrounding markdown code fence, yields *generation.InvalidJSONResponseError.
func (c *Client) PredictStructured(
	ctx context.Context,
	messages []generation.Message,
) (json.RawMessage, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	system, contents, err := toContents(messages)
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: system,
		ResponseMIMEType:  "application/json",
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, contents, genConfig)
	if err != nil {
		log.ErrorContext(ctx, "gemini API call failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	text, err := responseText(resp)
	if err != nil {
		log.WarnContext(ctx, "gemini returned no usable content", "error", err)
		return nil, err
	}

	log.DebugContext(ctx, "gemini API call successful",
		"duration_ms", time.Since(start).Milliseconds(),
		"response_length", len(text))

	payload := stripCodeFence(text)
	var probe any
	if err := json.Unmarshal([]byte(payload), &probe); err != nil {
		return nil, &generation.InvalidJSONResponseError{Raw: text, Err: err}
	}

	return json.RawMessage(payload), nil
}

// toContents maps generation messages to a system instruction and the
// conversation contents.
func toContents(messages []generation.Message) (*genai.Content, []*genai.Content, error) {
	if len(messages) == 0 {
		return nil, nil, ErrNoMessages
	}

	var system *genai.Content
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		part := &genai.Part{Text: m.Content}
		switch m.Role {
		case generation.RoleSystem:
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, part)
		case generation.RoleUser:
			contents = append(contents, &genai.Content{Role: roleUser, Parts: []*genai.Part{part}})
		case generation.RoleAssistant:
			contents = append(contents, &genai.Content{Role: roleModel, Parts: []*genai.Part{part}})
		default:
			return nil, nil, fmt.Errorf("%w: unknown message role %q", generation.ErrInvalidConfig, m.Role)
		}
	}

	if len(contents) == 0 {
		return nil, nil, ErrNoMessages
	}

	return system, contents, nil
}

// responseText extracts the text of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrGenerationFailed)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrGenerationFailed)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrGenerationFailed)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}

// stripCodeFence removes a markdown code fence around a JSON reply.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 {
		trimmed = trimmed[nl+1:]
	} else {
		trimmed = strings.TrimPrefix(trimmed, "json")
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(trimmed), "```"))
}

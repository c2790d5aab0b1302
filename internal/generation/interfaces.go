package generation

import (
	"context"
	"encoding/json"

	"github.com/phrazzld/quizgen/internal/domain"
)

// Role is the author of a prompt message.
type Role string

// Message roles understood by every StructuredPredictor.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the ordered conversation sent to the model.
type Message struct {
	Role    Role   `yaml:"role" json:"role"`
	Content string `yaml:"content" json:"content"`
}

// StructuredPredictor submits a message sequence and returns the model's reply
// as JSON. When the model answers with text that is not valid JSON the error
// is an *InvalidJSONResponseError carrying the raw reply; any other failure
// (network, timeout, provider error) is returned as a plain error.
type StructuredPredictor interface {
	PredictStructured(ctx context.Context, messages []Message) (json.RawMessage, error)
}

// Notifier delivers error reports to the operations channel. It is best
// effort: implementations swallow their own failures.
type Notifier interface {
	ReportError(ctx context.Context, report domain.ErrorReport)
}

// QuestionWriter persists one generated question and commits it.
type QuestionWriter interface {
	InsertQuestion(ctx context.Context, question *domain.Question) error
}

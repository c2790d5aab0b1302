package discord

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/phrazzld/quizgen/internal/config"
	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/phrazzld/quizgen/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	channelID string
	embeds    []*discordgo.MessageEmbed
	err       error
}

func (f *fakeSender) ChannelMessageSendEmbed(
	channelID string,
	embed *discordgo.MessageEmbed,
	_ ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	f.channelID = channelID
	f.embeds = append(f.embeds, embed)
	return &discordgo.Message{}, f.err
}

func sampleReport() domain.ErrorReport {
	return domain.ErrorReport{
		Task:            domain.TaskQuestionGeneration,
		Type:            domain.ErrorTypeInvalidFormat,
		DocumentContent: "Goroutines are multiplexed onto threads.",
		RawResponse:     "Sure! Here you go",
		Message:         "LLM Response is not JSON-decodable",
		Info:            "* s3_key: `a.txt`\n* document_id: `42`",
	}
}

func TestNotifier_ReportError(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	log, buf := logger.NewTestLogger()
	n := newNotifier(sender, "123", log)
	n.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	n.ReportError(context.Background(), sampleReport())

	assert.Equal(t, "123", sender.channelID)
	require.Len(t, sender.embeds, 1)
	embed := sender.embeds[0]
	assert.Equal(t, "LLM Error: Question Generation", embed.Title)
	assert.Equal(t, "LLM Response is not JSON-decodable", embed.Description)
	assert.Equal(t, colorInvalidFormat, embed.Color)
	assert.Equal(t, "2024-01-02T03:04:05Z", embed.Timestamp)

	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "INVALID_LLM_JSON_RESPONSE_FORMAT", embed.Fields[0].Value)
	assert.Contains(t, embed.Fields[1].Value, "document_id: `42`")
	assert.Contains(t, embed.Fields[2].Value, "Goroutines are multiplexed")
	assert.Contains(t, embed.Fields[3].Value, "Sure! Here you go")

	assert.Contains(t, buf.String(), "llm error reported")
}

func TestNotifier_WithoutRawResponse(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	log, _ := logger.NewTestLogger()
	report := sampleReport()
	report.Type = domain.ErrorTypeGeneral
	report.RawResponse = ""

	newNotifier(sender, "123", log).ReportError(context.Background(), report)

	require.Len(t, sender.embeds, 1)
	assert.Len(t, sender.embeds[0].Fields, 3)
	assert.Equal(t, colorGeneral, sender.embeds[0].Color)
}

func TestNotifier_SendFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{err: errors.New("HTTP 401 Unauthorized")}
	log, buf := logger.NewTestLogger()

	assert.NotPanics(t, func() {
		newNotifier(sender, "123", log).ReportError(context.Background(), sampleReport())
	})
	assert.Contains(t, buf.String(), "failed to send discord report")
}

func TestNotifier_RedactsSecrets(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	log, buf := logger.NewTestLogger()
	report := sampleReport()
	report.Message = "request failed: postgres://worker:hunter2@db:5432/app"

	newNotifier(sender, "123", log).ReportError(context.Background(), report)

	assert.NotContains(t, sender.embeds[0].Description, "hunter2")
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestNotifier_TruncatesLongContent(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	log, _ := logger.NewTestLogger()
	report := sampleReport()
	report.DocumentContent = strings.Repeat("ü", 5000)
	report.Message = strings.Repeat("m", 5000)

	newNotifier(sender, "123", log).ReportError(context.Background(), report)

	embed := sender.embeds[0]
	assert.Equal(t, maxDescriptionLength, utf8.RuneCountInString(embed.Description))
	for _, f := range embed.Fields {
		assert.LessOrEqual(t, utf8.RuneCountInString(f.Value), maxFieldLength)
	}
}

func TestNew_LogOnly(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger()
	n, err := New(config.DiscordConfig{}, log)
	require.NoError(t, err)
	assert.Nil(t, n.sender)

	n.ReportError(context.Background(), sampleReport())
	assert.Contains(t, buf.String(), "llm error reported")
}

func TestNew_WithToken(t *testing.T) {
	t.Parallel()

	n, err := New(config.DiscordConfig{BotToken: "token", ChannelID: "123"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, n.sender)
	assert.Equal(t, "123", n.channelID)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
	assert.Equal(t, "éé…", truncate("éééé", 3))
}

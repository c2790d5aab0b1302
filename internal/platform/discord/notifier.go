// Package discord reports generation failures to a Discord channel.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/phrazzld/quizgen/internal/config"
	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/phrazzld/quizgen/internal/generation"
	"github.com/phrazzld/quizgen/internal/platform/logger"
	"github.com/phrazzld/quizgen/internal/redact"
)

// Discord embed limits.
const (
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	maxFieldLength       = 1024
)

// Embed colors per error type.
const (
	colorInvalidFormat = 0xF1C40F
	colorGeneral       = 0xE74C3C
)

// embedSender is the part of *discordgo.Session the notifier uses.
type embedSender interface {
	ChannelMessageSendEmbed(
		channelID string,
		embed *discordgo.MessageEmbed,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)
}

// Notifier implements generation.Notifier. Every report is logged; when a bot
// token is configured it is also posted to the channel as an embed. Delivery
// failures are logged and otherwise ignored.
type Notifier struct {
	sender    embedSender
	channelID string
	logger    *slog.Logger
	now       func() time.Time
}

var _ generation.Notifier = (*Notifier)(nil)

// New creates a Notifier from cfg. An empty bot token yields a log-only notifier.
func New(cfg config.DiscordConfig, logger *slog.Logger) (*Notifier, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.BotToken == "" {
		logger.Info("discord bot token not set, error reports are logged only")
		return newNotifier(nil, "", logger), nil
	}

	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return newNotifier(session, cfg.ChannelID, logger), nil
}

func newNotifier(sender embedSender, channelID string, logger *slog.Logger) *Notifier {
	return &Notifier{
		sender:    sender,
		channelID: channelID,
		logger:    logger.With("component", "discord_notifier"),
		now:       time.Now,
	}
}

// ReportError implements generation.Notifier.
func (n *Notifier) ReportError(ctx context.Context, report domain.ErrorReport) {
	log := logger.FromContextOrDefault(ctx, n.logger)

	log.WarnContext(ctx, "llm error reported",
		"task", report.Task,
		"error_type", string(report.Type),
		"message", redact.String(report.Message),
		"has_raw_response", report.HasRawResponse())

	if n.sender == nil {
		return
	}

	embed := n.buildEmbed(report)
	if _, err := n.sender.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		log.WarnContext(ctx, "failed to send discord report", "error", redact.Error(err))
	}
}

func (n *Notifier) buildEmbed(report domain.ErrorReport) *discordgo.MessageEmbed {
	color := colorGeneral
	if report.Type == domain.ErrorTypeInvalidFormat {
		color = colorInvalidFormat
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Error Type", Value: truncate(string(report.Type), maxFieldLength), Inline: true},
		{Name: "Info", Value: truncate(report.Info, maxFieldLength)},
		{Name: "Document Content", Value: codeBlock(report.DocumentContent)},
	}
	if report.HasRawResponse() {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "LLM Response",
			Value: codeBlock(report.RawResponse),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       truncate(fmt.Sprintf("LLM Error: %s", report.Task), maxTitleLength),
		Description: truncate(redact.String(report.Message), maxDescriptionLength),
		Color:       color,
		Fields:      fields,
		Timestamp:   n.now().UTC().Format(time.RFC3339),
	}
}

// codeBlock wraps s in a code fence that fits an embed field.
func codeBlock(s string) string {
	if s == "" {
		return "(empty)"
	}
	const fence = "```"
	return fence + "\n" + truncate(s, maxFieldLength-2*len(fence)-2) + "\n" + fence
}

// truncate shortens s to at most limit characters, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

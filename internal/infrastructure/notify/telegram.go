package notify

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
)

// TelegramNotifier posts a message to a moderator chat for every report.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

var _ port.ReportNotifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier authenticates the bot against the default API endpoint.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	return NewTelegramNotifierWithClient(token, chatID, tgbotapi.APIEndpoint, &http.Client{})
}

// NewTelegramNotifierWithClient is NewTelegramNotifier with an explicit
// endpoint format (see tgbotapi.APIEndpoint) and HTTP client.
func NewTelegramNotifierWithClient(token string, chatID int64, endpoint string, client *http.Client) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// NotifyReported implements port.ReportNotifier. The bot API is not
// context-aware, so ctx is only checked before sending.
func (n *TelegramNotifier) NotifyReported(ctx context.Context, report *model.PostingReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatReport(report))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// FormatReport renders report as a Telegram HTML message.
func FormatReport(report *model.PostingReport) string {
	p := report.Posting()

	title := p.Title
	if title == "" {
		title = "(untitled)"
	}
	company := p.Company
	if company == "" {
		company = "(no company)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>Posting reported</b>\n<b>%s</b> at %s\n", html.EscapeString(title), html.EscapeString(company))
	if p.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", html.EscapeString(p.Location))
	}
	if p.HasSalary() {
		fmt.Fprintf(&b, "Salary: %s\n", html.EscapeString(p.SalaryText()))
	}
	if report.URL() != "" {
		fmt.Fprintf(&b, "<a href=\"%s\">Open posting</a>\n", html.EscapeString(report.URL()))
	}
	if report.Reason() != "" {
		fmt.Fprintf(&b, "Reason: %s\n", html.EscapeString(report.Reason()))
	}
	if id := report.AssessmentID(); id != nil {
		fmt.Fprintf(&b, "Assessment: <code>%s</code>\n", id)
	}
	fmt.Fprintf(&b, "Reported at %s", report.ReportedAtISO())

	return b.String()
}

// Nop discards notifications.
type Nop struct{}

func (Nop) NotifyReported(context.Context, *model.PostingReport) error { return nil }

package services

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"estatecrm/internal/models"
)

// Notifier receives lifecycle side effects. Implementations are best-effort:
// a failed notification never fails the operation that triggered it.
type Notifier interface {
	LeadAssigned(lead *models.Lead, assignee *models.Employee)
	LeadBooked(lead *models.Lead, assignee *models.Employee, booking *models.Booking)
}

// EmailNotifier mails the assignee on assignment and booking events.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	log    zerolog.Logger
}

func NewEmailNotifier(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, log zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
		log:    log,
	}
}

func (n *EmailNotifier) LeadAssigned(lead *models.Lead, assignee *models.Employee) {
	if assignee == nil || assignee.Email == "" {
		return
	}
	body := fmt.Sprintf(`
		<h3>A lead has been assigned to you</h3>
		<p><strong>%s</strong> (%s, %s)</p>
		<p>Project: %s</p>
		<p>Priority: %s</p>
	`, lead.CustomerName, lead.CustomerPhone, lead.CustomerEmail,
		lead.InterestedProjectName, lead.AssignedPriority)
	n.send(assignee.Email, "New lead assigned", body)
}

func (n *EmailNotifier) LeadBooked(lead *models.Lead, assignee *models.Employee, booking *models.Booking) {
	if assignee == nil || assignee.Email == "" {
		return
	}
	body := fmt.Sprintf(`
		<h3>Lead booked</h3>
		<p><strong>%s</strong> booked %s, flat %s, block %s.</p>
		<p>Booking reference: %s</p>
	`, lead.CustomerName, booking.Asset, booking.FlatNumber, booking.BlockNumber, booking.Reference)
	n.send(assignee.Email, "Lead booked", body)
}

func (n *EmailNotifier) send(to, subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	if err := n.dialer.DialAndSend(m); err != nil {
		n.log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("send notification email")
	}
}

// TelegramNotifier posts booking and assignment events to one chat, typically
// the sales channel of the builder.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    zerolog.Logger
}

func NewTelegramNotifier(token string, chatID int64, log zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID, log: log}, nil
}

func (n *TelegramNotifier) LeadAssigned(lead *models.Lead, assignee *models.Employee) {
	n.post(fmt.Sprintf("Lead %q assigned to %s (%s), priority %s",
		lead.CustomerName, lead.AssignedName, lead.AssignedUserType, lead.AssignedPriority))
}

func (n *TelegramNotifier) LeadBooked(lead *models.Lead, assignee *models.Employee, booking *models.Booking) {
	n.post(fmt.Sprintf("Lead %q booked: %s, flat %s, floor %s, block %s (ref %s)",
		lead.CustomerName, booking.Asset, booking.FlatNumber, booking.FloorNumber,
		booking.BlockNumber, booking.Reference))
}

func (n *TelegramNotifier) post(text string) {
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		n.log.Error().Err(err).Msg("send telegram notification")
	}
}

// CombineNotifiers fans events out to every non-nil notifier. Returns nil when
// none is configured.
func CombineNotifiers(notifiers ...Notifier) Notifier {
	var active []Notifier
	for _, n := range notifiers {
		if n != nil {
			active = append(active, n)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	default:
		return multiNotifier(active)
	}
}

type multiNotifier []Notifier

func (m multiNotifier) LeadAssigned(lead *models.Lead, assignee *models.Employee) {
	for _, n := range m {
		n.LeadAssigned(lead, assignee)
	}
}

func (m multiNotifier) LeadBooked(lead *models.Lead, assignee *models.Employee, booking *models.Booking) {
	for _, n := range m {
		n.LeadBooked(lead, assignee, booking)
	}
}

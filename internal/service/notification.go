package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/ice-solution/bniwedding-application/internal/domain"
	"github.com/ice-solution/bniwedding-application/internal/logger"
)

const notificationSubject = "新會員資訊提交"

// descriptionPreviewRunes bounds how much of the service description goes
// into the notification body.
const descriptionPreviewRunes = 100

// SendGridNotifier emails the admin when a submission lands.
type SendGridNotifier struct {
	client    *sendgrid.Client
	from      *mail.Email
	toAddress string
}

func NewSendGridNotifier(apiKey, fromEmail, fromName, toAddress string) *SendGridNotifier {
	return &SendGridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		from:      mail.NewEmail(fromName, fromEmail),
		toAddress: toAddress,
	}
}

func (n *SendGridNotifier) NotifySubmission(ctx context.Context, m *domain.Member, files []domain.MemberFile) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", n.toAddress)

	body := fmt.Sprintf(
		"會員 %s (%s) 已提交資訊，請前往後台審核。\n\n專業領域：%s\n所屬分會：%s\n婚宴服務：%s...",
		m.EnglishName, m.Email, m.Profession, m.Chapter, truncateRunes(m.WeddingServices, descriptionPreviewRunes),
	)

	to := mail.NewEmail("", n.toAddress)
	message := mail.NewSingleEmail(n.from, notificationSubject, to, body, "")

	resp, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return &domain.ExternalServiceError{Service: "sendgrid", Err: err}
	}
	if resp.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return &domain.ExternalServiceError{Service: "sendgrid", Err: err}
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

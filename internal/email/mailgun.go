package email

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mailgun/mailgun-go/v4"
)

func NewMailgunEmailer(mg *mailgun.MailgunImpl, host string) *MailgunEmailer {
	return &MailgunEmailer{
		mg:   mg,
		host: host,
	}
}

// MailgunEmailer is responsible for mailgun API interactions.
type MailgunEmailer struct {
	mg   *mailgun.MailgunImpl
	host string
}

const verifyEmail = "verify_email"

// SendVerifyEmail sends a verify_email email to the "to" email specified. The
// redirect is the location the user should land on after confirming their
// registration. Mailgun templates are used, acquire access to the Mailgun UI
// to learn more.
func (e MailgunEmailer) SendVerifyEmail(ctx context.Context, to, hash, redirect string) error {
	msg := e.mg.NewMessage("verify-email@mg.insurebharat.in", "Verify your email.", "", to)
	msg.SetTemplate(verifyEmail)
	if err := addVerifyEmailURL(msg, e.host, hash, redirect); err != nil {
		return err
	}

	return e.send(ctx, msg)
}

// SendRenewalDigest sends a plain-text digest of upcoming policy renewals to
// the "to" email specified.
func (e MailgunEmailer) SendRenewalDigest(ctx context.Context, to, body string) error {
	msg := e.mg.NewMessage(
		"renewals@mg.insurebharat.in",
		"Upcoming policy renewals",
		body,
		to,
	)

	return e.send(ctx, msg)
}

// --- private ---

func (e MailgunEmailer) send(ctx context.Context, msg *mailgun.Message) error {
	if _, _, err := e.mg.Send(ctx, msg); err != nil {
		return err
	}
	return nil
}

// --- helper ---

func addVerifyEmailURL(msg *mailgun.Message, host, hash, redirect string) error {
	return msg.AddTemplateVariable(
		"verifyEmailURL",
		fmt.Sprintf(
			"https://%s/verify-email?hash=%s&redirect=%s",
			host,
			hash,
			url.QueryEscape(redirect),
		),
	)
}

package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/mailgun/mailgun-go/v4"
)

const mailgunProvider = "mailgun"

// Mailgun sends through Mailgun stored templates. Personalisation becomes
// template variables.
type Mailgun struct {
	mg      mailgun.Mailgun
	sender  string
	subject string
}

type MailgunConfig struct {
	Domain  string
	APIKey  string
	Sender  string
	APIBase string
	// Transport overrides the HTTP transport, mostly for tests.
	Transport http.RoundTripper
}

func NewMailgun(cfg MailgunConfig) (*Mailgun, error) {
	if cfg.Domain == "" || cfg.APIKey == "" || cfg.Sender == "" {
		return nil, errors.New("mailgun: domain, api key and sender are required")
	}
	mg := mailgun.NewMailgun(cfg.Domain, cfg.APIKey)
	if cfg.APIBase != "" {
		mg.SetAPIBase(cfg.APIBase)
	}
	if cfg.Transport != nil {
		mg.Client().Transport = cfg.Transport
	}
	return &Mailgun{mg: mg, sender: cfg.Sender, subject: "New court and tribunal list published"}, nil
}

func (g *Mailgun) SendEmail(ctx context.Context, msg Message) (*Receipt, error) {
	m := g.mg.NewMessage(g.sender, g.subject, "", msg.RecipientAddress)
	m.SetTemplate(msg.TemplateID)
	for k, v := range msg.Personalisation {
		if err := m.AddTemplateVariable(k, v); err != nil {
			return nil, &Error{Provider: mailgunProvider, Permanent: true, Err: err}
		}
	}
	if msg.Reference != "" {
		if err := m.AddVariable("reference", msg.Reference); err != nil {
			return nil, &Error{Provider: mailgunProvider, Permanent: true, Err: err}
		}
	}

	_, id, err := g.mg.Send(ctx, m)
	if err != nil {
		var unexpected *mailgun.UnexpectedResponseError
		if errors.As(err, &unexpected) {
			return nil, statusError(mailgunProvider, unexpected.Actual, err)
		}
		return nil, &Error{Provider: mailgunProvider, Err: err}
	}
	return &Receipt{ID: id}, nil
}

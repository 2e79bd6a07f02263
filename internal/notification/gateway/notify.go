package gateway

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/carlmjohnson/requests"
)

const (
	notifyProvider  = "notify"
	notifyEmailPath = "/v2/notifications/email"
	// A Notify API key ends with "-<service id>-<secret>", both UUIDs.
	uuidLen         = 36
	minNotifyKeyLen = 2*uuidLen + 2
)

// Notify sends through a GOV.UK Notify style REST API.
type Notify struct {
	baseURL   string
	serviceID string
	secret    string
	client    *http.Client
	now       func() time.Time

	mu    sync.Mutex
	token TokenCache
}

type NotifyOption func(*Notify)

// WithHTTPClient replaces the client used for API calls.
func WithHTTPClient(c *http.Client) NotifyOption {
	return func(n *Notify) {
		n.client = c
	}
}

func WithClock(now func() time.Time) NotifyOption {
	return func(n *Notify) {
		n.now = now
	}
}

// NewNotify parses apiKey into its service id and signing secret.
func NewNotify(baseURL, apiKey string, opts ...NotifyOption) (*Notify, error) {
	if len(apiKey) < minNotifyKeyLen {
		return nil, errors.New("notify: malformed api key")
	}
	n := &Notify{
		baseURL:   baseURL,
		serviceID: apiKey[len(apiKey)-2*uuidLen-1 : len(apiKey)-uuidLen-1],
		secret:    apiKey[len(apiKey)-uuidLen:],
		client:    &http.Client{Timeout: 10 * time.Second},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

type notifyEmailRequest struct {
	EmailAddress    string            `json:"email_address"`
	TemplateID      string            `json:"template_id"`
	Personalisation map[string]string `json:"personalisation,omitempty"`
	Reference       string            `json:"reference,omitempty"`
}

type notifyEmailResponse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
}

func (n *Notify) SendEmail(ctx context.Context, msg Message) (*Receipt, error) {
	token, err := n.currentToken()
	if err != nil {
		return nil, &Error{Provider: notifyProvider, Permanent: true, Err: err}
	}

	var resp notifyEmailResponse
	err = requests.URL(n.baseURL).
		Path(notifyEmailPath).
		Client(n.client).
		Bearer(token).
		BodyJSON(notifyEmailRequest{
			EmailAddress:    msg.RecipientAddress,
			TemplateID:      msg.TemplateID,
			Personalisation: msg.Personalisation,
			Reference:       msg.Reference,
		}).
		ToJSON(&resp).
		Fetch(ctx)
	if err != nil {
		var respErr *requests.ResponseError
		if errors.As(err, &respErr) {
			return nil, statusError(notifyProvider, respErr.StatusCode, err)
		}
		return nil, &Error{Provider: notifyProvider, Err: err}
	}
	return &Receipt{ID: resp.ID}, nil
}

// currentToken reuses the cached token until it expires.
func (n *Notify) currentToken() (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	if n.token.Valid(now) {
		return n.token.Token(), nil
	}
	fresh, err := signNotifyToken(n.serviceID, n.secret, now)
	if err != nil {
		return "", err
	}
	n.token = fresh
	return fresh.Token(), nil
}

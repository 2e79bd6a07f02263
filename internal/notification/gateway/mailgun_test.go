package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtpub/internal/notification/gateway"
)

type mailgunCapture struct {
	path     string
	to       string
	template string
}

func newMailgunServer(t *testing.T, status int, capture *mailgunCapture) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capture.path = r.URL.Path
		capture.to = r.FormValue("to")
		capture.template = r.FormValue("template")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"id":"<20261014090000.1.ABC@mg.example.org>","message":"Queued. Thank you."}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"rejected"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestMailgun(t *testing.T, server *httptest.Server) *gateway.Mailgun {
	t.Helper()
	g, err := gateway.NewMailgun(gateway.MailgunConfig{
		Domain:  "mg.example.org",
		APIKey:  "key-test",
		Sender:  "Court lists <lists@mg.example.org>",
		APIBase: server.URL + "/v3",
	})
	require.NoError(t, err)
	return g
}

func TestMailgunSendsTemplate(t *testing.T) {
	var capture mailgunCapture
	g := newTestMailgun(t, newMailgunServer(t, http.StatusOK, &capture))

	receipt, err := g.SendEmail(context.Background(), gateway.Message{
		TemplateID:       "summary-only",
		RecipientAddress: "jo.bloggs@example.com",
		Personalisation:  map[string]string{"first_name": "Jo"},
		Reference:        "ref-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "<20261014090000.1.ABC@mg.example.org>", receipt.ID)
	assert.True(t, strings.HasSuffix(capture.path, "/mg.example.org/messages"), capture.path)
	assert.Equal(t, "jo.bloggs@example.com", capture.to)
	assert.Equal(t, "summary-only", capture.template)
}

func TestMailgunRejectionIsPermanent(t *testing.T) {
	var capture mailgunCapture
	g := newTestMailgun(t, newMailgunServer(t, http.StatusBadRequest, &capture))

	_, err := g.SendEmail(context.Background(), gateway.Message{
		TemplateID:       "summary-only",
		RecipientAddress: "jo.bloggs@example.com",
	})
	require.Error(t, err)
	assert.True(t, gateway.IsPermanent(err))
}

func TestNewMailgunRequiresCredentials(t *testing.T) {
	_, err := gateway.NewMailgun(gateway.MailgunConfig{Domain: "mg.example.org"})
	assert.Error(t, err)
}

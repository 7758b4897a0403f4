package notify

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/config"
	"portfolio-api/internal/model"
)

var at = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestRender_SubjectFallsBackToNewMessage(t *testing.T) {
	e, err := Render(&model.Contact{Name: "Ada", Email: "ada@example.com", Message: "hi"}, at)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio Contact: New Message", e.Subject)
	assert.NotContains(t, e.Text, "Subject:")
	assert.NotContains(t, e.HTML, "Subject:")

	e, err = Render(&model.Contact{Name: "Ada", Email: "ada@example.com", Subject: "Hiring", Message: "hi"}, at)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio Contact: Hiring", e.Subject)
	assert.Contains(t, e.Text, "Subject: Hiring\n")
}

func TestRender_Bodies(t *testing.T) {
	c := &model.Contact{Name: "Ada <admin>", Email: "ada@example.com", Message: "line one\nline two"}
	e, err := Render(c, at)
	require.NoError(t, err)

	assert.Contains(t, e.Text, "Name: Ada <admin>\nEmail: ada@example.com\n\nMessage:\nline one\nline two\n")
	assert.Contains(t, e.Text, "Timestamp: Fri, 01 Mar 2024 12:00:00 UTC")

	assert.Contains(t, e.HTML, "Ada &lt;admin&gt;")
	assert.NotContains(t, e.HTML, "<admin>")
	assert.Contains(t, e.HTML, `href="mailto:ada@example.com"`)
}

func TestOpen_NoopWithoutHost(t *testing.T) {
	cfg := config.FromEnv()
	cfg.Mail.Host, cfg.Mail.To = "", ""
	n := Open(cfg)
	assert.IsType(t, Noop{}, n)
	assert.NoError(t, n.NotifyContact(context.Background(), &model.Contact{}))
}

func TestMailer_Message(t *testing.T) {
	cfg := config.FromEnv()
	cfg.Mail.Host, cfg.Mail.Port = "smtp.example.com", 587
	cfg.Mail.From, cfg.Mail.To = "site@example.com", "me@example.com"
	m := NewMailer(cfg)
	m.now = func() time.Time { return at }

	msg, err := m.Message(&model.Contact{Name: "Ada", Email: "ada@example.com", Subject: "Hello", Message: "hi"})
	require.NoError(t, err)
	require.NotNil(t, msg)

	_, err = m.Message(&model.Contact{Name: "Ada", Email: "not an address", Message: "hi"})
	assert.Error(t, err)
}

func TestMailer_UnreachableServerFails(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().(*net.TCPAddr)
	require.NoError(t, l.Close())

	cfg := config.FromEnv()
	cfg.Mail.Host, cfg.Mail.Port = "127.0.0.1", addr.Port
	cfg.Mail.Username = ""
	cfg.Mail.From, cfg.Mail.To = "site@example.com", "me@example.com"
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = NewMailer(cfg).NotifyContact(ctx, &model.Contact{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "send:"), err.Error())
}

package notifier

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/maxbolgarin/errm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	addr string
	auth sasl.Client
	from string
	to   []string
	body string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) send(addr string, auth sasl.Client, from string, to []string, r io.Reader) error {
	if f.err != nil {
		return f.err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.sent = append(f.sent, sentMail{addr: addr, auth: auth, from: from, to: to, body: string(body)})
	return nil
}

func newTestNotifier(t *testing.T, cfg Config) (*Notifier, *fakeSender) {
	t.Helper()
	sender := &fakeSender{}
	n, err := NewWithSender(cfg, sender.send)
	require.NoError(t, err)
	return n, sender
}

func TestRecipients(t *testing.T) {
	cfg := Config{To: " a@example.com, b@example.com;c@example.com ;; "}
	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, cfg.Recipients())
	assert.Empty(t, Config{}.Recipients())
}

func TestEnabled(t *testing.T) {
	n, _ := newTestNotifier(t, Config{Host: "smtp.example.com", To: "a@example.com"})
	assert.True(t, n.Enabled())

	n, _ = newTestNotifier(t, Config{To: "a@example.com"})
	assert.False(t, n.Enabled())

	n, _ = newTestNotifier(t, Config{Host: "smtp.example.com", To: " ; "})
	assert.False(t, n.Enabled())
}

func TestSendNotConfigured(t *testing.T) {
	n, sender := newTestNotifier(t, Config{})

	err := n.Send(context.Background(), "subject", []byte("<p>hi</p>"))
	require.Error(t, err)
	assert.True(t, errm.Is(err, ErrNotConfigured))
	assert.Empty(t, sender.sent)
}

func TestSendWithAuth(t *testing.T) {
	n, sender := newTestNotifier(t, Config{
		Host:     "smtp.example.com",
		Username: "bot",
		Password: "secret",
		From:     "bot@example.com",
		To:       "a@example.com;b@example.com",
	})

	require.NoError(t, n.Send(context.Background(), "[Production] Promotion report: staging → production", []byte("<p>hi</p>")))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "smtp.example.com:587", msg.addr)
	assert.Equal(t, "bot@example.com", msg.from)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, msg.to)
	require.NotNil(t, msg.auth)

	mech, ir, err := msg.auth.Start()
	require.NoError(t, err)
	assert.Equal(t, sasl.Plain, mech)
	assert.Equal(t, "\x00bot\x00secret", string(ir))

	h, body := readMessage(t, msg.body)
	from, err := h.AddressList("From")
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, "bot@example.com", from[0].Address)
	to, err := h.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 2)
	assert.Equal(t, "b@example.com", to[1].Address)
	subject, err := h.Subject()
	require.NoError(t, err)
	assert.Equal(t, "[Production] Promotion report: staging → production", subject)
	assert.Equal(t, "<p>hi</p>", body)
}

func TestSendWithoutAuth(t *testing.T) {
	for _, cfg := range []Config{
		{Host: "smtp.example.com", Port: 25, To: "a@example.com"},
		{Host: "smtp.example.com", Port: 25, To: "a@example.com", Username: "bot"},
		{Host: "smtp.example.com", Port: 25, To: "a@example.com", Password: "secret"},
	} {
		n, sender := newTestNotifier(t, cfg)
		require.NoError(t, n.Send(context.Background(), "subject", nil))
		require.Len(t, sender.sent, 1)
		assert.Nil(t, sender.sent[0].auth)
		assert.Equal(t, "smtp.example.com:25", sender.sent[0].addr)
	}
}

func TestSendError(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	n, err := NewWithSender(Config{Host: "smtp.example.com", To: "a@example.com"}, sender.send)
	require.NoError(t, err)

	err = n.Send(context.Background(), "subject", nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
}

func TestSendCancelled(t *testing.T) {
	n, sender := newTestNotifier(t, Config{Host: "smtp.example.com", To: "a@example.com"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, n.Send(ctx, "subject", nil))
	assert.Empty(t, sender.sent)
}

func TestSubject(t *testing.T) {
	n, _ := newTestNotifier(t, Config{})
	assert.Equal(t, "[Staging] Promotion report: dev → staging", n.Subject("Staging", "dev", "staging"))

	n, _ = newTestNotifier(t, Config{SubjectPrefix: "Tekton tasks"})
	assert.Equal(t, "[Production] Tekton tasks: staging → production", n.Subject("Production", "staging", "production"))
}

func TestBuildMessageHeaders(t *testing.T) {
	date := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	msg, err := buildMessage("a@example.com", []string{"b@example.com"}, "dev → staging", []byte("x"), date)
	require.NoError(t, err)

	h, _ := readMessage(t, string(msg))
	assert.NotContains(t, string(msg), "Subject: dev → staging")
	assert.Equal(t, "quoted-printable", h.Get("Content-Transfer-Encoding"))
	assert.Equal(t, "1.0", h.Get("Mime-Version"))

	typ, params, err := h.ContentType()
	require.NoError(t, err)
	assert.Equal(t, "text/html", typ)
	assert.Equal(t, "utf-8", params["charset"])

	sent, err := h.Date()
	require.NoError(t, err)
	assert.True(t, date.Equal(sent))
}

func TestBuildMessageWrapsLongLines(t *testing.T) {
	html := "<p>" + strings.Repeat("This promotion introduces retry logic → ", 50) + "</p>"
	require.Greater(t, len(html), 2000)

	msg, err := buildMessage("a@example.com", []string{"b@example.com"}, "subject", []byte(html), time.Now())
	require.NoError(t, err)

	for _, line := range strings.Split(string(msg), "\r\n") {
		assert.LessOrEqual(t, len(line), 998)
	}
	for _, r := range string(msg) {
		require.Less(t, r, rune(128), "message must be 7-bit")
	}

	_, body := readMessage(t, string(msg))
	assert.Equal(t, html, body)
}

func readMessage(t *testing.T, raw string) (mail.Header, string) {
	t.Helper()
	r, err := mail.CreateReader(strings.NewReader(raw))
	require.NoError(t, err)
	part, err := r.NextPart()
	require.NoError(t, err)
	body, err := io.ReadAll(part.Body)
	require.NoError(t, err)
	return r.Header, string(body)
}

package notifier

import (
	"bytes"
	"context"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

// SendFunc delivers a prepared message, smtp.SendMail by default
type SendFunc func(addr string, auth sasl.Client, from string, to []string, r io.Reader) error

// Notifier sends rendered reports by email
type Notifier struct {
	send       SendFunc
	recipients []string

	cfg Config
	log logze.Logger
}

// New creates a notifier delivering through go-smtp
func New(cfg Config) (*Notifier, error) {
	return NewWithSender(cfg, smtp.SendMail)
}

// NewWithSender creates a notifier with a custom delivery function
func NewWithSender(cfg Config, send SendFunc) (*Notifier, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "failed to prepare and validate config")
	}
	return &Notifier{
		send:       send,
		recipients: cfg.Recipients(),
		cfg:        cfg,
		log:        logze.With("component", "notifier"),
	}, nil
}

// Enabled reports whether a host and at least one recipient are configured
func (n *Notifier) Enabled() bool {
	return n.cfg.Host != "" && len(n.recipients) > 0
}

// Subject returns the email subject for a promotion
func (n *Notifier) Subject(promotionType, from, to string) string {
	return "[" + promotionType + "] " + n.cfg.SubjectPrefix + ": " + from + " → " + to
}

// Send delivers the HTML body to all recipients
func (n *Notifier) Send(ctx context.Context, subject string, html []byte) error {
	if !n.Enabled() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return errm.Wrap(err, "context")
	}

	timer := abstract.StartTimer()
	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	msg, err := buildMessage(n.cfg.From, n.recipients, subject, html, time.Now())
	if err != nil {
		return err
	}

	if err := n.send(addr, n.auth(), n.cfg.From, n.recipients, bytes.NewReader(msg)); err != nil {
		return errm.Wrap(err, "failed to send email via "+addr)
	}

	n.log.Info("report sent", "recipients", len(n.recipients), "elapsed", timer.ElapsedTime())
	return nil
}

func (n *Notifier) auth() sasl.Client {
	if n.cfg.Username == "" || n.cfg.Password == "" {
		return nil
	}
	return sasl.NewPlainClient("", n.cfg.Username, n.cfg.Password)
}

func buildMessage(from string, to []string, subject string, html []byte, date time.Time) ([]byte, error) {
	var h mail.Header
	h.SetAddressList("From", []*mail.Address{{Address: from}})
	h.SetAddressList("To", addressList(to))
	h.SetSubject(subject)
	h.SetDate(date)
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, errm.Wrap(err, "failed to create message writer")
	}
	if _, err := w.Write(html); err != nil {
		return nil, errm.Wrap(err, "failed to write message body")
	}
	if err := w.Close(); err != nil {
		return nil, errm.Wrap(err, "failed to close message body")
	}
	return buf.Bytes(), nil
}

func addressList(addrs []string) []*mail.Address {
	out := make([]*mail.Address, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, &mail.Address{Address: a})
	}
	return out
}

package mailer

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	err  error
	sent []string
	html string
}

func (s *recordingSender) Send(_ context.Context, to, subject, _, html string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, to+"|"+subject)
	s.html = html
	return nil
}

func newWorker(s Sender) *Worker {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Worker{Sender: s, Defaults: map[string]any{"CompanyName": "Acme"}, Logger: l}
}

func TestWorkerHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("welcome template is rendered and sent", func(t *testing.T) {
		s := &recordingSender{}
		body := []byte(`{"to":"alex@x.com","template":"welcome","data":{"Name":"Alex","AppName":"Directory"}}`)
		assert.Equal(t, Ack, newWorker(s).Handle(ctx, body, false))
		require.Len(t, s.sent, 1)
		assert.Contains(t, s.sent[0], "alex@x.com|")
		assert.Contains(t, s.html, "Acme")
	})

	t.Run("malformed json is dropped", func(t *testing.T) {
		assert.Equal(t, Drop, newWorker(&recordingSender{}).Handle(ctx, []byte(`{`), false))
	})

	t.Run("missing recipient is dropped", func(t *testing.T) {
		assert.Equal(t, Drop, newWorker(&recordingSender{}).Handle(ctx, []byte(`{"subject":"hi","text":"x"}`), false))
	})

	t.Run("send failure is requeued once", func(t *testing.T) {
		s := &recordingSender{err: errors.New("mailgun down")}
		body := []byte(`{"to":"alex@x.com","subject":"hi","text":"x"}`)
		assert.Equal(t, Requeue, newWorker(s).Handle(ctx, body, false))
		assert.Equal(t, Drop, newWorker(s).Handle(ctx, body, true))
	})
}

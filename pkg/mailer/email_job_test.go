package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/customer-directory/pkg/mailer/templates"
)

type fakeSender struct {
	to, subject, text, html string
	calls                   int
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.calls++
	f.to, f.subject, f.text, f.html = to, subject, text, html
	return nil
}

func TestDeliverRendersTemplate(t *testing.T) {
	s := &fakeSender{}
	job := EmailJob{
		To:       "alex@example.com",
		Template: templates.Welcome,
		Data:     templates.ToMap(templates.EmailData{Name: "Alex", Email: "alex@example.com", AppName: "Acme"}),
	}

	require.NoError(t, Deliver(context.Background(), s, job))
	assert.Equal(t, 1, s.calls)
	assert.Equal(t, "alex@example.com", s.to)
	assert.Equal(t, "Welcome to Acme, Alex", s.subject)
	assert.NotEmpty(t, s.html)
}

func TestPreparePlainJob(t *testing.T) {
	subject, text, html, err := Prepare(EmailJob{To: "a@b.c", Subject: "hi", Text: "body"})
	require.NoError(t, err)
	assert.Equal(t, "hi", subject)
	assert.Equal(t, "body", text)
	assert.Empty(t, html)
}

func TestPrepareRejectsMissingRecipient(t *testing.T) {
	_, _, _, err := Prepare(EmailJob{Subject: "hi"})
	assert.ErrorIs(t, err, ErrNoRecipient)
}
